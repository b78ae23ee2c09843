package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/diradmin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the directory API
//	-k string   API key sent as x-api-key
//	-t int      request timeout in seconds (0 disables)
//	-s string   token store: memory, sqlite or keyring
//	-d string   sqlite database path
//	-l string   log level
//
// Only these flags are looked at; -c/-config belongs to parseJson.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-a", "-k", "-t", "-s", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the directory API")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "API key header value")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.TokenStore, "s", cfg.TokenStore, "token store (memory, sqlite, keyring)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "sqlite database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(filtered); err != nil {
		return err
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
