package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/dmitrijs2005/diradmin/internal/flagx"
	"github.com/dmitrijs2005/diradmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-value fields that are absent from the file leave the defaults alone.
type JsonConfig struct {
	BaseURL        string          `json:"base_url"`
	APIKey         *string         `json:"api_key"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	TokenStore     string          `json:"token_store"`
	DatabasePath   string          `json:"database_path"`
	HistoryFile    *string         `json:"history_file"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c or -config.
// Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(jc.BaseURL, "/")
	}
	if jc.APIKey != nil {
		cfg.APIKey = *jc.APIKey
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.TokenStore != "" {
		cfg.TokenStore = jc.TokenStore
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.HistoryFile != nil {
		cfg.HistoryFile = *jc.HistoryFile
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
