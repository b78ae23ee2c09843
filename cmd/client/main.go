package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/dmitrijs2005/diradmin/internal/buildinfo"
	"github.com/dmitrijs2005/diradmin/internal/client/cli"
	"github.com/dmitrijs2005/diradmin/internal/client/client"
	"github.com/dmitrijs2005/diradmin/internal/client/config"
	"github.com/dmitrijs2005/diradmin/internal/client/session"
	"github.com/dmitrijs2005/diradmin/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		buildinfo.PrintBuildData(os.Stdout)
	}

	tokens, closeStore, err := session.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn(ctx, "close token store", "error", err)
		}
	}()

	api, err := client.NewHTTPClient(cfg.BaseURL, tokens,
		client.WithAPIKey(cfg.APIKey),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	)
	if err != nil {
		return err
	}

	rlCfg := &readline.Config{
		Prompt:          "diradmin> ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}
	if !interactive || cfg.HistoryFile == "" {
		rlCfg.HistoryLimit = -1
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("init line editor: %w", err)
	}
	defer rl.Close()

	app, err := cli.NewApp(ctx, cli.Deps{
		API:    api,
		Tokens: tokens,
		Reader: rl,
		Out:    rl.Stdout(),
		Log:    log,
	})
	if err != nil {
		return err
	}

	log.Info(ctx, "client started", "base_url", cfg.BaseURL, "token_store", cfg.TokenStore)
	app.Run(ctx)
	return nil
}
