package main

import (
	"fmt"
	"os"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/shell"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	ctx, stop := cli.InterruptContext()
	defer stop()

	result, err := backend.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	store := ledger.NewStore(result.Repo, logger)
	if err := store.Open(ctx); err != nil {
		logger.Error("Failed to open ledger", log.FieldError, err)
		os.Exit(1)
	}

	sh := shell.New(os.Stdin, os.Stdout, store, cfg.ExportDir, logger)

	done := make(chan error, 1)
	go func() { done <- sh.Run(ctx) }()

	select {
	case <-ctx.Done():
		// Every successful mutation already flushed, so an interrupt
		// needs no extra save.
		fmt.Println("\nGoodbye! Your data has been saved.")
	case err := <-done:
		if err != nil {
			logger.Error("Session ended with error", log.FieldError, err)
		}
	}

	if result.Cleanup != nil {
		if err := result.Cleanup(); err != nil {
			logger.Warn("Backend cleanup failed", log.FieldError, err)
		}
	}
}
