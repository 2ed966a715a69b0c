package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"fiduciary-books/internal/adapters/cli"
	"fiduciary-books/internal/bootstrap"
	"fiduciary-books/internal/config"
	"fiduciary-books/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// Logs go to stderr so command output on stdout stays parseable.
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rt, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("startup failed", "err", err)
	}
	defer rt.Close()

	cmd := cli.BuildCLI(rt.Service, rt.Migrate, os.Stdout)
	if err := cmd.Run(ctx, os.Args); err != nil {
		logger.Error(err.Error())
		rt.Close()
		os.Exit(1)
	}
}
