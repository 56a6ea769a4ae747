package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/stravadash/internal/client/app"
	"github.com/iudanet/stravadash/internal/client/cli"
	"github.com/iudanet/stravadash/internal/client/iocli"
	"github.com/iudanet/stravadash/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	configFile := flag.String("config", "", "Path to config file")
	dbPath := flag.String("db", "", "Path to the token database")
	cachePath := flag.String("cache", "", "Path to the activity cache")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// флаги перекрывают файл и окружение
	if *dbPath != "" {
		cfg.TokenDB = *dbPath
	}
	if *cachePath != "" {
		cfg.CacheDB = *cachePath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, stdio, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			cli.PrintUsage(stdio)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, stdio iocli.IO, command string, args []string) error {
	a, err := app.Open(ctx, cfg, logger, func() (string, error) {
		return stdio.ReadPassword("Passphrase: ")
	})
	if err != nil {
		return err
	}
	defer a.Close()

	return cli.New(stdio, a.Auth, a.Client, a.Data).Run(ctx, command, args)
}

func printVersion() {
	fmt.Printf("stravadash client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
