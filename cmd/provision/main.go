/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command provision creates the storage resources the direct backend
// needs: entity tables, blob containers, notification queues, and the
// contracts file share. It is idempotent and safe to run repeatedly; run
// it once before the first deployment and after any registry change.
//
// Configuration comes from the environment (optionally a .env file), or
// from a YAML file via -config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/suparena/storekit"
	"github.com/suparena/storekit/config"
	"github.com/suparena/storekit/direct"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		configPath  = flag.String("config", "", "path to a YAML config file (default: environment)")
		envPath     = flag.String("env", ".env", "path to a .env file loaded before reading the environment")
		verbose     = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("storekit-provision %s (commit %s, built %s)\n",
			storekit.Version, storekit.GitCommit, storekit.BuildDate)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(context.Background(), *configPath, *envPath, log); err != nil {
		log.Error("provisioning failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, envPath string, log *slog.Logger) error {
	cfg, err := loadConfig(configPath, envPath)
	if err != nil {
		return err
	}
	if cfg.Backend != config.BackendDirect {
		return fmt.Errorf("provisioning applies to the direct backend only, configured backend is %q", cfg.Backend)
	}

	backend, err := direct.New(ctx, cfg.Direct, log)
	if err != nil {
		return err
	}

	report := backend.Provision(ctx)
	printReport(report)
	return report.Err()
}

func loadConfig(configPath, envPath string) (config.Config, error) {
	if configPath != "" {
		return config.FromFile(configPath)
	}
	// The .env file is optional; a missing one just means the variables
	// come from the real environment.
	if envPath != "" {
		_ = godotenv.Load(envPath)
	}
	return config.FromEnv()
}

func printReport(report *direct.ProvisionReport) {
	capabilities := []struct {
		name string
		err  error
	}{
		{"tables", report.Tables},
		{"blobs", report.Blobs},
		{"queues", report.Queues},
		{"file share", report.FileShare},
	}
	for _, c := range capabilities {
		if c.err != nil {
			fmt.Printf("%-12s FAILED: %v\n", c.name, c.err)
		} else {
			fmt.Printf("%-12s ok\n", c.name)
		}
	}
}
