package main

import (
	"alcyxob/gympumped/internal/app"
	"alcyxob/gympumped/internal/cli"
	"alcyxob/gympumped/internal/config"
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	// Operators want to see store failures.
	cfg.Splits.SurfaceErrors = true

	application, err := app.New(cfg, false)
	if err != nil {
		return err
	}
	defer application.Close()

	rootCmd := cli.NewRootCmd(&cli.App{
		Splits:        application.Splits,
		Workouts:      application.Workouts,
		EnsureIndexes: application.EnsureIndexes,
	})
	return rootCmd.Execute()
}
