package main

import (
	"github.com/spf13/cobra"

	"keyva/internal/config"
	"keyva/internal/driver"
)

// loadSettings discovers keyva.toml and applies CLI flag overrides.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Discover(".")
	if err != nil {
		return config.Config{}, err
	}
	if maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err == nil && maxDiag > 0 {
		cfg.Limits.MaxDiagnostics = maxDiag
	}
	return cfg, nil
}

func runLimits(cfg config.Config) driver.RunLimits {
	return driver.RunLimits{
		MaxCallDepth:   cfg.Limits.MaxCallDepth,
		MaxVariables:   cfg.Limits.MaxVariables,
		MaxFunctions:   cfg.Limits.MaxFunctions,
		MaxDiagnostics: cfg.Limits.MaxDiagnostics,
	}
}

func checkLimits(cfg config.Config) driver.Limits {
	return driver.Limits{
		MaxDiagnostics: cfg.Limits.MaxDiagnostics,
		MaxFunctions:   cfg.Limits.MaxFunctions,
	}
}
