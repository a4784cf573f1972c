package main

import (
	"log/slog"

	"vidhub/config"
	logs "vidhub/internal/infra/log"

	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configDir string

// NewRootCmd creates the root command for the operator CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vidhubctl",
		Short: "vidhub operator tooling",
		Long: `vidhubctl prepares the credential store and keeps the upload
staging directory tidy.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "extra directory searched for config.yaml")

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCleanTempCmd())

	return cmd
}

// loadConfig reads the same config.yaml the server uses.
func loadConfig() (*config.Config, *slog.Logger, error) {
	var extra []string
	if configDir != "" {
		extra = append(extra, configDir)
	}

	cfg, err := config.NewFromPaths(extra...)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}
