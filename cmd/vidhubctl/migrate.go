package main

import (
	"context"

	"vidhub/config"
	"vidhub/internal/domain/lifecycle"
	"vidhub/internal/errors"
	"vidhub/internal/infra/persistence/mongo"
	"vidhub/internal/infra/persistence/postgres"

	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema for the configured store",
		Long: `Create or extend the users and subscriptions tables (postgres)
or the unique indexes (mongo). Safe to run repeatedly.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), lifecycle.DefaultTimeout)
	defer cancel()

	switch cfg.Store.Driver {
	case config.StorePostgres:
		cmd.Println("Connecting to PostgreSQL...")
		db, sqlDB, err := postgres.Open(cfg, logger)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := postgres.Ping(ctx, sqlDB, logger); err != nil {
			return err
		}

		cmd.Println("Running migrations...")
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	case config.StoreMongo:
		cmd.Println("Connecting to MongoDB...")
		client, err := mongo.Connect(cfg.Mongo)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		if err := mongo.Ping(ctx, client, cfg.Mongo.ConnectRetries, logger); err != nil {
			return err
		}

		cmd.Println("Ensuring indexes...")
		if err := mongo.EnsureIndexes(ctx, client.Database(cfg.Mongo.Database)); err != nil {
			return err
		}
	case config.StoreMemory:
		cmd.Println("Memory store has no schema, nothing to do")

		return nil
	default:
		return errors.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	cmd.Println("Migrations completed successfully")

	return nil
}
