package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/projecthub/api/internal/infrastructure/db/mongo"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the MongoDB indexes the API relies on",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	client, db, err := mongo.Connect(ctx, mongoConfig(cfg))
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	if err := mongo.NewRepositories(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
	return nil
}
