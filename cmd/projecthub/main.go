// Command projecthub runs the ProjectHub API server and its maintenance
// tasks.
//
// @title                       ProjectHub API
// @version                     1.0
// @description                 Project and task management with role-based access and an activity log.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/projecthub/api/internal/infrastructure/config"
	"github.com/projecthub/api/internal/infrastructure/db/mongo"
	"github.com/projecthub/api/pkg/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "projecthub",
	Short:         "ProjectHub - project and task management API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// bootstrap loads configuration and initialises the shared logger. Every
// subcommand starts here.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "projecthub",
	})
	return cfg, log, nil
}

func mongoConfig(cfg *config.Config) mongo.Config {
	return mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		AppName:     "projecthub",
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	}
}
