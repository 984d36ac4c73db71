package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/projecthub/api/internal/api"
	"github.com/projecthub/api/internal/core/ports"
	"github.com/projecthub/api/internal/core/service"
	"github.com/projecthub/api/internal/infrastructure/db/mongo"
	"github.com/projecthub/api/internal/infrastructure/db/redis"
	"github.com/projecthub/api/internal/infrastructure/queue"
	"github.com/projecthub/api/internal/pkg/token"
	"github.com/projecthub/api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	// --- Stores ---
	mongoClient, db, err := mongo.Connect(ctx, mongoConfig(cfg))
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}()

	repos := mongo.NewRepositories(db)
	if err := repos.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Activity recording ---
	var recorder ports.ActivityRecorder = service.NewActivityRecorder(repos.Activities, logger.Component("activity"))
	if cfg.ActivityWorkers > 0 {
		dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, recorder, logger.Component("dispatcher"))
		dispatcher.Start(context.WithoutCancel(ctx))
		defer dispatcher.Stop()
		recorder = dispatcher
	}

	// --- Services ---
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	statsCache := redis.NewStatsCache(rdb, cfg.Redis.StatsTTL)

	router := api.NewRouter(api.Deps{
		Auth:        service.NewAuthService(repos.Users, issuer, logger.Component("auth")),
		Projects:    service.NewProjectService(repos.Projects, repos.Users, repos.Tasks, logger.Component("projects")),
		Tasks:       service.NewTaskService(repos.Tasks, repos.Projects, repos.Users, recorder, logger.Component("tasks")),
		Activity:    service.NewActivityService(repos.Activities, repos.Users, repos.Projects),
		Admin:       service.NewAdminService(repos.Users, repos.Projects, repos.Tasks, statsCache, logger.Component("admin")),
		Tokens:      issuer,
		Mongo:       db,
		Redis:       rdb,
		CORSOrigins: cfg.CORSOrigins,
		Log:         logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
