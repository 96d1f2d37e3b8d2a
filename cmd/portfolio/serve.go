package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/4liaghaie/sait/internal/api"
	"github.com/4liaghaie/sait/internal/auth"
	"github.com/4liaghaie/sait/internal/build"
	"github.com/4liaghaie/sait/internal/config"
	"github.com/4liaghaie/sait/internal/db"
	"github.com/4liaghaie/sait/internal/logger"
	"github.com/4liaghaie/sait/internal/media"
	"github.com/4liaghaie/sait/internal/redis"
	"github.com/4liaghaie/sait/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	log.Info("starting portfolio",
		logger.String("version", build.Version),
		logger.String("commit", build.Commit),
		logger.String("db_driver", cfg.DB.Driver))
	if cfg.UsingDefaultPassword() {
		log.Warn("admin password is the default; set PORTFOLIO_ADMIN_PASSWORD")
	}

	database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database, cfg.DB.Driver, log); err != nil {
		return err
	}

	content := store.NewContentStore(database)
	categories := store.NewCategoryStore(database)
	images := store.NewImageStore(database)
	references := store.NewReferenceStore(database)

	if cfg.SeedSamples {
		seeded, err := store.NewSeeder(database).SeedSamples(ctx)
		if err != nil {
			return fmt.Errorf("seed samples: %w", err)
		}
		if seeded {
			log.Info("inserted sample content")
		}
	}

	sessions, closeSessions, err := newSessionStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	password, err := auth.NewPasswordChecker(cfg.Admin.Password)
	if err != nil {
		return err
	}
	uploader, err := media.NewUploader(cfg.Upload.Dir, cfg.Upload.Mount)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Content:        content,
		Categories:     categories,
		Images:         images,
		References:     references,
		Sessions:       sessions,
		Password:       password,
		SessionTTL:     cfg.Session.TTL,
		Media:          media.NewResolver(cfg.Media.BaseURL),
		Uploader:       uploader,
		Logger:         log,
		MaxUploadBytes: cfg.HTTP.MaxUploadMB << 20,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.Origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", logger.String("addr", cfg.HTTP.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", logger.Duration("timeout", cfg.HTTP.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newSessionStore picks the configured session backend. The returned func
// releases any connection it holds.
func newSessionStore(cfg *config.Config, log logger.Logger) (auth.SessionStore, func(), error) {
	if cfg.Session.Backend != "redis" {
		return auth.NewMemorySessionStore(), func() {}, nil
	}
	client, err := redis.New(redis.Options{
		Addr:           cfg.Redis.Addr,
		Password:       cfg.Redis.Password,
		DB:             cfg.Redis.DB,
		ConnectTimeout: cfg.Redis.ConnectTimeout,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	return auth.NewRedisSessionStore(client), func() { _ = client.Close() }, nil
}
