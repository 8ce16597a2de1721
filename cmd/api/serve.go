package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cat-registry/internal/adapters/auth/cookieauth"
	"cat-registry/internal/adapters/session/cache"
	"cat-registry/internal/adapters/storage/postgres"
	"cat-registry/internal/config"
	"cat-registry/internal/platform/logger"
	"cat-registry/internal/platform/metrics"
	"cat-registry/internal/router"
)

var devAuth bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&devAuth, "dev-auth", false, "Acepta X-Debug-Owner-ID en vez de sesiones (solo desarrollo)")
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer syncLogger(log)

	var db *sql.DB
	if cfg.DB.DSN != "" {
		db, err = postgres.Open(cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("db.dsn empty, using in-memory storage", nil)
	}

	m, err := metrics.New()
	if err != nil {
		return err
	}

	sessions := cache.New(cfg.Session.TTL, 0)
	cookies := cookieauth.NewCookies(cookieauth.CookieOptions{
		Name:    cfg.Session.CookieName,
		HashKey: []byte(cfg.Session.HashKey),
		MaxAge:  cfg.Session.TTL,
		Secure:  cfg.Session.Secure,
	})

	h, err := router.NewRouter(ctx, router.Options{
		Logger:        log,
		Metrics:       m,
		DB:            db,
		Sessions:      sessions,
		Cookies:       cookies,
		DevAuth:       devAuth,
		SessionTTL:    cfg.Session.TTL,
		PedigreeDepth: &cfg.Pedigree.MaxDepth,
		ExportDepth:   &cfg.Pedigree.ExportDepth,
		AdminEmail:    cfg.Admin.Email,
		AdminPassword: cfg.Admin.Password,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "dev_auth": devAuth})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newLogger(cfg config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
}

func syncLogger(log logger.Logger) {
	if s, ok := log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
