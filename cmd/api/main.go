package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-log/internal/adapters/auth/jwtverifier"
	"pet-care-log/internal/platform/config"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/platform/metrics"
	"pet-care-log/internal/ports/auth"
	"pet-care-log/internal/router"

	"github.com/spf13/cobra"
)

// @title Pet Care Log API
// @version 1.0
// @description Registro de cuidados de la mascota del hogar.
// @BasePath /
func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "petcare",
		Short: "Household pet care log API",
		// sin subcomando = serve
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), envFile)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "optional .env file (default .env)")

	rootCmd.AddCommand(serveCmd(&envFile))
	rootCmd.AddCommand(migrateCmd(&envFile))
	rootCmd.AddCommand(healthcheckCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *envFile)
		},
	}
}

func migrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the documents table for SQL backends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			defer syncLogger(log)

			if err := migrate(cmd.Context(), cfg.Storage); err != nil {
				log.Error("migration failed", map[string]any{"backend": cfg.Storage.Backend, "err": err})
				return err
			}
			log.Info("migration done", map[string]any{"backend": cfg.Storage.Backend})
			return nil
		},
	}
}

func serve(ctx context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	log := newLogger(cfg)
	defer syncLogger(log)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		log.Error("storage init failed", map[string]any{"backend": cfg.Storage.Backend, "err": err})
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("storage close failed", map[string]any{"err": err})
		}
	}()

	// sin secreto = modo dev (X-Debug-User-ID)
	var verifier auth.AuthVerifier
	if cfg.AuthJWTSecret != "" {
		v, err := jwtverifier.New(jwtverifier.Config{
			Secret: cfg.AuthJWTSecret,
			Issuer: cfg.AuthJWTIssuer,
			Leeway: 30 * time.Second,
		})
		if err != nil {
			return err
		}
		verifier = v
	} else {
		log.Warn("auth disabled: accepting X-Debug-User-ID", nil)
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Store:        store,
		Logger:       log,
		Metrics:      m,
		Location:     loc,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":     srv.Addr,
			"backend":  cfg.Storage.Backend,
			"timezone": loc.String(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error("server error", map[string]any{"err": err})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadConfig(envFile string) (config.Config, error) {
	if envFile != "" {
		return config.Load(envFile)
	}
	return config.Load()
}

func newLogger(cfg config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFmt),
		App:    cfg.AppName,
	})
}

func syncLogger(log logger.Logger) {
	if s, ok := log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
