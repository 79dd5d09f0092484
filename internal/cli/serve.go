package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/config"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/api"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/database"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/services"
	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the HTTP API server.

Configuration comes from the environment and an optional .env file. The
server connects to the database (postgres, or sqlite with DB_DRIVER=sqlite),
migrates the schema, connects redis when REDIS_HOST is set and registers the
text generator and object storage drivers.

The server stops gracefully on Ctrl+C or SIGTERM.

Examples:
  promptvault serve                  # listen on SERVER_ADDR (default :8080)
  promptvault serve --addr :3000     # listen on a custom address`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if addr != "" {
				cfg.ServerAddr = addr
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: SERVER_ADDR)")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := openDatabase(cfg); err != nil {
				return err
			}
			defer logger.Sync()
			defer database.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")
			return nil
		},
	}
}

func initLogger(cfg *config.Config) error {
	return logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
}

// openDatabase initialises the logger, connects the database and migrates
// the schema.
func openDatabase(cfg *config.Config) error {
	if err := initLogger(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close()
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// registerProviders installs the text generator and object storage. A
// provider without credentials is left unset and its endpoint answers 500.
func registerProviders(cfg *config.Config) error {
	log := logger.Named("serve")

	gen, err := services.NewTextGenerator(cfg)
	switch {
	case errors.Is(err, services.ErrGeneratorNotConfigured):
		log.Warn("text generation disabled, no API key configured", zap.String("provider", cfg.LLMProvider))
	case err != nil:
		return err
	default:
		services.SetTextGenerator(gen, cfg.LLMTimeout)
	}

	store, err := services.NewObjectStorage(cfg)
	switch {
	case errors.Is(err, services.ErrStorageNotConfigured):
		log.Warn("output uploads disabled, storage not configured", zap.String("driver", cfg.StorageDriver))
	case err != nil:
		return err
	default:
		services.SetObjectStorage(store)
	}
	return nil
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if err := openDatabase(cfg); err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	if err := database.ConnectRedis(cfg); err != nil {
		return err
	}

	services.Configure(cfg)
	if err := registerProviders(cfg); err != nil {
		return err
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           api.NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log := logger.Named("serve")

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	log.Info("server stopped")
	return nil
}
