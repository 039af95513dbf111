package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	hrms "github.com/Kimutai-cloud/HRMS-sub002"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/config"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		envFile string
		// CLI flags override env vars
		dataDir  string
		dbURL    string
		logLevel string
		cacheTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. CLI flags

Environment variables:
  DATA_DIR               Data directory (default: ~/.hrms)
  DB_URL                 Database URL (default: sqlite:///{data_dir}/hrms.db)
  LOG_LEVEL              Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT             Log format: pretty, json (default: pretty)
  API_KEYS               Comma-separated list of valid API keys
  CACHE_TTL_SECONDS      Query cache freshness window (default: 300)
  CACHE_SWEEP_SECONDS    Expired entry sweep interval (default: 60)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, envFile, dataDir, dbURL, logLevel, cacheTTL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides DATA_DIR env var)")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "Database URL (overrides DB_URL env var)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL env var)")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 0, "Query cache TTL (overrides CACHE_TTL_SECONDS env var)")

	return cmd
}

// loadConfig loads configuration from .env file and environment variables,
// then applies CLI flag overrides.
func loadConfig(envFile, dataDir, dbURL, logLevel string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}

	if dataDir != "" {
		cfg = cfg.Apply(config.WithDataDir(dataDir))
	}
	if dbURL != "" {
		cfg = cfg.Apply(config.WithDBURL(dbURL))
	}
	if logLevel != "" {
		cfg = cfg.Apply(config.WithLogLevel(logLevel))
	}

	return cfg, nil
}

func runServe(addr, envFile, dataDir, dbURL, logLevel string, cacheTTL time.Duration) error {
	cfg, err := loadConfig(envFile, dataDir, dbURL, logLevel)
	if err != nil {
		return err
	}
	if cacheTTL > 0 {
		cfg = cfg.Apply(config.WithCacheConfig(cfg.Cache().WithTTL(cacheTTL)))
	}

	logger := log.NewLogger(cfg)
	slogger := logger.Slog()

	slogger.Info("starting hrms",
		slog.String("version", version),
		slog.String("addr", addr),
	)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "configuration", cfg.LogAttrs()...)

	client, err := hrms.New(
		hrms.WithConfig(cfg),
		hrms.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create hrms client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close hrms client", slog.Any("error", err))
		}
	}()

	apiServer := api.NewAPIServer(client, cfg.APIKeys())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slogger.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			slogger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	if err := apiServer.ListenAndServe(addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
