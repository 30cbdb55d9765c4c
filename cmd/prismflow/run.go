package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/prismflow/gateway/pkg/config"
	"github.com/prismflow/gateway/pkg/processing/costs"
	"github.com/prismflow/gateway/pkg/processing/tokens"
	"github.com/prismflow/gateway/pkg/proxy/handlers"
	"github.com/prismflow/gateway/pkg/proxy/types"
	"github.com/prismflow/gateway/pkg/server"
	"github.com/prismflow/gateway/pkg/telemetry/health"
	"github.com/prismflow/gateway/pkg/telemetry/metrics"
	"github.com/prismflow/gateway/pkg/upstream"
	"github.com/prismflow/gateway/pkg/vectorstore"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the PrismFlow gateway server",
	Long: `Start the PrismFlow gateway server with the specified configuration.

The server listens on the configured address and forwards chat requests
to the upstream provider after sanitization and injection screening.

Examples:
  # Start with defaults
  prismflow run

  # Start with custom config
  prismflow run --config /etc/prismflow/config.yaml

  # Override listen address
  prismflow run --listen 0.0.0.0:8080

  # Validate config without starting the server
  prismflow run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	setupLogging(cfg.Telemetry.Logging)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	if cfg.Upstream.APIKey == "" {
		slog.Warn("no upstream API key configured; requests will fail until OPENAI_API_KEY is set")
	}

	// Metrics
	collector := metrics.NewCollector(metrics.Config{
		Enabled:   cfg.Telemetry.Metrics.Enabled,
		Namespace: cfg.Telemetry.Metrics.Namespace,
		Subsystem: cfg.Telemetry.Metrics.Subsystem,
	}, nil)

	// Upstream client
	client := upstream.NewClient(upstream.Config{
		BaseURL:             cfg.Upstream.BaseURL,
		APIKey:              cfg.Upstream.APIKey,
		Timeout:             cfg.Upstream.Timeout,
		MaxIdleConns:        cfg.Upstream.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Upstream.MaxIdleConnsPerHost,
		OnMalformedLine: func(line string) {
			collector.RecordMalformedStreamLine()
		},
	})

	// Accounting
	estimator := costs.NewEstimator(costs.DefaultPricingTable())
	tracker := costs.NewTracker()
	tokenEstimator := tokens.NewEstimator(types.DefaultModel)

	// Vector store
	store, err := newVectorStore(cfg.VectorStore)
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer store.Close()
	slog.Info("vector store ready", "backend", cfg.VectorStore.Backend)

	// Health checks
	checker := health.New(0)
	checker.RegisterCheck("upstream", func(ctx context.Context) error {
		if cfg.Upstream.APIKey == "" {
			return errors.New("upstream API key not configured")
		}
		return nil
	})
	if sqlite, ok := store.(*vectorstore.SQLiteStore); ok {
		checker.RegisterCheck("vector_store", sqlite.Ping)
	}

	// Hourly usage rollup. The tracker is in-memory only; the rollup log
	// line is the persistent record.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		summary := tracker.Rollup()
		slog.Info("usage rollup",
			"since", summary.Since,
			"requests", summary.Requests,
			"tokens_in", summary.TokensIn,
			"tokens_out", summary.TokensOut,
			"cost_usd", summary.CostUSD,
			"models", summary.Models,
		)
	}); err != nil {
		return fmt.Errorf("failed to schedule usage rollup: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	chat := handlers.NewChatHandler(client, estimator, tracker, tokenEstimator, collector)
	srv := server.NewServer(cfg, server.Deps{
		Chat:    chat,
		Stream:  &handlers.StreamHandler{Chat: chat},
		Health:  checker,
		Metrics: collector,
		Build:   server.BuildInfo{Version: Version, Commit: GitCommit, BuildTime: BuildDate},
	})

	slog.Info("prismflow starting",
		"version", Version,
		"address", cfg.Server.ListenAddress,
		"upstream", cfg.Upstream.BaseURL,
	)

	// Start blocks until a shutdown signal or listener failure.
	return srv.Start(cmd.Context())
}

func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func newVectorStore(cfg config.VectorStoreConfig) (vectorstore.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return vectorstore.NewSQLiteStore(cfg.Path)
	default:
		return vectorstore.NewMemoryStore(), nil
	}
}
