package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	_ "github.com/lib/pq"

	"github.com/hillandale/walksync/internal/api"
	"github.com/hillandale/walksync/internal/auth"
	"github.com/hillandale/walksync/internal/config"
	"github.com/hillandale/walksync/internal/database"
	"github.com/hillandale/walksync/internal/export"
	"github.com/hillandale/walksync/internal/logging"
	"github.com/hillandale/walksync/internal/metrics"
	"github.com/hillandale/walksync/internal/reconcile"
	"github.com/hillandale/walksync/internal/remote"
	"github.com/hillandale/walksync/internal/scheduler"
	"github.com/hillandale/walksync/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting walksync")

	// Connect to database. Without DATABASE_URL the service falls back to
	// an in-memory walk store, which is enough for dry runs.
	var walkRepo reconcile.WalkRepository
	var auditRepo *database.UploadAuditRepository
	if cfg.Database.URL != "" {
		logger.Info("connecting to database")
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		logger.Info("database connected")

		if err := database.EnsureSchema(db, logger); err != nil {
			logger.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}

		walkRepo = database.NewPostgresWalkRepository(db)
		auditRepo = database.NewUploadAuditRepository(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory walk store")
		walkRepo = reconcile.NewMemoryWalkRepository()
	}

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	// Reconciliation engine
	client := remote.NewHTTPClient(cfg.Remote, logger)
	reconciler := reconcile.NewReconciler(walkRepo, logger, reconcile.Config{DryRun: cfg.Engine.DryRun})
	evaluator := reconcile.NewEvaluator(reconcile.EvaluatorConfig{CompareGridRefs: cfg.Engine.CompareGridRefs})
	service := reconcile.NewService(client, walkRepo, reconciler, evaluator, collector, logger)

	// Export pipeline
	builder := export.NewBuilder(
		export.RowConfig{DefaultAverageSpeedMph: cfg.Engine.DefaultAverageSpeedMph},
		export.HostRewrite{PublicHost: cfg.Remote.PublicHost, ManagementHost: cfg.Remote.ManagementHost},
	)
	submitter := remote.NewHTTPSubmitter(cfg.Remote, logger)

	// Setup HTTP routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Service info endpoint
	mux.HandleFunc("/api/info", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"walksync","status":"ready","version":"0.1.0"}`))
	})

	mux.Handle("/metrics", collector.Handler())

	// Load auth configuration
	authConfig := auth.LoadConfigFromEnv()
	logger.Info("auth configured", "jwt_secret_set", authConfig.JWTSecret != "change-this-secret")

	logger.Info("setting up REST API")
	api.SetupRoutes(mux, walkRepo, service, builder, submitter, auditRepo, authConfig, logger)

	// Start periodic reconciliation
	reconcileScheduler := scheduler.NewReconcileScheduler(service, cfg.Engine.ReconcileInterval, logger)
	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	go reconcileScheduler.Start(schedulerCtx)

	srv := server.New(cfg.Server, logger, collector.InstrumentHandler(mux))

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("walksync started successfully")
	logger.Info("API available", "url", fmt.Sprintf("http://localhost:%s", cfg.Server.Port))

	waitForSignal(logger)

	logger.Info("shutting down")
	cancelScheduler()
	reconcileScheduler.Stop()
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func waitForSignal(logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Info("received signal", "signal", sig.String())
	signal.Stop(c)
	close(c)
}
