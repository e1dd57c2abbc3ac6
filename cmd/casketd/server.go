package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "modernc.org/sqlite"

	v1 "github.com/casket-media/casket/internal/api/v1"
	"github.com/casket-media/casket/internal/config"
	"github.com/casket-media/casket/internal/library"
	"github.com/casket-media/casket/internal/metrics"
	"github.com/casket-media/casket/internal/migrations"
	"github.com/casket-media/casket/internal/scanner"
	"github.com/casket-media/casket/internal/server"
	"github.com/casket-media/casket/internal/tmdb"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database with a bounded connection pool
	db, err := sql.Open("sqlite", cfg.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(cfg.Database.MaxConnections)

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Stores and services ===
	store := library.NewStore(db)
	scan := scanner.New(store, logger.With("component", "scanner"))

	var catalog *tmdb.Client
	if cfg.Catalog.APIKey != "" {
		catalog = tmdb.NewClient(cfg.Catalog.APIKey, tmdb.WithCacheTTL(cfg.Catalog.CacheTTL.Duration))
	}

	// === Background jobs ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Scanner.AutoScan {
		runner := server.NewRunner(store, scan, server.Config{
			ScanInterval: cfg.Scanner.ScanInterval.Duration,
		}, logger.With("component", "runner"))
		go func() {
			if err := runner.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("runner error", "error", err)
			}
		}()
	}

	// === HTTP setup ===
	mux := http.NewServeMux()

	v1.Version = version
	apiV1 := v1.New(store, scan, logger.With("component", "api"))
	if catalog != nil {
		apiV1.SetCatalog(catalog)
	}
	apiV1.RegisterRoutes(mux)

	mux.Handle("GET /metrics", promhttp.Handler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"catalog", catalog != nil,
		"auto_scan", cfg.Scanner.AutoScan,
		"log_level", cfg.Server.LogLevel,
	)

	handler := metrics.Middleware(logRequests(mux, logger))
	srv := &http.Server{Addr: addr, Handler: handler}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())

	// Stop background jobs
	cancel()

	// Graceful HTTP shutdown with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
