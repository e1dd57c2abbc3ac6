// Package server provides the background components of the daemon.
package server

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/casket-media/casket/internal/library"
	"github.com/casket-media/casket/internal/scanner"
)

// Config for the background runner.
type Config struct {
	ScanInterval time.Duration
}

// Runner periodically rescans libraries flagged for automatic scanning.
type Runner struct {
	store   *library.Store
	scanner *scanner.Scanner
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(store *library.Store, sc *scanner.Scanner, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:   store,
		scanner: sc,
		config:  cfg,
		logger:  logger,
	}
}

// Run starts the background components.
// It blocks until the context is canceled or an error occurs.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(r.config.ScanInterval)
		defer ticker.Stop()

		r.logger.Info("auto-scan started", "interval", r.config.ScanInterval.String())
		for {
			select {
			case <-ctx.Done():
				r.logger.Info("auto-scan stopped")
				return ctx.Err()
			case <-ticker.C:
				r.scanAll()
			}
		}
	})

	return g.Wait()
}

// scanAll runs one pass over every auto-scan library. A failing library is
// logged and skipped; it does not stop the other libraries or the runner.
func (r *Runner) scanAll() {
	libs, err := r.store.ListLibraries()
	if err != nil {
		r.logger.Error("list libraries failed", "error", err)
		return
	}

	for _, lib := range libs {
		if !lib.ScanAutomatically {
			continue
		}
		report, err := r.scanner.Scan(lib)
		if err != nil {
			r.logger.Error("auto-scan failed", "library", lib.Name, "error", err)
			continue
		}
		r.logger.Info("auto-scan completed",
			"library", lib.Name,
			"added", report.Added+report.AddedEpisodes,
			"existing", report.Existing+report.ExistingEpisodes,
		)
	}
}
