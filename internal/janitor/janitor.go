// Package janitor reclaims expired idempotency keys in the background.
package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/stockroom-io/erp-go/internal/metrics"
)

// errRetryDelay caps the sleep after a failed cycle.
const errRetryDelay = 60 * time.Second

// Store is the storage capability the janitor needs: one transactional
// sweep that counts, deletes up to batch expired rows skipping rows
// locked by concurrent deleters, and recounts.
type Store interface {
	SweepExpired(ctx context.Context, batch int) (expired, deleted, remaining int64, err error)
}

// Config controls the sweep loop.
type Config struct {
	Enabled  bool
	Interval time.Duration
	Batch    int
}

// Janitor periodically deletes expired idempotency records. Request
// handlers never delete synchronously; this loop is the only deleter.
type Janitor struct {
	store Store
	cfg   Config
	log   *slog.Logger
}

// New creates a Janitor.
func New(store Store, cfg Config, log *slog.Logger) *Janitor {
	return &Janitor{store: store, cfg: cfg, log: log.With("component", "janitor")}
}

// Run executes the sweep loop until ctx is cancelled. When the feature
// flag is off it logs once and returns without touching storage.
//
// Intended to be called as: go j.Run(ctx)
func (j *Janitor) Run(ctx context.Context) {
	if !j.cfg.Enabled {
		j.log.Info("idempotency janitor disabled")
		return
	}
	j.log.Info("idempotency janitor started",
		"interval", j.cfg.Interval, "batch_size", j.cfg.Batch)

	for {
		delay := j.cfg.Interval
		start := time.Now()

		expired, deleted, remaining, err := j.store.SweepExpired(ctx, j.cfg.Batch)
		elapsed := time.Since(start)
		if err != nil {
			if ctx.Err() != nil {
				j.log.Info("idempotency janitor stopping")
				return
			}
			// Transient storage errors never end the loop; retry
			// sooner than a full interval.
			j.log.Error("sweep failed", "error", err)
			metrics.JanitorCycles.WithLabelValues("error").Inc()
			if delay > errRetryDelay {
				delay = errRetryDelay
			}
		} else {
			metrics.JanitorCycles.WithLabelValues("ok").Inc()
			metrics.JanitorCycleDuration.Observe(elapsed.Seconds())
			metrics.JanitorDeletedKeys.Add(float64(deleted))
			metrics.JanitorExpiredRemaining.Set(float64(remaining))
			if expired > 0 {
				j.log.Info("swept expired idempotency keys",
					"expired", expired, "deleted", deleted,
					"remaining", remaining, "elapsed", elapsed)
			}
		}

		select {
		case <-ctx.Done():
			j.log.Info("idempotency janitor stopping")
			return
		case <-time.After(delay):
		}
	}
}
