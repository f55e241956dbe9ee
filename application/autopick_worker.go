package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// AutopickWorker periodically sweeps incomplete weeks past their deadline
// and fills picks for users who never made one
type AutopickWorker struct {
	pool     *PoolService
	interval time.Duration
}

// NewAutopickWorker creates a new autopick worker
func NewAutopickWorker(pool *PoolService, interval time.Duration) *AutopickWorker {
	return &AutopickWorker{pool: pool, interval: interval}
}

// Start begins the periodic sweep and returns a stop function
func (w *AutopickWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.WithField("interval", w.interval).Info("Autopick worker started")
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Autopick worker shutting down (context cancelled)")
				return
			case <-stopChan:
				log.Info("Autopick worker shutting down (stop requested)")
				return
			case <-ticker.C:
				w.sweep(ctx)
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// sweep runs one autopick pass over every due week. Weeks are independent,
// so the passes run concurrently; the per-week lock inside the service keeps
// each week serialized.
func (w *AutopickWorker) sweep(ctx context.Context) {
	weeks, err := w.pool.IncompleteWeeksPastDeadline(ctx)
	if err != nil {
		log.WithError(err).Error("Autopick sweep failed to list due weeks")
		return
	}
	if len(weeks) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, week := range weeks {
		weekID := week.ID
		name := week.DisplayName()
		g.Go(func() error {
			report, err := w.pool.ProcessAutopicks(gctx, weekID)
			if err != nil {
				log.WithError(err).WithField("week", name).Error("Autopick pass failed")
				return nil // One failing week should not stop the others
			}
			if report.Processed && (len(report.Made) > 0 || len(report.Failed) > 0) {
				log.WithFields(log.Fields{
					"week":   name,
					"made":   len(report.Made),
					"failed": len(report.Failed),
				}).Info("Autopick sweep filled picks")
			}
			return nil
		})
	}
	_ = g.Wait()
}
