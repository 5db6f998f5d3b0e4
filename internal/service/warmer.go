package service

import (
	"context"
	"sync"
	"time"

	"cosmetics-store-api/internal/logger"
)

const warmTimeout = 30 * time.Second

// Warmable is a cache that can be refreshed ahead of reads.
type Warmable interface {
	Warm(ctx context.Context) error
}

// CatalogWarmer periodically refreshes expired catalog documents so readers
// rarely pay for an upstream fetch.
type CatalogWarmer struct {
	target   Warmable
	interval time.Duration

	ticker    *time.Ticker
	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once
	isRunning bool
	mu        sync.Mutex
}

// NewCatalogWarmer creates a warmer. An interval <= 0 disables Start.
func NewCatalogWarmer(target Warmable, interval time.Duration) *CatalogWarmer {
	return &CatalogWarmer{
		target:   target,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start warms once immediately, then on every tick.
func (w *CatalogWarmer) Start() {
	w.mu.Lock()
	if w.isRunning || w.interval <= 0 {
		w.mu.Unlock()
		return
	}
	w.isRunning = true
	w.ticker = time.NewTicker(w.interval)
	w.mu.Unlock()

	logger.Component("CatalogWarmer").WithField("interval", w.interval).Info("Started")

	go w.run()
}

func (w *CatalogWarmer) run() {
	defer close(w.doneCh)

	_ = w.RunNow()
	for {
		select {
		case <-w.ticker.C:
			_ = w.RunNow()
		case <-w.stopCh:
			logger.Component("CatalogWarmer").Info("Stopped")
			return
		}
	}
}

// Stop stops the warmer and waits for an in-progress run to finish.
func (w *CatalogWarmer) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		running := w.isRunning
		if w.ticker != nil {
			w.ticker.Stop()
		}
		close(w.stopCh)
		w.isRunning = false
		w.mu.Unlock()

		if running {
			<-w.doneCh
		}
	})
}

// RunNow warms the target immediately.
func (w *CatalogWarmer) RunNow() error {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	if err := w.target.Warm(ctx); err != nil {
		logger.Component("CatalogWarmer").WithError(err).Warn("Warm run failed")
		return err
	}
	return nil
}
