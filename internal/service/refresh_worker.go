package service

import (
	"context"
	"log"
	"time"

	"porteo/internal/store"
)

// RefreshConfig holds settings for the snapshot refresh worker.
type RefreshConfig struct {
	PollInterval time.Duration
}

// RefreshWorker periodically reconciles the in-memory snapshots against the
// database, folding in rows written by other instances.
type RefreshWorker struct {
	store *store.Store
	cfg   RefreshConfig
}

// NewRefreshWorker creates a new RefreshWorker.
func NewRefreshWorker(st *store.Store, cfg RefreshConfig) *RefreshWorker {
	return &RefreshWorker{store: st, cfg: cfg}
}

// Start runs the refresh loop until ctx is canceled.
func (w *RefreshWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	log.Printf("refreshWorker: started (poll=%s)", w.cfg.PollInterval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("refreshWorker: shutdown complete")
			return
		case <-ticker.C:
			if err := w.store.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("refreshWorker: refresh error: %v", err)
			}
		}
	}
}
