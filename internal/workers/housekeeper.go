// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/uni-news-store/internal/config"
	"github.com/MKhiriev/uni-news-store/internal/logger"
	"github.com/MKhiriev/uni-news-store/internal/store"
)

// Report describes the outcome of one housekeeping pass.
type Report struct {
	store.PurgeResult
	PrunedAutoSyncMarks int
}

// Housekeeper periodically removes soft-deleted channels and groups whose
// deletion the user has already seen, and forgets stale auto-sync marks.
type Housekeeper struct {
	syncState store.SyncStateRepository
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHousekeeper creates an idle Housekeeper. Non-positive durations in cfg
// fall back to the config defaults.
func NewHousekeeper(syncState store.SyncStateRepository, cfg config.Workers, log *logger.Logger) *Housekeeper {
	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = config.DefaultCleanupInterval
	}
	retention := cfg.AutoSyncRetention
	if retention <= 0 {
		retention = config.DefaultAutoSyncRetention
	}

	return &Housekeeper{
		syncState: syncState,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		logger:    log,
	}
}

// RunOnce performs a single housekeeping pass. Auto-sync marks are only
// pruned when the purge succeeded.
func (h *Housekeeper) RunOnce(ctx context.Context) (Report, error) {
	log := logger.FromContextOr(ctx, h.logger)

	purged, err := h.syncState.PurgeNoticedDeletions(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("purge noticed deletions: %w", err)
	}

	cutoff := h.now().Add(-h.retention)
	pruned, err := h.syncState.PruneAutoSyncMarks(ctx, cutoff)
	if err != nil {
		return Report{PurgeResult: purged}, fmt.Errorf("prune auto sync marks: %w", err)
	}

	report := Report{PurgeResult: purged, PrunedAutoSyncMarks: pruned}
	log.Info().
		Str("func", "Housekeeper.RunOnce").
		Int("channels", report.Channels).
		Int("groups", report.Groups).
		Int("auto_sync_marks", report.PrunedAutoSyncMarks).
		Time("cutoff", cutoff).
		Msg("housekeeping pass finished")

	return report, nil
}

// Start implements Worker. A running pass loop is stopped first.
func (h *Housekeeper) Start(ctx context.Context) {
	h.Stop()

	h.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.wg.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.wg.Done()
		t := time.NewTicker(h.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := h.RunOnce(jobCtx); err != nil {
					logger.FromContextOr(jobCtx, h.logger).Err(err).
						Str("func", "Housekeeper.Start").
						Msg("housekeeping pass failed")
				}
			}
		}
	}()
}

// Stop implements Worker.
func (h *Housekeeper) Stop() {
	h.mu.Lock()
	cancel := h.cancel
	h.cancel = nil
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	h.wg.Wait()
}
