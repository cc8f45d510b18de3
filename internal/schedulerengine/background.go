package schedulerengine

import (
	"context"
	"sync"
	"time"

	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/telemetry"
)

const reconcileWorkers = 2

// ReconcileEngine removes stored artifacts that no game record references.
// These are left behind when a record write fails and the compensating delete
// fails too. Artifacts younger than the grace period are skipped so an
// in-flight submission is never swept between its two writes.
type ReconcileEngine struct {
	cfg       *config.SubmissionConfig
	artifacts secondary.ArtifactStore
	gameRepo  secondary.GameRepository
	logger    primary.Logger
	metrics   *telemetry.Metrics
	prefix    string
	clock     func() time.Time
	wg        sync.WaitGroup
}

func NewReconcileEngine(
	cfg *config.SubmissionConfig,
	artifacts secondary.ArtifactStore,
	gameRepo secondary.GameRepository,
	logger primary.Logger,
	metrics *telemetry.Metrics,
	prefix string,
) *ReconcileEngine {
	return &ReconcileEngine{
		cfg:       cfg,
		artifacts: artifacts,
		gameRepo:  gameRepo,
		logger:    logger,
		metrics:   metrics,
		prefix:    prefix,
		clock:     time.Now,
	}
}

// SetClock replaces the time source
func (s *ReconcileEngine) SetClock(clock func() time.Time) {
	if clock != nil {
		s.clock = clock
	}
}

// Start runs a sweep every ReconcileInterval until ctx is done
func (s *ReconcileEngine) Start(ctx context.Context) {
	if s.cfg.ReconcileInterval <= 0 {
		s.logger.Info("Artifact reconciliation disabled")
		return
	}
	ticker := time.NewTicker(s.cfg.ReconcileInterval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.ReconcileOrphans(ctx); err != nil {
					s.logger.Error("Failed to reconcile artifacts", "error", err)
				}
			}
		}
	}()
}

// Wait blocks until the sweep loop has exited
func (s *ReconcileEngine) Wait() {
	s.wg.Wait()
}

// ReconcileOrphans deletes unreferenced artifacts older than the grace period
// and returns how many were removed.
func (s *ReconcileEngine) ReconcileOrphans(ctx context.Context) (int, error) {
	infos, err := s.artifacts.List(ctx, s.prefix)
	if err != nil {
		return 0, err
	}

	cutoff := s.clock().Add(-s.cfg.ReconcileGrace)
	keyCh := make(chan string, len(infos))
	for _, info := range infos {
		if info.ModTime.Before(cutoff) {
			keyCh <- info.Key
		}
	}
	close(keyCh)

	var (
		mu      sync.Mutex
		removed int
		wg      sync.WaitGroup
	)
	wg.Add(reconcileWorkers)
	for i := 0; i < reconcileWorkers; i++ {
		go func() {
			defer wg.Done()
			for key := range keyCh {
				referenced, err := s.gameRepo.ExistsByStorageLocator(ctx, key)
				if err != nil {
					s.logger.Error("Failed to look up artifact owner", "key", key, "error", err)
					continue
				}
				if referenced {
					continue
				}
				if err := s.artifacts.Delete(ctx, key); err != nil {
					s.logger.Error("Failed to delete orphaned artifact", "key", key, "error", err)
					continue
				}
				s.logger.Info("Orphaned artifact removed", "key", key)
				mu.Lock()
				removed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.metrics.RecordOrphansRemoved(ctx, removed)
	return removed, nil
}
