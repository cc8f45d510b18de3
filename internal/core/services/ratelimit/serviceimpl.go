package ratelimit

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
)

var _ ISubmissionRateLimiter = (*SubmissionRateLimiter)(nil)

// SubmissionRateLimiter admits at most one submission per source per window.
// All sources without a usable address share the "unknown" key.
type SubmissionRateLimiter struct {
	store  secondary.RateLimitStore
	window time.Duration
	logger primary.Logger
	clock  func() time.Time
}

const UnknownSource = "unknown"

func NewSubmissionRateLimiter(
	store secondary.RateLimitStore,
	cfg *config.SubmissionConfig,
	logger primary.Logger,
) *SubmissionRateLimiter {
	return &SubmissionRateLimiter{
		store:  store,
		window: cfg.RateWindow,
		logger: logger,
		clock:  time.Now,
	}
}

// SetClock replaces the time source
func (l *SubmissionRateLimiter) SetClock(clock func() time.Time) {
	if clock != nil {
		l.clock = clock
	}
}

func (l *SubmissionRateLimiter) Admit(ctx context.Context, sourceKey string, now time.Time) (bool, error) {
	if sourceKey == "" {
		sourceKey = UnknownSource
	}
	ok, err := l.store.Admit(ctx, sourceKey, now, l.window)
	if err != nil {
		l.logger.Error("Failed to check submission rate", "source", sourceKey, "error", err)
		return false, fmt.Errorf("failed to check submission rate: %w", err)
	}
	if !ok {
		l.logger.Debug("Submission throttled", "source", sourceKey)
	}
	return ok, nil
}

func (l *SubmissionRateLimiter) Allow(ctx context.Context, sourceKey string) (bool, error) {
	return l.Admit(ctx, sourceKey, l.clock())
}
