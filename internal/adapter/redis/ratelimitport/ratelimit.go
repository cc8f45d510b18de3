package ratelimitport

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
)

const (
	rateLimitKeyPrefix = "ratelimit:submission:"
)

var _ secondary.RateLimitStore = &RateLimitRepository{}

// RateLimitRepository implements secondary.RateLimitStore with Redis. Elapsed
// time is measured with the caller's clock; the key TTL is the window, so idle
// sources fall out without compaction.
type RateLimitRepository struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewRateLimitRepository creates a new Redis rate-limit store
func NewRateLimitRepository(redisClient *redis.Client, logger primary.Logger) *RateLimitRepository {
	return &RateLimitRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

// admitScript compares the caller's clock against the stored submission time
// and records the new time in one step. The TTL only evicts idle sources.
var admitScript = redis.NewScript(`
local last = redis.call('GET', KEYS[1])
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
if last and now - tonumber(last) < window then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', window)
return 1
`)

// Admit records now for the source unless the stored submission time is less
// than window before now. The script runs atomically, so two replicas cannot
// both admit the same source within one window.
func (r *RateLimitRepository) Admit(ctx context.Context, key string, now time.Time, window time.Duration) (bool, error) {
	sourceKey := fmt.Sprintf("%s%s", rateLimitKeyPrefix, key)
	windowMs := window.Milliseconds()
	if windowMs < 1 {
		windowMs = 1
	}
	admitted, err := admitScript.Run(ctx, r.redisClient, []string{sourceKey}, now.UnixMilli(), windowMs).Int64()
	if err != nil {
		r.logger.Error("Failed to record submission time", "error", err)
		return false, fmt.Errorf("failed to record submission time: %w", err)
	}
	return admitted == 1, nil
}

// GetEntry retrieves the last admitted submission for a source, nil when the
// window has elapsed.
func (r *RateLimitRepository) GetEntry(ctx context.Context, key string) (*domain.RateLimitEntry, error) {
	sourceKey := fmt.Sprintf("%s%s", rateLimitKeyPrefix, key)
	ms, err := r.redisClient.Get(ctx, sourceKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to get submission time", "error", err)
		return nil, fmt.Errorf("failed to get submission time: %w", err)
	}

	return &domain.RateLimitEntry{
		SourceKey:          key,
		LastSubmissionTime: time.UnixMilli(ms),
	}, nil
}
