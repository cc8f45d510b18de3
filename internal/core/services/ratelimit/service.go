package ratelimit

import (
	"context"
	"time"
)

// ISubmissionRateLimiter throttles anonymous submissions per source
type ISubmissionRateLimiter interface {
	// Admit reports whether sourceKey may submit at now. An admitted call
	// records now as the source's last submission; a rejected call changes
	// nothing.
	Admit(ctx context.Context, sourceKey string, now time.Time) (bool, error)

	// Allow is Admit at the limiter's clock
	Allow(ctx context.Context, sourceKey string) (bool, error)
}
