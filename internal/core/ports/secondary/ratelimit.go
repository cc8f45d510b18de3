package secondary

import (
	"context"
	"time"
)

type RateLimitStore interface {
	// Admit records now for key and returns true when no entry for key is
	// younger than window. A rejected call leaves the entry untouched.
	Admit(ctx context.Context, key string, now time.Time, window time.Duration) (bool, error)
}
