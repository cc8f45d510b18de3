package secondary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/domain"
)

type RatingRepository interface {
	// GetRating retrieves the current rating for a (game, viewer) pair, nil when absent
	GetRating(ctx context.Context, gameID uuid.UUID, fingerprint string) (*domain.Rating, error)

	// UpsertRating writes rating keyed by (GameID, ViewerFingerprint) unless the
	// stored rating was written at or after cutoff, in which case it returns
	// errs.RatingDebounce and leaves the stored value unchanged. The check and
	// the write are a single atomic step.
	UpsertRating(ctx context.Context, rating *domain.Rating, cutoff time.Time) (*domain.Rating, error)
}
