package rating

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/domain"
)

// IRatingService records viewer ratings for live games
type IRatingService interface {
	// SubmitRating upserts the viewer's rating for a game. One rating exists
	// per (game, fingerprint); rewrites within the debounce interval are refused.
	SubmitRating(ctx context.Context, gameID uuid.UUID, fingerprint string, value int) (*domain.Rating, error)
}
