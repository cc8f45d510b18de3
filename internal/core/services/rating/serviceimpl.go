package rating

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
	"gitlab.com/clawgames.net/internal/telemetry"
)

var _ IRatingService = (*RatingGate)(nil)

const (
	MsgInvalidRating      = "Rating must be 1-5"
	MsgInvalidFingerprint = "Invalid player fingerprint"
)

// RatingGate validates and records ratings
type RatingGate struct {
	ratingRepo secondary.RatingRepository
	gameRepo   secondary.GameRepository
	logger     primary.Logger
	metrics    *telemetry.Metrics
	debounce   time.Duration
	clock      func() time.Time
}

func NewRatingGate(
	ratingRepo secondary.RatingRepository,
	gameRepo secondary.GameRepository,
	cfg *config.SubmissionConfig,
	logger primary.Logger,
	metrics *telemetry.Metrics,
) *RatingGate {
	return &RatingGate{
		ratingRepo: ratingRepo,
		gameRepo:   gameRepo,
		logger:     logger,
		metrics:    metrics,
		debounce:   cfg.RatingDebounce,
		clock:      time.Now,
	}
}

// SetClock replaces the time source
func (g *RatingGate) SetClock(clock func() time.Time) {
	if clock != nil {
		g.clock = clock
	}
}

// SubmitRating checks in order: value range, fingerprint length, debounce,
// game liveness. The debounce is re-checked atomically by the store.
func (g *RatingGate) SubmitRating(ctx context.Context, gameID uuid.UUID, fingerprint string, value int) (*domain.Rating, error) {
	if value < domain.MinRatingValue || value > domain.MaxRatingValue {
		g.metrics.RecordRating(ctx, telemetry.OutcomeInvalid)
		return nil, errs.NewValidationError(MsgInvalidRating)
	}
	if n := utf8.RuneCountInString(fingerprint); n < domain.MinFingerprintLength || n > domain.MaxFingerprintLength {
		g.metrics.RecordRating(ctx, telemetry.OutcomeInvalid)
		return nil, errs.NewValidationError(MsgInvalidFingerprint)
	}

	now := g.clock()
	cutoff := now.Add(-g.debounce)

	existing, err := g.ratingRepo.GetRating(ctx, gameID, fingerprint)
	if err != nil {
		g.metrics.RecordRating(ctx, telemetry.OutcomeFailed)
		return nil, fmt.Errorf("failed to load rating: %w: %w", errs.Persistence, err)
	}
	if existing != nil && !existing.CreatedAt.Before(cutoff) {
		g.metrics.RecordRating(ctx, telemetry.OutcomeDebounced)
		return nil, errs.RatingDebounce
	}

	game, err := g.gameRepo.Get(ctx, gameID)
	if err != nil {
		g.metrics.RecordRating(ctx, telemetry.OutcomeFailed)
		return nil, fmt.Errorf("failed to load game: %w: %w", errs.Persistence, err)
	}
	if game == nil || game.Status != domain.GameStatusLive {
		g.metrics.RecordRating(ctx, telemetry.OutcomeNotFound)
		return nil, fmt.Errorf("game %s: %w", gameID, errs.NotFound)
	}

	stored, err := g.ratingRepo.UpsertRating(ctx, &domain.Rating{
		ID:                uuid.New(),
		GameID:            gameID,
		ViewerFingerprint: fingerprint,
		Value:             value,
		CreatedAt:         now,
	}, cutoff)
	if err != nil {
		if errors.Is(err, errs.RatingDebounce) {
			g.metrics.RecordRating(ctx, telemetry.OutcomeDebounced)
			return nil, err
		}
		g.logger.Error("Failed to save rating", "gameId", gameID, "error", err)
		g.metrics.RecordRating(ctx, telemetry.OutcomeFailed)
		return nil, fmt.Errorf("failed to save rating: %w: %w", errs.Persistence, err)
	}

	g.metrics.RecordRating(ctx, telemetry.OutcomeRecorded)
	return stored, nil
}
