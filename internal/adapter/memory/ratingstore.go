package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
)

var _ secondary.RatingRepository = &RatingStore{}

type ratingKey struct {
	gameID      uuid.UUID
	fingerprint string
}

type RatingStore struct {
	mu      sync.Mutex
	ratings map[ratingKey]domain.Rating
}

func NewRatingStore() *RatingStore {
	return &RatingStore{ratings: make(map[ratingKey]domain.Rating)}
}

func (s *RatingStore) GetRating(_ context.Context, gameID uuid.UUID, fingerprint string) (*domain.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.ratings[ratingKey{gameID, fingerprint}]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *RatingStore) UpsertRating(_ context.Context, rating *domain.Rating, cutoff time.Time) (*domain.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ratingKey{rating.GameID, rating.ViewerFingerprint}
	stored, ok := s.ratings[key]
	if ok && !stored.CreatedAt.Before(cutoff) {
		return nil, errs.RatingDebounce
	}

	next := *rating
	if ok {
		next.ID = stored.ID
	}
	s.ratings[key] = next
	return &next, nil
}

func (s *RatingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ratings)
}
