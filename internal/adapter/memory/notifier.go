package memory

import (
	"context"
	"sync"

	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
)

var _ secondary.ReviewNotifier = &ReviewRecorder{}

// ReviewRecorder keeps submitted events in memory. It stands in for the
// Kafka publisher when no brokers are configured.
type ReviewRecorder struct {
	mu     sync.Mutex
	events []domain.GameSubmittedEvent
}

func NewReviewRecorder() *ReviewRecorder {
	return &ReviewRecorder{}
}

func (r *ReviewRecorder) NotifySubmitted(_ context.Context, event *domain.GameSubmittedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *ReviewRecorder) Events() []domain.GameSubmittedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.GameSubmittedEvent(nil), r.events...)
}
