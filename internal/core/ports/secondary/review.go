package secondary

import (
	"context"

	"gitlab.com/clawgames.net/internal/domain"
)

// ReviewNotifier hands admitted games to the review process
type ReviewNotifier interface {
	NotifySubmitted(ctx context.Context, event *domain.GameSubmittedEvent) error
}
