package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/domain"
)

type BotPort interface {
	Create(ctx context.Context, bot *domain.Bot) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Bot, error)
	// GetOrCreateByName returns the bot named bot.Name, inserting bot when none exists
	GetOrCreateByName(ctx context.Context, bot *domain.Bot) (*domain.Bot, error)
}
