package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/domain"
)

type GameRepository interface {
	// Create inserts a new game record. A slug collision yields errs.Duplicate.
	Create(ctx context.Context, game *domain.GameRecord) error

	// Get retrieves a game by ID, nil when absent
	Get(ctx context.Context, id uuid.UUID) (*domain.GameRecord, error)

	// ExistsByStorageLocator reports whether any record references the artifact
	ExistsByStorageLocator(ctx context.Context, locator string) (bool, error)

	// UpdateStatus is reserved for the review process
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.GameStatus) error
}
