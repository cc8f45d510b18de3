package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
)

var _ secondary.GameRepository = &GameStore{}

// GameStore enforces the same uniqueness as the relational schema: slug and
// storage path are unique.
type GameStore struct {
	mu    sync.RWMutex
	games map[uuid.UUID]domain.GameRecord
	slugs map[string]uuid.UUID
	paths map[string]uuid.UUID

	// FailCreate, when set, is returned by Create
	FailCreate error
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[uuid.UUID]domain.GameRecord),
		slugs: make(map[string]uuid.UUID),
		paths: make(map[string]uuid.UUID),
	}
}

func (s *GameStore) Create(_ context.Context, game *domain.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailCreate != nil {
		return s.FailCreate
	}
	if _, ok := s.games[game.ID]; ok {
		return fmt.Errorf("game %s: %w", game.ID, errs.Duplicate)
	}
	if _, ok := s.slugs[game.Slug]; ok {
		return fmt.Errorf("game slug %s: %w", game.Slug, errs.Duplicate)
	}
	if _, ok := s.paths[game.StorageLocator]; ok {
		return fmt.Errorf("game path %s: %w", game.StorageLocator, errs.Duplicate)
	}
	s.games[game.ID] = *game
	s.slugs[game.Slug] = game.ID
	s.paths[game.StorageLocator] = game.ID
	return nil
}

func (s *GameStore) Get(_ context.Context, id uuid.UUID) (*domain.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, nil
	}
	return &game, nil
}

func (s *GameStore) ExistsByStorageLocator(_ context.Context, locator string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.paths[locator]
	return ok, nil
}

func (s *GameStore) UpdateStatus(_ context.Context, id uuid.UUID, status domain.GameStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[id]
	if !ok {
		return fmt.Errorf("game %s: %w", id, errs.NotFound)
	}
	game.Status = status
	s.games[id] = game
	return nil
}

// All returns every stored record
func (s *GameStore) All() []domain.GameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.GameRecord, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	return out
}
