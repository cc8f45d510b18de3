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

var _ secondary.BotPort = &BotStore{}

type BotStore struct {
	mu     sync.Mutex
	bots   map[uuid.UUID]domain.Bot
	byName map[string]uuid.UUID
}

func NewBotStore() *BotStore {
	return &BotStore{
		bots:   make(map[uuid.UUID]domain.Bot),
		byName: make(map[string]uuid.UUID),
	}
}

func (s *BotStore) Create(_ context.Context, bot *domain.Bot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[bot.Name]; ok {
		return fmt.Errorf("bot %s: %w", bot.Name, errs.Duplicate)
	}
	s.bots[bot.ID] = *bot
	s.byName[bot.Name] = bot.ID
	return nil
}

func (s *BotStore) Get(_ context.Context, id uuid.UUID) (*domain.Bot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bot, ok := s.bots[id]
	if !ok {
		return nil, nil
	}
	return &bot, nil
}

func (s *BotStore) GetOrCreateByName(_ context.Context, bot *domain.Bot) (*domain.Bot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byName[bot.Name]; ok {
		existing := s.bots[id]
		return &existing, nil
	}
	s.bots[bot.ID] = *bot
	s.byName[bot.Name] = bot.ID
	created := *bot
	return &created, nil
}

func (s *BotStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bots)
}
