package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
)

var _ IAuthService = &jwtAuthService{}

// jwtAuthService accepts HS256 bearer tokens whose subject is a bot ID
type jwtAuthService struct {
	botPort     secondary.BotPort
	jwtProvider primary.JWTService
	logger      primary.Logger
}

func NewJWTAuthService(
	botPort secondary.BotPort,
	jwtProvider primary.JWTService,
	logger primary.Logger,
) IAuthService {
	return &jwtAuthService{
		botPort:     botPort,
		jwtProvider: jwtProvider,
		logger:      logger,
	}
}

func (j jwtAuthService) ProviderName() domain.Provider {
	return domain.ProviderJWT
}

func (j jwtAuthService) Authenticate(ctx context.Context, token string) (*domain.Bot, error) {
	sub, err := j.jwtProvider.SubjectFromTokenHMAC(ctx, token)
	if err != nil {
		j.logger.Debug("Bearer token rejected", "error", err)
		return nil, errs.InvalidCredential
	}
	botID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errs.InvalidCredential
	}

	bot, err := j.botPort.Get(ctx, botID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bot: %w: %w", errs.Persistence, err)
	}
	if bot == nil || bot.Framework == domain.FrameworkHuman {
		return nil, errs.InvalidCredential
	}
	return bot, nil
}
