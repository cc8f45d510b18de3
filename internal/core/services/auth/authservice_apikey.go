package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
)

var _ IAuthService = &apiKeyAuthService{}

// apiKeyAuthService accepts keys of the form "<botId>.<secret>" and checks the
// secret against the bot's stored bcrypt hash.
type apiKeyAuthService struct {
	botPort     secondary.BotPort
	jwtProvider primary.JWTService
	logger      primary.Logger
}

func NewAPIKeyAuthService(
	botPort secondary.BotPort,
	jwtProvider primary.JWTService,
	logger primary.Logger,
) IAuthService {
	return &apiKeyAuthService{
		botPort:     botPort,
		jwtProvider: jwtProvider,
		logger:      logger,
	}
}

func (a apiKeyAuthService) ProviderName() domain.Provider {
	return domain.ProviderAPIKey
}

func (a apiKeyAuthService) Authenticate(ctx context.Context, secret string) (*domain.Bot, error) {
	id, key, ok := strings.Cut(secret, ".")
	if !ok || key == "" {
		return nil, errs.InvalidCredential
	}
	botID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.InvalidCredential
	}

	bot, err := a.botPort.Get(ctx, botID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bot: %w: %w", errs.Persistence, err)
	}
	if bot == nil || bot.APIKeyHash == nil {
		return nil, errs.InvalidCredential
	}

	valid, err := a.jwtProvider.VerifySecret(ctx, *bot.APIKeyHash, key)
	if err != nil || !valid {
		a.logger.Debug("API key rejected", "botId", botID)
		return nil, errs.InvalidCredential
	}
	return bot, nil
}
