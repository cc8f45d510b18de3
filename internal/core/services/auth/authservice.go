package auth

import (
	"context"

	"gitlab.com/clawgames.net/internal/domain"
	"gitlab.com/clawgames.net/internal/static/errs"
)

type IAuthService interface {
	ProviderName() domain.Provider
	// Authenticate resolves secret to the bot it belongs to
	Authenticate(ctx context.Context, secret string) (*domain.Bot, error)
}

// Authenticator dispatches a credential to the provider that understands it
type Authenticator struct {
	providers map[domain.Provider]IAuthService
}

func NewAuthenticator(services ...IAuthService) *Authenticator {
	providers := make(map[domain.Provider]IAuthService, len(services))
	for _, svc := range services {
		providers[svc.ProviderName()] = svc
	}
	return &Authenticator{providers: providers}
}

func (a *Authenticator) Authenticate(ctx context.Context, cred domain.Credential) (*domain.Bot, error) {
	if cred.Secret == "" {
		return nil, errs.MissingCredential
	}
	svc, ok := a.providers[cred.Provider]
	if !ok {
		return nil, errs.InvalidCredential
	}
	return svc.Authenticate(ctx, cred.Secret)
}
