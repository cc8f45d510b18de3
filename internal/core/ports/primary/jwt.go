package primary

import (
	"context"
)

type JWTService interface {
	GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error)
	VerifyTokenHMAC(ctx context.Context, token string, method string) (bool, error)
	// SubjectFromTokenHMAC verifies token and returns its "sub" claim
	SubjectFromTokenHMAC(ctx context.Context, token string) (string, error)
	HashSecret(ctx context.Context, secret string) (string, error)
	VerifySecret(ctx context.Context, secretHash string, secret string) (bool, error)
}
