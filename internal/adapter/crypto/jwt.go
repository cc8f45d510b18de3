package crypto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"golang.org/x/crypto/bcrypt"

	"gitlab.com/clawgames.net/internal/config"
	"gitlab.com/clawgames.net/internal/core/ports/primary"
)

var _ primary.JWTService = (*JWTServiceImpl)(nil)

var (
	ErrInvalidToken = fmt.Errorf("invalid token")
)

type JWTServiceImpl struct {
	HMACSecretKey string
}

func NewJWTService(jwtConfig *config.JwtConfig) primary.JWTService {
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
	}
}

func (J JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error) {
	if J.HMACSecretKey == "" {
		return "", errors.New("hmac secret not configured")
	}
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return "", fmt.Errorf("unsupported signing method: %s", method)
	}

	// Ensure the claims map contains an expiration time
	if _, exists := claims["exp"]; !exists {
		claims["exp"] = time.Now().Add(time.Hour * 1).Unix()
	}

	tok := jwt.NewWithClaims(signingMethod, jwt.MapClaims(claims))
	return tok.SignedString([]byte(J.HMACSecretKey))
}

func (J JWTServiceImpl) VerifyTokenHMAC(ctx context.Context, token string, method string) (bool, error) {
	parsedToken, err := J.parseHMAC(token, method)
	if err != nil {
		return false, err
	}
	return parsedToken.Valid, nil
}

func (J JWTServiceImpl) SubjectFromTokenHMAC(ctx context.Context, token string) (string, error) {
	parsedToken, err := J.parseHMAC(token, jwt.SigningMethodHS256.Name)
	if err != nil {
		return "", err
	}
	if !parsedToken.Valid {
		return "", ErrInvalidToken
	}
	sub, err := parsedToken.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

func (J JWTServiceImpl) parseHMAC(token string, method string) (*jwt.Token, error) {
	if J.HMACSecretKey == "" {
		return nil, ErrInvalidToken
	}
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return nil, fmt.Errorf("unsupported signing method: %s", method)
	}

	return jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(J.HMACSecretKey), nil
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}))
}

func (JWTServiceImpl) VerifySecret(ctx context.Context, secretHash string, secret string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(secret))
	if err != nil {
		return false, err
	}
	return true, nil
}

func (J JWTServiceImpl) HashSecret(ctx context.Context, secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
