package crypto

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/clawgames.net/internal/config"
)

func TestSubjectFromTokenHMAC(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(&config.JwtConfig{Secret: "s3cret"})

	token, err := svc.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, map[string]interface{}{"sub": "bot-1"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	sub, err := svc.SubjectFromTokenHMAC(ctx, token)
	if err != nil || sub != "bot-1" {
		t.Fatalf("sub = %q, err = %v", sub, err)
	}

	other := NewJWTService(&config.JwtConfig{Secret: "other"})
	if _, err := other.SubjectFromTokenHMAC(ctx, token); err == nil {
		t.Fatal("token signed with another key accepted")
	}
}

func TestSubjectFromTokenHMAC_Expired(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(&config.JwtConfig{Secret: "s3cret"})

	token, err := svc.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, map[string]interface{}{
		"sub": "bot-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.SubjectFromTokenHMAC(ctx, token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestSubjectFromTokenHMAC_MissingSubject(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(&config.JwtConfig{Secret: "s3cret"})

	token, _ := svc.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, map[string]interface{}{})
	if _, err := svc.SubjectFromTokenHMAC(ctx, token); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestHashSecret_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(&config.JwtConfig{})

	hash, err := svc.HashSecret(ctx, "key-material")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if ok, err := svc.VerifySecret(ctx, hash, "key-material"); !ok || err != nil {
		t.Fatalf("verify = %v, %v", ok, err)
	}
	if ok, _ := svc.VerifySecret(ctx, hash, "wrong"); ok {
		t.Fatal("wrong secret verified")
	}
}
