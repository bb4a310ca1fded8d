package server

import (
	"testing"

	"github.com/google/uuid"

	"github.com/jonathan/resume-editor/internal/config"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.GetUserID() != userID {
		t.Errorf("user ID = %s, want %s", claims.GetUserID(), userID)
	}
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService(&config.JWTConfig{Secret: "secret-a", ExpirationHours: 1})
	verifier := NewJWTService(&config.JWTConfig{Secret: "secret-b", ExpirationHours: 1})

	token, err := issuer.GenerateToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestJWTService_GarbageRejected(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})

	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("malformed token should not validate")
	}
}
