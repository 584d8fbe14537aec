package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/google/uuid"
)

func testManager() *JWTManager {
	return NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-with-enough-length-000000",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "medschedule-test",
	})
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := testManager()
	hospitalID := uuid.New()
	in := &domain.Claims{
		Subject:    uuid.New(),
		Email:      "admin@example.com",
		Role:       domain.RoleAdmin,
		HospitalID: &hospitalID,
	}

	pair, err := m.GenerateTokenPair(in)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("unexpected token type %q", pair.TokenType)
	}

	out, err := m.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out.Subject != in.Subject || out.Role != in.Role || out.Email != in.Email {
		t.Errorf("claims mismatch: %+v", out)
	}
	if out.HospitalID == nil || *out.HospitalID != hospitalID {
		t.Errorf("hospital id lost: %v", out.HospitalID)
	}
}

func TestJWTManager_TypeMismatch(t *testing.T) {
	m := testManager()
	pair, err := m.GenerateTokenPair(&domain.Claims{Subject: uuid.New(), Role: domain.RolePatient})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ValidateAccessToken(pair.RefreshToken); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Errorf("expected ErrTokenTypeMismatch, got %v", err)
	}
	if _, err := m.ValidateRefreshToken(pair.RefreshToken); err != nil {
		t.Errorf("refresh token should validate as refresh: %v", err)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	m := testManager()
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	pair, err := m.GenerateTokenPair(&domain.Claims{Subject: uuid.New(), Role: domain.RoleDoctor})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m.now = time.Now
	if _, err := m.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	pair, err := testManager().GenerateTokenPair(&domain.Claims{Subject: uuid.New(), Role: domain.RolePatient})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewJWTManager(config.JWTConfig{Secret: "another-secret", Issuer: "medschedule-test"})
	if _, err := other.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
