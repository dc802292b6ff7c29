package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/repository/memory"
	"github.com/msomdec/taskboard/internal/service"
	"github.com/msomdec/taskboard/internal/store"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestAuth(t *testing.T) (*service.AuthService, *store.Store) {
	t.Helper()
	s, err := store.New(context.Background(), memory.New(), 4)
	if err != nil {
		t.Fatalf("New store: %v", err)
	}
	return service.NewAuthService(s, testJWTSecret), s
}

func TestToken_GenerateAndVerify(t *testing.T) {
	auth, _ := newTestAuth(t)

	token, err := auth.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	userID, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("expected user-123, got %s", userID)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	auth, _ := newTestAuth(t)

	if _, err := auth.VerifyToken("not-a-valid-jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyToken_Tampered(t *testing.T) {
	auth, _ := newTestAuth(t)

	token, err := auth.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-5] + "XXXXX"
	if _, err := auth.VerifyToken(tampered); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	auth, _ := newTestAuth(t)

	s2, err := store.New(context.Background(), memory.New(), 4)
	if err != nil {
		t.Fatalf("New store: %v", err)
	}
	other := service.NewAuthService(s2, "a-completely-different-secret")

	token, err := other.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := auth.VerifyToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	auth, _ := newTestAuth(t)

	// Sign an already-expired token with the shared secret.
	claims := jwt.MapClaims{
		"sub": "user-123",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if _, err := auth.VerifyToken(expired); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestVerifyToken_RejectsNonHMACAlg(t *testing.T) {
	auth, _ := newTestAuth(t)

	// alg=none tokens must never be trusted.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := auth.VerifyToken(unsigned); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for alg=none token, got %v", err)
	}
}

func TestAuthenticateHeader(t *testing.T) {
	auth, s := newTestAuth(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "auth@example.com", "password123", "Auth User")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	resolved, err := auth.AuthenticateHeader(ctx, "Bearer "+token)
	if err != nil {
		t.Fatalf("AuthenticateHeader: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, resolved.ID)
	}
}

func TestAuthenticateHeader_Malformed(t *testing.T) {
	auth, s := newTestAuth(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "malformed@example.com", "password123", "Malformed")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"no scheme", token},
		{"wrong scheme", "Token " + token},
		{"lowercase scheme", "bearer " + token},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := auth.AuthenticateHeader(ctx, tc.header); !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestAuthenticateHeader_UnknownSubject(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	// A valid token whose subject no longer resolves is the only
	// revocation mechanism there is.
	token, err := auth.GenerateToken("ghost-user-id")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := auth.AuthenticateHeader(ctx, "Bearer "+token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown subject, got %v", err)
	}
}
