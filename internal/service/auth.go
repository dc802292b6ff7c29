package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/msomdec/taskboard/internal/domain"
)

// tokenTTL is how long an issued token stays valid.
const tokenTTL = 24 * time.Hour

// UserSource resolves token subjects back to users. The store satisfies
// this; a token whose user no longer resolves is treated as invalid,
// which is the sole revocation mechanism besides expiry.
type UserSource interface {
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
}

// AuthService issues and verifies the signed bearer tokens that prove
// request identity without server-side session state.
type AuthService struct {
	users     UserSource
	jwtSecret []byte
}

// NewAuthService creates an AuthService. The signing key must be
// non-empty; main fails closed before constructing one without it.
func NewAuthService(users UserSource, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(jwtSecret)}
}

// GenerateToken signs a token embedding the user id, valid for 24 hours.
func (s *AuthService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken returns the embedded user id when the signature is valid
// and the token is unexpired. Any failure reports ErrUnauthorized; there
// is no partial trust.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}
	return sub, nil
}

// AuthenticateHeader resolves an Authorization header value to a user.
// An absent or malformed header, an invalid token, or a token whose
// user no longer exists all report ErrUnauthorized.
func (s *AuthService) AuthenticateHeader(ctx context.Context, authHeader string) (*domain.User, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return nil, domain.ErrUnauthorized
	}

	userID, err := s.VerifyToken(strings.TrimPrefix(authHeader, prefix))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
