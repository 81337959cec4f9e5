// Package auth verifies editor access tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/heartmarshall/gradbook-backend/pkg/ctxutil"
)

// ErrInvalidToken is returned for any token that must not be trusted.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager signs and validates HS256 editor tokens. The subject carries the
// editor ID and the email travels as a custom claim.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

type editorClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// GenerateAccessToken creates a signed token for the editor.
func (m *JWTManager) GenerateAccessToken(editor ctxutil.Editor) (string, error) {
	if strings.TrimSpace(editor.ID) == "" {
		return "", fmt.Errorf("editor id is empty")
	}

	now := m.now()
	claims := editorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   editor.ID,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: editor.Email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a token and returns the editor it names.
func (m *JWTManager) ValidateToken(_ context.Context, tokenString string) (ctxutil.Editor, error) {
	if tokenString == "" {
		return ctxutil.Editor{}, fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	var claims editorClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return ctxutil.Editor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return ctxutil.Editor{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return ctxutil.Editor{ID: claims.Subject, Email: claims.Email}, nil
}
