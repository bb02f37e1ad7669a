package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"zero-waste-meals/internal/config"
)

// Verification errors returned by TokenVerifier implementations.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Identity is the subject id and email extracted from a validated bearer
// credential.
type Identity struct {
	Subject string
	Email   string
}

// TokenVerifier validates an opaque bearer credential and yields the
// verified identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// hmacVerifier validates HMAC-SHA256 signed JWTs issued by the identity
// provider, with which it shares the signing secret.
type hmacVerifier struct {
	signingKey []byte
	clockSkew  time.Duration
	timeFunc   func() time.Time // injectable for testing
}

type identityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

var _ TokenVerifier = (*hmacVerifier)(nil)

// NewHMACVerifier creates a TokenVerifier backed by a shared HMAC secret.
func NewHMACVerifier(cfg config.AuthConfig) (TokenVerifier, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacVerifier{
		signingKey: []byte(cfg.JWTSecret),
		clockSkew:  2 * time.Minute,
		timeFunc:   time.Now,
	}, nil
}

// Verify parses and validates the token, returning the identity carried in
// its claims. Expired tokens map to ErrExpiredToken; every other validation
// failure maps to ErrInvalidToken.
func (v *hmacVerifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	now := v.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&identityClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
	}, nil
}

// IssueToken signs a token for the given subject and email, valid for ttl.
// The production identity provider issues tokens out of process; this is
// used by tests and local tooling.
func IssueToken(secret, subject, email string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := identityClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
