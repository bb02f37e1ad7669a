package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zero-waste-meals/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestVerifier(t *testing.T) TokenVerifier {
	t.Helper()
	verifier, err := NewHMACVerifier(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	return verifier
}

func TestNewHMACVerifier_RejectsShortSecret(t *testing.T) {
	_, err := NewHMACVerifier(config.AuthConfig{JWTSecret: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestVerify_ValidToken(t *testing.T) {
	verifier := newTestVerifier(t)

	token, err := IssueToken(testSecret, "user-123", "a@x.com", time.Hour)
	require.NoError(t, err)

	identity, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", identity.Subject)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestVerify_ExpiredToken(t *testing.T) {
	verifier := newTestVerifier(t)

	// Expired well beyond the allowed clock skew
	token, err := IssueToken(testSecret, "user-123", "a@x.com", -time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_MalformedToken(t *testing.T) {
	verifier := newTestVerifier(t)

	_, err := verifier.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	verifier := newTestVerifier(t)

	token, err := IssueToken("another-secret-another-secret-yes", "user-123", "a@x.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingEmailClaim(t *testing.T) {
	verifier := newTestVerifier(t)

	token, err := IssueToken(testSecret, "user-123", "", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsUnexpectedSigningMethod(t *testing.T) {
	verifier := newTestVerifier(t)

	claims := identityClaims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
