package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifierUserID(t *testing.T) {
	v := NewVerifier(testSecret)

	t.Run("sub claim", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		id, err := v.UserID(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", id)
	})

	t.Run("id claim fallback", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"id":  "user-2",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		id, err := v.UserID(token)
		require.NoError(t, err)
		assert.Equal(t, "user-2", id)
	})

	t.Run("sub wins over id", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"sub": "primary", "id": "secondary"})
		id, err := v.UserID(token)
		require.NoError(t, err)
		assert.Equal(t, "primary", id)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		_, err := v.UserID(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"})
		_, err := v.UserID(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no identity claim", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"role": "creator"})
		_, err := v.UserID(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := v.UserID("  ")
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := v.UserID("not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestBearerFromRequest(t *testing.T) {
	t.Run("authorization header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/chat/ws", nil)
		r.Header.Set("Authorization", "Bearer abc123")
		assert.Equal(t, "abc123", BearerFromRequest(r))
	})

	t.Run("query fallback", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/chat/ws?token=xyz789", nil)
		assert.Equal(t, "xyz789", BearerFromRequest(r))
	})

	t.Run("header wins over query", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/chat/ws?token=query", nil)
		r.Header.Set("Authorization", "Bearer header")
		assert.Equal(t, "header", BearerFromRequest(r))
	})

	t.Run("missing", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/chat/ws", nil)
		assert.Equal(t, "", BearerFromRequest(r))
	})
}
