package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken indicates the handshake carried no bearer credential.
	ErrMissingToken = errors.New("auth: missing token")
	// ErrInvalidToken covers signature, expiry and malformed-claim failures.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Verifier validates access tokens and extracts the user identity claim.
// Verification runs once per connection establishment; events on an
// authenticated connection trust the bound identity afterwards.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// UserID verifies the token's signature and expiry and returns the user
// identifier claim ("sub", falling back to "id").
func (v *Verifier) UserID(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	if id, ok := claims["id"].(string); ok && id != "" {
		return id, nil
	}
	return "", ErrInvalidToken
}

// BearerFromRequest extracts the credential from the Authorization header or,
// for websocket handshakes where custom headers are awkward, a token query
// parameter.
func BearerFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if strings.HasPrefix(h, "Bearer ") {
			return strings.TrimPrefix(h, "Bearer ")
		}
	}
	return r.URL.Query().Get("token")
}
