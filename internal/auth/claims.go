package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read out of a JWT bearer token without verifying it.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// Inspect decodes token's registered claims for display. The signature is not
// checked; the server remains the only authority. ok is false for tokens that
// are not JWTs.
func Inspect(token string) (info TokenInfo, ok bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, false
	}
	info.Subject = claims.Subject
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, true
}

// Claims inspects the manager's current token.
func (m *Manager) Claims() (TokenInfo, bool) {
	m.mu.Lock()
	tok := m.token
	m.mu.Unlock()
	if tok == "" {
		return TokenInfo{}, false
	}
	return Inspect(tok)
}
