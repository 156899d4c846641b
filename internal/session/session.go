// Package session persists the bearer token and user profile between runs.
package session

import (
	"strings"

	"github.com/naveenspark/sesame/pkg/domain"
)

// Session is the client-side record of the current authentication state.
type Session struct {
	Token string
	User  *domain.User
}

// IsAuthenticated reports whether the session carries a token.
func (s Session) IsAuthenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

// Store is durable storage for a Session. The token and the user profile are
// independent entries: either may be present without the other.
type Store interface {
	Load() Session
	Token() string
	SaveToken(token string) error
	SaveUser(u domain.User) error
	ClearToken() error
	Clear() error
}
