package session

import (
	"strings"
	"sync"

	"github.com/naveenspark/sesame/pkg/domain"
)

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  *domain.User
}

// NewMemoryStore returns a store seeded with s.
func NewMemoryStore(s Session) *MemoryStore {
	m := &MemoryStore{token: s.Token}
	if s.User != nil {
		u := *s.User
		m.user = &u
	}
	return m
}

// Load returns a copy of the held session.
func (m *MemoryStore) Load() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Session{Token: m.token}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	return s
}

// Token returns the held token, or "" when there is none.
func (m *MemoryStore) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.TrimSpace(m.token)
}

// SaveToken replaces the token entry.
func (m *MemoryStore) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// SaveUser replaces the user profile entry.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = &u
	return nil
}

// ClearToken drops the token entry.
func (m *MemoryStore) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// Clear drops both entries.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}
