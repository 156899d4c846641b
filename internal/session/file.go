package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/naveenspark/sesame/pkg/domain"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// FileStore keeps the session under a directory, one file per entry.
type FileStore struct {
	mu       sync.Mutex
	dir      string
	override string
}

// NewFileStore returns a store rooted at dir. A non-empty override token takes
// precedence over the token file until the token is cleared.
func NewFileStore(dir, override string) *FileStore {
	return &FileStore{dir: dir, override: strings.TrimSpace(override)}
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

// Load reads both entries. Missing or unreadable entries come back empty.
func (s *FileStore) Load() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Session{Token: s.readToken(), User: s.readUser()}
}

// Token returns the stored token, or "" when there is none.
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readToken()
}

// SaveToken writes the token entry.
func (s *FileStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600); err != nil {
		return fmt.Errorf("session.SaveToken: %w", err)
	}
	s.override = ""
	return nil
}

// SaveUser writes the user profile entry.
func (s *FileStore) SaveUser(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session.SaveUser: %w", err)
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), data, 0600); err != nil {
		return fmt.Errorf("session.SaveUser: %w", err)
	}
	return nil
}

// ClearToken removes the token entry and drops any override.
func (s *FileStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = ""
	return removeIfExists(filepath.Join(s.dir, tokenFile))
}

// Clear removes both entries.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = ""
	return errors.Join(
		removeIfExists(filepath.Join(s.dir, tokenFile)),
		removeIfExists(filepath.Join(s.dir, userFile)),
	)
}

func (s *FileStore) readToken() string {
	if s.override != "" {
		return s.override
	}
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (s *FileStore) readUser() *domain.User {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", filepath.Base(path), err)
	}
	return nil
}
