// Package auth owns the client-side session: it drives the account API and
// keeps the stored token, the in-memory state and the UI's view of it in step.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/naveenspark/sesame/internal/session"
	"github.com/naveenspark/sesame/pkg/client"
	"github.com/naveenspark/sesame/pkg/domain"
)

// Fallback messages when the server gives none.
const (
	MsgRegisterFailed = "registration failed, please try again"
	MsgValidateFailed = "account validation failed, please try again"
	MsgBadCredentials = "invalid credentials"
)

// ErrNoToken is returned by Login when the server accepts the credentials but
// sends no token.
var ErrNoToken = errors.New("no token received")

// API is the subset of *client.Client the manager calls.
type API interface {
	Register(ctx context.Context, req domain.RegisterRequest) error
	ValidateAccount(ctx context.Context, code string) error
	Login(ctx context.Context, creds domain.Credentials) (*domain.TokenResponse, error)
}

// Status is a snapshot of the manager's state.
type Status struct {
	Authenticated bool
	Loading       bool
	Err           string
	Token         string
	User          *domain.User
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithEventBuffer sets the capacity of the Events channel.
func WithEventBuffer(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.events = make(chan Event, n)
		}
	}
}

// Manager is the auth session manager.
type Manager struct {
	api    API
	store  session.Store
	log    zerolog.Logger
	events chan Event

	mu        sync.Mutex
	token     string
	user      *domain.User
	loading   bool
	err       string
	loggingIn bool
}

// NewManager restores the persisted session from store.
func NewManager(api API, store session.Store, opts ...Option) *Manager {
	m := &Manager{
		api:    api,
		store:  store,
		log:    zerolog.Nop(),
		events: make(chan Event, 8),
	}
	for _, opt := range opts {
		opt(m)
	}
	s := store.Load()
	if s.IsAuthenticated() {
		m.token = strings.TrimSpace(s.Token)
		m.user = s.User
	}
	return m
}

// Bind registers the manager as c's unauthorized handler, so a 401 from any
// call ends the session.
func (m *Manager) Bind(c *client.Client) {
	c.OnUnauthorized(m.Expire)
}

// Events delivers session transitions. Sends never block; when the buffer is
// full the event is dropped.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// Status returns a snapshot of the current state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Status{
		Authenticated: m.token != "",
		Loading:       m.loading,
		Err:           m.err,
		Token:         m.token,
	}
	if m.user != nil {
		u := *m.user
		st.User = &u
	}
	return st
}

// IsAuthenticated reports whether a token is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// Register creates an account. The session is not touched.
func (m *Manager) Register(ctx context.Context, req domain.RegisterRequest) error {
	m.begin()
	err := m.api.Register(ctx, req)
	m.finish(err, MsgRegisterFailed)
	if err != nil {
		m.log.Info().Err(err).Str("email", req.Email).Msg("register failed")
		return fmt.Errorf("auth.Register: %w", err)
	}
	m.log.Info().Str("email", req.Email).Msg("registered")
	return nil
}

// ValidateAccount confirms an account. Validation issues no token, so the
// session is not touched.
func (m *Manager) ValidateAccount(ctx context.Context, code string) error {
	m.begin()
	err := m.api.ValidateAccount(ctx, strings.TrimSpace(code))
	m.finish(err, MsgValidateFailed)
	if err != nil {
		m.log.Info().Err(err).Msg("account validation failed")
		return fmt.Errorf("auth.ValidateAccount: %w", err)
	}
	m.log.Info().Msg("account validated")
	return nil
}

// Login exchanges credentials for a token, persists it and marks the session
// authenticated. On failure the session is left as it was.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	m.begin()
	m.setLoggingIn(true)
	resp, err := m.api.Login(ctx, domain.Credentials{Email: email, Password: password})
	m.setLoggingIn(false)
	if err == nil && resp.AccessToken() == "" {
		err = ErrNoToken
	}
	if err != nil {
		m.finish(err, MsgBadCredentials)
		m.log.Info().Err(err).Str("email", email).Msg("login failed")
		return fmt.Errorf("auth.Login: %w", err)
	}

	token := resp.AccessToken()
	user := domain.User{Email: email}
	if resp.User != nil {
		user = *resp.User
		if user.Email == "" {
			user.Email = email
		}
	}
	if err := m.store.SaveToken(token); err != nil {
		m.finish(err, "could not save session")
		return fmt.Errorf("auth.Login: %w", err)
	}
	if err := m.store.SaveUser(user); err != nil {
		// The token is what authenticates; a missing profile only costs the greeting.
		m.log.Warn().Err(err).Msg("save user profile")
	}

	m.mu.Lock()
	m.token = token
	m.user = &user
	m.loading = false
	m.err = ""
	m.mu.Unlock()

	m.log.Info().Str("email", email).Msg("logged in")
	m.emit(Event{Kind: EventLoggedIn})
	return nil
}

// Logout clears the stored and in-memory session. No network call is made.
func (m *Manager) Logout() error {
	err := m.store.Clear()
	was := m.reset()
	m.log.Info().Msg("logged out")
	m.emit(Event{Kind: EventLoggedOut, WasAuthenticated: was})
	if err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}
	return nil
}

// Expire ends the session after the server rejected the token.
func (m *Manager) Expire() {
	if err := m.store.ClearToken(); err != nil {
		m.log.Warn().Err(err).Msg("clear token on expiry")
	}
	m.mu.Lock()
	duringLogin := m.loggingIn
	m.mu.Unlock()
	was := m.reset()
	m.log.Info().Bool("was_authenticated", was).Bool("during_login", duringLogin).Msg("session expired")
	m.emit(Event{Kind: EventExpired, WasAuthenticated: was, DuringLogin: duringLogin})
}

// ClearError drops the last error, e.g. when the user leaves a form.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.err = ""
	m.mu.Unlock()
}

// reset drops the in-memory session and reports whether one was held.
func (m *Manager) reset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	was := m.token != ""
	m.token = ""
	m.user = nil
	return was
}

func (m *Manager) setLoggingIn(v bool) {
	m.mu.Lock()
	m.loggingIn = v
	m.mu.Unlock()
}

func (m *Manager) begin() {
	m.mu.Lock()
	m.loading = true
	m.err = ""
	m.mu.Unlock()
}

func (m *Manager) finish(err error, fallback string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.err = Message(err, fallback)
	}
}

func (m *Manager) emit(e Event) {
	select {
	case m.events <- e:
	default:
		m.log.Warn().Str("event", e.Kind.String()).Msg("event dropped")
	}
}

// Message returns the text to show for err: the server's own message when it
// sent one, otherwise fallback.
func Message(err error, fallback string) string {
	if msg := strings.TrimSpace(client.ServerMessage(err)); msg != "" {
		return msg
	}
	return fallback
}
