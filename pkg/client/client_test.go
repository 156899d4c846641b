package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/naveenspark/sesame/pkg/domain"
)

// fakeTokens is an in-memory TokenStore.
type fakeTokens struct {
	mu      sync.Mutex
	tok     string
	cleared int
}

func (f *fakeTokens) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tok
}

func (f *fakeTokens) ClearToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tok = ""
	f.cleared++
	return nil
}

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/user/register" {
			http.NotFound(w, r)
			return
		}
		var req domain.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Role != domain.DefaultRole {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "role missing"}) //nolint:errcheck
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.User{Email: req.Email, FirstName: req.FirstName}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.Register(context.Background(), domain.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "Abcdef1!",
		Phone:     "0612345678",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
}

func TestRegister_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if err := c.Register(context.Background(), domain.RegisterRequest{Email: "a@b.com"}); err != nil {
		t.Fatalf("Register() with empty body error: %v", err)
	}
}

func TestRegister_PlainTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("User registered successfully")) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if err := c.Register(context.Background(), domain.RegisterRequest{Email: "a@b.com"}); err != nil {
		t.Fatalf("Register() with text body error: %v", err)
	}
}

func TestRegister_ServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "email already used"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.Register(context.Background(), domain.RegisterRequest{Email: "a@b.com"})
	if err == nil {
		t.Fatal("expected error for 409 response")
	}
	if !IsStatus(err, http.StatusConflict) {
		t.Errorf("IsStatus(err, 409) = false, err = %v", err)
	}
	if got := ServerMessage(err); got != "email already used" {
		t.Errorf("ServerMessage() = %q, want %q", got, "email already used")
	}
}

func TestValidateAccount(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if err := c.ValidateAccount(context.Background(), "ab/12"); err != nil {
		t.Fatalf("ValidateAccount() error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if gotPath != "/auth/user/validateAccount/ab%2F12" {
		t.Errorf("path = %q, want escaped code", gotPath)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/user/token" {
			http.NotFound(w, r)
			return
		}
		var creds domain.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if creds.Email != "a@b.com" || creds.Password != "x" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"jwtToken": "t1"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	resp, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.AccessToken() != "t1" {
		t.Errorf("AccessToken() = %q, want %q", resp.AccessToken(), "t1")
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tokens := &fakeTokens{tok: "test-token"}
	c := New(srv.URL, tokens)
	if err := c.ValidateAccount(context.Background(), "code"); err != nil {
		t.Fatalf("ValidateAccount() error: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-token")
	}
	if gotReqID == "" {
		t.Error("expected X-Request-Id header")
	}

	tokens.tok = ""
	if err := c.ValidateAccount(context.Background(), "code"); err != nil {
		t.Fatalf("ValidateAccount() error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want no header without a token", gotAuth)
	}
}

func TestUnauthorizedClearsTokenAndNotifies(t *testing.T) {
	for _, path := range []string{"register", "validate", "login"} {
		t.Run(path, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "token expired"}) //nolint:errcheck
			}))
			defer srv.Close()

			tokens := &fakeTokens{tok: "stale"}
			notified := 0
			c := New(srv.URL, tokens, WithHTTPClient(srv.Client()), WithUnauthorizedHandler(func() { notified++ }))

			var err error
			ctx := context.Background()
			switch path {
			case "register":
				err = c.Register(ctx, domain.RegisterRequest{})
			case "validate":
				err = c.ValidateAccount(ctx, "code")
			case "login":
				_, err = c.Login(ctx, domain.Credentials{})
			}
			if !IsStatus(err, http.StatusUnauthorized) {
				t.Fatalf("expected 401 error, got %v", err)
			}
			if tokens.Token() != "" {
				t.Errorf("token = %q, want cleared", tokens.Token())
			}
			if notified != 1 {
				t.Errorf("handler called %d times, want 1", notified)
			}
			if got := ServerMessage(err); got != "token expired" {
				t.Errorf("ServerMessage() = %q, want %q", got, "token expired")
			}
		})
	}
}

func TestOtherErrorsDoNotClearToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("forbidden")) //nolint:errcheck
	}))
	defer srv.Close()

	tokens := &fakeTokens{tok: "keep"}
	c := New(srv.URL, tokens, WithUnauthorizedHandler(func() { t.Error("handler must not run on 403") }))
	err := c.ValidateAccount(context.Background(), "code")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if got := err.Error(); !strings.Contains(got, "HTTP 403: forbidden") {
		t.Errorf("error = %q, want it to contain 'HTTP 403: forbidden'", got)
	}
	if got := ServerMessage(err); got != "" {
		t.Errorf("ServerMessage() = %q, want empty for a non-JSON body", got)
	}
	if tokens.Token() != "keep" || tokens.cleared != 0 {
		t.Errorf("token cleared on 403")
	}
}

func TestTrailingSlashBaseURL(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"token": "t2"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/v1/", nil)
	resp, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if gotPath != "/api/v1/auth/user/token" {
		t.Errorf("path = %q, want %q", gotPath, "/api/v1/auth/user/token")
	}
	if resp.AccessToken() != "t2" {
		t.Errorf("AccessToken() = %q, want fallback token field", resp.AccessToken())
	}
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second) // slow server
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if err := c.ValidateAccount(ctx, "code"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
