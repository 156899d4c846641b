package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/naveenspark/sesame/pkg/domain"
)

// DefaultTimeout is the transport timeout used when no option overrides it.
const DefaultTimeout = 30 * time.Second

// TokenStore supplies the bearer token for outgoing requests and forgets it
// when the API reports the session is no longer valid.
type TokenStore interface {
	Token() string
	ClearToken() error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithUnauthorizedHandler registers fn to run after any 401 response, once the
// stored token has been cleared.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// Client is the account API client.
type Client struct {
	baseURL        string
	tokens         TokenStore
	httpClient     *http.Client
	log            zerolog.Logger
	onUnauthorized func()
}

// New creates a new API client. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnUnauthorized replaces the handler run after a 401 response.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Register creates a new account. The account stays inactive until validated.
// Any 2xx counts as success; the response body is not read.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) error {
	if err := c.post(ctx, "/auth/user/register", req.WithDefaults(), nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// ValidateAccount confirms an account with the code sent by email.
func (c *Client) ValidateAccount(ctx context.Context, code string) error {
	if err := c.doRequest(ctx, http.MethodPut, "/auth/user/validateAccount/"+url.PathEscape(code), nil, nil); err != nil {
		return fmt.Errorf("client.ValidateAccount: %w", err)
	}
	return nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.TokenResponse, error) {
	var resp domain.TokenResponse
	if err := c.post(ctx, "/auth/user/token", creds, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	log := c.log.With().Str("request_id", reqID).Str("method", method).Str("path", path).Logger()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("request failed")
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	log.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("response")

	if resp.StatusCode == http.StatusUnauthorized {
		c.expire(log)
	}

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Body: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// expire drops the stored token and notifies the handler.
func (c *Client) expire(log zerolog.Logger) {
	if c.tokens != nil {
		if err := c.tokens.ClearToken(); err != nil {
			log.Warn().Err(err).Msg("clear token after 401")
		}
	}
	log.Info().Msg("session rejected by server")
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// errorMessage returns the "message" or "error" field of a JSON error body,
// or "" when the body is not such an object.
func errorMessage(body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) != nil {
		return ""
	}
	if msg := strings.TrimSpace(apiErr.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(apiErr.Error)
}
