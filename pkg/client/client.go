// Package client is the Go SDK for the TaskHive platform API. It mirrors
// the behavior of the web application's API layer: bearer-token injection
// from a persisted session, session destruction on 401, and typed sentinel
// errors for the auth failure modes callers must branch on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnauthorized means the session was rejected. The client has already
	// cleared the persisted session by the time this is returned.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but not entitled. The
	// session is left intact.
	ErrForbidden = errors.New("forbidden")
)

// APIError carries a non-2xx response the caller may want to display.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// User is the account snapshot the API returns. IsApproved is tri-state:
// nil means awaiting an admin decision.
type User struct {
	ID         string            `json:"id"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Role       string            `json:"role"`
	IsApproved *bool             `json:"is_approved"`
	IsActive   bool              `json:"is_active"`
	Client     *ClientProfile    `json:"client_profile,omitempty"`
	Developer  *DeveloperProfile `json:"developer_profile,omitempty"`
	Admin      *AdminProfile     `json:"admin_profile,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Approved reports whether the account has been explicitly approved.
func (u *User) Approved() bool {
	return u.IsApproved != nil && *u.IsApproved
}

type ClientProfile struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	Position    string `json:"position,omitempty"`
}

type DeveloperProfile struct {
	Skills         []string `json:"skills"`
	Experience     string   `json:"experience"`
	GithubUsername string   `json:"github_username"`
	Portfolio      string   `json:"portfolio,omitempty"`
}

type AdminProfile struct {
	Position string `json:"position"`
}

// Client talks to the platform API. Authenticated calls read the bearer
// token from the session store on every request, so a login performed
// through one Client is visible to another sharing the same store.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore

	// OnUnauthorized fires after a 401 has cleared the session. The web app
	// uses the equivalent hook to navigate to /login.
	OnUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithUnauthorizedHook sets the callback fired when a 401 destroys the session.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.OnUnauthorized = fn }
}

// New creates a Client against baseURL (e.g. "https://api.taskhive.dev/api").
func New(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store exposes the session store, for callers that need to inspect the
// cached user (route guards, dashboard routing).
func (c *Client) Store() SessionStore {
	return c.store
}

// do performs a request. When authed is true the session token is attached;
// a 401 response clears the session, fires OnUnauthorized and returns
// ErrUnauthorized. A 403 returns ErrForbidden and leaves the session alone.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authed {
		sess, err := c.store.Load()
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if sess.Token != "" {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		_ = c.store.Clear()
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = apiErr.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body, out any, authed bool) error {
	return c.do(ctx, http.MethodPost, path, body, out, authed)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out, true)
}

func (c *Client) delete(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, body, out, true)
}

// --- Auth endpoints ---

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Login authenticates and persists the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp loginResponse
	err := c.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp, false)
	if err != nil {
		return nil, err
	}

	if err := c.store.Save(Session{Token: resp.Token, User: resp.User}); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return resp.User, nil
}

// Logout destroys the persisted session.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Me fetches a fresh snapshot of the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.get(ctx, "/auth/me", &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}
