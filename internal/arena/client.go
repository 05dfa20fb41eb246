package arena

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/carbonrobotics/arena-mcp-server/internal/credentials"
)

// DefaultBaseURL is the production Arena REST endpoint.
const DefaultBaseURL = "https://api.arenasolutions.com/v1"

const (
	sessionHeader    = "arena_session_id"
	requestTimeout   = 30 * time.Second
	maxResponseBytes = 8 << 20
)

// Object is a decoded Arena JSON object. Payload shapes vary per workspace
// (custom attributes, optional fields), so resources stay schemaless and the
// renderers tolerate whatever is missing.
type Object map[string]any

// Envelope is the standard Arena collection response.
type Envelope struct {
	Count   int      `json:"count"`
	Results []Object `json:"results"`
}

// Config holds everything a Client needs. Zero fields fall back to sane
// defaults, so tests only set what they care about.
type Config struct {
	BaseURL     string
	Credentials credentials.Credentials
	HTTPClient  *http.Client
	Logger      *logrus.Entry
}

// Client talks to the Arena PLM REST API on behalf of a single account. It
// owns the session lifecycle: the first resource call logs in lazily,
// concurrent first calls share one login flight, and Logout invalidates the
// session locally even when the remote call fails. A session that the remote
// expires is not re-established automatically; the resulting 401 is reported
// to the caller.
type Client struct {
	baseURL string
	creds   credentials.Credentials
	http    *http.Client
	logger  *logrus.Entry

	mu          sync.RWMutex
	sessionID   string
	workspaceID int64

	login singleflight.Group
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   cfg.Credentials,
		http:    httpClient,
		logger:  logger,
	}
}

// Authenticated reports whether the client currently holds a session token.
// It says nothing about whether the remote still honors it.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID != ""
}

// WorkspaceID returns the workspace bound at login, or 0 before login.
func (c *Client) WorkspaceID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.workspaceID
}

func (c *Client) session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// EnsureSession logs in if no session is held yet. Concurrent callers are
// collapsed onto a single login request; everyone gets the same outcome.
func (c *Client) EnsureSession(ctx context.Context) error {
	if c.Authenticated() {
		return nil
	}
	_, err, _ := c.login.Do("login", func() (any, error) {
		if c.Authenticated() {
			return nil, nil
		}
		return nil, c.doLogin(ctx)
	})
	return err
}

type loginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	WorkspaceID int64  `json:"workspaceId,omitempty"`
}

type loginResponse struct {
	ArenaSessionID string `json:"arenaSessionId"`
	WorkspaceID    int64  `json:"workspaceId"`
}

func (c *Client) doLogin(ctx context.Context) error {
	if !c.creds.Complete() {
		return &AuthError{Reason: "arena credentials missing: set ARENA_EMAIL and ARENA_PASSWORD"}
	}
	payload := loginRequest{
		Email:       c.creds.Email,
		Password:    c.creds.Password,
		WorkspaceID: c.creds.WorkspaceID,
	}
	body, err := c.roundTrip(ctx, http.MethodPost, "/login", nil, payload, "")
	if err != nil {
		return &AuthError{Reason: "arena login failed", Err: err}
	}
	var auth loginResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return &AuthError{Reason: "arena login response unreadable", Err: err}
	}
	if auth.ArenaSessionID == "" {
		return &AuthError{Reason: "arena login response missing session id"}
	}
	c.mu.Lock()
	c.sessionID = auth.ArenaSessionID
	c.workspaceID = auth.WorkspaceID
	c.mu.Unlock()
	c.logger.WithField("workspace_id", auth.WorkspaceID).Info("arena session established")
	return nil
}

// Logout drops the session. The local token is always cleared; the remote
// invalidation is best effort and a failure there is only logged. Calling
// Logout without a session is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	sid := c.sessionID
	c.sessionID = ""
	c.workspaceID = 0
	c.mu.Unlock()
	if sid == "" {
		return nil
	}
	if _, err := c.roundTrip(ctx, http.MethodPut, "/logout", nil, nil, sid); err != nil {
		c.logger.WithError(err).Warn("arena logout failed; session dropped locally")
		return nil
	}
	c.logger.Info("arena session closed")
	return nil
}

// SearchItems fetches one page of items matching the filter.
func (c *Client) SearchItems(ctx context.Context, f ItemFilter, p Page) (*Envelope, error) {
	return c.envelope(ctx, searchItemsRequest(f, p))
}

// GetItem fetches a single item by GUID. With includeEmptyAttrs, custom
// attributes with no value are included in the payload.
func (c *Client) GetItem(ctx context.Context, guid string, includeEmptyAttrs bool) (Object, error) {
	return c.object(ctx, itemRequest(guid, includeEmptyAttrs))
}

// GetItemBOM fetches the first-level bill of materials of an assembly.
func (c *Client) GetItemBOM(ctx context.Context, guid string, includeAttrs bool) (*Envelope, error) {
	return c.envelope(ctx, bomRequest(guid, includeAttrs))
}

// GetItemWhereUsed fetches the assemblies an item appears in.
func (c *Client) GetItemWhereUsed(ctx context.Context, guid string) (*Envelope, error) {
	return c.envelope(ctx, whereUsedRequest(guid))
}

// GetItemRevisions fetches the revision history of an item.
func (c *Client) GetItemRevisions(ctx context.Context, guid string) (*Envelope, error) {
	return c.envelope(ctx, revisionsRequest(guid))
}

// GetItemFiles fetches the file associations of an item.
func (c *Client) GetItemFiles(ctx context.Context, guid string) (*Envelope, error) {
	return c.envelope(ctx, filesRequest(guid))
}

// GetItemSourcing fetches one page of sourcing relationships of an item.
func (c *Client) GetItemSourcing(ctx context.Context, guid string, p Page) (*Envelope, error) {
	return c.envelope(ctx, sourcingRequest(guid, p))
}

// GetCategories fetches item categories, optionally narrowed by a path
// substring.
func (c *Client) GetCategories(ctx context.Context, path string) (*Envelope, error) {
	return c.envelope(ctx, categoriesRequest(path))
}

func (c *Client) execute(ctx context.Context, req request) ([]byte, error) {
	if err := c.EnsureSession(ctx); err != nil {
		return nil, err
	}
	return c.roundTrip(ctx, req.method, req.path, req.query, nil, c.session())
}

func (c *Client) envelope(ctx context.Context, req request) (*Envelope, error) {
	body, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("arena: decode %s response: %w", req.path, err)
	}
	return &env, nil
}

func (c *Client) object(ctx context.Context, req request) (Object, error) {
	body, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}
	var obj Object
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("arena: decode %s response: %w", req.path, err)
	}
	return obj, nil
}

// roundTrip performs one HTTP exchange. A non-2xx status becomes an
// *APIError carrying the status and body; transport failures are wrapped
// with the method and path.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload any, sessionID string) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("arena: encode %s request: %w", path, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("arena: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(sessionHeader, sessionID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arena: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("arena: read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
