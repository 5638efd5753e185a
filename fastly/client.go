// Package fastly is a client for the Fastly control-plane API. It covers
// service configuration (versions, backends, domains, caching rules, edge
// logic) and cache purging.
//
// The central workflow is versioned configuration: fetch the latest
// version, call EnsureMutable to obtain a draft (cloning if the version is
// locked or active), mutate configuration objects scoped to that draft,
// then ActivateVersion. Writes against a locked version are rejected by
// the API, so EnsureMutable exists to make that failure unreachable in
// normal use.
package fastly

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultEndpoint is the Fastly API entry point.
	DefaultEndpoint = "https://api.fastly.com"

	// APIKeyHeader carries the static token when no session is held.
	APIKeyHeader = "Fastly-Key"

	defaultUserAgent = "fastly-client-go"
	defaultTimeout   = 15 * time.Second
)

// sessionCookie matches the session cookie issued by POST /login.
var sessionCookie = regexp.MustCompile(`(fastly\.session=[^;]+)`)

// Client issues authenticated requests against the Fastly API.
//
// A Client authenticated with just an API key is safe for concurrent use.
// Login mutates the held session cookie, so a Client must not be shared
// across goroutines while a Login call may be in flight. The safe model is
// one Client per logical actor.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	apiKey     string
	userAgent  string
	logger     zerolog.Logger
	validate   *validator.Validate

	// session holds the cookie captured from a successful Login. When
	// non-empty it replaces the API key on every subsequent request.
	session string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API entry point (e.g. for a test server).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if u, err := url.Parse(endpoint); err == nil {
			c.endpoint = u
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client. The client's
// timeout bounds every API call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger attaches a structured logger. Request and response details
// are traced at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient returns a Client authenticated with the given API key. Key
// auth is sufficient for read-mostly use; call Login for the operations
// that need a full session (user and customer management, version
// locking).
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	endpoint, err := url.Parse(DefaultEndpoint)
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		apiKey:     apiKey,
		userAgent:  defaultUserAgent,
		logger:     zerolog.Nop(),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.endpoint == nil {
		return nil, fmt.Errorf("fastly: invalid API endpoint")
	}

	return c, nil
}

// Session is the payload returned by a successful Login.
type Session struct {
	Customer *Customer `json:"customer"`
	User     *User     `json:"user"`
}

// Login authenticates with a username and password and stores the
// resulting session cookie on the Client. All subsequent requests use the
// session instead of the API key.
func (c *Client) Login(ctx context.Context, user, password string) (*Session, error) {
	form := url.Values{}
	form.Set("user", user)
	form.Set("password", password)

	var session Session
	if err := c.post(ctx, "/login", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Authenticated reports whether the Client holds a full session (as
// opposed to just an API key).
func (c *Client) Authenticated() bool {
	return c.session != ""
}

// requestOptions carries the per-request knobs that a small number of
// operations need beyond method and path.
type requestOptions struct {
	body url.Values
	// host overrides the Host header (used by the PURGE verb).
	host string
}

// do issues one request and returns the raw response body. Non-2xx
// responses and network failures are mapped to the typed errors in
// errors.go.
func (c *Client) do(ctx context.Context, method, path string, opts requestOptions) ([]byte, error) {
	u := *c.endpoint
	parsed, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("fastly: invalid request path %q: %w", path, err)
	}
	u.Path = parsed.Path
	// Object names may contain an escaped "/"; without RawPath the escape
	// would be lost and the name would split into path segments.
	u.RawPath = parsed.RawPath
	u.RawQuery = parsed.RawQuery

	var body io.Reader
	if opts.body != nil {
		body = strings.NewReader(opts.body.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("fastly: building request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if opts.body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.session != "" {
		req.Header.Set("Cookie", c.session)
	} else {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	if opts.host != "" {
		req.Host = opts.host
	}

	logger := c.logger.With().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Logger()
	logger.Debug().Msg("issuing API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Msg("API request failed")
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}

	logger.Debug().Int("status", resp.StatusCode).Msg("API response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, payload)
	}

	c.captureSession(resp)

	return payload, nil
}

// captureSession records the session cookie when the server sets one.
// Only the login response does in practice.
func (c *Client) captureSession(resp *http.Response) {
	for _, setCookie := range resp.Header.Values("Set-Cookie") {
		if m := sessionCookie.FindStringSubmatch(setCookie); m != nil {
			c.session = m[1]
		}
	}
}

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.roundTrip(ctx, http.MethodGet, path, requestOptions{}, out)
}

// post issues a form-encoded POST and decodes the JSON response into out.
// A nil form sends an empty body.
func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	return c.roundTrip(ctx, http.MethodPost, path, requestOptions{body: form}, out)
}

// put issues a form-encoded PUT and decodes the JSON response into out.
func (c *Client) put(ctx context.Context, path string, form url.Values, out any) error {
	return c.roundTrip(ctx, http.MethodPut, path, requestOptions{body: form}, out)
}

// del issues a DELETE and verifies the "status":"ok" payload the API
// returns for deletions.
func (c *Client) del(ctx context.Context, path string) error {
	var status statusResponse
	if err := c.roundTrip(ctx, http.MethodDelete, path, requestOptions{}, &status); err != nil {
		return err
	}
	return status.check()
}

func (c *Client) roundTrip(ctx context.Context, method, path string, opts requestOptions, out any) error {
	payload, err := c.do(ctx, method, path, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &TransportError{Op: method + " " + path, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// statusResponse is the generic payload returned by deletions and by the
// validate/purge style endpoints.
type statusResponse struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Detail string `json:"detail"`
}

// check surfaces any payload whose status field is not "ok" as an
// APIError carrying the server's message verbatim.
func (s statusResponse) check() error {
	if s.Status == "ok" {
		return nil
	}
	return &APIError{StatusCode: http.StatusOK, Msg: s.Msg, Detail: s.Detail}
}
