package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/diradmin/internal/client/models"
	"github.com/dmitrijs2005/diradmin/internal/client/session"
	"github.com/dmitrijs2005/diradmin/internal/logging"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// HTTPClient talks to the directory REST API. Every request goes through
// authTransport, which adds the bearer token from the session store.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  session.Store
	log     logging.Logger
}

// Option configures an HTTPClient.
type Option func(*httpOptions)

type httpOptions struct {
	apiKey    string
	timeout   time.Duration
	transport http.RoundTripper
	log       logging.Logger
}

// WithAPIKey sends key in the x-api-key header.
func WithAPIKey(key string) Option {
	return func(o *httpOptions) { o.apiKey = key }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *httpOptions) { o.timeout = d }
}

// WithTransport replaces the underlying round tripper (default
// http.DefaultTransport). The auth interceptor always wraps it.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *httpOptions) { o.transport = rt }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return func(o *httpOptions) { o.log = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "https://reqres.in/api".
func NewHTTPClient(baseURL string, tokens session.Store, opts ...Option) (*HTTPClient, error) {
	if tokens == nil {
		return nil, errors.New("session store is required")
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	o := httpOptions{transport: http.DefaultTransport, log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Timeout: o.timeout,
			Transport: &authTransport{
				base:   o.transport,
				tokens: tokens,
				apiKey: o.apiKey,
				log:    o.log,
			},
		},
		tokens: tokens,
		log:    o.log,
	}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type singleUserResponse struct {
	Data models.User `json:"data"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Login exchanges credentials for a token and stores it. A rejection by the
// service is reported as ErrUnauthorized.
func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusBadRequest {
			se.wrapped = ErrUnauthorized
		}
		return fmt.Errorf("login error: %w", err)
	}
	if resp.Token == "" {
		return errors.New("login error: response carried no token")
	}

	if err := c.tokens.Set(ctx, session.Session{Token: resp.Token, Email: email}); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	c.log.Info(ctx, "logged in", "email", email)
	return nil
}

// ListUsers fetches one page of the directory.
func (c *HTTPClient) ListUsers(ctx context.Context, page int) (*models.UserPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))

	var p models.UserPage
	if err := c.do(ctx, http.MethodGet, "/users", q, nil, &p); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if p.Data == nil {
		p.Data = []models.User{}
	}
	return &p, nil
}

// GetUser fetches one record.
func (c *HTTPClient) GetUser(ctx context.Context, id int) (*models.User, error) {
	var resp singleUserResponse
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &resp.Data, nil
}

// CreateUser posts u without an identifier and returns the created record
// with the id the service assigned.
func (c *HTTPClient) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	u.ID = nil

	var created models.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, u, &created); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

// UpdateUser replaces the record at id. The id is kept when the service
// leaves it out of the response.
func (c *HTTPClient) UpdateUser(ctx context.Context, id int, u models.User) (*models.User, error) {
	u.ID = models.IntPtr(id)

	var updated models.User
	if err := c.do(ctx, http.MethodPut, userPath(id), nil, u, &updated); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	if updated.ID == nil || *updated.ID != id {
		updated.ID = models.IntPtr(id)
	}
	return &updated, nil
}

// DeleteUser removes the record at id.
func (c *HTTPClient) DeleteUser(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, userPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func userPath(id int) string {
	return "/users/" + strconv.Itoa(id)
}

// do sends one request and decodes a JSON response into out when out is
// non-nil and the body is not empty.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return mapStatus(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) mapTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, errTokenStore) {
		return err
	}
	c.log.Warn(ctx, "request failed", "error", err)
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// mapStatus turns an HTTP failure into a StatusError that matches the
// package sentinels with errors.Is.
func mapStatus(code int, body []byte) error {
	se := &StatusError{Code: code}

	var er errorResponse
	if json.Unmarshal(body, &er) == nil {
		se.Message = er.Error
		if se.Message == "" {
			se.Message = er.Message
		}
	}

	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		se.wrapped = ErrUnauthorized
	case code == http.StatusNotFound:
		se.wrapped = ErrNotFound
	case code >= http.StatusInternalServerError:
		se.wrapped = ErrUnavailable
	}
	return se
}
