package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/diradmin/internal/client/session"
	"github.com/dmitrijs2005/diradmin/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id for correlating client logs.
const RequestIDHeader = "X-Request-Id"

// APIKeyHeader is the header some deployments (reqres.in among them) require.
const APIKeyHeader = "x-api-key"

var errTokenStore = errors.New("read token")

// authTransport is the request-stage interceptor. It stamps JSON headers
// and a request id on every request and adds the bearer token when the
// session store holds one.
type authTransport struct {
	base   http.RoundTripper
	tokens session.Store
	apiKey string
	log    logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := session.Token(ctx, t.tokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errTokenStore, err)
	}

	// RoundTrippers must not modify the caller's request.
	r := req.Clone(ctx)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")
	if r.Header.Get(RequestIDHeader) == "" {
		r.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if t.apiKey != "" {
		r.Header.Set(APIKeyHeader, t.apiKey)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	t.log.Debug(ctx, "http request",
		"method", r.Method,
		"url", r.URL.String(),
		"request_id", r.Header.Get(RequestIDHeader),
		"authenticated", token != "",
	)

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	t.log.Debug(ctx, "http response",
		"status", resp.StatusCode,
		"request_id", r.Header.Get(RequestIDHeader),
	)
	return resp, nil
}
