// Package client talks to the remote user directory.
//
// Client is the contract the views depend on. HTTPClient implements it over
// the REST API: every request passes through an interceptor that adds JSON
// headers, a request id and, when the session store holds one, the bearer
// token. Failures surface as sentinel errors that callers match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound. Other HTTP
// failures are returned as *StatusError carrying the service's message.
package client
