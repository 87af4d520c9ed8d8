// Package ports defines the core interfaces for the application.
package ports

import "context"

// Request is a single backend call.
type Request struct {
	// Method is the HTTP method, e.g. "GET".
	Method string
	// Path is appended to the configured base URL, e.g. "/category".
	Path string
	// Body is JSON-encoded when non-nil.
	Body any
}

// Requester sends authenticated requests to the backend.
//
//go:generate mockgen -source=api.go -destination=mocks/mock_api.go -package=mocks
type Requester interface {
	// Send performs the request and returns the raw response body of a 2xx answer.
	// Non-2xx answers are returned as errors carrying the status code and the
	// server message when one can be extracted.
	Send(ctx context.Context, req Request) ([]byte, error)
}
