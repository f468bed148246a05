// Package transport delivers encoded submissions to the upload endpoint.
//
// Two delivery modes exist. Post is the readable mode: the caller sees the
// status and body. PostOpaque is the blind mode: the request is sent and the
// response is discarded unseen, so only transport-level errors are visible.
package transport

import "context"

// Response is the readable result of a Post.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport sends a request body to an endpoint.
// Implementations must respect context cancellation and deadlines.
type Transport interface {
	// Post sends body and returns the readable response. A non-2xx status
	// is reported as a *StatusError alongside the response.
	Post(ctx context.Context, endpoint string, body []byte) (*Response, error)

	// PostOpaque sends body without inspecting the response. It returns an
	// error only when the request could not be delivered.
	PostOpaque(ctx context.Context, endpoint string, body []byte) error
}
