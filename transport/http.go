package transport

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/justapithecus/photodrop/iox"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 60 * time.Second

// DefaultContentType keeps the request a CORS "simple request" so that the
// same endpoint works for browser clients without a preflight.
const DefaultContentType = "text/plain;charset=utf-8"

// MaxResponseBytes caps how much of a readable response body is kept.
const MaxResponseBytes = 1 << 20

// Config configures the HTTP transport.
type Config struct {
	// Timeout is the per-request timeout (default 60s). Negative disables it.
	Timeout time.Duration
	// ContentType is sent with every request (default text/plain;charset=utf-8).
	ContentType string
	// Headers are custom HTTP headers added to each request.
	Headers map[string]string
}

// HTTPTransport implements Transport over net/http.
type HTTPTransport struct {
	config Config
	client *http.Client
}

// NewHTTP creates an HTTP transport from the given config.
func NewHTTP(cfg Config) *HTTPTransport {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	if cfg.ContentType == "" {
		cfg.ContentType = DefaultContentType
	}

	return &HTTPTransport{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	Code int
	// Body is the (possibly truncated) response text, if any.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Post performs a readable POST. Any 2xx status is a success, even when
// the response body cannot be read.
func (t *HTTPTransport) Post(ctx context.Context, endpoint string, body []byte) (*Response, error) {
	resp, err := t.do(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}
	defer iox.DrainClose(resp.Body)

	// The status line has arrived, so the server has ruled on the upload.
	// A body that breaks off afterwards is treated as empty.
	data, err := iox.ReadCapped(resp.Body, MaxResponseBytes)
	if err != nil {
		data = nil
	}

	out := &Response{StatusCode: resp.StatusCode, Body: data}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	return out, nil
}

// PostOpaque performs a blind POST. The status code is deliberately not
// consulted.
func (t *HTTPTransport) PostOpaque(ctx context.Context, endpoint string, body []byte) error {
	resp, err := t.do(ctx, endpoint, body)
	if err != nil {
		return err
	}
	iox.DrainClose(resp.Body)
	return nil
}

func (t *HTTPTransport) do(ctx context.Context, endpoint string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", t.config.ContentType)
	for k, v := range t.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// Close releases idle connections.
func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

// Verify HTTPTransport implements Transport.
var _ Transport = (*HTTPTransport)(nil)
