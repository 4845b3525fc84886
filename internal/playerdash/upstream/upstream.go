// Package upstream holds thin clients for the third-party game-statistics
// APIs the dashboard proxies to. Responses are passed through as raw JSON;
// only status codes are normalized into errors the handlers can map.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds each upstream call.
const DefaultTimeout = 10 * time.Second

var (
	ErrPlayerNotFound = errors.New("upstream: player not found")

	// ErrRateLimited is only produced by the like API; the profile API
	// reports 429 as a plain StatusError like any other unexpected status.
	ErrRateLimited = errors.New("upstream: rate limit exceeded")

	ErrTimeout     = errors.New("upstream: request timed out")
	ErrUnavailable = errors.New("upstream: request failed")
)

// StatusError reports an unexpected upstream HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: unexpected status code %d", e.Code)
}

// NewHTTPClient returns the shared client for upstream calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// get performs the request and decodes a 2xx body as raw JSON. Non-2xx
// statuses and transport failures come back as the package's sentinel errors.
func get(ctx context.Context, client *http.Client, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		if !json.Valid(body) {
			return nil, fmt.Errorf("%w: invalid json body", ErrUnavailable)
		}
		return json.RawMessage(body), nil
	case http.StatusNotFound:
		return nil, ErrPlayerNotFound
	default:
		return nil, &StatusError{Code: resp.StatusCode}
	}
}
