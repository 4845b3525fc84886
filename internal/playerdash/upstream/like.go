package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
)

// LikeClient sends likes to a player profile. The API key travels as a query
// parameter per the provider's contract and must never be logged.
type LikeClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Send delivers one like to uid and returns the provider's response payload.
// The like API throttles callers, so its 429 is surfaced as ErrRateLimited.
func (c *LikeClient) Send(ctx context.Context, uid string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("uid", uid)
	q.Set("api_key", c.APIKey)

	data, err := get(ctx, c.HTTPClient, c.BaseURL+"/like?"+q.Encode())

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	return data, err
}
