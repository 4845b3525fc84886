package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// ProfileClient fetches public player profiles.
type ProfileClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Lookup returns the raw profile payload for uid.
func (c *ProfileClient) Lookup(ctx context.Context, uid string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("uid", uid)

	return get(ctx, c.HTTPClient, c.BaseURL+"/info?"+q.Encode())
}
