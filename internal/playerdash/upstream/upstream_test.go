package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pixelforge/playerdash/internal/playerdash/upstream"
	"github.com/stretchr/testify/require"
)

func fakeUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestProfileLookup_Success(t *testing.T) {
	t.Parallel()

	srv := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/info", r.URL.Path)
		require.Equal(t, "123456789", r.URL.Query().Get("uid"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"nickname":"pixel","level":42}`))
	})

	c := &upstream.ProfileClient{BaseURL: srv.URL, HTTPClient: upstream.NewHTTPClient(0)}

	data, err := c.Lookup(context.Background(), "123456789")
	require.NoError(t, err)
	require.JSONEq(t, `{"nickname":"pixel","level":42}`, string(data))
}

func TestProfileLookup_NotFound(t *testing.T) {
	t.Parallel()

	srv := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c := &upstream.ProfileClient{BaseURL: srv.URL, HTTPClient: upstream.NewHTTPClient(0)}

	_, err := c.Lookup(context.Background(), "123456789")
	require.ErrorIs(t, err, upstream.ErrPlayerNotFound)
}

func TestProfileLookup_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c := &upstream.ProfileClient{BaseURL: srv.URL, HTTPClient: upstream.NewHTTPClient(0)}

	_, err := c.Lookup(context.Background(), "123456789")

	var statusErr *upstream.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadGateway, statusErr.Code)
}

func TestProfileLookup_RateLimitedStatusIsNotSpecial(t *testing.T) {
	t.Parallel()

	srv := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	c := &upstream.ProfileClient{BaseURL: srv.URL, HTTPClient: upstream.NewHTTPClient(0)}

	// Only the like API maps 429 onto ErrRateLimited; for profile lookups
	// it is just another unexpected status.
	_, err := c.Lookup(context.Background(), "123456789")
	require.NotErrorIs(t, err, upstream.ErrRateLimited)

	var statusErr *upstream.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusTooManyRequests, statusErr.Code)
}

func TestLikeSend_Success(t *testing.T) {
	t.Parallel()

	srv := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/like", r.URL.Path)
		require.Equal(t, "123456789", r.URL.Query().Get("uid"))
		require.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"likes_sent":1}`))
	})

	c := &upstream.LikeClient{BaseURL: srv.URL, APIKey: "test-key", HTTPClient: upstream.NewHTTPClient(0)}

	data, err := c.Send(context.Background(), "123456789")
	require.NoError(t, err)
	require.JSONEq(t, `{"likes_sent":1}`, string(data))
}

func TestLikeSend_RateLimited(t *testing.T) {
	t.Parallel()

	srv := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	c := &upstream.LikeClient{BaseURL: srv.URL, APIKey: "k", HTTPClient: upstream.NewHTTPClient(0)}

	_, err := c.Send(context.Background(), "123456789")
	require.ErrorIs(t, err, upstream.ErrRateLimited)
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	srv := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	c := &upstream.ProfileClient{
		BaseURL:    srv.URL,
		HTTPClient: upstream.NewHTTPClient(20 * time.Millisecond),
	}

	_, err := c.Lookup(context.Background(), "123456789")
	require.ErrorIs(t, err, upstream.ErrTimeout)
}

func TestConnectionRefused(t *testing.T) {
	t.Parallel()

	// Port 1 is essentially guaranteed to refuse connections.
	c := &upstream.ProfileClient{
		BaseURL:    "http://127.0.0.1:1",
		HTTPClient: upstream.NewHTTPClient(time.Second),
	}

	_, err := c.Lookup(context.Background(), "123456789")
	require.ErrorIs(t, err, upstream.ErrUnavailable)
}

func TestInvalidJSONBody(t *testing.T) {
	t.Parallel()

	srv := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	c := &upstream.ProfileClient{BaseURL: srv.URL, HTTPClient: upstream.NewHTTPClient(0)}

	_, err := c.Lookup(context.Background(), "123456789")
	require.ErrorIs(t, err, upstream.ErrUnavailable)
}
