package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

// fastHTTPConfig keeps retries but removes the waiting from tests.
func fastHTTPConfig(client *http.Client) HTTPClientConfig {
	return HTTPClientConfig{
		Client: client,
		Backoff: BackoffConfig{
			MaxRetries:      2,
			InitialInterval: time.Millisecond,
			MaxInterval:     2 * time.Millisecond,
		},
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func countingServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func get(url string) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	}
}

func TestDoRequestWithResilienceStatusMapping(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		wantErr   error
		wantCalls int32
	}{
		{"not found is terminal", http.StatusNotFound, weather.ErrNotFound, 1},
		{"client error is not retried", http.StatusUnauthorized, weather.ErrUpstream, 1},
		{"server error is retried", http.StatusBadGateway, weather.ErrUpstream, 3},
		{"rate limit is retried", http.StatusTooManyRequests, weather.ErrUpstream, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, calls := countingServer(t, tc.status, `{}`)
			cb := newCircuitBreaker("test-" + tc.name)

			resp, err := doRequestWithResilience(context.Background(), fastHTTPConfig(srv.Client()), cb, get(srv.URL))
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantCalls, atomic.LoadInt32(calls))
		})
	}
}

func TestGetJSONDecodes(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, `{"name":"ok"}`)

	var out struct {
		Name string `json:"name"`
	}
	err := getJSON(context.Background(), fastHTTPConfig(srv.Client()), newCircuitBreaker("decode"), get(srv.URL), &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Name)
}

func TestGetJSONMalformedPayload(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, `{not json`)

	var out map[string]any
	err := getJSON(context.Background(), fastHTTPConfig(srv.Client()), newCircuitBreaker("malformed"), get(srv.URL), &out)
	assert.ErrorIs(t, err, weather.ErrUpstream)
}

func TestDoRequestWithResilienceHonoursDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := doRequestWithResilience(ctx, fastHTTPConfig(srv.Client()), newCircuitBreaker("deadline"), get(srv.URL))
	assert.ErrorIs(t, err, weather.ErrUpstream)
}

func TestDoRequestWithResilienceWithoutClient(t *testing.T) {
	_, err := doRequestWithResilience(context.Background(), HTTPClientConfig{}, newCircuitBreaker("noclient"), get("http://unused"))
	assert.ErrorIs(t, err, weather.ErrUpstream)
}
