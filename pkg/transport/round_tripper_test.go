package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestaoplus/admin-gateway/pkg/logger"
	"github.com/gestaoplus/admin-gateway/pkg/transport"
)

func TestRoundTripper_PropagatesRequestID(t *testing.T) {
	t.Parallel()

	var gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
	}))
	t.Cleanup(server.Close)

	client := &http.Client{
		Timeout:   10 * time.Second,
		Transport: transport.NewLogRoundTripper(http.DefaultTransport),
	}

	ctx := logger.WithRequestID(context.Background(), "req-42")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, "req-42", gotRequestID)
}

func TestRoundTripper_NoRequestID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-Id") != "" {
			t.Error("unexpected X-Request-Id header")
		}
	}))
	t.Cleanup(server.Close)

	client := &http.Client{
		Timeout:   10 * time.Second,
		Transport: transport.NewLogRoundTripper(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
}
