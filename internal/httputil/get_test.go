// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ReturnsBody(t *testing.T) {
	var receivedUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUA = r.Header.Get("User-Agent")
		w.Write([]byte("hello"))
	}))
	defer ts.Close()

	body, err := Get(context.Background(), ts.Client(), ts.URL, "paperscope-test/0.1")
	require.NoError(t, err)

	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "paperscope-test/0.1", receivedUA)
}

func TestGet_EmptyUserAgentNotOverridden(t *testing.T) {
	var receivedUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUA = r.Header.Get("User-Agent")
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, "")
	require.NoError(t, err)

	// net/http sends its default agent when none is set explicitly.
	assert.Contains(t, receivedUA, "Go-http-client")
}

func TestGet_Non200IsError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantSubstr string
	}{
		{"server error", http.StatusInternalServerError, "HTTP 500"},
		{"not found", http.StatusNotFound, "HTTP 404"},
		{"rate limited is not retried", http.StatusTooManyRequests, "HTTP 429"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls++
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			_, err := Get(context.Background(), ts.Client(), ts.URL, "test")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSubstr)
			assert.Equal(t, 1, calls, "Get must issue exactly one request")
		})
	}
}

func TestGet_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get(ctx, ts.Client(), ts.URL, "test")
	assert.Error(t, err)
}

func TestGet_BodyReadIsBounded(t *testing.T) {
	old := MaxBodyBytes
	MaxBodyBytes = 16
	defer func() { MaxBodyBytes = old }()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(strings.Repeat("x", 1024)))
	}))
	defer ts.Close()

	body, err := Get(context.Background(), ts.Client(), ts.URL, "test")
	require.NoError(t, err)
	assert.Len(t, body, 16)
}
