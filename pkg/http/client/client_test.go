package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/data", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL, Timeout: 5 * time.Second})

	resp, err := c.Get(context.Background(), "/api/data")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok": true}`, string(resp.Body))
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("recovered"))
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL, Timeout: 5 * time.Second, MaxRetries: 5})

	resp, err := c.Get(context.Background(), "/flaky")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "recovered", string(resp.Body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetExhaustsRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL, Timeout: 5 * time.Second, MaxRetries: 2})

	_, err := c.Get(context.Background(), "/down")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "initial attempt plus two retries")
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such station"))
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL, Timeout: 5 * time.Second, MaxRetries: 5})

	resp, err := c.Get(context.Background(), "/missing")
	require.NoError(t, err, "non-5xx responses are the caller's problem")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "no such station", string(resp.Body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetFuncOverride(t *testing.T) {
	c := &Client{
		GetFunc: func(ctx context.Context, path string) (*Response, error) {
			return &Response{StatusCode: 200, Body: []byte(path)}, nil
		},
	}

	resp, err := c.Get(context.Background(), "/stubbed")
	require.NoError(t, err)
	assert.Equal(t, "/stubbed", string(resp.Body))
}

func TestGetCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Options{BaseURL: server.URL, MaxRetries: 10})

	_, err := c.Get(ctx, "/never")
	require.Error(t, err)
}
