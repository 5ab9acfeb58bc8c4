package trading212

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/etnz/t212"
	"github.com/etnz/t212/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{"items": orders(0, 2)})
	}))
	defer srv.Close()

	dir := t.TempDir()
	for range 2 {
		got, err := New(srv.URL, "key", "secret", WithDiskCache(dir)).FetchOrders(context.Background(), nil)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}
	assert.Equal(t, int32(1), calls.Load(), "second fetch is served from the cache")

	// another account does not share the cache.
	_, err := New(srv.URL, "other", "secret", WithDiskCache(dir)).FetchOrders(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDiskCache_Refresh(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1))
		json.NewEncoder(w).Encode(map[string]any{"items": orders(0, n)})
	}))
	defer srv.Close()

	c := New(srv.URL, "key", "secret", WithDiskCache(t.TempDir()))
	ctx := context.Background()

	got, err := c.FetchOrders(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// a new order was placed since.
	got, err = c.FetchOrders(t212.Refresh(ctx), nil)
	require.NoError(t, err)
	assert.Len(t, got, 2, "a refresh reaches the server")
	assert.Equal(t, int32(2), calls.Load())

	got, err = c.FetchOrders(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2, "the refreshed page replaced the cached one")
	assert.Equal(t, int32(2), calls.Load())
}

func TestDiskCache_SessionReload(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1))
		json.NewEncoder(w).Encode(map[string]any{"items": orders(0, n)})
	}))
	defer srv.Close()

	s := t212.NewSession(New(srv.URL, "key", "secret", WithDiskCache(t.TempDir())), nil)
	ctx := context.Background()

	b, err := s.Book(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())

	b, err = s.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len(), "a reload sees the new orders")

	s.Invalidate()
	b, err = s.Book(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, int32(3), calls.Load())
}

func TestNoCache(t *testing.T) {
	for _, tc := range []struct {
		header string
		want   bool
	}{
		{"", false},
		{"no-cache", true},
		{"max-age=0, No-Cache", true},
		{"no-store", false},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Cache-Control", tc.header)
		}
		assert.Equal(t, tc.want, noCache(req), "Cache-Control: %q", tc.header)
	}
}

func TestDiskCache_Errors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	dir := t.TempDir()
	for range 2 {
		_, err := New(srv.URL, "key", "secret", WithDiskCache(dir)).FetchOrders(context.Background(), nil)
		require.Error(t, err)
	}
	assert.Equal(t, int32(2), calls.Load(), "errors are not cached")
}

func TestDiskCache_Key(t *testing.T) {
	c := &diskCache{salt: "a"}
	req := httptest.NewRequest(http.MethodGet, "https://live.trading212.com/api/v0/equity/history/orders?cursor=0&limit=50", nil)

	monday := c.key(date.New(2025, 10, 20), req)
	assert.Equal(t, monday, c.key(date.New(2025, 10, 20), req))
	assert.NotEqual(t, monday, c.key(date.New(2025, 10, 21), req), "entries expire every day")
	assert.NotEqual(t, monday, (&diskCache{salt: "b"}).key(date.New(2025, 10, 20), req))
}
