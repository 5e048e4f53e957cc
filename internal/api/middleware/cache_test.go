package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiderm/storefront-backend/internal/api/middleware"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/observability"
)

// memoryCache is a map-backed CacheProvider for middleware tests
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.entries[key]
	return ok, nil
}

func TestCacheMiddleware_MissThenHit(t *testing.T) {
	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	cache := newMemoryCache()
	m := middleware.NewCacheMiddleware(cache, metrics)

	calls := 0
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"facets":[]}`))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/facets?categorySlug=skincare", nil))

	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/facets?categorySlug=skincare", nil))

	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls, "cached response must not reach the handler")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestCacheMiddleware_QueryStringIsPartOfTheKey(t *testing.T) {
	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	m := middleware.NewCacheMiddleware(newMemoryCache(), metrics)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.RawQuery))
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/products?categorySlug=skincare&optionIds=opt-dry", nil))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/products?categorySlug=skincare&optionIds=opt-oily", nil))

	// A different selection must not be served the first selection's page.
	assert.Equal(t, "MISS", second.Header().Get("X-Cache"))
	assert.NotEqual(t, first.Body.String(), second.Body.String())
}

func TestCacheMiddleware_UnconfiguredRouteBypassesCache(t *testing.T) {
	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	cache := newMemoryCache()
	m := middleware.NewCacheMiddleware(cache, metrics)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Empty(t, cache.entries)
}

func TestCacheMiddleware_NilMetricsIsSafe(t *testing.T) {
	m := middleware.NewCacheMiddleware(newMemoryCache(), nil)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"brands":[]}`))
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/brands", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
