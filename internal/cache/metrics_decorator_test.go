package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/cache"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
)

type memoryCache struct {
	data   map[string]string
	getErr error
}

func (c *memoryCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, returnValue *string) error {
	if c.getErr != nil {
		return c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	*returnValue = v
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func TestMetricsDecorator(t *testing.T) {
	m := metrics.NewMetrics("cache_test")
	inner := &memoryCache{data: map[string]string{}}
	c := cache.NewMetricsDecorator[string](inner, m)
	ctx := context.Background()

	var got string
	require.ErrorIs(t, c.Get(ctx, "k", &got), cache.ErrMiss)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "v", got)

	require.NoError(t, c.Delete(ctx, "k"))

	inner.getErr = errors.New("connection refused")
	require.Error(t, c.Get(ctx, "k", &got))

	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheOperations.WithLabelValues("miss", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheOperations.WithLabelValues("set", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheOperations.WithLabelValues("get", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheOperations.WithLabelValues("delete", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheOperations.WithLabelValues("get", "error")), 0)
}
