package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orishu/turbocache/cache"
	"github.com/orishu/turbocache/cache/memory"
)

type student struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestGetPut_RoundTrip(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()

	require.NoError(t, cache.Put(ctx, h, "student:1", student{ID: 1, Name: "John"}))

	got, ok, err := cache.Get[student](ctx, h, "student:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, student{ID: 1, Name: "John"}, got)
}

func TestGet_Miss(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()

	got, ok, err := cache.Get[student](ctx, h, "student:missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestGet_DeserializeError(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()

	require.NoError(t, h.PutBytes(ctx, "student:1", []byte("not json")))

	_, _, err := cache.Get[student](ctx, h, "student:1")
	require.Error(t, err)

	var cacheErr *cache.CacheError
	assert.ErrorAs(t, err, &cacheErr)
}
