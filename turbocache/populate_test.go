package turbocache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orishu/turbocache/cache"
	"github.com/orishu/turbocache/cache/memory"
)

func TestPopulatingIterator_WritesEachRowToCache(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()

	inner := newSliceIter(
		Pair[string, string]{Row: "john", Key: "student:1"},
		Pair[string, string]{Row: "ori", Key: "student:2"},
	)

	it := NewPopulatingIterator[string, string](inner, h, func(k string) string { return k })

	var got []string
	for it.Next(ctx) {
		got = append(got, it.Value())
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"john", "ori"}, got)

	val, ok, err := cache.Get[string](ctx, h, "student:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "john", val)

	val, ok, err = cache.Get[string](ctx, h, "student:2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ori", val)
}

func TestPopulatingIterator_PropagatesInnerError(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()

	inner := newSliceIter(
		Pair[string, string]{Row: "john", Key: "student:1"},
		Pair[string, string]{Row: "ori", Key: "student:2"},
	)
	inner.failAt = 1

	it := NewPopulatingIterator[string, string](inner, h, func(k string) string { return k })

	assert.True(t, it.Next(ctx))
	assert.Equal(t, "john", it.Value())

	assert.False(t, it.Next(ctx))
	assert.Error(t, it.Err())
}

func TestPopulatingIterator_CacheWriteFailureDoesNotStopStream(t *testing.T) {
	ctx := context.Background()

	// A handle whose PutBytes always fails, to verify the populate path
	// logs and continues rather than aborting the stream.
	h := failingPutHandle{inner: memory.New().Handle()}

	inner := newSliceIter(
		Pair[string, string]{Row: "john", Key: "student:1"},
	)

	it := NewPopulatingIterator[string, string](inner, h, func(k string) string { return k })

	assert.True(t, it.Next(ctx))
	assert.Equal(t, "john", it.Value())
	assert.False(t, it.Next(ctx))
	assert.NoError(t, it.Err())
}

type failingPutHandle struct {
	inner cache.Handle
}

func (h failingPutHandle) GetBytes(ctx context.Context, key string) ([]byte, error) {
	return h.inner.GetBytes(ctx, key)
}
func (h failingPutHandle) PutBytes(ctx context.Context, key string, value []byte) error {
	return cache.NewError("simulated write failure", nil)
}
func (h failingPutHandle) Delete(ctx context.Context, key string) error {
	return h.inner.Delete(ctx, key)
}
func (h failingPutHandle) ScanKeys(ctx context.Context, pattern string) (map[string]string, error) {
	return h.inner.ScanKeys(ctx, pattern)
}
func (h failingPutHandle) Clone() cache.Handle { return h }
