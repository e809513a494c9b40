package turbocache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orishu/turbocache/cache"
	"github.com/orishu/turbocache/cache/memory"
)

func TestLookupIterator_HitSkipsInner(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()
	require.NoError(t, cache.Put(ctx, h, "student:1", "cached-john"))

	inner := newSliceIter[string]() // must never be pulled
	it := NewLookupIterator[string](inner, NewSliceKeys([]string{"student:1"}), h, false)

	require.True(t, it.Next(ctx))
	assert.Equal(t, "cached-john", it.Value())
	assert.False(t, it.Next(ctx))
	assert.NoError(t, it.Err())
	assert.Equal(t, 0, inner.pos)
}

func TestLookupIterator_MissPullsOneInnerRow(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()

	inner := newSliceIter("db-ori")
	it := NewLookupIterator[string](inner, NewSliceKeys([]string{"student:2"}), h, false)

	require.True(t, it.Next(ctx))
	assert.Equal(t, "db-ori", it.Value())
	assert.False(t, it.Next(ctx))
	assert.NoError(t, it.Err())

	// populate was false: a miss must not have been written back.
	_, ok, err := cache.Get[string](ctx, h, "student:2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupIterator_MissAndPopulateWritesBack(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()

	inner := newSliceIter("db-dan")
	it := NewLookupIterator[string](inner, NewSliceKeys([]string{"student:3"}), h, true)

	require.True(t, it.Next(ctx))
	assert.Equal(t, "db-dan", it.Value())
	assert.False(t, it.Next(ctx))

	val, ok, err := cache.Get[string](ctx, h, "student:3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "db-dan", val)
}

func TestLookupIterator_MixedHitsAndMisses(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()
	require.NoError(t, cache.Put(ctx, h, "student:1", "cached-john"))

	inner := newSliceIter("db-ori", "db-dan")
	it := NewLookupIterator[string](inner, NewSliceKeys([]string{"student:1", "student:2", "student:3"}), h, false)

	var got []string
	for it.Next(ctx) {
		got = append(got, it.Value())
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"cached-john", "db-ori", "db-dan"}, got)
}

func TestLookupIterator_FewerInnerRowsThanMisses(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()

	inner := newSliceIter("db-ori") // only one row for two misses
	it := NewLookupIterator[string](inner, NewSliceKeys([]string{"student:2", "student:3"}), h, false)

	require.True(t, it.Next(ctx))
	assert.Equal(t, "db-ori", it.Value())

	assert.False(t, it.Next(ctx))
	assert.NoError(t, it.Err())
}

func TestLookupIterator_CacheReadErrorTerminates(t *testing.T) {
	ctx := context.Background()
	h := failingGetHandle{inner: memory.New().Handle()}

	inner := newSliceIter("db-ori", "db-dan")
	it := NewLookupIterator[string](inner, NewSliceKeys([]string{"student:1", "student:2"}), h, false)

	// First key hits the failing GetBytes: the iterator discards one
	// pending inner row and terminates without surfacing the cache error.
	assert.False(t, it.Next(ctx))
	assert.NoError(t, it.Err())
}

type failingGetHandle struct {
	inner cache.Handle
}

func (h failingGetHandle) GetBytes(ctx context.Context, key string) ([]byte, error) {
	return nil, cache.NewError("simulated read failure", nil)
}
func (h failingGetHandle) PutBytes(ctx context.Context, key string, value []byte) error {
	return h.inner.PutBytes(ctx, key, value)
}
func (h failingGetHandle) Delete(ctx context.Context, key string) error {
	return h.inner.Delete(ctx, key)
}
func (h failingGetHandle) ScanKeys(ctx context.Context, pattern string) (map[string]string, error) {
	return h.inner.ScanKeys(ctx, pattern)
}
func (h failingGetHandle) Clone() cache.Handle { return h }
