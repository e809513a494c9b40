package turbocache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orishu/turbocache/cache"
	"github.com/orishu/turbocache/cache/memory"
)

// fakeUpdate is a WrappableUpdate[int] that reports a fixed affected-row
// count, standing in for turbostmt.Update.
type fakeUpdate struct {
	affected int64
	called   bool
}

func (u *fakeUpdate) Execute(ctx context.Context, conn int) (int64, error) {
	u.called = true
	return u.affected, nil
}

func TestUpdateWrapper_InvalidatesThenExecutes(t *testing.T) {
	ctx := context.Background()
	h := memory.New().Handle()
	require.NoError(t, cache.Put(ctx, h, "student:1", "john"))

	u := &fakeUpdate{affected: 1}
	wrapped := InvalidateCacheOf[int](u, h, []string{"student:1"})

	n, err := wrapped.Execute(ctx, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.True(t, u.called)

	_, ok, err := cache.Get[string](ctx, h, "student:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateWrapper_AbortsOnInvalidationFailure(t *testing.T) {
	ctx := context.Background()
	h := failingDeleteHandle{inner: memory.New().Handle()}

	u := &fakeUpdate{affected: 1}
	wrapped := InvalidateCacheOf[int](u, h, []string{"student:1"})

	_, err := wrapped.Execute(ctx, 0)
	require.Error(t, err)
	assert.False(t, u.called)
}

type failingDeleteHandle struct {
	inner cache.Handle
}

func (h failingDeleteHandle) GetBytes(ctx context.Context, key string) ([]byte, error) {
	return h.inner.GetBytes(ctx, key)
}
func (h failingDeleteHandle) PutBytes(ctx context.Context, key string, value []byte) error {
	return h.inner.PutBytes(ctx, key, value)
}
func (h failingDeleteHandle) Delete(ctx context.Context, key string) error {
	return cache.NewError("simulated delete failure", nil)
}
func (h failingDeleteHandle) ScanKeys(ctx context.Context, pattern string) (map[string]string, error) {
	return h.inner.ScanKeys(ctx, pattern)
}
func (h failingDeleteHandle) Clone() cache.Handle { return h }
