package turbocache

import (
	"context"

	"github.com/orishu/turbocache/cache"
)

// WrappableUpdate is satisfied by any mutating statement produced by
// turbostmt (or a caller's own query layer). Gaining InvalidateCacheOf
// costs nothing beyond implementing ExecQuery.
type WrappableUpdate[Conn any] interface {
	ExecQuery[Conn]
}

// InvalidateCacheOf wraps update so that keys are invalidated in h before
// update runs. Invalidation is ordered strictly before execution and any
// invalidation failure aborts the update entirely — an update whose cache
// entries could not be torn down must not be allowed to write data a
// stale cache read could still serve.
func InvalidateCacheOf[Conn any](update WrappableUpdate[Conn], h cache.Handle, keys []string) *UpdateWrapper[Conn] {
	return &UpdateWrapper[Conn]{inner: update, cache: h, keys: keys}
}

// UpdateWrapper is the statement produced by InvalidateCacheOf.
type UpdateWrapper[Conn any] struct {
	inner WrappableUpdate[Conn]
	cache cache.Handle
	keys  []string
}

// Execute invalidates every key in order, then, only if every invalidation
// succeeded, runs the wrapped update and returns its affected row count.
func (w *UpdateWrapper[Conn]) Execute(ctx context.Context, conn Conn) (int64, error) {
	for _, key := range w.keys {
		if err := w.cache.Delete(ctx, key); err != nil {
			return 0, cache.NewError("cache invalidation failed, update aborted for key "+key, err)
		}
	}
	return w.inner.Execute(ctx, conn)
}
