package turbocache

import (
	"context"

	"github.com/orishu/turbocache/cache"
	"github.com/orishu/turbocache/internal/logging"
)

// PopulatingIterator wraps an inner RowIter that streams (Row, Key) pairs,
// emitting just the Row downstream while writing each successful pair's Row
// to the cache under its key. Populating the cache is best-effort and must never block or
// degrade read progress, so a cache-write failure is logged as a warning
// and the stream continues unaffected.
type PopulatingIterator[Row, Key any] struct {
	inner RowIter[Pair[Row, Key]]
	cache cache.Handle
	keyFn func(Key) string

	current Row
	err     error
}

// NewPopulatingIterator builds a PopulatingIterator. keyFn converts the
// caller's Key type to the string cache key (identity when Key is already
// string).
func NewPopulatingIterator[Row, Key any](inner RowIter[Pair[Row, Key]], h cache.Handle, keyFn func(Key) string) *PopulatingIterator[Row, Key] {
	return &PopulatingIterator[Row, Key]{inner: inner, cache: h, keyFn: keyFn}
}

func (it *PopulatingIterator[Row, Key]) Next(ctx context.Context) bool {
	if !it.inner.Next(ctx) {
		it.err = it.inner.Err()
		return false
	}

	pair := it.inner.Value()
	it.current = pair.Row

	key := it.keyFn(pair.Key)
	if err := cache.Put(ctx, it.cache, key, pair.Row); err != nil {
		logging.LogWarning(ctx, "populate_cache: failed to write cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	return true
}

func (it *PopulatingIterator[Row, Key]) Value() Row { return it.current }
func (it *PopulatingIterator[Row, Key]) Err() error  { return it.err }
func (it *PopulatingIterator[Row, Key]) Close() error {
	return it.inner.Close()
}
