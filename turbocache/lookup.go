package turbocache

import (
	"context"

	"github.com/orishu/turbocache/cache"
	"github.com/orishu/turbocache/internal/logging"
)

// KeyIter is a finite supplier of cache keys, the Go analogue of the
// original's `K: Iterator<Item = String>` bound. SliceKeys adapts a plain
// []string. NewLookupIterator accepts any KeyIter; TryFromCacheMultiOf takes
// a []string and wraps it in SliceKeys.
type KeyIter interface {
	Next() (string, bool)
}

// SliceKeys adapts a []string to KeyIter. The key sequence is consumed as
// an ordered multiset: duplicates are not de-duplicated.
type SliceKeys struct {
	keys []string
	pos  int
}

func NewSliceKeys(keys []string) *SliceKeys {
	return &SliceKeys{keys: keys}
}

func (s *SliceKeys) Next() (string, bool) {
	if s.pos >= len(s.keys) {
		return "", false
	}
	k := s.keys[s.pos]
	s.pos++
	return k, true
}

// LookupIterator interleaves a key sequence with an inner RowIter[Row]: a
// cache hit for a key short-circuits the inner iterator entirely; a miss
// pulls exactly one row from inner and, if populate is set, writes it back.
// For every key that misses, the Nth miss consumes the Nth pending inner
// row — never whatever order the inner query happens to return rows in.
type LookupIterator[Row any] struct {
	inner    RowIter[Row]
	keys     KeyIter
	cache    cache.Handle
	populate bool

	current Row
	err     error
	done    bool
}

// NewLookupIterator builds a LookupIterator. populate controls whether a
// miss is written back to the cache (try_from_cache_and_populate) or left
// alone (try_from_cache / try_from_cache_multi).
func NewLookupIterator[Row any](inner RowIter[Row], keys KeyIter, h cache.Handle, populate bool) *LookupIterator[Row] {
	return &LookupIterator[Row]{inner: inner, keys: keys, cache: h, populate: populate}
}

func (it *LookupIterator[Row]) Next(ctx context.Context) bool {
	if it.done {
		return false
	}

	key, ok := it.keys.Next()
	if !ok {
		it.done = true
		return false
	}

	value, hit, err := cache.Get[Row](ctx, it.cache, key)
	if err != nil {
		// A cache read failure terminates the iteration rather than falling
		// through to the database. We still discard one pending inner row
		// so that a caller who mixes hits, misses, and a trailing error
		// keeps the "Nth miss consumes the Nth inner row" invariant intact
		// for any iteration that happened before the failure.
		if it.inner.Next(ctx) {
			_ = it.inner.Value()
		}
		it.done = true
		return false
	}

	if hit {
		it.current = value
		return true
	}

	// Miss: pull exactly one row from the inner iterator.
	if !it.inner.Next(ctx) {
		it.err = it.inner.Err()
		it.done = true
		return false
	}
	row := it.inner.Value()

	if it.populate {
		if perr := cache.Put(ctx, it.cache, key, row); perr != nil {
			logging.LogWarning(ctx, "try_from_cache: failed to populate cache on miss", map[string]interface{}{
				"key":   key,
				"error": perr.Error(),
			})
		}
	}

	it.current = row
	return true
}

func (it *LookupIterator[Row]) Value() Row { return it.current }
func (it *LookupIterator[Row]) Err() error  { return it.err }
func (it *LookupIterator[Row]) Close() error {
	return it.inner.Close()
}
