package turbocache

import (
	"context"

	"github.com/orishu/turbocache/cache"
)

// WrappableQuery is satisfied by any select query produced by turbostmt (or
// a caller's own query layer) that tunnels a per-row cache key alongside
// each row. A query can be passed to PopulateCacheOf, TryFromCacheOf,
// TryFromCacheMultiOf, and TryFromCacheAndPopulateOf simply by implementing
// LoadQuery[Pair[T, string], Conn] — the key-tunnel column is the only
// extra thing the query layer has to supply.
type WrappableQuery[T, Conn any] interface {
	LoadQuery[Pair[T, string], Conn]
}

// PopulateCacheOf wraps query so that every row it loads is written to h
// under its tunneled key as it streams past.
func PopulateCacheOf[T, Conn any](query WrappableQuery[T, Conn], h cache.Handle) *SelectCachingWrapper[T, Conn] {
	return &SelectCachingWrapper[T, Conn]{inner: query, cache: h}
}

// TryFromCacheOf checks h for key before falling back to query for a single
// row.
func TryFromCacheOf[T, Conn any](query WrappableQuery[T, Conn], h cache.Handle, key string) *SelectCacheReadWrapper[T, Conn] {
	return &SelectCacheReadWrapper[T, Conn]{inner: query, cache: h, keys: NewSliceKeys([]string{key})}
}

// TryFromCacheMultiOf checks h for each key in keys, in order, falling back
// to query for whichever keys miss. Duplicate keys are not de-duplicated —
// each occurrence of a key is looked up independently.
func TryFromCacheMultiOf[T, Conn any](query WrappableQuery[T, Conn], h cache.Handle, keys []string) *SelectCacheReadWrapper[T, Conn] {
	return &SelectCacheReadWrapper[T, Conn]{inner: query, cache: h, keys: NewSliceKeys(keys)}
}

// TryFromCacheAndPopulateOf behaves like TryFromCacheOf but additionally
// writes a miss back to the cache, the way PopulateCacheOf would.
func TryFromCacheAndPopulateOf[T, Conn any](query WrappableQuery[T, Conn], h cache.Handle, key string) *SelectCacheReadWrapper[T, Conn] {
	return &SelectCacheReadWrapper[T, Conn]{inner: query, cache: h, keys: NewSliceKeys([]string{key}), populate: true}
}

// SelectCachingWrapper is the query produced by PopulateCacheOf. It always
// runs the wrapped query and mirrors every row into the cache; it never
// consults the cache for reads.
type SelectCachingWrapper[T, Conn any] struct {
	inner WrappableQuery[T, Conn]
	cache cache.Handle
}

func (w *SelectCachingWrapper[T, Conn]) InternalLoad(ctx context.Context, conn Conn) (RowIter[T], error) {
	inner, err := w.inner.InternalLoad(ctx, conn)
	if err != nil {
		return nil, err
	}
	return NewPopulatingIterator[T, string](inner, w.cache, identity), nil
}

// SelectCacheReadWrapper is the query produced by TryFromCacheOf,
// TryFromCacheMultiOf, and TryFromCacheAndPopulateOf. Each key either hits
// the cache or pulls exactly one row from the wrapped query, per
// LookupIterator's contract.
type SelectCacheReadWrapper[T, Conn any] struct {
	inner    WrappableQuery[T, Conn]
	cache    cache.Handle
	keys     KeyIter
	populate bool
}

func (w *SelectCacheReadWrapper[T, Conn]) InternalLoad(ctx context.Context, conn Conn) (RowIter[T], error) {
	inner, err := w.inner.InternalLoad(ctx, conn)
	if err != nil {
		return nil, err
	}
	return NewLookupIterator[T](stripKey[T]{inner}, w.keys, w.cache, w.populate), nil
}

func identity(k string) string { return k }

// stripKey adapts a RowIter[Pair[T, string]] to RowIter[T] by discarding
// the tunneled key column — LookupIterator only needs the key it was given
// up front to decide hit/miss; the row's own tunneled key is redundant once
// the row has actually been loaded from the database.
type stripKey[T any] struct {
	inner RowIter[Pair[T, string]]
}

func (s stripKey[T]) Next(ctx context.Context) bool { return s.inner.Next(ctx) }
func (s stripKey[T]) Value() T                       { return s.inner.Value().Row }
func (s stripKey[T]) Err() error                     { return s.inner.Err() }
func (s stripKey[T]) Close() error                   { return s.inner.Close() }
