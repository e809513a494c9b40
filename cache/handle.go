package cache

import "context"

// Handle is the abstract key/value store contract every cache backend must
// implement: typed get/put/delete/scan over pre-serialized byte values, and
// a cheap clone so a handle can be shared along a query-wrapper chain.
//
// GetBytes returns (nil, nil) on a miss — callers must not treat a nil
// result as equivalent to an error; the distinction between "not present"
// and "failed to read" is load-bearing for the lookup wrapper (see
// turbocache/lookup.go).
type Handle interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	PutBytes(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// ScanKeys returns keys matching a glob pattern ('*', '?') along with a
	// best-effort stringified form of each value. Diagnostic only: no
	// ordering guarantee, and not required to be atomic with concurrent
	// mutations.
	ScanKeys(ctx context.Context, pattern string) (map[string]string, error)
	// Clone returns another handle to the same backing store. Cheap:
	// reference-counted or pool-backed, never a deep copy of the store.
	Clone() Handle
}
