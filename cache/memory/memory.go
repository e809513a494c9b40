// Package memory implements an in-process, single-store CacheHandle backed
// by a shared map. It never blocks and is safe for concurrent use by
// multiple handles cloned from the same Store.
package memory

import (
	"context"
	"path"
	"sync"

	"github.com/orishu/turbocache/cache"
)

// Store is the backing map shared by every handle cloned from it.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty, independent store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Handle returns a cache.Handle bound to this store. Every handle returned
// by this method (and every clone of it) observes the same underlying map.
func (s *Store) Handle() cache.Handle {
	return handle{store: s}
}

type handle struct {
	store *Store
}

func (h handle) GetBytes(_ context.Context, key string) ([]byte, error) {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()

	raw, found := h.store.data[key]
	if !found {
		return nil, nil
	}
	// Return a copy: the caller must not be able to mutate the stored bytes
	// through the slice they receive.
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (h handle) PutBytes(_ context.Context, key string, value []byte) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	h.store.data[key] = stored
	return nil
}

func (h handle) Delete(_ context.Context, key string) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	delete(h.store.data, key)
	return nil
}

func (h handle) ScanKeys(_ context.Context, pattern string) (map[string]string, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, cache.NewError("invalid scan pattern "+pattern, err)
	}

	h.store.mu.RLock()
	defer h.store.mu.RUnlock()

	out := make(map[string]string)
	for k, v := range h.store.data {
		matched, err := path.Match(pattern, k)
		if err != nil {
			return nil, cache.NewError("invalid scan pattern "+pattern, err)
		}
		if matched {
			out[k] = string(v)
		}
	}
	return out, nil
}

func (h handle) Clone() cache.Handle {
	return handle{store: h.store}
}
