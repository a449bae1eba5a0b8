// Package cache implements the bounded LRU response cache from spec.md
// §4.5: a capacity-bounded key→frame map layered over a doubly-linked
// MRU-first list, persisted to disk at shutdown and reloaded at startup.
//
// The cache is dispatcher-private (spec.md §4.6, §5): only the parent
// goroutine ever calls [Cache.Get]/[Cache.Put]/[Cache.Cleanup], so no
// internal locking is used here — it would protect against a race the
// architecture never creates.
package cache

// Cache is the interface the dispatcher depends on. [New] returns either
// a [*LRU] (capacity > 0) or the no-op [*Null] cache (capacity == 0),
// satisfying spec.md §6's "alternate cache backend" requirement without
// the dispatcher needing to know which.
type Cache interface {
	// Get returns a copy of the cached frame for key, or (nil, false) on miss.
	Get(key string) ([]byte, bool)

	// Put inserts or refreshes key with frame. A no-op on a zero-capacity cache.
	Put(key string, frame []byte)

	// Cleanup persists the cache (if capacity > 0) and releases it. After
	// Cleanup, the cache must not be used again.
	Cleanup() error
}

// New constructs the appropriate [Cache] implementation for capacity,
// loading any existing persistence file at persistPath when capacity > 0.
// A missing persistence file is not an error (spec.md §4.5 "Init").
func New(capacity int, persistPath string) (Cache, error) {
	if capacity <= 0 {
		return &Null{}, nil
	}

	return newLRU(capacity, persistPath)
}

// Null is the no-op cache backend (spec.md §6).
type Null struct{}

func (*Null) Get(string) ([]byte, bool) { return nil, false }
func (*Null) Put(string, []byte)        {}
func (*Null) Cleanup() error            { return nil }

var _ Cache = (*Null)(nil)
