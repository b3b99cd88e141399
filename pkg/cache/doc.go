// Package cache provides a generic, thread-safe, no-eviction cache used as
// the instance store backing the constructor pool's memoisation: an entry
// for a config IRI lives for the pool's entire lifetime once written, and
// is never evicted by size or age.
//
// # Overview
//
//	cache, err := cache.NewSimple[string]()
//	cache.Set("key", "value")
//	value, ok := cache.Get("key")
//
// A NewNoop cache is also provided for exercising a Construction Strategy
// without memoisation (every Get misses, every Set is a no-op).
//
// # Observability
//
// Statistics (hits, misses, sets, deletes, current size) are always
// collected and available via cache.Stats(), with no external dependency.
// Prometheus export is optional, enabled with WithMetrics():
//
//	cache, err := cache.NewSimple[*Instance](
//		cache.WithMetrics[*Instance](registry, "pool"),
//		cache.WithEvictionCallback[*Instance](func(key string, value *Instance) {
//			log.Printf("removed: %s", key)
//		}),
//	)
//
// # Thread Safety
//
// All operations are safe for concurrent use: reads take an RWMutex
// read-lock, writes take the write-lock, and eviction callbacks are
// invoked outside the lock to avoid deadlocks if the callback itself
// touches the cache.
//
// # Testing
//
//	cache, err := cache.NewSimple[int]()
//	cache.Set("key", 42)
//	_, _ = cache.Get("key")
//	_, _ = cache.Get("missing")
//
//	assert.Equal(t, int64(1), cache.Stats().Hits())
//	assert.Equal(t, int64(1), cache.Stats().Misses())
//	assert.Equal(t, 0.5, cache.Stats().HitRatio())
package cache
