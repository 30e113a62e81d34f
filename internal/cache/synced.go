package cache

import "sync"

// Synced serializes access to a Cache with a mutex held for the whole of each
// operation.
//
// A plain Mutex rather than an RWMutex: Get moves the entry to MRU, so every
// read is a write to the list.
type Synced[K comparable, V any] struct {
	mu sync.Mutex
	c  *Cache[K, V]
}

// NewSynced constructs a Synced cache. It fails like New.
func NewSynced[K comparable, V any](capacity int) (*Synced[K, V], error) {
	c, err := New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &Synced[K, V]{c: c}, nil
}

// OnEvict registers fn for capacity-triggered evictions. fn runs with the
// lock held and must not call back into s.
func (s *Synced[K, V]) OnEvict(fn func(key K, value V)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.OnEvict(fn)
}

// Get is Cache.Get under the lock.
func (s *Synced[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Get(key)
}

// Put is Cache.Put under the lock.
func (s *Synced[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Put(key, value)
}

// Remove is Cache.Remove under the lock.
func (s *Synced[K, V]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Remove(key)
}

// Peek is Cache.Peek under the lock.
func (s *Synced[K, V]) Peek(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Peek(key)
}

// Contains is Cache.Contains under the lock.
func (s *Synced[K, V]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Contains(key)
}

// Oldest is Cache.Oldest under the lock.
func (s *Synced[K, V]) Oldest() (K, V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Oldest()
}

// Len returns the number of resident entries.
func (s *Synced[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Len()
}

// Cap returns the maximum number of resident entries.
func (s *Synced[K, V]) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Cap()
}

// Keys returns keys in MRU -> LRU order.
func (s *Synced[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Keys()
}

// Clear drops every entry.
func (s *Synced[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Clear()
}

// Resize is Cache.Resize under the lock.
func (s *Synced[K, V]) Resize(capacity int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Resize(capacity)
}
