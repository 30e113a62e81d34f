package cache

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is returned when a cache is built or resized with a
// capacity below 1.
var ErrInvalidCapacity = errors.New("cache: capacity must be at least 1")

// Cache is a fixed-capacity LRU key–value store.
//
// The core design is explicit and "mechanical":
// a map gives O(1) key lookup, and an intrusive doubly-linked list with two
// sentinel nodes maintains recency ordering.
//
// Cache is not safe for concurrent use. Callers that share an instance across
// goroutines must serialize access themselves, or use Synced.
type Cache[K comparable, V any] struct {
	capacity int
	items    map[K]*entry[K, V]

	// head.next is the most recently used entry (MRU), tail.prev the least
	// recently used one (LRU). Neither sentinel is ever stored in items.
	head, tail *entry[K, V]

	onEvict func(key K, value V)
}

// entry is one resident key/value pair plus its list position.
// We keep the key here because eviction starts from list nodes.
type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// New constructs an empty cache holding at most capacity entries.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	c := &Cache[K, V]{
		capacity: capacity,
		items:    make(map[K]*entry[K, V], capacity),
		head:     &entry[K, V]{},
		tail:     &entry[K, V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c, nil
}

// OnEvict registers fn to run for every capacity-triggered eviction.
// Explicit Remove and Clear do not call it. Pass nil to unregister.
func (c *Cache[K, V]) OnEvict(fn func(key K, value V)) {
	c.onEvict = fn
}

// Get returns the value stored for key and marks it as most recently used.
//
// A miss returns the zero value and false and leaves the cache untouched.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

// Put writes or overwrites key.
//
// Complexity:
//   - O(1) to locate/insert
//   - O(1) eviction of the LRU entry when a new key overflows capacity
func (c *Cache[K, V]) Put(key K, value V) {
	if e, ok := c.items[key]; ok {
		e.value = value
		// Updating counts as use; move to MRU.
		c.moveToFront(e)
		return
	}

	e := &entry[K, V]{key: key, value: value}
	c.pushFront(e)
	c.items[key] = e

	if len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Remove deletes key and reports whether it was present.
func (c *Cache[K, V]) Remove(key K) bool {
	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.unlink(e)
	delete(c.items, key)
	return true
}

// Peek returns the value for key without touching its recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Contains reports whether key is resident, without touching its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Oldest returns the entry that the next overflowing Put would evict.
func (c *Cache[K, V]) Oldest() (K, V, bool) {
	if c.tail.prev == c.head {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	e := c.tail.prev
	return e.key, e.value, true
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	return len(c.items)
}

// Cap returns the maximum number of resident entries.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Keys returns keys in MRU -> LRU order.
//
// This is a debug helper used by the CLI and tests.
func (c *Cache[K, V]) Keys() []K {
	out := make([]K, 0, len(c.items))
	for e := c.head.next; e != c.tail; e = e.next {
		out = append(out, e.key)
	}
	return out
}

func (c *Cache[K, V]) moveToFront(e *entry[K, V]) {
	if c.head.next == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *Cache[K, V]) pushFront(e *entry[K, V]) {
	first := c.head.next
	e.prev = c.head
	e.next = first
	c.head.next = e
	first.prev = e
}

func (c *Cache[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}

// evictOldest drops the entry at the LRU end from both the list and the index.
func (c *Cache[K, V]) evictOldest() {
	e := c.tail.prev
	if e == c.head {
		return
	}
	c.unlink(e)
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}
