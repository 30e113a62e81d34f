package cache

import (
	"errors"
	"fmt"
)

// Clear drops every entry. Capacity and the eviction callback are kept.
func (c *Cache[K, V]) Clear() {
	for e := c.head.next; e != c.tail; {
		next := e.next
		e.prev, e.next = nil, nil
		e = next
	}
	c.items = make(map[K]*entry[K, V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Resize changes the capacity and returns how many entries were evicted to
// fit the new bound. Evictions run from the LRU end, same as Put.
func (c *Cache[K, V]) Resize(capacity int) (int, error) {
	if capacity < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	c.capacity = capacity

	evicted := 0
	for len(c.items) > c.capacity {
		c.evictOldest()
		evicted++
	}
	return evicted, nil
}

// verify walks the list and checks it against the index.
//
// It is O(n) and only meant for tests: every resident key must appear exactly
// once in the list, links must be symmetric, and capacity must hold.
func (c *Cache[K, V]) verify() error {
	if len(c.items) > c.capacity {
		return fmt.Errorf("len %d exceeds capacity %d", len(c.items), c.capacity)
	}
	if c.head.prev != nil || c.tail.next != nil {
		return errors.New("sentinel has outer link")
	}

	seen := make(map[K]struct{}, len(c.items))
	n := 0
	for e := c.head.next; e != c.tail; e = e.next {
		if e == nil {
			return errors.New("list broken before tail")
		}
		if e.next == nil || e.next.prev != e {
			return fmt.Errorf("asymmetric link after key %v", e.key)
		}
		if _, dup := seen[e.key]; dup {
			return fmt.Errorf("key %v listed twice", e.key)
		}
		seen[e.key] = struct{}{}
		if got, ok := c.items[e.key]; !ok || got != e {
			return fmt.Errorf("key %v listed but not indexed", e.key)
		}
		n++
	}
	if c.head.next.prev != c.head {
		return errors.New("asymmetric link at head")
	}
	if n != len(c.items) {
		return fmt.Errorf("list holds %d entries, index holds %d", n, len(c.items))
	}
	return nil
}
