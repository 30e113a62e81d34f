// Package cache implements a single-process, fixed-capacity LRU cache.
//
// Goals for this package:
//   - Make the core data structures explicit (map + intrusive doubly-linked list)
//   - Provide O(1) Get/Put/Remove via map index + LRU pointers
//   - Evict exactly the least-recently-used entry, in O(1), on overflow
//   - Keep the core lock-free; Synced adds a mutex for shared use
package cache
