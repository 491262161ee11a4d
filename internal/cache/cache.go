// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package cache provides a thread-safe LRU cache with TTL support, used by
// the recommendation engine as an optional response cache.
package cache

import (
	"sync"
	"time"
)

// entry is a node in the doubly-linked recency list.
type entry[V any] struct {
	key       string
	value     V
	prev      *entry[V]
	next      *entry[V]
	expiresAt time.Time
}

// LRU implements a thread-safe Least Recently Used cache with TTL support.
// It provides O(1) Get, Add, and eviction using a doubly-linked list for
// ordering and a hashmap for lookups. Expired entries are dropped lazily on
// access and eagerly when the cache is at capacity.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration

	items map[string]*entry[V]

	// head.next is the most recently used, tail.prev the least.
	head *entry[V]
	tail *entry[V]

	hits   int64
	misses int64
}

// New creates an LRU cache with the given capacity and TTL. Non-positive
// values fall back to defaults.
func New[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = 1024
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
		head:     &entry[V]{},
		tail:     &entry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the cached value for key and whether it was present and fresh.
// A hit moves the entry to the front of the recency list.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeLocked(e)
		c.misses++
		return zero, false
	}

	c.moveToFrontLocked(e)
	c.hits++
	return e.value, true
}

// Add stores a value under key, refreshing its TTL. When the cache is at
// capacity the least recently used entry is evicted.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(c.ttl)
		c.moveToFrontLocked(e)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictOldestLocked()
	}

	e := &entry[V]{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.items[key] = e
	c.pushFrontLocked(e)
}

// Remove deletes the entry for key if present.
func (c *LRU[V]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.removeLocked(e)
	}
}

// Purge drops all entries.
func (c *LRU[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Len returns the number of entries currently held, including entries that
// have expired but not yet been dropped.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns the cumulative hit and miss counts.
func (c *LRU[V]) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// pushFrontLocked inserts e after the head sentinel.
func (c *LRU[V]) pushFrontLocked(e *entry[V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

// moveToFrontLocked detaches e and reinserts it after the head sentinel.
func (c *LRU[V]) moveToFrontLocked(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.pushFrontLocked(e)
}

// removeLocked detaches e and deletes it from the index.
func (c *LRU[V]) removeLocked(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}

// evictOldestLocked removes the least recently used entry.
func (c *LRU[V]) evictOldestLocked() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeLocked(oldest)
}
