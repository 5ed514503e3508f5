// Package cache provides a small concurrency-safe LRU used to keep resolved
// member ordering configs between files of the same directory.
package cache

import (
	"sync"
)

// 双向链表节点
type entry[K comparable, V any] struct {
	key   K
	value V
	prev  *entry[K, V]
	next  *entry[K, V]
}

// LRU 带并发锁的LRU缓存
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	items    map[K]*entry[K, V]
	head     *entry[K, V] // sentinel, most recently used follows
	tail     *entry[K, V] // sentinel, least recently used precedes
	capacity int
}

// NewLRU creates a cache holding at most capacity entries. A capacity below
// one is raised to one.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	head, tail := &entry[K, V]{}, &entry[K, V]{}
	head.next = tail
	tail.prev = head
	return &LRU[K, V]{
		items:    make(map[K]*entry[K, V], capacity),
		head:     head,
		tail:     tail,
		capacity: capacity,
	}
}

func (c *LRU[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

func (c *LRU[K, V]) pushFront(e *entry[K, V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

// Get returns the cached value and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.unlink(e)
		c.pushFront(e)
		return e.value, true
	}
	var zero V
	return zero, false
}

// Put adds or replaces a value, evicting the least recently used entry when full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		c.unlink(e)
		c.pushFront(e)
		return
	}

	e := &entry[K, V]{key: key, value: value}
	c.items[key] = e
	c.pushFront(e)

	if len(c.items) > c.capacity {
		oldest := c.tail.prev
		c.unlink(oldest)
		delete(c.items, oldest.key)
	}
}

// Remove drops one key. It reports whether the key was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.unlink(e)
	delete(c.items, key)
	return true
}

// RemoveFunc drops every entry whose key matches and returns how many were removed.
func (c *LRU[K, V]) RemoveFunc(match func(K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.items {
		if !match(key) {
			continue
		}
		c.unlink(e)
		delete(c.items, key)
		removed++
	}
	return removed
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
