package store

import (
	"slices"
	"sync"
)

// collection is a map of values keyed by id and guarded by its own lock.
// Values are stored and returned by copy, so callers never share memory with
// the map.
type collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

// add draws ids from newID until one is free, builds the value for it and
// inserts it under a single write lock.
func (c *collection[T]) add(newID func() string, build func(id string) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		id := newID()
		if _, taken := c.items[id]; taken || id == "" {
			continue
		}
		v := build(id)
		c.items[id] = v
		return v
	}
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

// modify replaces the value stored under id with fn's result. It reports false
// and leaves the collection untouched when id is absent.
func (c *collection[T]) modify(id string, fn func(T) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	v = fn(v)
	c.items[id] = v
	return v, true
}

func (c *collection[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

// snapshot copies the values accepted by keep (all when keep is nil) and
// sorts the copy with cmp. The lock is released before sorting.
func (c *collection[T]) snapshot(keep func(T) bool, cmp func(a, b T) int) []T {
	c.mu.RLock()
	out := make([]T, 0, len(c.items))
	for _, v := range c.items {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	c.mu.RUnlock()

	slices.SortFunc(out, cmp)
	return out
}

func (c *collection[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
