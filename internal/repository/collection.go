// Package repository keeps each collection fully in memory behind a RWMutex
// and writes the whole collection through its durable store on every
// mutation, mirroring the load-everything/rewrite-everything model of the
// legacy data files. A failed persist leaves the in-memory state untouched,
// so memory and disk never diverge.
package repository

import (
	"context"
	"sync"

	"timeclock/internal/errors"
	"timeclock/internal/store"
)

// collection is the generic core shared by the typed repositories.
type collection[T any] struct {
	mu    sync.RWMutex
	store store.Collection[T]
	items []T
	name  string
	id    func(T) string
}

func newCollection[T any](s store.Collection[T], name string, id func(T) string) *collection[T] {
	return &collection[T]{
		store: s,
		items: []T{},
		name:  name,
		id:    id,
	}
}

// load hydrates the in-memory collection from the durable store.
func (c *collection[T]) load(ctx context.Context) error {
	items, err := c.store.Load(ctx)
	if err != nil {
		return storageError("load "+c.name, err)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// snapshot returns a copy of the collection safe to read without locks.
func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// count returns the number of items in the collection.
func (c *collection[T]) count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// find returns the first item matching pred.
func (c *collection[T]) find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// findByID returns the item with the given id.
func (c *collection[T]) findByID(id string) (T, bool) {
	return c.find(func(item T) bool { return c.id(item) == id })
}

// filter returns all items matching pred, in collection order.
func (c *collection[T]) filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []T{}
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// insert appends an item and persists the collection.
func (c *collection[T]) insert(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, len(c.items), len(c.items)+1)
	copy(next, c.items)
	next = append(next, item)

	return c.persistLocked(ctx, next)
}

// update replaces the item with the same id and persists the collection.
// It reports false when no item matched.
func (c *collection[T]) update(ctx context.Context, item T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, len(c.items))
	copy(next, c.items)

	found := false
	for i := range next {
		if c.id(next[i]) == c.id(item) {
			next[i] = item
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	return true, c.persistLocked(ctx, next)
}

// remove deletes the item with the given id and persists the collection.
// It reports false when no item matched.
func (c *collection[T]) remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := []T{}
	found := false
	for _, item := range c.items {
		if c.id(item) == id {
			found = true
			continue
		}
		next = append(next, item)
	}
	if !found {
		return false, nil
	}

	return true, c.persistLocked(ctx, next)
}

// removeWhere deletes all items matching pred and persists the collection.
// It returns the number of deleted items; nothing is persisted when zero.
func (c *collection[T]) removeWhere(ctx context.Context, pred func(T) bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := []T{}
	removed := 0
	for _, item := range c.items {
		if pred(item) {
			removed++
			continue
		}
		next = append(next, item)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := c.persistLocked(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

// replaceAll swaps in a whole new collection and persists it.
func (c *collection[T]) replaceAll(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, len(items))
	copy(next, items)

	return c.persistLocked(ctx, next)
}

// persistLocked saves next to the durable store and swaps it in on success.
// Callers must hold the write lock.
func (c *collection[T]) persistLocked(ctx context.Context, next []T) error {
	if err := c.store.Save(ctx, next); err != nil {
		return storageError("save "+c.name, err)
	}
	c.items = next
	return nil
}

// storageError passes through structured errors from the store and wraps
// plain ones.
func storageError(operation string, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	return errors.NewStorageError(operation, err)
}
