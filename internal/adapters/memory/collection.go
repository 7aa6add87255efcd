package memory

import (
	"sync"

	"property-service/internal/core/domain"

	"github.com/google/uuid"
)

// collection хранит записи в порядке вставки
type collection[T any] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) all() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *collection[T]) filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for _, id := range c.order {
		if item := c.items[id]; keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *collection[T]) get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return item, nil
}

// insert присваивает новый id и сохраняет запись
func (c *collection[T]) insert(build func(id string) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.New().String()
	item := build(id)
	c.items[id] = item
	c.order = append(c.order, id)
	return item
}

func (c *collection[T]) replace(id string, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return domain.ErrNotFound
	}
	c.items[id] = item
	return nil
}

func (c *collection[T]) remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.items, id)
	c.removeFromOrder(id)
	return nil
}

// removeWhere удаляет все подходящие записи и возвращает их число
func (c *collection[T]) removeWhere(match func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	removed := 0
	for _, id := range c.order {
		if match(c.items[id]) {
			delete(c.items, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	c.order = kept
	return removed
}

func (c *collection[T]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *collection[T]) removeFromOrder(id string) {
	for i, candidate := range c.order {
		if candidate == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
