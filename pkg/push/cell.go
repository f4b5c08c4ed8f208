package push

import (
	"context"
	"iter"
	"sync"
)

// Cell is a value that changes by pushes. Every committed value is pushed to
// subscribers, and the latest one is retained for late subscribers. A Cell is
// safe for concurrent use.
type Cell[T any] struct {
	mu  sync.Mutex
	src *Source[T]
}

// NewCell creates an open Cell. When an initial value is passed the cell
// starts holding it.
func NewCell[T any](initial ...T) *Cell[T] {
	c := &Cell[T]{src: New[T](WithRetain())}
	if len(initial) > 0 {
		c.src.Push(initial[len(initial)-1])
	}
	return c
}

// Set makes v the cell's value. It reports false, and does nothing, once the
// cell is closed.
func (c *Cell[T]) Set(v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.src.Push(v)
}

// Update sets the value to fn applied to the current one. fn receives the
// zero value while the cell holds nothing.
func (c *Cell[T]) Update(fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.src.Open() {
		return false
	}
	current, _ := c.src.Last()
	return c.src.Push(fn(current))
}

// Get returns the current value, and false while the cell holds nothing.
func (c *Cell[T]) Get() (T, bool) {
	return c.src.Last()
}

// All yields the current value, if any, then every later one until the cell
// closes or ctx is done.
func (c *Cell[T]) All(ctx context.Context) iter.Seq[T] {
	return c.src.All(ctx)
}

// Close ends the cell. The last value stays readable through Get.
func (c *Cell[T]) Close() {
	c.src.Close()
}

// Open reports whether the cell still accepts values.
func (c *Cell[T]) Open() bool {
	return c.src.Open()
}
