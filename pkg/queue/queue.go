// Package queue provides the thread-safe FIFO backing the worker pool.
package queue

import (
	"sync"
)

// Queue is an unbounded FIFO guarded by a single internal lock. Push always
// succeeds, TryPop never blocks, and no element is ever visible to more than
// one TryPop. IsEmpty and Len are snapshots and race-prone by design;
// callers must not rely on them for correctness.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

// New creates an empty queue
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push appends an item to the tail
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// TryPop removes and returns the head, or reports false if the queue is
// empty. It never blocks.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}

	item := q.items[0]
	q.items[0] = zero // release the reference
	q.items = q.items[1:]

	if len(q.items) == 0 {
		q.items = nil // let the drained backing array go
	}
	return item, true
}

// IsEmpty reports whether the queue currently holds no items
func (q *Queue[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

// Len returns the current number of queued items
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain removes and returns all queued items in FIFO order
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}
