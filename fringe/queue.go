package fringe

import (
	"github.com/zyedidia/generic/queue"

	"github.com/vincentfiestada/ai-nav/grid"
)

// Queue is a FIFO fringe: push at the tail, pop from the head.
type Queue struct {
	items *queue.Queue[Item]
	n     int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{items: queue.New[Item]()}
}

// Push appends c at the tail.
func (q *Queue) Push(c grid.Coordinate, priority int) {
	q.items.Enqueue(Item{Coord: c, Priority: priority})
	q.n++
}

// Pop removes and returns the head.
func (q *Queue) Pop() (Item, error) {
	if q.n == 0 {
		return Item{}, ErrUnderflow
	}
	q.n--
	return q.items.Dequeue(), nil
}

// Empty reports whether the queue holds no items.
func (q *Queue) Empty() bool { return q.n == 0 }

// Len returns the number of queued items.
func (q *Queue) Len() int { return q.n }

// Each calls fn on every item from head to tail without removing them.
func (q *Queue) Each(fn func(Item)) {
	q.items.Each(fn)
}
