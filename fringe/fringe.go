// Package fringe provides the frontier collections used by the search engine:
// a FIFO queue, a LIFO stack and a cost-ordered list. All three satisfy Fringe,
// so the engine's main loop is written once against the interface.
package fringe

import (
	"errors"

	"github.com/vincentfiestada/ai-nav/grid"
)

// ErrUnderflow is returned when popping from an empty fringe.
var ErrUnderflow = errors.New("fringe underflow")

// Item is a coordinate together with its fringe priority.
// Priority is the f-score for the sorted list and ignored elsewhere.
type Item struct {
	Coord    grid.Coordinate
	Priority int
}

// Fringe is the frontier of discovered but not yet expanded cells.
type Fringe interface {
	Push(c grid.Coordinate, priority int)
	Pop() (Item, error)
	Empty() bool
	Len() int
}

// Kind names a fringe discipline.
type Kind uint8

const (
	FIFO Kind = iota
	LIFO
	Sorted
)

func (k Kind) String() string {
	switch k {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case Sorted:
		return "sorted"
	}
	return "unknown"
}

// New creates an empty fringe of the given kind.
func New(k Kind) Fringe {
	switch k {
	case LIFO:
		return NewStack()
	case Sorted:
		return NewSortedList()
	}
	return NewQueue()
}
