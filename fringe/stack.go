package fringe

import (
	"github.com/zyedidia/generic/stack"

	"github.com/vincentfiestada/ai-nav/grid"
)

// Stack is a LIFO fringe. It also backs path reconstruction.
type Stack struct {
	items *stack.Stack[Item]
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{items: stack.New[Item]()}
}

// Push places c on top.
func (s *Stack) Push(c grid.Coordinate, priority int) {
	s.items.Push(Item{Coord: c, Priority: priority})
}

// Pop removes and returns the top.
func (s *Stack) Pop() (Item, error) {
	if s.items.Size() == 0 {
		return Item{}, ErrUnderflow
	}
	return s.items.Pop(), nil
}

// Empty reports whether the stack holds no items.
func (s *Stack) Empty() bool { return s.items.Size() == 0 }

// Len returns the number of items on the stack.
func (s *Stack) Len() int { return s.items.Size() }

// Depth is an alias of Len kept for diagnostics output.
func (s *Stack) Depth() int { return s.items.Size() }

// Each calls fn on every item from top to bottom without removing them.
func (s *Stack) Each(fn func(Item)) {
	rest := s.items.Copy()
	for rest.Size() > 0 {
		fn(rest.Pop())
	}
}
