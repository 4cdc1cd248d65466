package fringe

import (
	"container/heap"

	"github.com/vincentfiestada/ai-nav/grid"
)

// SortedList is a fringe ordered by ascending priority.
// Items with equal priority pop in insertion order: a new item is placed
// after every existing item whose priority does not exceed its own.
type SortedList struct {
	h   sortedHeap
	seq uint64
}

type sortedNode struct {
	item  Item
	seq   uint64 // insertion order, breaks ties
	index int    // heap index
}

// sortedHeap implements heap.Interface ordered by (priority, seq).
type sortedHeap []*sortedNode

func (h sortedHeap) Len() int { return len(h) }
func (h sortedHeap) Less(i, j int) bool {
	if h[i].item.Priority != h[j].item.Priority {
		return h[i].item.Priority < h[j].item.Priority
	}
	return h[i].seq < h[j].seq
}
func (h sortedHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *sortedHeap) Push(x any) {
	n := x.(*sortedNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *sortedHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// NewSortedList creates an empty sorted list.
func NewSortedList() *SortedList {
	return &SortedList{}
}

// Push inserts c with priority f.
func (l *SortedList) Push(c grid.Coordinate, f int) {
	heap.Push(&l.h, &sortedNode{item: Item{Coord: c, Priority: f}, seq: l.seq})
	l.seq++
}

// Pop removes and returns the item with the lowest priority.
func (l *SortedList) Pop() (Item, error) {
	if len(l.h) == 0 {
		return Item{}, ErrUnderflow
	}
	return heap.Pop(&l.h).(*sortedNode).item, nil
}

// Peek returns the item Pop would return without removing it.
func (l *SortedList) Peek() (Item, error) {
	if len(l.h) == 0 {
		return Item{}, ErrUnderflow
	}
	return l.h[0].item, nil
}

// Empty reports whether the list holds no items.
func (l *SortedList) Empty() bool { return len(l.h) == 0 }

// Len returns the number of items in the list.
func (l *SortedList) Len() int { return len(l.h) }

// Each calls fn on every item in pop order without removing them.
func (l *SortedList) Each(fn func(Item)) {
	c := make(sortedHeap, len(l.h))
	for i, n := range l.h {
		cp := *n
		c[i] = &cp
	}
	for len(c) > 0 {
		fn(heap.Pop(&c).(*sortedNode).item)
	}
}
