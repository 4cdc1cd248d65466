package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vincentfiestada/ai-nav/fringe"
	"github.com/vincentfiestada/ai-nav/grid"
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy selects the fringe discipline of a search.
type Strategy uint8

const (
	BFS Strategy = iota
	DFS
	AStar
)

// Strategies lists every strategy in a stable order.
func Strategies() []Strategy {
	return []Strategy{BFS, DFS, AStar}
}

func (s Strategy) String() string {
	switch s {
	case BFS:
		return "bfs"
	case DFS:
		return "dfs"
	case AStar:
		return "astar"
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// ParseStrategy maps a name such as "bfs", "dfs" or "astar" to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs", "breadth-first", "breadth":
		return BFS, nil
	case "dfs", "depth-first", "depth":
		return DFS, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Strategy) fringeKind() fringe.Kind {
	switch s {
	case DFS:
		return fringe.LIFO
	case AStar:
		return fringe.Sorted
	}
	return fringe.FIFO
}

// priority returns the fringe priority of a successor at depth g.
func (s Strategy) priority(g int, c, goal grid.Coordinate) int {
	if s != AStar {
		return 0
	}
	return g + Heuristic(c, goal)
}

// Heuristic is the Manhattan distance, admissible and consistent on a
// 4-connected unit-cost grid.
func Heuristic(a, b grid.Coordinate) int {
	return grid.Manhattan(a, b)
}
