package search

import (
	"log/slog"

	"github.com/vincentfiestada/ai-nav/fringe"
	"github.com/vincentfiestada/ai-nav/grid"
)

// Outcome is how a search terminated. Failure and Success are normal results.
type Outcome uint8

const (
	Failure Outcome = iota // fringe exhausted before reaching the goal
	Success
	// Abandoned marks a search stopped by its caller before termination.
	Abandoned
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Abandoned:
		return "abandoned"
	}
	return "failure"
}

// Result contains the outcome of a search.
type Result struct {
	Strategy Strategy
	Start    grid.Coordinate
	Goal     grid.Coordinate
	Outcome  Outcome
	Path     []grid.Coordinate // start to goal inclusive; nil on failure
	Cost     int               // len(Path) - 1
	Expanded int
	Snapshot grid.Snapshot
}

// Found reports whether the goal was reached.
func (r Result) Found() bool { return r.Outcome == Success }

// LogValue implements slog.LogValuer for structured logging.
func (r Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("strategy", r.Strategy.String()),
		slog.String("outcome", r.Outcome.String()),
		slog.String("start", r.Start.String()),
		slog.String("goal", r.Goal.String()),
		slog.Int("expanded", r.Expanded),
		slog.Int("cost", r.Cost),
		slog.Int("path_len", len(r.Path)),
	)
}

// Reconstruct walks predecessors back from end and returns the path from the
// root of the predecessor tree to end.
func Reconstruct(g *grid.Grid, end grid.Coordinate) []grid.Coordinate {
	if !g.InBounds(end) {
		return nil
	}
	trail := fringe.NewStack()
	limit := g.Width() * g.Height()
	c := end
	for i := 0; i < limit; i++ {
		trail.Push(c, 0)
		prev, ok := g.Predecessor(c)
		if !ok {
			break
		}
		c = prev
	}

	path := make([]grid.Coordinate, 0, trail.Len())
	for !trail.Empty() {
		it, _ := trail.Pop()
		path = append(path, it.Coord)
	}
	return path
}
