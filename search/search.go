// Package search implements breadth-first, depth-first and A* search over a
// grid.Grid. The three strategies share one engine: expand the current cell's
// viable neighbors into a fringe, record their predecessor, then advance to
// the next fringe element until the goal is reached or the fringe runs dry.
package search

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vincentfiestada/ai-nav/fringe"
	"github.com/vincentfiestada/ai-nav/grid"
)

// ErrStartBlocked is returned when the start cell is an obstacle.
var ErrStartBlocked = errors.New("start cell is blocked")

// moves lists successor offsets in expansion order: right, left, up, down.
// Up decreases y.
var moves = [4]grid.Coordinate{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}}

// Event describes one advance of the search to a new fringe element.
type Event struct {
	Step      int
	From      grid.Coordinate
	To        grid.Coordinate
	Priority  int
	FringeLen int
}

// Options defines parameters for a search.
type Options struct {
	Logger   *slog.Logger
	Observer func(Event)
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger used for search lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithObserver registers fn to be called after every advance.
func WithObserver(fn func(Event)) Option {
	return func(o *Options) { o.Observer = fn }
}

// Search is a single in-flight search. It owns and mutates its grid.
// A Search is not safe for concurrent use.
type Search struct {
	grid     *grid.Grid
	strategy Strategy
	start    grid.Coordinate
	goal     grid.Coordinate
	current  grid.Coordinate

	fringe fringe.Fringe
	depth  []int // steps from start, indexed y*width + x
	succ   []grid.Coordinate

	expanded int
	done     bool
	outcome  Outcome

	logger   *slog.Logger
	observer func(Event)
}

// New prepares a search from start to goal on g. The goal tile is marked on
// the grid and takes precedence over any obstacle already there.
func New(g *grid.Grid, start, goal grid.Coordinate, strategy Strategy, options ...Option) (*Search, error) {
	opts := Options{Logger: slog.Default()}
	for _, option := range options {
		option(&opts)
	}

	if err := g.Check(start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := g.Check(goal); err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}
	if start != goal && g.IsBlocked(start) {
		return nil, fmt.Errorf("%v: %w", start, ErrStartBlocked)
	}
	switch strategy {
	case BFS, DFS, AStar:
	default:
		return nil, fmt.Errorf("%v: %w", strategy, ErrUnknownStrategy)
	}

	if err := g.SetGoal(goal); err != nil {
		return nil, err
	}
	g.Mark(start, grid.Current)

	s := &Search{
		grid:     g,
		strategy: strategy,
		start:    start,
		goal:     goal,
		current:  start,
		fringe:   fringe.New(strategy.fringeKind()),
		depth:    make([]int, g.Width()*g.Height()),
		succ:     make([]grid.Coordinate, 0, len(moves)),
		logger:   opts.Logger,
		observer: opts.Observer,
	}
	s.logger.Debug("search started",
		"strategy", strategy.String(),
		"start", start.String(),
		"goal", goal.String(),
	)
	return s, nil
}

// Run executes a complete search and returns its result.
func Run(g *grid.Grid, start, goal grid.Coordinate, strategy Strategy, options ...Option) (Result, error) {
	s, err := New(g, start, goal, strategy, options...)
	if err != nil {
		return Result{}, err
	}
	return s.Run()
}

// Run steps the search to completion.
func (s *Search) Run() (Result, error) {
	for {
		done, err := s.Step()
		if err != nil {
			return s.Result(), err
		}
		if done {
			return s.Result(), nil
		}
	}
}

// Step performs one iteration of the main loop and reports whether the
// search has terminated. Calling Step after termination is a no-op.
func (s *Search) Step() (bool, error) {
	if s.done {
		return true, nil
	}

	if s.grid.Status(s.current) == grid.Goal {
		s.finish(Success)
		return true, nil
	}

	s.expand(s.current)

	if s.fringe.Empty() {
		s.finish(Failure)
		return true, nil
	}

	next, err := s.fringe.Pop()
	if err != nil {
		return false, fmt.Errorf("step %d: %w", s.expanded, err)
	}

	from := s.current
	s.grid.Mark(from, grid.Explored)
	s.grid.Mark(next.Coord, grid.Current)
	s.current = next.Coord
	s.expanded++

	if s.observer != nil {
		s.observer(Event{
			Step:      s.expanded,
			From:      from,
			To:        next.Coord,
			Priority:  next.Priority,
			FringeLen: s.fringe.Len(),
		})
	}
	return false, nil
}

// expand admits every viable successor of from into the fringe.
func (s *Search) expand(from grid.Coordinate) {
	succ := s.successors(from)
	if s.strategy == DFS {
		// Reverse so the stack pops right, left, up, down.
		for i, j := 0, len(succ)-1; i < j; i, j = i+1, j-1 {
			succ[i], succ[j] = succ[j], succ[i]
		}
	}

	g := s.depth[s.index(from)] + 1
	for _, c := range succ {
		s.fringe.Push(c, s.strategy.priority(g, c, s.goal))
		s.grid.SetPredecessor(c, from)
		s.depth[s.index(c)] = g
		s.grid.Mark(c, grid.Queued)
	}
}

// successors returns the viable neighbors of from in expansion order.
// The returned slice is reused between calls.
func (s *Search) successors(from grid.Coordinate) []grid.Coordinate {
	s.succ = s.succ[:0]
	for _, m := range moves {
		c := grid.Coordinate{X: from.X + m.X, Y: from.Y + m.Y}
		if s.viable(c) {
			s.succ = append(s.succ, c)
		}
	}
	return s.succ
}

// viable reports whether c may be admitted to the fringe: it must be in
// bounds and never admitted before. The goal is admitted once.
func (s *Search) viable(c grid.Coordinate) bool {
	switch s.grid.Status(c) {
	case grid.Unexplored:
		return true
	case grid.Goal:
		if c == s.start {
			return false
		}
		_, admitted := s.grid.Predecessor(c)
		return !admitted
	}
	return false
}

func (s *Search) index(c grid.Coordinate) int {
	return c.Y*s.grid.Width() + c.X
}

func (s *Search) finish(o Outcome) {
	s.done = true
	s.outcome = o
	s.logger.Debug("search finished",
		"strategy", s.strategy.String(),
		"outcome", o.String(),
		"expanded", s.expanded,
	)
}

// Done reports whether the search has terminated.
func (s *Search) Done() bool { return s.done }

// Current returns the cell being expanded.
func (s *Search) Current() grid.Coordinate { return s.current }

// Expanded returns the number of advances made so far.
func (s *Search) Expanded() int { return s.expanded }

// FringeLen returns the number of cells waiting in the fringe.
func (s *Search) FringeLen() int { return s.fringe.Len() }

// Strategy returns the search strategy.
func (s *Search) Strategy() Strategy { return s.strategy }

// Snapshot copies the current tile statuses.
func (s *Search) Snapshot() grid.Snapshot { return s.grid.Snapshot() }

// Result reports the search outcome. Before termination the outcome is
// Failure and the path is empty.
func (s *Search) Result() Result {
	r := Result{
		Strategy: s.strategy,
		Start:    s.start,
		Goal:     s.goal,
		Outcome:  Failure,
		Expanded: s.expanded,
		Snapshot: s.grid.Snapshot(),
	}
	if s.done && s.outcome == Success {
		r.Outcome = Success
		r.Path = Reconstruct(s.grid, s.current)
		r.Cost = len(r.Path) - 1
	}
	return r
}
