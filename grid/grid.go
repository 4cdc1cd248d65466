// Package grid holds the tile store searched by the engine: a fixed-size
// array of tile statuses plus a parallel predecessor array.
package grid

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a coordinate falls outside the grid.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// Coordinate identifies a grid cell.
type Coordinate struct {
	X, Y int
}

// String formats the coordinate as (x,y).
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Manhattan returns |a.x-b.x| + |a.y-b.y|.
func Manhattan(a, b Coordinate) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Status is the search state of a single tile.
type Status uint8

const (
	Unexplored Status = iota
	Blocked
	Queued
	Current
	Explored
	Goal
)

func (s Status) String() string {
	switch s {
	case Unexplored:
		return "unexplored"
	case Blocked:
		return "blocked"
	case Queued:
		return "queued"
	case Current:
		return "current"
	case Explored:
		return "explored"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Grid stores tile status and predecessors for a width x height map.
// Cells are indexed row-major: y*width + x.
type Grid struct {
	width  int
	height int
	tiles  []Status
	preds  []Coordinate
	hasPre []bool // false = no predecessor
}

// New creates a grid with every tile Unexplored and no predecessors.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", width, height)
	}
	n := width * height
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]Status, n),
		preds:  make([]Coordinate, n),
		hasPre: make([]bool, n),
	}, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c satisfies 0 <= x < W and 0 <= y < H.
func (g *Grid) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Check returns ErrOutOfBounds wrapped with the coordinate if c is outside the grid.
func (g *Grid) Check(c Coordinate) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%v on %dx%d grid: %w", c, g.width, g.height, ErrOutOfBounds)
	}
	return nil
}

func (g *Grid) index(c Coordinate) int {
	return c.Y*g.width + c.X
}

// Status returns the status of c. Out of bounds is reported as Blocked.
func (g *Grid) Status(c Coordinate) Status {
	if !g.InBounds(c) {
		return Blocked
	}
	return g.tiles[g.index(c)]
}

// IsBlocked returns true if c is blocked or outside the grid.
func (g *Grid) IsBlocked(c Coordinate) bool {
	return g.Status(c) == Blocked
}

// Block marks c as an obstacle. Goal tiles stay Goal.
// Returns true if the tile was not already blocked.
func (g *Grid) Block(c Coordinate) bool {
	if !g.InBounds(c) {
		return false
	}
	i := g.index(c)
	if g.tiles[i] == Blocked || g.tiles[i] == Goal {
		return false
	}
	g.tiles[i] = Blocked
	return true
}

// SetGoal marks c as the goal. Goal overrides every other status, including Blocked.
func (g *Grid) SetGoal(c Coordinate) error {
	if err := g.Check(c); err != nil {
		return err
	}
	g.tiles[g.index(c)] = Goal
	return nil
}

// Mark applies a search transition to c and reports whether it took effect.
// Goal and Blocked tiles never transition.
func (g *Grid) Mark(c Coordinate, s Status) bool {
	if !g.InBounds(c) {
		return false
	}
	i := g.index(c)
	switch g.tiles[i] {
	case Goal, Blocked:
		return false
	}
	if s == Goal || s == Blocked {
		return false
	}
	g.tiles[i] = s
	return true
}

// Predecessor returns the coordinate c was reached from, if any.
func (g *Grid) Predecessor(c Coordinate) (Coordinate, bool) {
	if !g.InBounds(c) {
		return Coordinate{}, false
	}
	i := g.index(c)
	return g.preds[i], g.hasPre[i]
}

// SetPredecessor records from as the predecessor of c.
// The first write wins; later writes are refused and return false.
func (g *Grid) SetPredecessor(c, from Coordinate) bool {
	if !g.InBounds(c) {
		return false
	}
	i := g.index(c)
	if g.hasPre[i] {
		return false
	}
	g.preds[i] = from
	g.hasPre[i] = true
	return true
}

// Count returns how many tiles currently hold status s.
func (g *Grid) Count(s Status) int {
	n := 0
	for _, t := range g.tiles {
		if t == s {
			n++
		}
	}
	return n
}

// Reset clears search state: every non-blocked, non-goal tile returns to
// Unexplored and all predecessors are dropped. Obstacles and the goal remain.
func (g *Grid) Reset() {
	for i, t := range g.tiles {
		if t != Blocked && t != Goal {
			g.tiles[i] = Unexplored
		}
		g.hasPre[i] = false
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:  g.width,
		height: g.height,
		tiles:  make([]Status, len(g.tiles)),
		preds:  make([]Coordinate, len(g.preds)),
		hasPre: make([]bool, len(g.hasPre)),
	}
	copy(c.tiles, g.tiles)
	copy(c.preds, g.preds)
	copy(c.hasPre, g.hasPre)
	return c
}

// Snapshot is a read-only copy of tile statuses for presentation.
type Snapshot struct {
	Width, Height int
	Tiles         []Status
}

// At returns the status at (x, y) in the snapshot.
func (s Snapshot) At(x, y int) Status {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return Blocked
	}
	return s.Tiles[y*s.Width+x]
}

// Snapshot copies the current tile statuses.
func (g *Grid) Snapshot() Snapshot {
	tiles := make([]Status, len(g.tiles))
	copy(tiles, g.tiles)
	return Snapshot{Width: g.width, Height: g.height, Tiles: tiles}
}
