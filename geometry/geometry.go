// Package geometry rasterizes polygon obstacles onto a grid.
//
// Each polygon edge is stored as a line equation bounded by its endpoints.
// A cell is blocked when it lies close enough to any edge: grid cells are
// integer lattice points, so the membership test accepts a cell when the
// continuous line passes within one unit of it along either axis.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/vincentfiestada/ai-nav/grid"
)

// ErrDegeneratePolygon is returned for polygons with fewer than three vertices.
var ErrDegeneratePolygon = errors.New("degenerate polygon")

// Edge is a line segment between two lattice points.
type Edge struct {
	A, B grid.Coordinate

	vertical bool
	x        int     // constant x when vertical
	m        float64 // slope
	b        float64 // y-intercept
}

// NewEdge builds the line through a and b.
// Equal x-coordinates produce a vertical edge and no slope is computed.
func NewEdge(a, b grid.Coordinate) Edge {
	e := Edge{A: a, B: b}
	if a.X == b.X {
		e.vertical = true
		e.x = a.X
		return e
	}
	e.m = float64(b.Y-a.Y) / float64(b.X-a.X)
	e.b = float64(a.Y) - e.m*float64(a.X)
	return e
}

// Vertical reports whether the edge is parallel to the y axis.
func (e Edge) Vertical() bool { return e.vertical }

// Slope returns the slope and y-intercept. Both are zero for vertical edges.
func (e Edge) Slope() (m, b float64) { return e.m, e.b }

// Contains reports whether c lies on the segment.
func (e Edge) Contains(c grid.Coordinate) bool {
	if e.vertical {
		return c.X == e.x && between(c.Y, e.A.Y, e.B.Y)
	}
	x, y := float64(c.X), float64(c.Y)
	// Horizontal edges divide by zero here; the resulting Inf/NaN never matches.
	tY := e.m*x + e.b
	tX := (y - e.b) / e.m
	near := y == math.Floor(tY) || y == math.Ceil(tY) ||
		x == math.Floor(tX) || x == math.Ceil(tX)
	if !near {
		return false
	}
	return between(c.X, e.A.X, e.B.X) && between(c.Y, e.A.Y, e.B.Y)
}

func between(v, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return a <= v && v <= b
}

// Polygon is a closed ring of vertices; the last vertex connects to the first.
type Polygon []grid.Coordinate

// Validate checks that the polygon has at least three vertices.
func (p Polygon) Validate() error {
	if len(p) < 3 {
		return fmt.Errorf("%d vertices: %w", len(p), ErrDegeneratePolygon)
	}
	return nil
}

// Edges returns the consecutive vertex pairs including last->first.
func (p Polygon) Edges() []Edge {
	if len(p) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(p))
	for i, v := range p {
		next := p[(i+1)%len(p)]
		edges = append(edges, NewEdge(v, next))
	}
	return edges
}

// Bounds returns the bounding box of the polygon.
func (p Polygon) Bounds() (min, max grid.Coordinate) {
	if len(p) == 0 {
		return
	}
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		min.X = minInt(min.X, v.X)
		min.Y = minInt(min.Y, v.Y)
		max.X = maxInt(max.X, v.X)
		max.Y = maxInt(max.Y, v.Y)
	}
	return
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Rasterize blocks every cell of g that lies on an edge of any polygon.
// It returns the number of cells that became blocked.
func Rasterize(g *grid.Grid, polygons ...Polygon) (int, error) {
	var edges []Edge
	for i, p := range polygons {
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("polygon %d: %w", i, err)
		}
		edges = append(edges, p.Edges()...)
	}
	return RasterizeEdges(g, edges...), nil
}

// RasterizeEdges blocks every cell of g that lies on any of the edges.
// Every cell is tested against every edge; this runs once at setup.
func RasterizeEdges(g *grid.Grid, edges ...Edge) int {
	blocked := 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := grid.Coordinate{X: x, Y: y}
			for _, e := range edges {
				if e.Contains(c) {
					if g.Block(c) {
						blocked++
					}
					break
				}
			}
		}
	}
	return blocked
}
