// Package scenario loads the obstacle, start and goal description that a
// search runs against. Two formats are supported: YAML, and the plain-text
// format of whitespace-separated integers
//
//	sx sy
//	gx gy
//	n x1 y1 ... xn yn   (one obstacle per group, repeated)
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vincentfiestada/ai-nav/geometry"
	"github.com/vincentfiestada/ai-nav/grid"
)

// ErrMalformed is returned for input that cannot describe a valid scenario.
var ErrMalformed = errors.New("malformed scenario")

// Scenario is a start, a goal and a set of obstacle polygons.
// Width and Height are optional; zero means "use the configured grid".
type Scenario struct {
	Name      string
	Width     int
	Height    int
	Start     grid.Coordinate
	Goal      grid.Coordinate
	Obstacles []geometry.Polygon
}

// Load reads a scenario file, choosing the format by extension:
// .yaml and .yml are YAML, anything else is plain text.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var sc *Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sc, err = ParseYAML(data)
	default:
		sc, err = ParseText(strings.NewReader(string(data)))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Dimensions returns the scenario's own grid size if set, otherwise the fallback.
func (s *Scenario) Dimensions(width, height int) (int, int) {
	if s.Width > 0 {
		width = s.Width
	}
	if s.Height > 0 {
		height = s.Height
	}
	return width, height
}

// Validate checks the scenario against a width x height grid: start, goal and
// every vertex must lie inside it and every obstacle needs three vertices.
func (s *Scenario) Validate(width, height int) error {
	inside := func(c grid.Coordinate) bool {
		return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
	}
	if !inside(s.Start) {
		return fmt.Errorf("start %v outside %dx%d grid: %w", s.Start, width, height, grid.ErrOutOfBounds)
	}
	if !inside(s.Goal) {
		return fmt.Errorf("goal %v outside %dx%d grid: %w", s.Goal, width, height, grid.ErrOutOfBounds)
	}
	for i, p := range s.Obstacles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("obstacle %d: %w", i, err)
		}
		for _, v := range p {
			if !inside(v) {
				return fmt.Errorf("obstacle %d vertex %v outside %dx%d grid: %w", i, v, width, height, grid.ErrOutOfBounds)
			}
		}
	}
	return nil
}

// Build validates the scenario and returns a fresh grid with its obstacles
// rasterized, along with the number of blocked cells.
func (s *Scenario) Build(width, height int) (*grid.Grid, int, error) {
	width, height = s.Dimensions(width, height)
	if err := s.Validate(width, height); err != nil {
		return nil, 0, err
	}
	g, err := grid.New(width, height)
	if err != nil {
		return nil, 0, err
	}
	blocked, err := geometry.Rasterize(g, s.Obstacles...)
	if err != nil {
		return nil, 0, err
	}
	return g, blocked, nil
}
