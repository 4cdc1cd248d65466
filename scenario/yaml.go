package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vincentfiestada/ai-nav/geometry"
	"github.com/vincentfiestada/ai-nav/grid"
)

// point is the YAML form of a coordinate: {x: 1, y: 2}.
type point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// document is the YAML form of a scenario.
type document struct {
	Name      string    `yaml:"name,omitempty"`
	Width     int       `yaml:"width,omitempty"`
	Height    int       `yaml:"height,omitempty"`
	Start     *point    `yaml:"start"`
	Goal      *point    `yaml:"goal"`
	Obstacles [][]point `yaml:"obstacles"`
}

// ParseYAML decodes a YAML scenario document.
func ParseYAML(data []byte) (*Scenario, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w: %w", ErrMalformed, err)
	}
	if doc.Start == nil {
		return nil, fmt.Errorf("missing start: %w", ErrMalformed)
	}
	if doc.Goal == nil {
		return nil, fmt.Errorf("missing goal: %w", ErrMalformed)
	}

	sc := &Scenario{
		Name:   doc.Name,
		Width:  doc.Width,
		Height: doc.Height,
		Start:  grid.Coordinate{X: doc.Start.X, Y: doc.Start.Y},
		Goal:   grid.Coordinate{X: doc.Goal.X, Y: doc.Goal.Y},
	}
	for i, ring := range doc.Obstacles {
		if len(ring) < 3 {
			return nil, fmt.Errorf("obstacle %d has %d vertices: %w", i, len(ring), ErrMalformed)
		}
		poly := make(geometry.Polygon, len(ring))
		for j, v := range ring {
			poly[j] = grid.Coordinate{X: v.X, Y: v.Y}
		}
		sc.Obstacles = append(sc.Obstacles, poly)
	}
	return sc, nil
}

// EncodeYAML encodes the scenario in the YAML document form.
func (s *Scenario) EncodeYAML() ([]byte, error) {
	doc := document{
		Name:   s.Name,
		Width:  s.Width,
		Height: s.Height,
		Start:  &point{X: s.Start.X, Y: s.Start.Y},
		Goal:   &point{X: s.Goal.X, Y: s.Goal.Y},
	}
	for _, p := range s.Obstacles {
		ring := make([]point, len(p))
		for i, v := range p {
			ring[i] = point{X: v.X, Y: v.Y}
		}
		doc.Obstacles = append(doc.Obstacles, ring)
	}
	return yaml.Marshal(doc)
}

// WriteYAML writes the scenario to a YAML file.
func (s *Scenario) WriteYAML(path string) error {
	data, err := s.EncodeYAML()
	if err != nil {
		return fmt.Errorf("marshaling scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scenario file: %w", err)
	}
	return nil
}
