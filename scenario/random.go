package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/vincentfiestada/ai-nav/geometry"
	"github.com/vincentfiestada/ai-nav/grid"
)

// Random generates a scenario with the given number of convex-ish obstacles
// scattered over a width x height grid. Start and goal are drawn from cells
// left open after rasterization.
func Random(rng *rand.Rand, width, height, polygons, maxVertices int) (*Scenario, error) {
	if width < 4 || height < 4 {
		return nil, fmt.Errorf("random scenario needs at least 4x4, got %dx%d: %w", width, height, ErrMalformed)
	}
	if maxVertices < 3 {
		maxVertices = 3
	}

	sc := &Scenario{Width: width, Height: height}
	for i := 0; i < polygons; i++ {
		sc.Obstacles = append(sc.Obstacles, randomPolygon(rng, width, height, maxVertices))
	}

	g, _, err := sc.Build(width, height)
	if err != nil {
		return nil, err
	}
	open := make([]grid.Coordinate, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := grid.Coordinate{X: x, Y: y}
			if !g.IsBlocked(c) {
				open = append(open, c)
			}
		}
	}
	if len(open) < 2 {
		return nil, fmt.Errorf("random scenario left %d open cells: %w", len(open), ErrMalformed)
	}
	i := rng.Intn(len(open))
	j := rng.Intn(len(open) - 1)
	if j >= i {
		j++
	}
	sc.Start, sc.Goal = open[i], open[j]
	return sc, nil
}

// randomPolygon places vertices at sorted angles around a random center so the
// ring does not self-intersect.
func randomPolygon(rng *rand.Rand, width, height, maxVertices int) geometry.Polygon {
	n := 3 + rng.Intn(maxVertices-2)
	maxRadius := math.Min(float64(width), float64(height)) / 5
	if maxRadius < 2 {
		maxRadius = 2
	}
	cx := rng.Float64() * float64(width-1)
	cy := rng.Float64() * float64(height-1)

	angles := make([]float64, n)
	for i := range angles {
		angles[i] = rng.Float64() * 2 * math.Pi
	}
	sort.Float64s(angles)

	poly := make(geometry.Polygon, n)
	for i, a := range angles {
		r := 1 + rng.Float64()*(maxRadius-1)
		x := clamp(int(math.Round(cx+r*math.Cos(a))), 0, width-1)
		y := clamp(int(math.Round(cy+r*math.Sin(a))), 0, height-1)
		poly[i] = grid.Coordinate{X: x, Y: y}
	}
	return poly
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
