package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vincentfiestada/ai-nav/geometry"
	"github.com/vincentfiestada/ai-nav/grid"
)

// ParseText reads the plain-text format: start pair, goal pair, then any
// number of obstacles each given as a vertex count followed by that many pairs.
// Lines starting with '#' are comments.
func ParseText(r io.Reader) (*Scenario, error) {
	tokens, err := scanInts(r)
	if err != nil {
		return nil, err
	}
	next := 0
	take := func(what string) (int, error) {
		if next >= len(tokens) {
			return 0, fmt.Errorf("unexpected end of input reading %s: %w", what, ErrMalformed)
		}
		v := tokens[next]
		next++
		return v, nil
	}
	pair := func(what string) (grid.Coordinate, error) {
		x, err := take(what)
		if err != nil {
			return grid.Coordinate{}, err
		}
		y, err := take(what)
		if err != nil {
			return grid.Coordinate{}, err
		}
		return grid.Coordinate{X: x, Y: y}, nil
	}

	sc := &Scenario{}
	if sc.Start, err = pair("start"); err != nil {
		return nil, err
	}
	if sc.Goal, err = pair("goal"); err != nil {
		return nil, err
	}
	for next < len(tokens) {
		idx := len(sc.Obstacles)
		n, err := take("vertex count")
		if err != nil {
			return nil, err
		}
		if n < 3 {
			return nil, fmt.Errorf("obstacle %d has %d vertices: %w", idx, n, ErrMalformed)
		}
		if n > (len(tokens)-next)/2 {
			return nil, fmt.Errorf("obstacle %d declares %d vertices: %w", idx, n, ErrMalformed)
		}
		poly := make(geometry.Polygon, 0, n)
		for i := 0; i < n; i++ {
			v, err := pair(fmt.Sprintf("obstacle %d vertex %d", idx, i))
			if err != nil {
				return nil, err
			}
			poly = append(poly, v)
		}
		sc.Obstacles = append(sc.Obstacles, poly)
	}
	return sc, nil
}

func scanInts(r io.Reader) ([]int, error) {
	var out []int
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		line := strings.TrimSpace(lines.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		for _, word := range strings.Fields(line) {
			v, err := strconv.Atoi(word)
			if err != nil {
				return nil, fmt.Errorf("token %q: %w", word, ErrMalformed)
			}
			out = append(out, v)
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return out, nil
}
