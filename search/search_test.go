package search

import (
	"errors"
	"testing"

	"github.com/vincentfiestada/ai-nav/geometry"
	"github.com/vincentfiestada/ai-nav/grid"
)

func pt(x, y int) grid.Coordinate { return grid.Coordinate{X: x, Y: y} }

func newGrid(t *testing.T, w, h int, polygons ...geometry.Polygon) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := geometry.Rasterize(g, polygons...); err != nil {
		t.Fatal(err)
	}
	return g
}

// checkPath verifies a path is a 4-connected unblocked walk from start to
// goal whose length matches the reported cost.
func checkPath(t *testing.T, g *grid.Grid, r Result) {
	t.Helper()
	if len(r.Path) == 0 {
		t.Fatalf("%v: empty path", r.Strategy)
	}
	if r.Path[0] != r.Start || r.Path[len(r.Path)-1] != r.Goal {
		t.Errorf("%v: path runs %v -> %v, want %v -> %v",
			r.Strategy, r.Path[0], r.Path[len(r.Path)-1], r.Start, r.Goal)
	}
	if r.Cost != len(r.Path)-1 {
		t.Errorf("%v: cost %d != len(path)-1 = %d", r.Strategy, r.Cost, len(r.Path)-1)
	}
	for i, c := range r.Path {
		if g.IsBlocked(c) {
			t.Errorf("%v: path step %d at %v is blocked", r.Strategy, i, c)
		}
		if i > 0 && grid.Manhattan(r.Path[i-1], c) != 1 {
			t.Errorf("%v: steps %v -> %v are not adjacent", r.Strategy, r.Path[i-1], c)
		}
	}
}

func TestStraightRow(t *testing.T) {
	for _, strategy := range Strategies() {
		g := newGrid(t, 5, 5)
		r, err := Run(g, pt(0, 0), pt(4, 0), strategy)
		if err != nil {
			t.Fatalf("%v: %v", strategy, err)
		}
		if !r.Found() {
			t.Fatalf("%v: expected success", strategy)
		}
		if len(r.Path) != 5 || r.Cost != 4 {
			t.Errorf("%v: expected path length 5 cost 4, got %d/%d", strategy, len(r.Path), r.Cost)
		}
		for i, c := range r.Path {
			if c != pt(i, 0) {
				t.Errorf("%v: path[%d] = %v, want %v", strategy, i, c, pt(i, 0))
			}
		}
		checkPath(t, g, r)
	}
}

func TestObstacleFreeOptimal(t *testing.T) {
	pairs := [][2]grid.Coordinate{
		{pt(0, 0), pt(7, 7)},
		{pt(7, 0), pt(0, 7)},
		{pt(3, 4), pt(3, 4)},
		{pt(6, 2), pt(1, 5)},
		{pt(0, 5), pt(7, 5)},
	}
	for _, p := range pairs {
		want := grid.Manhattan(p[0], p[1])
		for _, strategy := range Strategies() {
			g := newGrid(t, 8, 8)
			r, err := Run(g, p[0], p[1], strategy)
			if err != nil {
				t.Fatal(err)
			}
			if !r.Found() {
				t.Fatalf("%v %v->%v: expected success", strategy, p[0], p[1])
			}
			checkPath(t, g, r)
			if strategy == DFS {
				if r.Cost < want {
					t.Errorf("DFS cost %d below Manhattan %d", r.Cost, want)
				}
				continue
			}
			if r.Cost != want {
				t.Errorf("%v %v->%v: cost %d, want %d", strategy, p[0], p[1], r.Cost, want)
			}
		}
	}
}

func TestStartEqualsGoal(t *testing.T) {
	g := newGrid(t, 3, 3)
	r, err := Run(g, pt(1, 1), pt(1, 1), AStar)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Found() || r.Cost != 0 || r.Expanded != 0 || len(r.Path) != 1 {
		t.Errorf("Expected immediate success, got %+v", r)
	}
}

func TestTriangleEnclosesGoal(t *testing.T) {
	triangle := geometry.Polygon{pt(2, 1), pt(1, 3), pt(3, 4)}
	for _, strategy := range Strategies() {
		g := newGrid(t, 6, 6, triangle)
		r, err := Run(g, pt(0, 0), pt(2, 2), strategy)
		if err != nil {
			t.Fatalf("%v: %v", strategy, err)
		}
		if r.Found() {
			t.Errorf("%v: expected no solution, got path %v", strategy, r.Path)
		}
		if r.Path != nil || r.Cost != 0 {
			t.Errorf("%v: failure should carry no path", strategy)
		}
		if r.Expanded == 0 {
			t.Errorf("%v: failure should still report expansions", strategy)
		}
		if r.Snapshot.At(2, 2) != grid.Goal {
			t.Errorf("%v: goal tile is %v", strategy, r.Snapshot.At(2, 2))
		}
	}
}

func TestVerticalWallFullColumn(t *testing.T) {
	for _, strategy := range Strategies() {
		g := newGrid(t, 6, 6)
		geometry.RasterizeEdges(g, geometry.NewEdge(pt(3, 0), pt(3, 5)))
		r, err := Run(g, pt(0, 0), pt(5, 0), strategy)
		if err != nil {
			t.Fatal(err)
		}
		if r.Found() {
			t.Errorf("%v: wall spans the column, expected failure", strategy)
		}
	}
}

func TestVerticalWallDetour(t *testing.T) {
	for _, strategy := range Strategies() {
		g := newGrid(t, 6, 7)
		geometry.RasterizeEdges(g, geometry.NewEdge(pt(3, 0), pt(3, 5)))
		r, err := Run(g, pt(0, 0), pt(5, 0), strategy)
		if err != nil {
			t.Fatal(err)
		}
		if !r.Found() {
			t.Fatalf("%v: expected detour below the wall", strategy)
		}
		checkPath(t, g, r)
		crossed := false
		for _, c := range r.Path {
			if c.X == 3 {
				if c.Y != 6 {
					t.Errorf("%v: crossed the wall at %v", strategy, c)
				}
				crossed = true
			}
		}
		if !crossed {
			t.Errorf("%v: path never reached column 3", strategy)
		}
		if strategy == BFS && r.Cost != 17 {
			t.Errorf("BFS detour cost %d, want 17", r.Cost)
		}
	}
}

func TestCompletenessOnFailure(t *testing.T) {
	// Right triangle whose interior holds the goal; the outside is fully reachable.
	wedge := geometry.Polygon{pt(0, 0), pt(8, 0), pt(0, 8)}
	for _, strategy := range Strategies() {
		g := newGrid(t, 12, 12, wedge)
		r, err := Run(g, pt(10, 10), pt(2, 2), strategy)
		if err != nil {
			t.Fatal(err)
		}
		if r.Found() {
			t.Fatalf("%v: expected failure", strategy)
		}

		var explored, current, queued, unexplored, blocked int
		for _, s := range r.Snapshot.Tiles {
			switch s {
			case grid.Explored:
				explored++
			case grid.Current:
				current++
			case grid.Queued:
				queued++
			case grid.Unexplored:
				unexplored++
			case grid.Blocked:
				blocked++
			}
		}
		if blocked != 24 {
			t.Errorf("%v: expected 24 blocked cells, got %d", strategy, blocked)
		}
		if current != 1 {
			t.Errorf("%v: expected exactly one current cell, got %d", strategy, current)
		}
		if queued != 0 {
			t.Errorf("%v: fringe exhausted but %d cells still queued", strategy, queued)
		}
		if explored+current != 99 {
			t.Errorf("%v: expected 99 reachable cells visited, got %d", strategy, explored+current)
		}
		if unexplored != 20 {
			t.Errorf("%v: expected 20 enclosed cells untouched, got %d", strategy, unexplored)
		}
		if r.Expanded != 98 {
			t.Errorf("%v: expected 98 advances, got %d", strategy, r.Expanded)
		}
	}
}

func TestPathRoundTripAroundObstacles(t *testing.T) {
	obstacles := []geometry.Polygon{
		{pt(2, 2), pt(6, 2), pt(6, 6), pt(2, 6)},
		{pt(9, 0), pt(9, 8), pt(11, 8)},
		{pt(4, 9), pt(8, 12), pt(3, 13)},
	}
	for _, strategy := range Strategies() {
		g := newGrid(t, 15, 15, obstacles...)
		r, err := Run(g, pt(0, 0), pt(14, 14), strategy)
		if err != nil {
			t.Fatal(err)
		}
		if !r.Found() {
			t.Fatalf("%v: expected a path", strategy)
		}
		checkPath(t, g, r)
	}
}

func TestAStarMonotonicPops(t *testing.T) {
	obstacles := []geometry.Polygon{
		{pt(2, 2), pt(6, 2), pt(6, 6), pt(2, 6)},
		{pt(9, 0), pt(9, 8), pt(11, 8)},
	}
	g := newGrid(t, 15, 15, obstacles...)
	last := -1
	_, err := Run(g, pt(0, 0), pt(14, 3), AStar, WithObserver(func(ev Event) {
		if ev.Priority < last {
			t.Errorf("step %d popped f=%d after f=%d", ev.Step, ev.Priority, last)
		}
		last = ev.Priority
	}))
	if err != nil {
		t.Fatal(err)
	}
}

func TestInvariantsEveryStep(t *testing.T) {
	triangle := geometry.Polygon{pt(3, 1), pt(1, 6), pt(6, 7)}
	for _, strategy := range Strategies() {
		g := newGrid(t, 10, 10, triangle)
		goal := pt(9, 9)
		s, err := New(g, pt(0, 0), goal, strategy)
		if err != nil {
			t.Fatal(err)
		}
		visited := make(map[grid.Coordinate]bool)
		for {
			done, err := s.Step()
			if err != nil {
				t.Fatal(err)
			}
			if g.Status(goal) != grid.Goal {
				t.Fatalf("%v: goal overwritten with %v", strategy, g.Status(goal))
			}
			if done {
				break
			}
			cur := s.Current()
			if visited[cur] {
				t.Fatalf("%v: %v admitted twice", strategy, cur)
			}
			visited[cur] = true
			wantCurrent := 1
			if cur == goal {
				wantCurrent = 0
			}
			if n := g.Count(grid.Current); n != wantCurrent {
				t.Fatalf("%v: %d current cells at step %d", strategy, n, s.Expanded())
			}
		}
		if !s.Result().Found() {
			t.Errorf("%v: expected success", strategy)
		}
		// Further steps are no-ops.
		if done, err := s.Step(); !done || err != nil {
			t.Errorf("%v: Step after termination = %v, %v", strategy, done, err)
		}
	}
}

func TestExpansionOrder(t *testing.T) {
	tests := []struct {
		strategy Strategy
		goal     grid.Coordinate
		want     []grid.Coordinate
	}{
		// BFS visits level by level, right before down.
		{BFS, pt(0, 2), []grid.Coordinate{pt(2, 1), pt(0, 1), pt(1, 0), pt(1, 2)}},
		// DFS dives right first; queued cells are not re-admitted.
		{DFS, pt(0, 2), []grid.Coordinate{pt(2, 1), pt(2, 0), pt(2, 2), pt(0, 1)}},
		// A* ties on f pop in push order: left (f=2) before down (f=2),
		// and down before the goal pushed later with the same f.
		{AStar, pt(0, 2), []grid.Coordinate{pt(0, 1), pt(1, 2), pt(0, 2)}},
		// Right and down both have f=2; right was pushed first.
		{AStar, pt(2, 2), []grid.Coordinate{pt(2, 1), pt(1, 2), pt(2, 2)}},
	}
	for _, tc := range tests {
		g := newGrid(t, 3, 3)
		var got []grid.Coordinate
		s, err := New(g, pt(1, 1), tc.goal, tc.strategy, WithObserver(func(ev Event) {
			got = append(got, ev.To)
		}))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < len(tc.want); i++ {
			if _, err := s.Step(); err != nil {
				t.Fatal(err)
			}
		}
		for i := range tc.want {
			if i >= len(got) || got[i] != tc.want[i] {
				t.Errorf("%v to %v: visit order %v, want %v", tc.strategy, tc.goal, got, tc.want)
				break
			}
		}
	}
}

// A cell's predecessor and depth are fixed when it is first queued, so A*
// can settle on a longer route when a cheaper one is discovered later.
// Here (2,2) is first reached from (3,2) at depth 5 although (2,1) offers
// depth 3, and the returned path is two steps longer than the BFS one.
//
//	...S.
//	...#.
//	#....
//	...##
//	....G
func TestAStarKeepsFirstDiscovery(t *testing.T) {
	build := func() *grid.Grid {
		g := newGrid(t, 5, 5)
		for _, c := range []grid.Coordinate{pt(0, 2), pt(3, 1), pt(3, 3), pt(4, 3)} {
			g.Block(c)
		}
		return g
	}
	start, goal := pt(3, 0), pt(4, 4)

	bfs, err := Run(build(), start, goal, BFS)
	if err != nil {
		t.Fatal(err)
	}
	astar, err := Run(build(), start, goal, AStar)
	if err != nil {
		t.Fatal(err)
	}
	if bfs.Cost != 7 {
		t.Errorf("Expected BFS cost 7, got %d", bfs.Cost)
	}
	if astar.Cost != 9 {
		t.Errorf("Expected A* cost 9, got %d", astar.Cost)
	}
	if astar.Expanded != 13 {
		t.Errorf("Expected 13 A* expansions, got %d", astar.Expanded)
	}
	want := []grid.Coordinate{
		pt(3, 0), pt(4, 0), pt(4, 1), pt(4, 2), pt(3, 2),
		pt(2, 2), pt(2, 3), pt(2, 4), pt(3, 4), pt(4, 4),
	}
	if len(astar.Path) != len(want) {
		t.Fatalf("Expected A* path %v, got %v", want, astar.Path)
	}
	for i := range want {
		if astar.Path[i] != want[i] {
			t.Errorf("Expected A* path %v, got %v", want, astar.Path)
			break
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	g := newGrid(t, 4, 4)
	if _, err := New(g, pt(-1, 0), pt(3, 3), BFS); !errors.Is(err, grid.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds for start, got %v", err)
	}
	if _, err := New(g, pt(0, 0), pt(4, 3), BFS); !errors.Is(err, grid.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds for goal, got %v", err)
	}
	g.Block(pt(0, 0))
	if _, err := New(g, pt(0, 0), pt(3, 3), BFS); !errors.Is(err, ErrStartBlocked) {
		t.Errorf("Expected ErrStartBlocked, got %v", err)
	}
	if _, err := New(g, pt(1, 1), pt(3, 3), Strategy(9)); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Expected ErrUnknownStrategy, got %v", err)
	}
}

func TestGoalOnObstacleIsReachable(t *testing.T) {
	g := newGrid(t, 5, 1)
	g.Block(pt(4, 0))
	r, err := Run(g, pt(0, 0), pt(4, 0), BFS)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Found() || r.Cost != 4 {
		t.Errorf("Expected goal to override the obstacle, got %+v", r)
	}
}

func TestReconstruct(t *testing.T) {
	g := newGrid(t, 3, 3)
	g.SetPredecessor(pt(1, 0), pt(0, 0))
	g.SetPredecessor(pt(1, 1), pt(1, 0))
	g.SetPredecessor(pt(2, 1), pt(1, 1))
	path := Reconstruct(g, pt(2, 1))
	want := []grid.Coordinate{pt(0, 0), pt(1, 0), pt(1, 1), pt(2, 1)}
	if len(path) != len(want) {
		t.Fatalf("Expected %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}
	if Reconstruct(g, pt(5, 5)) != nil {
		t.Error("Out of bounds end should yield nil")
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"bfs", BFS},
		{"DFS", DFS},
		{" astar ", AStar},
		{"a*", AStar},
	}
	for _, tc := range tests {
		got, err := ParseStrategy(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseStrategy("dijkstra"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Expected ErrUnknownStrategy, got %v", err)
	}

	var s Strategy
	if err := s.UnmarshalText([]byte("dfs")); err != nil || s != DFS {
		t.Errorf("UnmarshalText = %v, %v", s, err)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{Failure, "failure"},
		{Success, "success"},
		{Abandoned, "abandoned"},
	}
	for _, tc := range tests {
		if got := tc.o.String(); got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, got)
		}
	}
	if (Result{Outcome: Abandoned}).Found() {
		t.Error("Abandoned result should not count as found")
	}
}
