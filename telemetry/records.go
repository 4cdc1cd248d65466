package telemetry

import (
	"log/slog"
	"time"

	"github.com/vincentfiestada/ai-nav/grid"
	"github.com/vincentfiestada/ai-nav/search"
)

// RunRecord is one row of runs.csv: a single search over a single scenario.
type RunRecord struct {
	Scenario   string `csv:"scenario"`
	Strategy   string `csv:"strategy"`
	Outcome    string `csv:"outcome"`
	Width      int    `csv:"width"`
	Height     int    `csv:"height"`
	Blocked    int    `csv:"blocked"`
	Expanded   int    `csv:"expanded"`
	Cost       int    `csv:"cost"`
	PathLen    int    `csv:"path_len"`
	Manhattan  int    `csv:"manhattan"`
	DurationUS int64  `csv:"duration_us"`
}

// NewRunRecord flattens a search result for CSV output.
func NewRunRecord(scenario string, blocked int, res search.Result, d time.Duration) RunRecord {
	return RunRecord{
		Scenario:   scenario,
		Strategy:   res.Strategy.String(),
		Outcome:    res.Outcome.String(),
		Width:      res.Snapshot.Width,
		Height:     res.Snapshot.Height,
		Blocked:    blocked,
		Expanded:   res.Expanded,
		Cost:       res.Cost,
		PathLen:    len(res.Path),
		Manhattan:  grid.Manhattan(res.Start, res.Goal),
		DurationUS: d.Microseconds(),
	}
}

// Found reports whether the run reached its goal.
func (r RunRecord) Found() bool { return r.Outcome == search.Success.String() }

// LogValue implements slog.LogValuer for structured logging.
func (r RunRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("scenario", r.Scenario),
		slog.String("strategy", r.Strategy),
		slog.String("outcome", r.Outcome),
		slog.Int("expanded", r.Expanded),
		slog.Int("cost", r.Cost),
		slog.Int64("duration_us", r.DurationUS),
	)
}

// PathRecord is one row of path.csv.
type PathRecord struct {
	Scenario string `csv:"scenario"`
	Strategy string `csv:"strategy"`
	Step     int    `csv:"step"`
	X        int    `csv:"x"`
	Y        int    `csv:"y"`
}

// PathRecords converts a path into one record per step, start first.
func PathRecords(scenario string, strategy search.Strategy, path []grid.Coordinate) []PathRecord {
	out := make([]PathRecord, len(path))
	for i, c := range path {
		out[i] = PathRecord{
			Scenario: scenario,
			Strategy: strategy.String(),
			Step:     i,
			X:        c.X,
			Y:        c.Y,
		}
	}
	return out
}
