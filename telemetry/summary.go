package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vincentfiestada/ai-nav/search"
)

// Summary aggregates the runs of one strategy.
type Summary struct {
	Strategy    string
	Runs        int
	Successes   int
	SuccessRate float64

	// Expansion distribution over all runs
	ExpandedMean   float64
	ExpandedStd    float64
	ExpandedMedian float64
	ExpandedP90    float64

	// Cost over successful runs only
	CostMean float64

	// Mean of cost / manhattan over successful runs; 1.0 is optimal
	// when no obstacles are in the way.
	Stretch float64

	DurationMeanUS float64
}

// Summarize groups records by strategy and computes one Summary per strategy,
// in the order BFS, DFS, A* followed by any unknown names alphabetically.
func Summarize(records []RunRecord) []Summary {
	groups := make(map[string][]RunRecord)
	for _, r := range records {
		groups[r.Strategy] = append(groups[r.Strategy], r)
	}

	var names []string
	for _, s := range search.Strategies() {
		if _, ok := groups[s.String()]; ok {
			names = append(names, s.String())
		}
	}
	var extra []string
	for name := range groups {
		if _, err := search.ParseStrategy(name); err != nil {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	out := make([]Summary, 0, len(names))
	for _, name := range names {
		out = append(out, summarize(name, groups[name]))
	}
	return out
}

func summarize(name string, runs []RunRecord) Summary {
	s := Summary{Strategy: name, Runs: len(runs)}
	if len(runs) == 0 {
		return s
	}

	expanded := make([]float64, len(runs))
	durations := make([]float64, len(runs))
	var costs, stretch []float64
	for i, r := range runs {
		expanded[i] = float64(r.Expanded)
		durations[i] = float64(r.DurationUS)
		if r.Found() {
			s.Successes++
			costs = append(costs, float64(r.Cost))
			if r.Manhattan > 0 {
				stretch = append(stretch, float64(r.Cost)/float64(r.Manhattan))
			}
		}
	}

	s.SuccessRate = float64(s.Successes) / float64(s.Runs)
	s.ExpandedMean = stat.Mean(expanded, nil)
	if len(expanded) > 1 {
		s.ExpandedStd = stat.StdDev(expanded, nil)
	}
	sort.Float64s(expanded)
	s.ExpandedMedian = stat.Quantile(0.5, stat.Empirical, expanded, nil)
	s.ExpandedP90 = stat.Quantile(0.9, stat.Empirical, expanded, nil)
	s.DurationMeanUS = stat.Mean(durations, nil)
	if len(costs) > 0 {
		s.CostMean = stat.Mean(costs, nil)
	}
	if len(stretch) > 0 {
		s.Stretch = stat.Mean(stretch, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("strategy", s.Strategy),
		slog.Int("runs", s.Runs),
		slog.Float64("success_rate", s.SuccessRate),
		slog.Float64("expanded_mean", s.ExpandedMean),
		slog.Float64("expanded_std", s.ExpandedStd),
		slog.Float64("expanded_p50", s.ExpandedMedian),
		slog.Float64("expanded_p90", s.ExpandedP90),
		slog.Float64("cost_mean", s.CostMean),
		slog.Float64("stretch", s.Stretch),
		slog.Float64("duration_mean_us", s.DurationMeanUS),
	)
}
