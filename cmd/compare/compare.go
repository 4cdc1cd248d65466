package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/vincentfiestada/ai-nav/scenario"
	"github.com/vincentfiestada/ai-nav/search"
	"github.com/vincentfiestada/ai-nav/telemetry"
)

// Batch runs every strategy over a set of scenarios.
type Batch struct {
	Width, Height int
	Strategies    []search.Strategy
	Output        *telemetry.OutputManager // nil disables CSV output
	Logger        *slog.Logger
}

// RunScenario searches sc once per strategy, each on a fresh copy of the
// rasterized grid, and returns one record per strategy.
func (b *Batch) RunScenario(sc *scenario.Scenario) ([]telemetry.RunRecord, error) {
	base, blocked, err := sc.Build(b.Width, b.Height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sc.Name, err)
	}

	records := make([]telemetry.RunRecord, 0, len(b.Strategies))
	costs := make(map[search.Strategy]int, len(b.Strategies))
	for _, strategy := range b.Strategies {
		start := time.Now()
		res, err := search.Run(base.Clone(), sc.Start, sc.Goal, strategy, search.WithLogger(b.Logger))
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", sc.Name, strategy, err)
		}
		rec := telemetry.NewRunRecord(sc.Name, blocked, res, time.Since(start))
		records = append(records, rec)
		if res.Found() {
			costs[strategy] = res.Cost
		}

		if err := b.Output.WriteRun(rec); err != nil {
			return nil, err
		}
		if err := b.Output.WritePath(telemetry.PathRecords(sc.Name, strategy, res.Path)); err != nil {
			return nil, err
		}
		b.Logger.Debug("run", "record", rec)
	}

	// BFS is shortest. A* keeps the first route it finds to each cell, so
	// around obstacles it may settle for a longer one.
	bfs, okB := costs[search.BFS]
	astar, okA := costs[search.AStar]
	if okB && okA && astar > bfs {
		b.Logger.Debug("astar path longer than bfs",
			"scenario", sc.Name,
			"bfs_cost", bfs,
			"astar_cost", astar,
			"extra", astar-bfs,
		)
	}
	return records, nil
}

// RunRandom generates n random scenarios from rng and runs each one.
func (b *Batch) RunRandom(rng *rand.Rand, n, polygons, maxVertices int) ([]telemetry.RunRecord, error) {
	var all []telemetry.RunRecord
	for i := 0; i < n; i++ {
		sc, err := scenario.Random(rng, b.Width, b.Height, polygons, maxVertices)
		if err != nil {
			return nil, err
		}
		sc.Name = fmt.Sprintf("random-%04d", i)
		records, err := b.RunScenario(sc)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// LogSummaries logs one line per strategy.
func LogSummaries(logger *slog.Logger, records []telemetry.RunRecord) {
	for _, s := range telemetry.Summarize(records) {
		logger.Info("summary", "stats", s)
	}
}
