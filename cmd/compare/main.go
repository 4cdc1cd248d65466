// Package main runs BFS, DFS and A* side by side over one scenario or a batch
// of random scenarios and reports per-strategy statistics.
package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/vincentfiestada/ai-nav/config"
	"github.com/vincentfiestada/ai-nav/scenario"
	"github.com/vincentfiestada/ai-nav/search"
	"github.com/vincentfiestada/ai-nav/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	scenarioPath := flag.String("scenario", "", "Scenario file to compare on (empty = random batch)")
	runs := flag.Int("runs", 0, "Random scenarios per batch (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, then time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for runs.csv and path.csv")
	summarize := flag.String("summarize", "", "Summarize an existing runs.csv instead of searching")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	logger, err := cfg.NewLogger(os.Stdout)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if *summarize != "" {
		records, err := telemetry.ReadRuns(*summarize)
		if err != nil {
			slog.Error("failed to read runs", "error", err)
			os.Exit(1)
		}
		LogSummaries(logger, records)
		return
	}

	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}
	om, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	batch := &Batch{
		Width:      cfg.Grid.Width,
		Height:     cfg.Grid.Height,
		Strategies: search.Strategies(),
		Output:     om,
		Logger:     logger,
	}

	var records []telemetry.RunRecord
	if *scenarioPath != "" {
		sc, err := scenario.Load(*scenarioPath)
		if err != nil {
			slog.Error("failed to load scenario", "error", err)
			os.Exit(1)
		}
		records, err = batch.RunScenario(sc)
		if err != nil {
			slog.Error("compare failed", "error", err)
			os.Exit(1)
		}
	} else {
		n := cfg.Compare.Runs
		if *runs > 0 {
			n = *runs
		}
		rngSeed := cfg.Compare.Seed
		if *seed != 0 {
			rngSeed = *seed
		}
		if rngSeed == 0 {
			rngSeed = time.Now().UnixNano()
		}

		slog.Info("starting random batch",
			"runs", n,
			"seed", rngSeed,
			"grid", cfg.Grid,
			"polygons", cfg.Compare.Polygons,
		)
		rng := rand.New(rand.NewSource(rngSeed))
		records, err = batch.RunRandom(rng, n, cfg.Compare.Polygons, cfg.Compare.MaxVertices)
		if err != nil {
			slog.Error("compare failed", "error", err)
			os.Exit(1)
		}
	}

	LogSummaries(logger, records)
}
