package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vincentfiestada/ai-nav/config"
	"github.com/vincentfiestada/ai-nav/render"
	"github.com/vincentfiestada/ai-nav/scenario"
	"github.com/vincentfiestada/ai-nav/search"
	"github.com/vincentfiestada/ai-nav/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	scenarioPath := flag.String("scenario", "", "Scenario file (.yaml/.yml or plain text)")
	strategy := flag.String("strategy", "", "Search strategy: bfs, dfs or astar (empty = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	view := flag.Bool("view", false, "Animate the search in the terminal")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (empty = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *strategy != "" {
		if err := cfg.SetStrategy(*strategy); err != nil {
			slog.Error("invalid strategy", "error", err)
			os.Exit(1)
		}
	}
	if *logLevel != "" {
		if err := cfg.SetLogLevel(*logLevel); err != nil {
			slog.Error("invalid log level", "error", err)
			os.Exit(1)
		}
	}
	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}

	// Logs go to stderr so the rendered grid owns stdout.
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "missing -scenario")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg, *scenarioPath, *view); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, scenarioPath string, view bool) error {
	timer := telemetry.NewTimer()

	timer.StartPhase(telemetry.PhaseLoad)
	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}

	timer.StartPhase(telemetry.PhaseRasterize)
	g, blocked, err := sc.Build(cfg.Grid.Width, cfg.Grid.Height)
	if err != nil {
		return err
	}
	slog.Debug("obstacles rasterized",
		"scenario", sc.Name,
		"width", g.Width(),
		"height", g.Height(),
		"polygons", len(sc.Obstacles),
		"blocked", blocked,
	)

	s, err := search.New(g, sc.Start, sc.Goal, cfg.Derived.Strategy, search.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	timer.StartPhase(telemetry.PhaseSearch)
	var res search.Result
	if view {
		res, err = runView(cfg, s)
	} else {
		res, err = s.Run()
	}
	if err != nil {
		return err
	}
	if res.Outcome == search.Abandoned {
		slog.Info("search abandoned", "scenario", sc.Name, "result", res)
		return nil
	}

	timer.StartPhase(telemetry.PhaseRender)
	if !view {
		var path = res.Path
		if !cfg.Render.ShowPath {
			path = nil
		}
		if err := render.WriteText(os.Stdout, res.Snapshot, path, cfg.Render.Headers); err != nil {
			return fmt.Errorf("rendering grid: %w", err)
		}
	}

	timer.StartPhase(telemetry.PhaseOutput)
	if err := writeOutput(cfg, sc, blocked, res, timer.Phase(telemetry.PhaseSearch)); err != nil {
		return err
	}

	slog.Info("search complete",
		"scenario", sc.Name,
		"blocked", blocked,
		"result", res,
		"timings", timer.Stop(),
	)
	return nil
}

func runView(cfg *config.Config, s *search.Search) (search.Result, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return search.Result{}, fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return search.Result{}, fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()

	delay := time.Duration(cfg.Render.DelayMS) * time.Millisecond
	return render.NewView(screen, s, delay, cfg.Render.ShowPath).Run()
}

func writeOutput(cfg *config.Config, sc *scenario.Scenario, blocked int, res search.Result, d time.Duration) error {
	om, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return err
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		return err
	}
	if err := om.WriteScenario(sc); err != nil {
		return err
	}
	if err := om.WriteRun(telemetry.NewRunRecord(sc.Name, blocked, res, d)); err != nil {
		return err
	}
	if err := om.WritePath(telemetry.PathRecords(sc.Name, res.Strategy, res.Path)); err != nil {
		return err
	}
	if om != nil {
		slog.Info("output written", "dir", om.Dir())
	}
	return nil
}
