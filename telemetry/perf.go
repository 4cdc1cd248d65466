package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for a single run.
const (
	PhaseLoad      = "load"
	PhaseRasterize = "rasterize"
	PhaseSearch    = "search"
	PhaseRender    = "render"
	PhaseOutput    = "output"
)

// Timer measures the phases of one run. Phases are sequential: starting a
// phase ends the previous one. Time spent in a repeated phase accumulates.
type Timer struct {
	start      time.Time
	phaseStart time.Time
	lastPhase  string
	phases     map[string]time.Duration
	order      []string
}

// NewTimer creates a timer and starts the clock.
func NewTimer() *Timer {
	now := time.Now()
	return &Timer{
		start:      now,
		phaseStart: now,
		phases:     make(map[string]time.Duration),
	}
}

// StartPhase begins timing a specific phase.
func (t *Timer) StartPhase(phase string) {
	now := time.Now()
	t.endPhase(now)
	if _, seen := t.phases[phase]; !seen {
		t.phases[phase] = 0
		t.order = append(t.order, phase)
	}
	t.phaseStart = now
	t.lastPhase = phase
}

func (t *Timer) endPhase(now time.Time) {
	if t.lastPhase != "" {
		t.phases[t.lastPhase] += now.Sub(t.phaseStart)
		t.lastPhase = ""
	}
}

// Phase returns the time recorded so far for a finished phase.
func (t *Timer) Phase(phase string) time.Duration { return t.phases[phase] }

// Stop ends the current phase and returns the collected timings.
func (t *Timer) Stop() Timings {
	now := time.Now()
	t.endPhase(now)

	out := Timings{
		Total:  now.Sub(t.start),
		Order:  append([]string(nil), t.order...),
		Phases: make(map[string]time.Duration, len(t.phases)),
	}
	for k, v := range t.phases {
		out.Phases[k] = v
	}
	return out
}

// Timings is the result of a stopped Timer.
type Timings struct {
	Total  time.Duration
	Order  []string
	Phases map[string]time.Duration
}

// Pct returns the share of total time spent in phase, in percent.
func (t Timings) Pct(phase string) float64 {
	if t.Total <= 0 {
		return 0
	}
	return float64(t.Phases[phase]) / float64(t.Total) * 100
}

// LogValue implements slog.LogValuer for structured logging.
func (t Timings) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("total_us", t.Total.Microseconds()),
	}
	for _, phase := range t.Order {
		attrs = append(attrs, slog.Int64(phase+"_us", t.Phases[phase].Microseconds()))
	}
	return slog.GroupValue(attrs...)
}
