package render

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vincentfiestada/ai-nav/grid"
	"github.com/vincentfiestada/ai-nav/search"
)

// Stepper is the part of a search the view drives. *search.Search satisfies it.
type Stepper interface {
	Step() (bool, error)
	Done() bool
	Result() search.Result
	Snapshot() grid.Snapshot
	Strategy() search.Strategy
	Expanded() int
	FringeLen() int
}

// View animates a search on a terminal screen, one step per tick.
type View struct {
	screen   tcell.Screen
	search   Stepper
	delay    time.Duration
	showPath bool
	logger   *slog.Logger

	result search.Result
	err    error
}

// NewView creates a view over s. A non-positive delay steps as fast as the
// terminal redraws.
func NewView(screen tcell.Screen, s Stepper, delay time.Duration, showPath bool) *View {
	if delay <= 0 {
		delay = time.Millisecond
	}
	return &View{
		screen:   screen,
		search:   s,
		delay:    delay,
		showPath: showPath,
		logger:   slog.Default(),
	}
}

// Tick advances the search one step and redraws. It reports whether the
// search has terminated.
func (v *View) Tick() bool {
	if v.search.Done() || v.err != nil {
		return true
	}
	done, err := v.search.Step()
	if err != nil {
		v.err = err
		v.logger.Error("search step failed", "error", err)
		done = true
	}
	if done {
		v.result = v.search.Result()
	}
	v.draw()
	return done
}

func (v *View) draw() {
	v.screen.Clear()

	var path = v.result.Path
	if !v.showPath {
		path = nil
	}
	snap := v.search.Snapshot()
	Draw(v.screen, snap, path, 0, 0)

	state := "running"
	if v.search.Done() {
		state = v.result.Outcome.String()
		if v.result.Found() {
			state = fmt.Sprintf("%s cost=%d", state, v.result.Cost)
		}
	}
	status := fmt.Sprintf("%s  expanded=%d fringe=%d  %s  (Esc to quit)",
		v.search.Strategy(), v.search.Expanded(), v.search.FringeLen(), state)
	DrawString(v.screen, 0, snap.Height+1, status, styleText)

	v.screen.Show()
}

// Run steps the search on a timer until it terminates, then keeps the final
// frame on screen until the user quits. Quitting early returns an Abandoned
// result. A step error ends Run immediately.
func (v *View) Run() (search.Result, error) {
	ticker := time.NewTicker(v.delay)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	v.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || Quit(ev) {
				if !v.search.Done() && v.err == nil {
					v.result = v.search.Result()
					v.result.Outcome = search.Abandoned
				}
				return v.result, v.err
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				v.screen.Sync()
			}

		case <-ticker.C:
			if v.search.Done() {
				continue
			}
			v.Tick()
			if v.err != nil {
				return v.result, v.err
			}
		}
	}
}

// Quit reports whether ev asks the view to close: Esc, Ctrl-C or q.
func Quit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q'
	}
	return false
}
