package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Naval-Skirmish/internal/config"
	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

// Runner drives an engine from a terminal. It steps on a ticker, renders
// every frame and maps keys to viewer controls.
type Runner struct {
	engine   *sim.Engine
	screen   tcell.Screen
	sink     *Sink
	log      zerolog.Logger
	interval time.Duration

	speed     float64
	tickAccum float64
	announced bool // outcome already logged for this run
}

// NewRunner wires an engine to screen. The caller initialises and finalises
// the screen.
func NewRunner(e *sim.Engine, screen tcell.Screen, v config.Viewer, log zerolog.Logger) *Runner {
	return &Runner{
		engine: e,
		screen: screen,
		sink: NewSink(screen, Overlays{
			Vision:  v.ShowVision,
			Range:   v.ShowFiringRange,
			Targets: v.ShowTargetLines,
		}),
		log:      log,
		interval: e.Tuning().TickDuration(),
		speed:    config.ClampSpeed(v.Speed),
	}
}

// Run renders until the user quits or ctx is done. Quitting returns nil;
// cancellation returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := r.screen.PollEvent()
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

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !r.handleEvent(ev) {
				return nil
			}
			r.render()
		case <-ticker.C:
			r.advance()
			r.render()
		}
	}
}

// advance steps the engine by the current speed.
func (r *Runner) advance() {
	if r.speed <= 0 || r.engine.Ended() {
		return
	}
	r.tickAccum += r.speed
	for r.tickAccum >= 1.0 {
		r.tickAccum -= 1.0
		if !r.engine.Step() {
			r.tickAccum = 0
			break
		}
	}
	if r.engine.Ended() && !r.announced {
		r.announced = true
		r.log.Info().
			Str("run", r.engine.RunID()).
			Str("outcome", r.engine.Outcome().String()).
			Int("tick", r.engine.Tick()).
			Msg("terminal battle over")
	}
}

func (r *Runner) render() {
	r.sink.Status = fmt.Sprintf("%s seed %d", config.SpeedLabel(r.speed), r.engine.Seed())
	r.sink.Render(r.engine.Frame())
}

// handleEvent applies one input event. It returns false when the user quits.
func (r *Runner) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return r.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		r.screen.Sync()
	}
	return true
}

func (r *Runner) handleRune(ch rune) bool {
	switch ch {
	case 'q', 'Q':
		return false
	case 'r', 'R':
		r.engine.Reset()
		r.tickAccum = 0
		r.announced = false
		r.log.Info().Str("run", r.engine.RunID()).Msg("terminal reset")
	case 'p', 'P', ' ':
		if r.speed > 0 {
			r.speed = 0
		} else {
			r.speed = 1
		}
	case '+', '=', '.':
		r.speed = config.FasterSpeed(r.speed)
	case '-', '_', ',':
		r.speed = config.SlowerSpeed(r.speed)
	case 'v':
		r.sink.Overlays.Vision = !r.sink.Overlays.Vision
	case 'f':
		r.sink.Overlays.Range = !r.sink.Overlays.Range
	case 't':
		r.sink.Overlays.Targets = !r.sink.Overlays.Targets
	}
	return true
}
