package tui

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Naval-Skirmish/internal/config"
	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func square(c sim.Vec2, half float64) []sim.Vec2 {
	return []sim.Vec2{
		sim.V(c.X-half, c.Y-half),
		sim.V(c.X+half, c.Y-half),
		sim.V(c.X+half, c.Y+half),
		sim.V(c.X-half, c.Y+half),
	}
}

// testFrame lays out an 800x400 world. On an 80x24 terminal each cell is
// 10 world units wide and about 18 tall, with the map starting on row 1.
func testFrame() sim.Frame {
	f := sim.Frame{
		RunID:        "run-1",
		Tick:         42,
		Width:        800,
		Height:       400,
		BaseWidth:    50,
		VisionRadius: 100,
		FiringRange:  75,
		FlashTicks:   9,
		Islands:      []sim.Island{sim.NewIsland(sim.V(400, 200), square(sim.V(400, 200), 40), 4)},
		Ships: []sim.ShipView{
			{ID: "A1", Team: sim.TeamA, Position: sim.V(100, 210), Heading: 0, Alive: true, SinceShot: -1},
			{ID: "B1", Team: sim.TeamB, Position: sim.V(705, 105), Heading: math.Pi, Alive: false, SinceShot: -1},
			{ID: "B2", Team: sim.TeamB, Position: sim.V(300, 210), Heading: math.Pi, Alive: true, SinceShot: 2},
		},
	}
	f.Stats[sim.TeamA] = sim.TeamStats{Team: sim.TeamA, Spawned: 1, Alive: 1, Health: 3, Ammo: 10}
	f.Stats[sim.TeamB] = sim.TeamStats{Team: sim.TeamB, Spawned: 2, Alive: 1, Lost: 1, Health: 3, Ammo: 9}
	return f
}

func TestShipGlyph(t *testing.T) {
	assert.Equal(t, '→', shipGlyph(0))
	assert.Equal(t, '↓', shipGlyph(math.Pi/2))
	assert.Equal(t, '←', shipGlyph(math.Pi))
	assert.Equal(t, '←', shipGlyph(-math.Pi))
	assert.Equal(t, '↑', shipGlyph(-math.Pi/2))
	assert.Equal(t, '↗', shipGlyph(-math.Pi/4))
}

func TestRender_MapLayers(t *testing.T) {
	scr := newScreen(t, 80, 24)
	sink := NewSink(scr, Overlays{})
	sink.Render(testFrame())

	r, _, style, _ := scr.GetContent(10, 12)
	assert.Equal(t, '→', r, "afloat ship points along its heading")
	fg, _, _ := style.Decompose()
	assert.Equal(t, rgbTeamA, fg)

	r, _, style, _ = scr.GetContent(70, 6)
	assert.Equal(t, deadRune, r, "sinking ship")
	fg, _, _ = style.Decompose()
	assert.Equal(t, rgbSinking, fg)

	_, _, style, _ = scr.GetContent(30, 12)
	_, bg, _ := style.Decompose()
	assert.Equal(t, rgbFlash, bg, "recent shot flashes")

	r, _, _, _ = scr.GetContent(40, 12)
	assert.Equal(t, landRune, r, "island centre is land")

	_, _, style, _ = scr.GetContent(2, 3)
	_, bg, _ = style.Decompose()
	assert.Equal(t, rgbBaseA, bg)
	_, _, style, _ = scr.GetContent(78, 3)
	_, bg, _ = style.Decompose()
	assert.Equal(t, rgbBaseB, bg)
	_, _, style, _ = scr.GetContent(20, 3)
	_, bg, _ = style.Decompose()
	assert.Equal(t, rgbWater, bg)
}

func TestRender_HeaderAndFooter(t *testing.T) {
	scr := newScreen(t, 80, 24)
	sink := NewSink(scr, Overlays{})
	sink.Status = "2x seed 7"
	sink.Render(testFrame())

	head := rowText(scr, 0)
	assert.Contains(t, head, "T=00042")
	assert.Contains(t, head, "A 1/1 hull 3 ammo 10")
	assert.Contains(t, head, "B 1/2 hull 3 ammo 9")

	foot := rowText(scr, 23)
	assert.Contains(t, foot, "q quit")
	assert.True(t, strings.HasSuffix(foot, "2x seed 7 "))
}

func TestRender_TargetLines(t *testing.T) {
	scr := newScreen(t, 80, 24)
	f := testFrame()
	f.Ships[0].TargetID = "B2"

	sink := NewSink(scr, Overlays{})
	sink.Render(f)
	r, _, _, _ := scr.GetContent(20, 12)
	assert.NotEqual(t, '·', r, "targets hidden when the overlay is off")

	sink.Overlays.Targets = true
	sink.Render(f)
	r, _, _, _ = scr.GetContent(20, 12)
	assert.Equal(t, '·', r)
}

func TestRender_RangeRingSkipsLand(t *testing.T) {
	scr := newScreen(t, 80, 24)
	f := testFrame()
	f.Ships = []sim.ShipView{{ID: "A1", Team: sim.TeamA, Position: sim.V(400, 200), Alive: true, SinceShot: -1}}

	sink := NewSink(scr, Overlays{Range: true})
	sink.Render(f)
	assert.Contains(t, screenText(scr), ":")
	r, _, _, _ := scr.GetContent(40, 11)
	assert.Equal(t, landRune, r)
}

func TestRender_Banner(t *testing.T) {
	scr := newScreen(t, 80, 24)
	f := testFrame()
	f.Outcome = sim.OutcomeTeamBWins
	NewSink(scr, Overlays{}).Render(f)

	out := screenText(scr)
	assert.Contains(t, out, "Team B Wins!")
	assert.Contains(t, out, "press r for a new battle")
}

func TestRender_TooSmall(t *testing.T) {
	scr := newScreen(t, 12, 3)
	NewSink(scr, Overlays{}).Render(testFrame())
	assert.Equal(t, "terminal too", rowText(scr, 0))
}

func TestRender_LandMaskFollowsRun(t *testing.T) {
	scr := newScreen(t, 80, 24)
	sink := NewSink(scr, Overlays{})
	f := testFrame()
	sink.Render(f)
	r, _, _, _ := scr.GetContent(40, 12)
	require.Equal(t, landRune, r)

	f.RunID = "run-2"
	f.Islands = nil
	sink.Render(f)
	r, _, _, _ = scr.GetContent(40, 12)
	assert.NotEqual(t, landRune, r, "new run rebuilds the land mask")
}

func newRunner(t *testing.T, scr tcell.Screen, speed float64) *Runner {
	t.Helper()
	e, err := sim.New(sim.DefaultSetup(),
		sim.WithSeed(3),
		sim.WithNoIslands(),
		sim.WithShip(sim.TeamA, 100, 200),
		sim.WithShip(sim.TeamB, 700, 200),
	)
	require.NoError(t, err)
	return NewRunner(e, scr, config.Viewer{Speed: speed, ShowTargetLines: true}, zerolog.Nop())
}

func TestRunner_AdvanceHonoursSpeed(t *testing.T) {
	scr := newScreen(t, 80, 24)

	r := newRunner(t, scr, 2)
	r.advance()
	assert.Equal(t, 2, r.engine.Tick())

	r = newRunner(t, scr, 0.5)
	r.advance()
	assert.Equal(t, 0, r.engine.Tick())
	r.advance()
	assert.Equal(t, 1, r.engine.Tick())

	r = newRunner(t, scr, 0)
	r.advance()
	assert.Equal(t, 0, r.engine.Tick(), "paused")
}

func TestRunner_Keys(t *testing.T) {
	scr := newScreen(t, 80, 24)
	r := newRunner(t, scr, 1)
	assert.True(t, r.sink.Overlays.Targets)

	key := func(ch rune) bool {
		return r.handleEvent(tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModNone))
	}

	assert.True(t, key('p'))
	assert.Equal(t, 0.0, r.speed)
	assert.True(t, key('+'))
	assert.Equal(t, 0.5, r.speed)
	assert.True(t, key('+'))
	assert.True(t, key('-'))
	assert.Equal(t, 0.5, r.speed)

	assert.True(t, key('t'))
	assert.False(t, r.sink.Overlays.Targets)
	assert.True(t, key('v'))
	assert.True(t, r.sink.Overlays.Vision)

	r.speed = 1
	r.advance()
	before := r.engine.RunID()
	assert.True(t, key('r'))
	assert.Equal(t, 0, r.engine.Tick())
	assert.NotEqual(t, before, r.engine.RunID())

	assert.True(t, r.handleEvent(tcell.NewEventResize(80, 24)))
	assert.False(t, key('q'))
	assert.False(t, r.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, r.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
}

func TestRunner_QuitKeyEndsRun(t *testing.T) {
	scr := newScreen(t, 80, 24)
	r := newRunner(t, scr, 1)
	require.NoError(t, scr.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	assert.NoError(t, r.Run(context.Background()))
	assert.Contains(t, rowText(scr, 0), "NAVAL SKIRMISH")
}

func TestRunner_CancelledContext(t *testing.T) {
	scr := newScreen(t, 80, 24)
	r := newRunner(t, scr, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
}
