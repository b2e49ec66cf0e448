// Package game is the windowed battle viewer. It owns the ebiten loop, steps
// the engine at the chosen speed and renders each frame.
package game

import (
	"image/color"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Naval-Skirmish/internal/config"
	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 24

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// statusTicks is how long a status message (e.g. "copied") stays on screen.
const statusTicks = 120

type Game struct {
	engine *sim.Engine
	log    zerolog.Logger

	width  int // window
	height int
	worldW int // battlefield in world units
	worldH int
	scale  float64 // world to screen
	offX   int     // pixel offset from window left to battlefield left
	offY   int     // pixel offset from window top to battlefield top

	worldBuf *ebiten.Image // battlefield at 1x, blitted at scale
	hudBuf   *ebiten.Image // HUD text at 1x, blitted at hudScale
	inspBuf  *ebiten.Image
	face     text.Face

	frame sim.Frame
	feed  *EventFeed
	fed   int // SimLog entries already copied into feed

	// Overlay toggles.
	showVision  bool
	showRange   bool
	showTargets bool
	showStats   bool
	showHUD     bool
	prevKeys    map[ebiten.Key]bool

	inspector     Inspector
	prevMouseLeft bool

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	status      string
	statusUntil int // frame counter deadline
	frames      int
}

// New builds a viewer around an already initialised engine.
func New(e *sim.Engine, v config.Viewer, log zerolog.Logger) *Game {
	t := e.Tuning()
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	worldW, worldH := int(t.MapWidth), int(t.MapHeight)
	screenW := int(math.Ceil(float64(worldW) * scale))
	screenH := int(math.Ceil(float64(worldH) * scale))

	g := &Game{
		engine:      e,
		log:         log,
		width:       borderWidth + screenW + borderWidth + logPanelWidth,
		height:      borderWidth + screenH + borderWidth,
		worldW:      worldW,
		worldH:      worldH,
		scale:       scale,
		offX:        borderWidth,
		offY:        borderWidth,
		face:        text.NewGoXFace(basicfont.Face7x13),
		feed:        NewEventFeed(),
		showVision:  v.ShowVision,
		showRange:   v.ShowFiringRange,
		showTargets: v.ShowTargetLines,
		showStats:   v.ShowStats,
		showHUD:     true,
		prevKeys:    make(map[ebiten.Key]bool),
		simSpeed:    config.ClampSpeed(v.Speed),
	}
	g.worldBuf = ebiten.NewImage(worldW, worldH)
	// HUD buffer: 1/hudScale of screen so it renders crisply when scaled up.
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	g.frame = e.Frame()
	g.ingestEvents()
	return g
}

func (g *Game) Update() error {
	g.frames++
	// Handle input every frame regardless of sim speed.
	g.handleInput()

	if g.simSpeed > 0 && !g.engine.Ended() {
		g.tickAccum += g.simSpeed
		for g.tickAccum >= 1.0 {
			g.tickAccum -= 1.0
			if !g.engine.Step() {
				g.tickAccum = 0
				break
			}
		}
	}
	g.frame = g.engine.Frame()
	g.ingestEvents()
	return nil
}

// ingestEvents copies new SimLog entries into the on-screen feed.
func (g *Game) ingestEvents() {
	ev := g.engine.Events()
	for _, e := range ev.Since(g.fed) {
		g.feed.AddEntry(e)
	}
	g.fed = ev.Len()
}

// handleInput processes keypresses (edge-triggered) and clicks.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	if pressed(ebiten.KeyV) {
		g.showVision = !g.showVision
	}
	if pressed(ebiten.KeyF) {
		g.showRange = !g.showRange
	}
	if pressed(ebiten.KeyT) {
		g.showTargets = !g.showTargets
	}
	if pressed(ebiten.KeyS) {
		g.showStats = !g.showStats
	}
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if pressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if pressed(ebiten.KeyComma) {
		g.simSpeed = config.SlowerSpeed(g.simSpeed)
	}
	if pressed(ebiten.KeyPeriod) {
		g.simSpeed = config.FasterSpeed(g.simSpeed)
	}

	if pressed(ebiten.KeyR) {
		g.reset()
	}
	if pressed(ebiten.KeyC) {
		g.copySummary()
	}

	// Left mouse click: try to select a ship.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !g.prevMouseLeft {
			mx, my := ebiten.CursorPosition()
			g.handleInspectorClick(mx, my)
		}
	}
	g.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	// I: toggle inspector raw/curated view. Escape: deselect.
	if pressed(ebiten.KeyI) {
		g.inspector.rawView = !g.inspector.rawView
	}
	if pressed(ebiten.KeyEscape) {
		g.inspector.selected = ""
	}

	g.prevKeys = currentKeys
}

func (g *Game) reset() {
	g.engine.Reset()
	g.tickAccum = 0
	g.inspector.selected = ""
	g.frame = g.engine.Frame()
	g.setStatus("new battle " + shortID(g.frame.RunID))
	g.log.Info().Str("run", g.frame.RunID).Msg("viewer reset")
}

// copySummary puts the battle summary on the system clipboard.
func (g *Game) copySummary() {
	summary := g.engine.Events().Summary(g.frame)
	if err := clipboard.WriteAll(summary); err != nil {
		g.log.Warn().Err(err).Msg("copying summary to clipboard")
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("summary copied")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.frames + statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Window background: very dark, outside battlefield.
	screen.Fill(color.RGBA{R: 10, G: 14, B: 22, A: 255})

	// Render world content to worldBuf at 1x, then blit at the view scale.
	g.worldBuf.Clear()
	g.drawWorld(g.worldBuf)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Scale(g.scale, g.scale)
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	blit.Filter = ebiten.FilterLinear
	screen.DrawImage(g.worldBuf, &blit)

	// Battlefield border frame (drawn at screen coords, not transformed).
	ox := float32(g.offX)
	oy := float32(g.offY)
	gw := float32(float64(g.worldW) * g.scale)
	gh := float32(float64(g.worldH) * g.scale)
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, color.RGBA{R: 60, G: 90, B: 120, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, gw+6, gh+6, 1.0, color.RGBA{R: 40, G: 60, B: 90, A: 100}, false)

	// Event feed panel (screen coords).
	logX := g.offX + int(gw) + g.offX
	g.feed.Draw(screen, logX, g.height)

	g.drawHUD(screen)
	g.drawInspector(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize is the unscaled window size the viewer lays out for.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

// screenToWorld inverts the battlefield blit transform.
func screenToWorld(mx, my, offX, offY int, scale float64) sim.Vec2 {
	return sim.V(float64(mx-offX)/scale, float64(my-offY)/scale)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
