package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

// Inspector panel: rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 200
	inspBufH  = 170
	inspPad   = 4
	inspLineH = 13
)

// Inspector holds the selected ship and view toggle state.
type Inspector struct {
	selected string // ship ID, empty when nothing is selected
	rawView  bool   // false = curated, true = raw dump
}

// handleInspectorClick selects the ship under the cursor, or clears the
// selection when the click lands on open water.
func (g *Game) handleInspectorClick(mx, my int) bool {
	p := screenToWorld(mx, my, g.offX, g.offY, g.scale)
	if p.X < 0 || p.Y < 0 || p.X > float64(g.worldW) || p.Y > float64(g.worldH) {
		return false
	}
	// Pick radius: 16 screen pixels expressed in world space.
	id, ok := pickShip(g.frame, p, 16/g.scale)
	g.inspector.selected = id
	return ok
}

// pickShip returns the ship nearest p within radius.
func pickShip(f sim.Frame, p sim.Vec2, radius float64) (string, bool) {
	best := math.MaxFloat64
	hit := ""
	for _, s := range f.Ships {
		d := s.Position.Dist(p)
		if d < radius && d < best {
			best = d
			hit = s.ID
		}
	}
	return hit, hit != ""
}

// drawInspector renders the inspector panel bottom-right of the battlefield.
func (g *Game) drawInspector(screen *ebiten.Image) {
	if g.inspector.selected == "" {
		return
	}
	s, ok := g.frame.Ship(g.inspector.selected)
	if !ok {
		// Removed after sinking.
		g.inspector.selected = ""
		return
	}

	buf := g.inspBuf
	buf.Clear()
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBorder := color.RGBA{R: 55, G: 80, B: 120, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 12, G: 16, B: 24, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	lx, ly := inspPad, inspPad
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ TEAM %s  %s ]", s.Team, s.ID), lx, ly)
	ly += inspLineH + 2

	viewName := "CURATED"
	if g.inspector.rawView {
		viewName = "RAW"
	}
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I] toggle", viewName), lx, ly)
	ly += inspLineH + 4
	vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
	ly += 4

	var lines []string
	if g.inspector.rawView {
		lines = inspectRaw(s)
	} else {
		lines = inspectCurated(g.frame, s)
	}
	for _, l := range lines {
		ebitenutil.DebugPrintAt(buf, l, lx, ly)
		ly += inspLineH
	}

	px := g.offX + int(float64(g.worldW)*g.scale) - inspBufW*inspScale - 8
	py := g.offY + int(float64(g.worldH)*g.scale) - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}

func bar(label string, v, limit int) string {
	const width = 10
	filled := 0
	if limit > 0 {
		filled = v * width / limit
	}
	b := ""
	for i := 0; i < width; i++ {
		if i < filled {
			b += "#"
		} else {
			b += "."
		}
	}
	return fmt.Sprintf("%-6s %s %d/%d", label, b, v, limit)
}

// inspectCurated is the readable summary of one ship.
func inspectCurated(f sim.Frame, s sim.ShipView) []string {
	state := "afloat"
	if !s.Alive {
		state = "sinking"
	}
	lines := []string{
		"state: " + state,
		bar("hull", s.Health, s.MaxHealth),
		fmt.Sprintf("ammo:  %d", s.Ammo),
	}
	if s.FireCooldown > 0 {
		lines = append(lines, fmt.Sprintf("reload: %d ticks", s.FireCooldown))
	} else {
		lines = append(lines, "reload: ready")
	}
	if t, ok := f.Ship(s.TargetID); ok && s.TargetID != "" {
		lines = append(lines, fmt.Sprintf("target: %s at %.0f", t.ID, t.Position.Dist(s.Position)))
	} else {
		lines = append(lines, "target: none")
	}
	lines = append(lines, fmt.Sprintf("speed: %.2f", s.Velocity.Mag()))
	return lines
}

// inspectRaw dumps every field verbatim.
func inspectRaw(s sim.ShipView) []string {
	return []string{
		fmt.Sprintf("id=%s team=%s alive=%v", s.ID, s.Team, s.Alive),
		fmt.Sprintf("pos=(%.1f,%.1f)", s.Position.X, s.Position.Y),
		fmt.Sprintf("vel=(%.2f,%.2f)", s.Velocity.X, s.Velocity.Y),
		fmt.Sprintf("hdg=%.2f size=%.0f", s.Heading, s.Size),
		fmt.Sprintf("hp=%d/%d ammo=%d", s.Health, s.MaxHealth, s.Ammo),
		fmt.Sprintf("cd=%d tgt=%q", s.FireCooldown, s.TargetID),
		fmt.Sprintf("alpha=%.2f shot=%d", s.Alpha, s.SinceShot),
	}
}
