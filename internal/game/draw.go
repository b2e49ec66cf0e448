package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

var (
	waterColor  = color.RGBA{R: 112, G: 174, B: 225, A: 255}
	sandColor   = color.RGBA{R: 214, G: 196, B: 140, A: 255}
	shoreColor  = color.RGBA{R: 150, G: 128, B: 84, A: 255}
	flashColor  = color.RGBA{R: 255, G: 230, B: 90, A: 255}
	selectColor = color.RGBA{R: 255, G: 255, B: 255, A: 200}
)

// teamColors are the hull colours of each fleet.
var teamColors = [2]color.RGBA{
	sim.TeamA: {R: 40, G: 80, B: 200, A: 255},
	sim.TeamB: {R: 200, G: 50, B: 45, A: 255},
}

// fade scales a colour's alpha (premultiplied, as ebiten expects).
func fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// hullOutline returns the three corners of a ship's hull: the bow a full size
// ahead of the centre and the stern corners half a size either side of a
// point one size behind it.
func hullOutline(v sim.ShipView) [3]sim.Vec2 {
	fwd := sim.FromAngle(v.Heading, 1)
	side := sim.V(-fwd.Y, fwd.X)
	bow := v.Position.Add(fwd.Scale(v.Size))
	stern := v.Position.Sub(fwd.Scale(v.Size))
	return [3]sim.Vec2{
		bow,
		stern.Add(side.Scale(v.Size / 2)),
		stern.Sub(side.Scale(v.Size / 2)),
	}
}

func (g *Game) drawWorld(dst *ebiten.Image) {
	f := g.frame
	w, h := float32(f.Width), float32(f.Height)
	b := float32(f.BaseWidth)

	vector.FillRect(dst, 0, 0, w, h, waterColor, false)

	// Home bases: faint team tint with a dashed boundary.
	vector.FillRect(dst, 0, 0, b, h, fade(teamColors[sim.TeamA], 0.12), false)
	vector.FillRect(dst, w-b, 0, b, h, fade(teamColors[sim.TeamB], 0.12), false)
	dashedVLine(dst, b, h, fade(teamColors[sim.TeamA], 0.4))
	dashedVLine(dst, w-b, h, fade(teamColors[sim.TeamB], 0.4))

	for _, isl := range f.Islands {
		drawIsland(dst, isl)
	}

	// Overlays sit under the hulls.
	g.drawOverlays(dst)

	for _, s := range f.Ships {
		g.drawShip(dst, s)
	}

	if f.Outcome.Terminal() {
		g.drawBanner(dst)
	}
}

func dashedVLine(dst *ebiten.Image, x, h float32, c color.RGBA) {
	const dash, gap = 8, 6
	for y := float32(0); y < h; y += dash + gap {
		end := y + dash
		if end > h {
			end = h
		}
		vector.StrokeLine(dst, x, y, x, end, 1.0, c, false)
	}
}

func drawIsland(dst *ebiten.Image, isl sim.Island) {
	if len(isl.Outline) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(isl.Outline[0].X), float32(isl.Outline[0].Y))
	for _, p := range isl.Outline[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(sandColor)
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)

	n := len(isl.Outline)
	for i, p := range isl.Outline {
		q := isl.Outline[(i+1)%n]
		vector.StrokeLine(dst, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 1.5, shoreColor, true)
	}
}

func (g *Game) drawShip(dst *ebiten.Image, s sim.ShipView) {
	hull := hullOutline(s)
	var path vector.Path
	path.MoveTo(float32(hull[0].X), float32(hull[0].Y))
	path.LineTo(float32(hull[1].X), float32(hull[1].Y))
	path.LineTo(float32(hull[2].X), float32(hull[2].Y))
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(fade(teamColors[s.Team], s.Alpha))
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)

	px, py := float32(s.Position.X), float32(s.Position.Y)
	if g.inspector.selected == s.ID {
		vector.StrokeCircle(dst, px, py, float32(s.Size*1.4), 1.0, selectColor, true)
	}
	if !s.Alive {
		return
	}

	// Health bar above the hull.
	barW := float32(s.Size * 2)
	barX := px - barW/2
	barY := py - float32(s.Size) - 6
	frac := float32(s.Health) / float32(s.MaxHealth)
	vector.FillRect(dst, barX, barY, barW, 3, color.RGBA{R: 40, G: 0, B: 0, A: 200}, false)
	vector.FillRect(dst, barX, barY, barW*frac, 3, healthColor(float64(frac)), false)

	if s.Firing(g.frame.FlashTicks) {
		vector.FillCircle(dst, float32(hull[0].X), float32(hull[0].Y), 3, flashColor, true)
	}
}

// healthColor runs from red at zero through yellow to green at full health.
func healthColor(frac float64) color.RGBA {
	frac = math.Max(0, math.Min(1, frac))
	if frac < 0.5 {
		return color.RGBA{R: 220, G: uint8(440 * frac), B: 40, A: 255}
	}
	return color.RGBA{R: uint8(440 * (1 - frac)), G: 220, B: 40, A: 255}
}

// drawBanner dims the battlefield and announces the result.
func (g *Game) drawBanner(dst *ebiten.Image) {
	f := g.frame
	vector.FillRect(dst, 0, 0, float32(f.Width), float32(f.Height), color.RGBA{A: 170}, false)

	head := &text.DrawOptions{}
	head.GeoM.Scale(3, 3)
	head.GeoM.Translate(f.Width/2, f.Height/2-40)
	head.PrimaryAlign = text.AlignCenter
	head.ColorScale.ScaleWithColor(color.White)
	text.Draw(dst, f.Outcome.Banner(), g.face, head)

	sub := &text.DrawOptions{}
	sub.GeoM.Translate(f.Width/2, f.Height/2+20)
	sub.PrimaryAlign = text.AlignCenter
	sub.ColorScale.ScaleWithColor(color.RGBA{R: 200, G: 200, B: 200, A: 255})
	text.Draw(dst, "Press R to start a new battle", g.face, sub)
}
