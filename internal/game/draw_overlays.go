package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

// drawOverlays renders the optional vision rings, firing rings and target
// lines. The selected ship always shows its rings.
func (g *Game) drawOverlays(dst *ebiten.Image) {
	f := g.frame
	for _, s := range f.Ships {
		if !s.Alive {
			continue
		}
		selected := g.inspector.selected == s.ID
		px, py := float32(s.Position.X), float32(s.Position.Y)
		if g.showVision || selected {
			vector.StrokeCircle(dst, px, py, float32(f.VisionRadius), 1.0, fade(teamColors[s.Team], 0.25), true)
		}
		if g.showRange || selected {
			vector.StrokeCircle(dst, px, py, float32(f.FiringRange), 1.0, color.RGBA{R: 120, G: 20, B: 20, A: 90}, true)
		}
		if !g.showTargets && !selected {
			continue
		}
		if end, ok := targetLine(f, s); ok {
			c := fade(teamColors[s.Team], 0.45)
			if s.Firing(f.FlashTicks) {
				c = flashColor
			}
			vector.StrokeLine(dst, px, py, float32(end.X), float32(end.Y), 1.0, c, true)
		}
	}
}

// targetLine returns the position of s's current target if it is still in
// the frame.
func targetLine(f sim.Frame, s sim.ShipView) (sim.Vec2, bool) {
	if s.TargetID == "" {
		return sim.Vec2{}, false
	}
	t, ok := f.Ship(s.TargetID)
	if !ok {
		return sim.Vec2{}, false
	}
	return t.Position, true
}
