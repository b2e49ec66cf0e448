package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Naval-Skirmish/internal/config"
	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

const (
	hudLineH = 12 // debug font line height at 1x
	hudCharW = 6  // debug font char width at 1x
	hudPadX  = 5
	hudPadY  = 4
)

func onOff(b bool) string {
	if b {
		return "*"
	}
	return " "
}

// legendLines lists the key bindings and the state of every toggle.
func (g *Game) legendLines() []string {
	return []string{
		fmt.Sprintf("SIM: %s  P=pause  ,/. speed", config.SpeedLabel(g.simSpeed)),
		fmt.Sprintf("[V]%s vision   [F]%s range", onOff(g.showVision), onOff(g.showRange)),
		fmt.Sprintf("[T]%s targets  [S]%s stats", onOff(g.showTargets), onOff(g.showStats)),
		"[R] new battle  [C] copy summary",
		"click=inspect  [H] toggle HUD",
	}
}

// statsLines summarises both fleets for the stats panel.
func statsLines(f sim.Frame) []string {
	lines := []string{fmt.Sprintf("T=%05d  %5.1fs", f.Tick, f.Now.Seconds())}
	for _, st := range f.Stats {
		acc := 0.0
		if st.Shots > 0 {
			acc = float64(st.Hits) / float64(st.Shots) * 100
		}
		lines = append(lines,
			fmt.Sprintf("Team %s  afloat %d/%d  lost %d", st.Team, st.Alive, st.Spawned, st.Lost),
			fmt.Sprintf("  hull %2d  ammo %3d  hit %d/%d (%.0f%%)", st.Health, st.Ammo, st.Hits, st.Shots, acc),
		)
	}
	if f.Outcome.Terminal() {
		lines = append(lines, "Result: "+f.Outcome.Banner())
	}
	return lines
}

// drawHUD renders the stats panel (top-left) and key legend (bottom-left).
// Text is drawn into hudBuf at 1x then composited onto the screen at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	g.hudBuf.Clear()
	bufH := g.height / hudScale
	drawn := false

	if g.showStats {
		drawPanel(g.hudBuf, statsLines(g.frame), 4, 4)
		drawn = true
	}
	if g.showHUD {
		lines := g.legendLines()
		if g.status != "" && g.frames < g.statusUntil {
			lines = append(lines, "> "+g.status)
		}
		drawPanel(g.hudBuf, lines, 4, bufH-panelHeight(len(lines))-4)
		drawn = true
	}
	if !drawn {
		return
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

func panelHeight(lines int) int {
	return lines*hudLineH + hudPadY*2
}

func drawPanel(buf *ebiten.Image, lines []string, x, y int) {
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	bx, by := float32(x), float32(y)
	boxW := float32(maxLen*hudCharW + hudPadX*2)
	boxH := float32(panelHeight(len(lines)))

	vector.FillRect(buf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 18, A: 210}, false)
	vector.StrokeRect(buf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 90, B: 130, A: 180}, false)
	// Inner highlight line along top edge.
	vector.StrokeLine(buf, bx+1, by+1, bx+boxW-1, by+1, 1.0, color.RGBA{R: 80, G: 120, B: 170, A: 80}, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(buf, line, x+hudPadX, y+hudPadY+i*hudLineH)
	}
}
