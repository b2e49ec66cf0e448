// Package tui renders battles into a terminal with tcell.
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

const (
	minCols = 20
	minRows = 6

	waterRune = '~'
	landRune  = '#'
	deadRune  = 'x'
)

// shipGlyphs point along the eight compass headings, starting east and
// turning clockwise (screen y grows downward).
var shipGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Overlays selects the optional map annotations.
type Overlays struct {
	Vision  bool
	Range   bool
	Targets bool
}

// Sink draws frames onto a tcell screen. It implements sim.RenderSink.
type Sink struct {
	screen   tcell.Screen
	Overlays Overlays
	Status   string // shown at the right of the footer

	land landMask
}

// landMask caches which map cells are island. Islands never move within a
// run, so it is rebuilt only when the run or terminal size changes.
type landMask struct {
	runID      string
	cols, rows int
	cells      []bool
}

// NewSink returns a sink drawing onto screen. The caller owns the screen.
func NewSink(screen tcell.Screen, ov Overlays) *Sink {
	return &Sink{screen: screen, Overlays: ov}
}

// grid maps world coordinates onto the terminal rows between the header and
// footer lines.
type grid struct {
	cols, rows int
	top        int
	sx, sy     float64 // cells per world unit
}

func newGrid(f sim.Frame, cols, rows int) grid {
	return grid{
		cols: cols,
		rows: rows,
		top:  1,
		sx:   float64(cols) / f.Width,
		sy:   float64(rows) / f.Height,
	}
}

// cell returns the screen cell holding p.
func (g grid) cell(p sim.Vec2) (int, int, bool) {
	cx := int(math.Floor(p.X * g.sx))
	cy := int(math.Floor(p.Y * g.sy))
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return 0, 0, false
	}
	return cx, cy + g.top, true
}

// world returns the world point at the centre of map cell (cx, cy).
func (g grid) world(cx, cy int) sim.Vec2 {
	return sim.V((float64(cx)+0.5)/g.sx, (float64(cy)+0.5)/g.sy)
}

// Render draws f and flushes the screen.
func (s *Sink) Render(f sim.Frame) {
	w, h := s.screen.Size()
	s.screen.Clear()
	if w < minCols || h < minRows || f.Width <= 0 || f.Height <= 0 {
		s.text(0, 0, "terminal too small", tcell.StyleDefault)
		s.screen.Show()
		return
	}

	g := newGrid(f, w, h-2)
	s.drawSea(f, g)
	s.drawOverlays(f, g)
	s.drawShips(f, g)
	s.drawHeader(f, w)
	s.drawFooter(w, h-1)
	if f.Outcome.Terminal() {
		s.drawBanner(f, g)
	}
	s.screen.Show()
}

func (s *Sink) drawSea(f sim.Frame, g grid) {
	s.refreshLand(f, g)
	baseA := int(math.Ceil(f.BaseWidth * g.sx))
	baseB := g.cols - baseA

	for cy := 0; cy < g.rows; cy++ {
		for cx := 0; cx < g.cols; cx++ {
			bg := rgbWater
			switch {
			case cx < baseA:
				bg = rgbBaseA
			case cx >= baseB:
				bg = rgbBaseB
			}
			style := tcell.StyleDefault.Background(bg).Foreground(rgbWaterFg)
			r := ' '
			if (cx+cy)%4 == 0 {
				r = waterRune
			}
			if s.land.cells[cy*g.cols+cx] {
				style = tcell.StyleDefault.Background(rgbShore).Foreground(rgbSand)
				r = landRune
			}
			s.screen.SetContent(cx, cy+g.top, r, nil, style)
		}
	}
}

func (s *Sink) refreshLand(f sim.Frame, g grid) {
	if s.land.runID == f.RunID && s.land.cols == g.cols && s.land.rows == g.rows && s.land.cells != nil {
		return
	}
	s.land = landMask{runID: f.RunID, cols: g.cols, rows: g.rows, cells: make([]bool, g.cols*g.rows)}
	for cy := 0; cy < g.rows; cy++ {
		for cx := 0; cx < g.cols; cx++ {
			p := g.world(cx, cy)
			for _, isl := range f.Islands {
				if isl.Contains(p) {
					s.land.cells[cy*g.cols+cx] = true
					break
				}
			}
		}
	}
}

func (s *Sink) drawOverlays(f sim.Frame, g grid) {
	for _, sh := range f.Ships {
		if !sh.Alive {
			continue
		}
		if s.Overlays.Vision {
			s.ring(g, sh.Position, f.VisionRadius, '.', rgbVision)
		}
		if s.Overlays.Range {
			s.ring(g, sh.Position, f.FiringRange, ':', rgbRange)
		}
		if s.Overlays.Targets && sh.TargetID != "" {
			if t, ok := f.Ship(sh.TargetID); ok {
				s.segment(g, sh.Position, t.Position, '·', teamColor(sh.Team))
			}
		}
	}
}

// ring marks water cells along a circle. Land and ships are left alone.
func (s *Sink) ring(g grid, c sim.Vec2, r float64, ch rune, fg tcell.Color) {
	steps := int(2*math.Pi*r*math.Max(g.sx, g.sy)) + 8
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		s.mark(g, c.Add(sim.FromAngle(a, r)), ch, fg)
	}
}

func (s *Sink) segment(g grid, a, b sim.Vec2, ch rune, fg tcell.Color) {
	d := b.Sub(a)
	steps := int(d.Mag()*math.Max(g.sx, g.sy)*2) + 1
	for i := 1; i < steps; i++ {
		s.mark(g, a.Add(d.Scale(float64(i)/float64(steps))), ch, fg)
	}
}

func (s *Sink) mark(g grid, p sim.Vec2, ch rune, fg tcell.Color) {
	cx, cy, ok := g.cell(p)
	if !ok || s.land.cells[(cy-g.top)*g.cols+cx] {
		return
	}
	_, _, style, _ := s.screen.GetContent(cx, cy)
	s.screen.SetContent(cx, cy, ch, nil, style.Foreground(fg))
}

func (s *Sink) drawShips(f sim.Frame, g grid) {
	// Sinking ships first so live ones win a shared cell.
	for pass := 0; pass < 2; pass++ {
		for _, sh := range f.Ships {
			if sh.Alive != (pass == 1) {
				continue
			}
			cx, cy, ok := g.cell(sh.Position)
			if !ok {
				continue
			}
			_, _, style, _ := s.screen.GetContent(cx, cy)
			r := shipGlyph(sh.Heading)
			style = style.Foreground(teamColor(sh.Team)).Bold(true)
			if !sh.Alive {
				r = deadRune
				style = style.Foreground(rgbSinking).Bold(false)
			} else if sh.Firing(f.FlashTicks) {
				style = style.Background(rgbFlash)
			}
			s.screen.SetContent(cx, cy, r, nil, style)
		}
	}
}

// shipGlyph picks the arrow closest to heading.
func shipGlyph(heading float64) rune {
	i := int(math.Round(heading / (math.Pi / 4)))
	return shipGlyphs[((i%8)+8)%8]
}

func (s *Sink) drawHeader(f sim.Frame, w int) {
	style := tcell.StyleDefault.Background(rgbStatusBg).Foreground(rgbStatusFg)
	s.fill(0, w, style)
	x := s.text(0, 0, fmt.Sprintf(" NAVAL SKIRMISH  T=%05d %6.1fs ", f.Tick, f.Now.Seconds()), style)
	for _, st := range f.Stats {
		x = s.text(x, 0, fmt.Sprintf(" %s %d/%d hull %d ammo %d ", st.Team, st.Alive, st.Spawned, st.Health, st.Ammo),
			style.Foreground(teamColor(st.Team)))
	}
}

func (s *Sink) drawFooter(w, y int) {
	style := tcell.StyleDefault.Background(rgbStatusBg).Foreground(rgbHintColor)
	s.fill(y, w, style)
	s.text(0, y, " q quit  r reset  p pause  +/- speed  v f t overlays", style)
	if s.Status != "" {
		x := w - len([]rune(s.Status)) - 1
		if x < 0 {
			x = 0
		}
		s.text(x, y, s.Status, style.Foreground(rgbStatusFg))
	}
}

func (s *Sink) drawBanner(f sim.Frame, g grid) {
	style := tcell.StyleDefault.Background(rgbBannerBg).Foreground(rgbBannerFg).Bold(true)
	mid := g.top + g.rows/2
	s.centered(mid-1, g.cols, " "+f.Outcome.Banner()+" ", style)
	s.centered(mid+1, g.cols, " press r for a new battle ", style.Bold(false))
}

func (s *Sink) centered(y, w int, msg string, style tcell.Style) {
	x := (w - len([]rune(msg))) / 2
	if x < 0 {
		x = 0
	}
	s.text(x, y, msg, style)
}

func (s *Sink) fill(y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.screen.SetContent(x, y, ' ', nil, style)
	}
}

// text writes msg from (x, y) and returns the column after it.
func (s *Sink) text(x, y int, msg string, style tcell.Style) int {
	for _, r := range msg {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
