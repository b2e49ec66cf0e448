package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Naval-Skirmish/internal/sim"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Label   string // ship ID, or "--" for battle-wide events
	Team    string
	Message string
}

// EventFeed is a ring buffer of recent battle events rendered on-screen.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, logMaxEntries),
	}
}

// Add appends an entry to the feed.
func (f *EventFeed) Add(tick int, label, team, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:    tick,
		Label:   label,
		Team:    team,
		Message: msg,
	}
	f.head = (f.head + 1) % logMaxEntries
	if f.count < logMaxEntries {
		f.count++
	}
}

// AddEntry copies a SimLog entry into the feed.
func (f *EventFeed) AddEntry(e sim.SimLogEntry) {
	msg := e.Key
	if e.Value != "" {
		msg += " " + e.Value
	}
	f.Add(e.Tick, e.Ship, e.Team, msg)
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + logMaxEntries) % logMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Draw renders the feed panel on the right side of the screen.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	// Panel background.
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 18, A: 248}, false)
	// Left separator line.
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 100, A: 255}, false)

	// Title bar.
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 28, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "BATTLE LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 70, B: 110, A: 200}, false)

	entries := f.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}

	visible := entries[startIdx:]
	recent := 3 // how many latest entries to highlight

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 55, A: 160}, false)
		}
		// Team colour indicator.
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, feedDotColor(e.Team), false)

		line := fmt.Sprintf("%5d [%-3s] %s", e.Tick, e.Label, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}

func feedDotColor(team string) color.RGBA {
	switch team {
	case sim.TeamA.String():
		return teamColors[sim.TeamA]
	case sim.TeamB.String():
		return teamColors[sim.TeamB]
	}
	return color.RGBA{R: 150, G: 150, B: 150, A: 255}
}
