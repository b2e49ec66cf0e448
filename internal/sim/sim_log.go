package sim

import (
	"fmt"
	"strings"
)

// Event categories recorded in the SimLog.
const (
	CatCombat    = "combat"
	CatCollision = "collision"
	CatLifecycle = "lifecycle"
	CatTarget    = "target"
	CatWorld     = "world"
	CatOutcome   = "outcome"
)

// SimLogEntry is one recorded battle event.
type SimLogEntry struct {
	Tick     int
	Ship     string  // ship ID, or "--" for global events
	Team     string  // "A", "B", or "--"
	Category string  // combat, collision, lifecycle, target, world, outcome
	Key      string  // event name within the category
	Value    string  // free text, e.g. "B2 at 31.0 p=0.39"
	NumVal   float64 // optional numeric payload
}

// String renders the entry as one aligned line.
//
//	[T=0042] A3   combat    hit              B2 at 31.0
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-4s %-9s %-16s %s",
		e.Tick, e.Ship, e.Category, e.Key, e.Value)
}

// SimLog collects structured events for the whole run. It is unbounded and
// machine-readable; viewers keep their own short tail for display.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. Verbose mode also records per-tick detail such
// as target tracking changes.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add appends an entry.
func (sl *SimLog) Add(tick int, ship, team, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Ship:     ship,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose is Add for per-tick detail; it is dropped unless verbose.
func (sl *SimLog) AddVerbose(tick int, ship, team, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, ship, team, category, key, value, numVal)
}

// Entries exposes the backing slice; callers must not modify it.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len is the number of recorded entries.
func (sl *SimLog) Len() int {
	return len(sl.entries)
}

// Since returns entries recorded after the first n.
func (sl *SimLog) Since(n int) []SimLogEntry {
	if n >= len(sl.entries) {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return sl.entries[n:]
}

// match selects entries. Empty fields match anything.
type match struct {
	category string
	key      string
	ship     string
	contains string
}

func (m match) ok(e SimLogEntry) bool {
	return (m.category == "" || e.Category == m.category) &&
		(m.key == "" || e.Key == m.key) &&
		(m.ship == "" || e.Ship == m.ship) &&
		(m.contains == "" || strings.Contains(e.Value, m.contains))
}

func (sl *SimLog) collect(keep func(SimLogEntry) bool) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Filter returns entries with the given category and key; empty matches any.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.collect(match{category: category, key: key}.ok)
}

// FilterShip returns every entry about one ship.
func (sl *SimLog) FilterShip(id string) []SimLogEntry {
	return sl.collect(match{ship: id}.ok)
}

// FilterTickRange returns entries with fromTick <= Tick <= toTick.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	return sl.collect(func(e SimLogEntry) bool {
		return e.Tick >= fromTick && e.Tick <= toTick
	})
}

// CountCategory counts entries with the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// CountTeam is CountCategory restricted to one fleet.
func (sl *SimLog) CountTeam(team Team, category, key string) int {
	return len(sl.collect(func(e SimLogEntry) bool {
		return e.Team == team.String() && match{category: category, key: key}.ok(e)
	}))
}

// LastOf returns the newest entry with category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	m := match{category: category, key: key}
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if m.ok(sl.entries[i]) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether any entry has category, key and a value
// containing valueSubstr.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	m := match{category: category, key: key, contains: valueSubstr}
	for _, e := range sl.entries {
		if m.ok(e) {
			return true
		}
	}
	return false
}

// Format renders the whole log, one line per entry, for t.Log dumps.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatRange renders only the entries in [fromTick, toTick].
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintln(&sb, e.String())
	}
	return sb.String()
}

// Summary returns a short human-readable account of the battle so far.
func (sl *SimLog) Summary(f Frame) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d (%s) ---\n", f.Tick, f.Outcome)
	for _, st := range f.Stats {
		acc := 0.0
		if st.Shots > 0 {
			acc = float64(st.Hits) / float64(st.Shots)
		}
		fmt.Fprintf(&sb, "Team %s: afloat=%d/%d  hull=%d  ammo=%d  shots=%d  hits=%d  acc=%.0f%%  lost=%d\n",
			st.Team, st.Alive, st.Spawned, st.Health, st.Ammo, st.Shots, st.Hits, acc*100, st.Lost)
	}
	fmt.Fprintf(&sb, "Collisions: ship=%d  island=%d  boundary=%d\n",
		sl.CountCategory(CatCollision, "ship"),
		sl.CountCategory(CatCollision, "island"),
		sl.CountCategory(CatCollision, "boundary"))
	targets := 0
	for _, s := range f.Ships {
		if s.TargetID != "" {
			fmt.Fprintf(&sb, "Target: %s → %s\n", s.ID, s.TargetID)
			targets++
		}
	}
	if targets == 0 {
		sb.WriteString("Target: none\n")
	}
	return sb.String()
}
