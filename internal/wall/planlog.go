package wall

import (
	"fmt"
	"strings"
)

// PlanLogEntry is one recorded event during a planning session.
type PlanLogEntry struct {
	Tick     int
	Category string  // state, grid, path, candidates, select, emit
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] state     change           awaiting-start → building-wall
func (e PlanLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-10s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// PlanLog collects structured events during a planning session. Unbounded and
// machine-filterable; headless runs and tests assert against it.
type PlanLog struct {
	entries []PlanLogEntry
	verbose bool
}

// NewPlanLog creates a PlanLog. If verbose is true, per-tick cache and
// candidate-count entries are also recorded.
func NewPlanLog(verbose bool) *PlanLog {
	return &PlanLog{verbose: verbose}
}

// Add records a new entry.
func (pl *PlanLog) Add(tick int, category, key, value string, numVal float64) {
	if pl == nil {
		return
	}
	pl.entries = append(pl.entries, PlanLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (pl *PlanLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if pl == nil || !pl.verbose {
		return
	}
	pl.Add(tick, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (pl *PlanLog) Entries() []PlanLogEntry {
	if pl == nil {
		return nil
	}
	return pl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (pl *PlanLog) Filter(category, key string) []PlanLogEntry {
	if pl == nil {
		return nil
	}
	var out []PlanLogEntry
	for _, e := range pl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (pl *PlanLog) CountCategory(category, key string) int {
	return len(pl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (pl *PlanLog) LastOf(category, key string) (PlanLogEntry, bool) {
	entries := pl.Filter(category, key)
	if len(entries) == 0 {
		return PlanLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (pl *PlanLog) HasEntry(category, key, valueSubstr string) bool {
	if pl == nil {
		return false
	}
	for _, e := range pl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (pl *PlanLog) Format() string {
	if pl == nil {
		return ""
	}
	var sb strings.Builder
	for _, e := range pl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
