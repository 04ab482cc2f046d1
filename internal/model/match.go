package model

import "sort"

// MatchSet maps a date (YYYY-MM-DD) to its accepted time slots (HH:MM),
// ascending and deduplicated. Built incrementally across the date loop.
type MatchSet map[string][]string

// Add stores the filtered slots for a date. Empty lists are skipped so a
// date with no matches never appears in the set.
func (m MatchSet) Add(date string, slots []string) {
	if len(slots) == 0 {
		return
	}
	m[date] = slots
}

// Dates returns the matched dates in ascending order for deterministic
// report output.
func (m MatchSet) Dates() []string {
	dates := make([]string, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// TotalSlots counts all accepted slots across dates.
func (m MatchSet) TotalSlots() int {
	n := 0
	for _, slots := range m {
		n += len(slots)
	}
	return n
}
