package filter

import (
	"sort"

	"TableScout/internal/extractor"
)

// TimeFilter narrows extracted slots to the caller's acceptable times.
// A non-empty Allowlist takes precedence; otherwise the inclusive
// [Earliest, Latest] window applies, with unset bounds left open.
type TimeFilter struct {
	Allowlist []string
	Earliest  string
	Latest    string
}

// Apply returns the slots that pass the filter, ascending. Comparison is
// plain string comparison, valid because every input is pre-validated to
// the fixed-width HH:MM shape.
func Apply(times []string, f TimeFilter) []string {
	var out []string
	if len(f.Allowlist) > 0 {
		allowed := make(map[string]bool, len(f.Allowlist))
		for _, t := range f.Allowlist {
			allowed[t] = true
		}
		for _, t := range times {
			if allowed[t] {
				out = append(out, t)
			}
		}
	} else {
		for _, t := range times {
			if withinWindow(t, f.Earliest, f.Latest) {
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}

func withinWindow(t, earliest, latest string) bool {
	if !extractor.IsTimeSlot(t) {
		return false
	}
	if earliest != "" && t < earliest {
		return false
	}
	if latest != "" && t > latest {
		return false
	}
	return true
}
