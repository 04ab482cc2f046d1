package extractor

import (
	"regexp"
	"sort"
)

// timeRe is the strict 24-hour slot shape. Fixed-width zero-padded, so
// lexicographic order equals chronological order.
var timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// IsTimeSlot reports whether s is a well-formed HH:MM slot string.
func IsTimeSlot(s string) bool {
	return timeRe.MatchString(s)
}

// Extract walks an untyped decoded JSON value and returns every string that
// looks like a time slot, deduplicated and sorted ascending.
//
// The upstream response shape is not contractually fixed, so extraction runs
// in two tiers. The slot-list tier recognizes {"times": [...]} and honors an
// explicit availability flag on each entry. The generic tier picks up any
// HH:MM string anywhere in the tree and has no availability awareness; it
// can therefore reintroduce a slot the first tier excluded. That divergence
// is a deliberate tolerance trade-off inherited from the upstream contract
// being unknown, not a bug.
func Extract(v any) []string {
	seen := map[string]bool{}
	walk(v, seen)

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func walk(v any, seen map[string]bool) {
	switch node := v.(type) {
	case map[string]any:
		if list, ok := node["times"].([]any); ok {
			scanSlotList(list, seen)
		}
		for _, child := range node {
			walk(child, seen)
		}
	case []any:
		for _, child := range node {
			walk(child, seen)
		}
	case string:
		if timeRe.MatchString(node) {
			seen[node] = true
		}
	}
}

// scanSlotList handles the recognized {"times": [...]} shape. Entries that
// are objects carry the slot under one of several field names and may carry
// an availability flag; bare-string entries are taken as-is.
func scanSlotList(list []any, seen map[string]bool) {
	for _, item := range list {
		switch entry := item.(type) {
		case map[string]any:
			t := slotField(entry)
			if !timeRe.MatchString(t) {
				continue
			}
			if avail, present := entry["available"]; present && !truthy(avail) {
				continue
			}
			seen[t] = true
		case string:
			if timeRe.MatchString(entry) {
				seen[entry] = true
			}
		}
	}
}

// slotField reads the time string from a slot entry, trying the known field
// names in priority order.
func slotField(entry map[string]any) string {
	for _, key := range []string{"time", "slot", "label"} {
		if s, ok := entry[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// truthy mirrors loose JSON truthiness: false, zero, empty string and empty
// containers exclude a slot; null counts as available (the flag was not
// meaningfully set).
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
