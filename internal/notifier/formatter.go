package notifier

import (
	"fmt"
	"strings"

	"TableScout/internal/model"
)

// FormatReport renders the match set as the human-readable notification
// body: a header line, a blank line, then one line per matching date with
// its times comma-joined.
func FormatReport(matches model.MatchSet) string {
	var b strings.Builder
	b.WriteString("Tables found:\n\n")
	for _, d := range matches.Dates() {
		b.WriteString(fmt.Sprintf("- %s: %s\n", d, strings.Join(matches[d], ", ")))
	}
	return strings.TrimRight(b.String(), "\n")
}
