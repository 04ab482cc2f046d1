package recorder

import "TableScout/internal/model"

// RunSnapshot holds the summary of one completed availability check.
type RunSnapshot struct {
	DatesChecked int
	Matches      model.MatchSet
	Notified     bool
}

// QueryEvent records the outcome of a single per-date query.
type QueryEvent struct {
	Date   string
	Status string // "SUCCESS", "TRANSPORT_FAILURE" or "MALFORMED_BODY"
	Detail string
}

// Recorder persists run history for later analysis. It is strictly
// write-only: the checker never reads recorded data back, so past results
// cannot influence a run.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	RecordOutcome(evt *QueryEvent) error
	Close() error
}
