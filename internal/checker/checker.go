package checker

import (
	"context"
	"fmt"
	"log"
	"time"

	"TableScout/internal/booking"
	"TableScout/internal/extractor"
	"TableScout/internal/filter"
	"TableScout/internal/model"
	"TableScout/internal/notifier"
	"TableScout/internal/recorder"
)

// Notifier is the outbound notification sink.
type Notifier interface {
	SendWithRetry(ctx context.Context, title, body string, maxRetries int) error
}

// Checker runs one availability check: query every candidate date, extract
// and filter the offered slots, and notify when anything matched.
type Checker struct {
	Client   *booking.Client
	Filter   filter.TimeFilter
	Notifier Notifier
	Recorder recorder.Recorder
	Title    string
	Pace     time.Duration
	DryRun   bool
	Debug    bool
}

// Run checks all dates sequentially. Per-date failures are logged and
// recorded but never abort the loop; the report covers whatever succeeded.
func (c *Checker) Run(ctx context.Context, dates []string) model.MatchSet {
	matches := model.MatchSet{}

	for i, date := range dates {
		c.checkDate(ctx, date, matches)

		// Courtesy pacing between requests, not after the last one.
		if c.Pace > 0 && i < len(dates)-1 {
			select {
			case <-ctx.Done():
				return matches
			case <-time.After(c.Pace):
			}
		}
	}

	c.report(ctx, dates, matches)
	return matches
}

func (c *Checker) checkDate(ctx context.Context, date string, matches model.MatchSet) {
	out := c.Client.Query(ctx, date)
	switch out.Kind {
	case booking.TransportFailure:
		log.Printf("[ERROR] query %s failed: %v", date, out.Err)
		c.recordOutcome(date, "TRANSPORT_FAILURE", fmt.Sprintf("%v", out.Err))
		return
	case booking.MalformedBody:
		log.Printf("[ERROR] non-JSON response for %s: %s", date, out.Body)
		c.recordOutcome(date, "MALFORMED_BODY", out.Body)
		return
	}

	if c.Debug {
		log.Printf("[DEBUG] response for %s: %s", date, out.Body)
	}
	c.recordOutcome(date, "SUCCESS", "")

	// The upstream contract is loose enough that slot data can coexist
	// with a reported failure, so a success:false body still gets scanned.
	body, ok := out.Data.(map[string]any)
	if !ok {
		return
	}
	if success, present := body["success"].(bool); present && !success {
		errText := body["errors"]
		if errText == nil {
			errText = body["error"]
		}
		log.Printf("[WARN] API reported failure for %s: %v", date, errText)
	}

	times := extractor.Extract(body)
	filtered := filter.Apply(times, c.Filter)
	if c.Debug {
		log.Printf("[DEBUG] times found for %s: %v", date, times)
		log.Printf("[DEBUG] times after filter for %s: %v", date, filtered)
	}
	matches.Add(date, filtered)
}

func (c *Checker) report(ctx context.Context, dates []string, matches model.MatchSet) {
	notified := false
	if len(matches) == 0 {
		log.Println("[INFO] no matching availability found")
	} else {
		body := notifier.FormatReport(matches)
		log.Printf("[INFO] %s", body)
		if c.DryRun {
			log.Println("[INFO] dry run, skipping notification")
		} else if err := c.Notifier.SendWithRetry(ctx, c.Title, body, 3); err != nil {
			log.Printf("[ERROR] send notification: %v", err)
		} else {
			notified = true
		}
	}

	if err := c.Recorder.RecordRun(&recorder.RunSnapshot{
		DatesChecked: len(dates),
		Matches:      matches,
		Notified:     notified,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

func (c *Checker) recordOutcome(date, status, detail string) {
	if err := c.Recorder.RecordOutcome(&recorder.QueryEvent{Date: date, Status: status, Detail: detail}); err != nil {
		log.Printf("[ERROR] record outcome: %v", err)
	}
}
