package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OutcomeKind tags the result of one per-date query.
type OutcomeKind int

const (
	// Success means the endpoint answered with a JSON body. Error status
	// codes still count: payload-level failure is the caller's concern.
	Success OutcomeKind = iota
	// TransportFailure means every attempt failed at the network level.
	TransportFailure
	// MalformedBody means the endpoint answered but the body is not JSON.
	MalformedBody
)

// Outcome is the tagged per-date query result. Data is the decoded JSON
// value on Success; Body preserves the raw response text for diagnostics.
type Outcome struct {
	Date string
	Kind OutcomeKind
	Data any
	Body string
	Err  error
}

// Client posts availability queries to the reservation endpoint, one per
// date, with bounded retries. Safe for sequential reuse across dates; the
// underlying http.Client keeps connections alive between requests.
type Client struct {
	EndpointURL string
	MealID      string
	PartySize   int
	Template    map[string]any
	UserAgent   string
	Origin      string
	Referer     string
	Retries     int
	HTTP        *http.Client
	Backoff     func(attempt int) time.Duration
}

// NewClient creates a client with the default retry policy (2 total
// attempts, capped linear backoff).
func NewClient(endpointURL, mealID string, partySize int, timeout time.Duration) *Client {
	return &Client{
		EndpointURL: endpointURL,
		MealID:      mealID,
		PartySize:   partySize,
		Retries:     1,
		HTTP:        &http.Client{Timeout: timeout},
		Backoff:     linearBackoff,
	}
}

// buildPayload merges the per-date fields onto a copy of the template.
// The date, amount and mealid keys are written last so they always win
// over a stale template value.
func buildPayload(template map[string]any, date string, amount int, mealID string) map[string]any {
	payload := make(map[string]any, len(template)+3)
	for k, v := range template {
		payload[k] = v
	}
	payload["date"] = date
	payload["amount"] = amount
	payload["mealid"] = mealID
	return payload
}

// Query sends one availability request for the given ISO date. It never
// returns an error: every failure mode is folded into the Outcome so one
// bad date cannot abort the remaining dates.
func (c *Client) Query(ctx context.Context, date string) Outcome {
	body, err := json.Marshal(buildPayload(c.Template, date, c.PartySize, c.MealID))
	if err != nil {
		return Outcome{Date: date, Kind: TransportFailure, Err: fmt.Errorf("marshal payload: %w", err)}
	}

	var raw []byte
	attempts := c.Retries + 1
	err = withRetries(ctx, attempts, c.Backoff, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.EndpointURL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		c.setHeaders(req)
		resp, err := c.HTTP.Do(req)
		if err != nil {
			return fmt.Errorf("post query: %w", err)
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		raw = b
		return nil
	})
	if err != nil {
		return Outcome{Date: date, Kind: TransportFailure, Err: err}
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return Outcome{Date: date, Kind: MalformedBody, Body: string(raw), Err: err}
	}
	return Outcome{Date: date, Kind: Success, Data: data, Body: string(raw)}
}

func (c *Client) setHeaders(req *http.Request) {
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	if c.Origin != "" {
		req.Header.Set("Origin", c.Origin)
	}
	if c.Referer != "" {
		req.Header.Set("Referer", c.Referer)
	}
}
