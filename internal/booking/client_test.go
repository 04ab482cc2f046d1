package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(endpoint string) *Client {
	c := NewClient(endpoint, "42", 2, 5*time.Second)
	c.Backoff = noDelay
	return c
}

func TestQuery_PayloadMergeWins(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.Template = map[string]any{
		"restaurant": "punk-royale",
		"date":       "1970-01-01", // stale, must be overwritten
		"amount":     99,
	}
	out := c.Query(context.Background(), "2025-11-07")
	if out.Kind != Success {
		t.Fatalf("expected Success, got %v (%v)", out.Kind, out.Err)
	}
	if received["date"] != "2025-11-07" {
		t.Errorf("per-date field did not win: date=%v", received["date"])
	}
	if received["amount"] != float64(2) {
		t.Errorf("party size did not win: amount=%v", received["amount"])
	}
	if received["mealid"] != "42" {
		t.Errorf("mealid not merged: %v", received["mealid"])
	}
	if received["restaurant"] != "punk-royale" {
		t.Errorf("template field not preserved: %v", received["restaurant"])
	}
}

func TestQuery_ErrorStatusIsTransportSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success": false, "errors": ["fully booked"]}`))
	}))
	defer srv.Close()

	out := newTestClient(srv.URL).Query(context.Background(), "2025-11-07")
	if out.Kind != Success {
		t.Fatalf("error status should still be a transport success, got %v", out.Kind)
	}
	body, ok := out.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected decoded object, got %T", out.Data)
	}
	if body["success"] != false {
		t.Errorf("expected decoded success flag, got %v", body["success"])
	}
}

func TestQuery_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	out := newTestClient(srv.URL).Query(context.Background(), "2025-11-07")
	if out.Kind != MalformedBody {
		t.Fatalf("expected MalformedBody, got %v", out.Kind)
	}
	if out.Body != "<html>maintenance</html>" {
		t.Errorf("raw body not preserved for diagnostics: %q", out.Body)
	}
	if out.Err == nil {
		t.Error("expected decode error to be carried")
	}
}

// countingTransport fails every request at the connection level.
type countingTransport struct {
	calls int
}

func (ct *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	ct.calls++
	return nil, errors.New("connection refused")
}

func TestQuery_RetriesThenTransportFailure(t *testing.T) {
	ct := &countingTransport{}
	c := newTestClient("http://unreachable.invalid")
	c.Retries = 2
	c.HTTP = &http.Client{Transport: ct}

	out := c.Query(context.Background(), "2025-11-07")
	if out.Kind != TransportFailure {
		t.Fatalf("expected TransportFailure, got %v", out.Kind)
	}
	if ct.calls != 3 {
		t.Errorf("retries=2 should mean 3 total attempts, got %d", ct.calls)
	}
	if out.Err == nil {
		t.Error("expected last error to be carried")
	}
}

func TestBuildPayload_DoesNotMutateTemplate(t *testing.T) {
	template := map[string]any{"date": "stale", "note": "keep"}
	payload := buildPayload(template, "2025-11-07", 4, "7")
	if template["date"] != "stale" {
		t.Errorf("template mutated: %v", template["date"])
	}
	if payload["date"] != "2025-11-07" || payload["amount"] != 4 || payload["mealid"] != "7" {
		t.Errorf("unexpected payload: %v", payload)
	}
	if payload["note"] != "keep" {
		t.Errorf("template field dropped: %v", payload)
	}
}
