package dates

import (
	"errors"
	"testing"
	"time"
)

func TestResolve_ExplicitListWins(t *testing.T) {
	sel := Selection{
		Dates:     []string{"2025-12-24", "2025-11-07", "2025-12-31"},
		Year:      2025,
		Month:     11,
		DayOfWeek: "Friday",
	}
	got, err := Resolve(sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2025-12-24", "2025-11-07", "2025-12-31"}
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("date %d: caller order not preserved, want %s got %s", i, want[i], got[i])
		}
	}
}

func TestResolve_FridaysNovember2025(t *testing.T) {
	got, err := Resolve(Selection{Year: 2025, Month: 11, DayOfWeek: "Friday"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2025-11-07", "2025-11-14", "2025-11-21", "2025-11-28"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %s at position %d, got %s", want[i], i, got[i])
		}
	}
}

// Every resolved date must fall on the requested weekday, and the count must
// equal the number of that weekday's occurrences in the month. Checked
// against time-package ground truth across month lengths and a leap year.
func TestResolve_WeekdayRuleMatchesCalendar(t *testing.T) {
	cases := []struct {
		year, month int
		dow         string
		weekday     time.Weekday
	}{
		{2024, 2, "Thursday", time.Thursday}, // leap February
		{2025, 2, "Friday", time.Friday},
		{2025, 4, "Monday", time.Monday},
		{2025, 7, "Sunday", time.Sunday},
		{2025, 12, "Wednesday", time.Wednesday},
		{2000, 2, "Tuesday", time.Tuesday}, // century leap year
	}
	for _, tc := range cases {
		got, err := Resolve(Selection{Year: tc.year, Month: tc.month, DayOfWeek: tc.dow})
		if err != nil {
			t.Fatalf("%d-%02d %s: unexpected error: %v", tc.year, tc.month, tc.dow, err)
		}

		wantCount := 0
		for d := time.Date(tc.year, time.Month(tc.month), 1, 0, 0, 0, 0, time.UTC); d.Month() == time.Month(tc.month); d = d.AddDate(0, 0, 1) {
			if d.Weekday() == tc.weekday {
				wantCount++
			}
		}
		if len(got) != wantCount {
			t.Errorf("%d-%02d %s: expected %d dates, got %d (%v)", tc.year, tc.month, tc.dow, wantCount, len(got), got)
		}

		prev := ""
		for _, iso := range got {
			d, err := time.Parse("2006-01-02", iso)
			if err != nil {
				t.Fatalf("unparseable date %q: %v", iso, err)
			}
			if d.Weekday() != tc.weekday {
				t.Errorf("%s falls on %s, want %s", iso, d.Weekday(), tc.weekday)
			}
			if iso <= prev {
				t.Errorf("dates not ascending: %s after %s", iso, prev)
			}
			prev = iso
		}
	}
}

func TestResolve_InvalidSelection(t *testing.T) {
	if _, err := Resolve(Selection{Year: 2025, Month: 13, DayOfWeek: "Friday"}); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("month 13: expected ErrInvalidSelection, got %v", err)
	}
	if _, err := Resolve(Selection{Year: 2025, Month: 0, DayOfWeek: "Friday"}); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("month 0: expected ErrInvalidSelection, got %v", err)
	}
	if _, err := Resolve(Selection{Year: 2025, Month: 11, DayOfWeek: "Fredag"}); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("unknown weekday: expected ErrInvalidSelection, got %v", err)
	}
}
