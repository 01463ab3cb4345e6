package timeutil

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestDayLabel(t *testing.T) {
	now := day(2025, time.March, 10)
	if got := DayLabel(now, now); got != "Today" {
		t.Fatalf("expected Today, got %q", got)
	}
	if got := DayLabel(now.AddDate(0, 0, -1), now); got != "Yesterday" {
		t.Fatalf("expected Yesterday, got %q", got)
	}
	if got := DayLabel(day(2025, time.March, 1), now); got != "March 1, 2025" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestBucketOf(t *testing.T) {
	cases := []struct {
		hour int
		want DayBucket
	}{
		{5, Morning}, {11, Morning},
		{12, Afternoon}, {16, Afternoon},
		{17, Evening}, {20, Evening},
		{21, Night}, {2, Night}, {4, Night},
	}
	for _, tc := range cases {
		ts := time.Date(2025, time.March, 10, tc.hour, 30, 0, 0, time.Local)
		if got := BucketOf(ts); got != tc.want {
			t.Fatalf("hour %d: got %s, want %s", tc.hour, got, tc.want)
		}
	}
}

func TestStreaksGapAndTrailing(t *testing.T) {
	d := day(2025, time.March, 1)
	times := []time.Time{d, d.AddDate(0, 0, 1), d.AddDate(0, 0, 2), d.AddDate(0, 0, 5)}

	longest, current := Streaks(times, d.AddDate(0, 0, 5))
	if longest != 3 {
		t.Fatalf("expected longest 3, got %d", longest)
	}
	if current != 1 {
		t.Fatalf("trailing day is today, expected current 1, got %d", current)
	}

	// Trailing run ended two days before "now": no current streak.
	longest, current = Streaks(times, d.AddDate(0, 0, 8))
	if longest != 3 || current != 0 {
		t.Fatalf("expected 3/0, got %d/%d", longest, current)
	}

	// Trailing run reaching yesterday still counts.
	_, current = Streaks(times, d.AddDate(0, 0, 6))
	if current != 1 {
		t.Fatalf("expected current 1 for yesterday, got %d", current)
	}
}

func TestStreaksDedupesWithinDay(t *testing.T) {
	d := day(2025, time.March, 1)
	times := []time.Time{d, d.Add(2 * time.Hour), d.AddDate(0, 0, 1)}
	longest, _ := Streaks(times, d.AddDate(0, 0, 10))
	if longest != 2 {
		t.Fatalf("expected longest 2, got %d", longest)
	}
}

func TestResolveWindow(t *testing.T) {
	now := day(2025, time.March, 10)

	w, err := ResolveWindow("all", now)
	if err != nil || !w.All() {
		t.Fatalf("expected unbounded window, got %+v, %v", w, err)
	}

	w, err = ResolveWindow("week", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Contains(now) {
		t.Fatalf("window should contain now")
	}
	if w.Contains(now.AddDate(0, 0, -8)) {
		t.Fatalf("window should exclude 8 days ago")
	}

	if _, err := ResolveWindow("bogus", now); err == nil {
		t.Fatalf("expected error for bogus window")
	}
}
