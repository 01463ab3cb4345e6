package timeutil

import (
	"sort"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey returns the calendar-day key for t in local time.
func DayKey(t time.Time) string {
	return t.Local().Format(dayKeyLayout)
}

// StartOfDay returns local midnight for t's calendar day.
func StartOfDay(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, l.Location())
}

// DayLabel renders the group label for a calendar day: "Today" and
// "Yesterday" are special-cased ahead of date labels.
func DayLabel(day, now time.Time) string {
	d := StartOfDay(day)
	today := StartOfDay(now)
	switch {
	case d.Equal(today):
		return "Today"
	case d.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return d.Format("January 2, 2006")
	}
}

// DayBucket is a coarse time-of-day bucket.
type DayBucket string

const (
	Morning   DayBucket = "morning"   // 05:00–11:59
	Afternoon DayBucket = "afternoon" // 12:00–16:59
	Evening   DayBucket = "evening"   // 17:00–20:59
	Night     DayBucket = "night"     // 21:00–04:59
)

// DayBuckets lists buckets in display order.
func DayBuckets() []DayBucket {
	return []DayBucket{Morning, Afternoon, Evening, Night}
}

// BucketOf returns the bucket containing t's local hour.
func BucketOf(t time.Time) DayBucket {
	switch h := t.Local().Hour(); {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 21:
		return Evening
	default:
		return Night
	}
}

// Streaks computes the longest and current runs of consecutive calendar
// days over the given timestamps. The current streak only counts when the
// trailing run reaches today or yesterday relative to now.
func Streaks(times []time.Time, now time.Time) (longest, current int) {
	if len(times) == 0 {
		return 0, 0
	}

	seen := make(map[string]time.Time, len(times))
	for _, t := range times {
		d := StartOfDay(t)
		seen[DayKey(d)] = d
	}
	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour || days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := days[len(days)-1]
	today := StartOfDay(now)
	if last.Equal(today) || last.Equal(today.AddDate(0, 0, -1)) {
		current = run
	}
	return longest, current
}

