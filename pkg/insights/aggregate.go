// Package insights computes journal aggregates: mood trends, writing
// statistics, streaks, and tag rankings. Everything here is pure; the
// insights feature feeds the results to the AI narrative layer.
package insights

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/mood"
	"tableflip.dev/memoir/pkg/timeutil"
)

// TopTagLimit caps the tag frequency ranking.
const TopTagLimit = 10

// DailyMood is the average mood of one calendar day with at least one
// mooded entry. Days without moods are skipped, never interpolated.
type DailyMood struct {
	Day     time.Time
	Average float64
	Class   mood.Mood
	Entries int
}

// MoodCount is one histogram bucket with its share of all mooded entries.
type MoodCount struct {
	Mood    mood.Mood
	Count   int
	Percent float64
}

// WeekdayCount is entries written on one day of the week.
type WeekdayCount struct {
	Day   time.Weekday
	Count int
}

// BucketCount is entries written in one time-of-day bucket.
type BucketCount struct {
	Bucket timeutil.DayBucket
	Count  int
}

// TagCount is one normalized tag with its usage count.
type TagCount struct {
	Tag   string
	Count int
}

// Report is the full aggregate set for a window. Streaks and the
// all-time totals always cover every entry regardless of the window.
type Report struct {
	Window      timeutil.Window
	GeneratedAt time.Time

	DailyMoods    []DailyMood
	MoodHistogram []MoodCount
	MoodedCount   int

	EntryCount    int
	TotalWords    int
	AverageWords  float64
	LongestWords  int
	ShortestWords int

	AllTimeEntryCount int
	AllTimeWords      int

	LongestStreak int
	CurrentStreak int

	Weekdays             []WeekdayCount
	MostProductiveDay    time.Weekday
	DayBuckets           []BucketCount
	MostProductiveBucket timeutil.DayBucket

	TopTags []TagCount
}

// Build computes a report over all entries, windowing per-window stats
// and keeping streaks plus all-time totals over the unfiltered set.
func Build(all []*entry.Entry, w timeutil.Window, now time.Time) Report {
	r := Report{Window: w, GeneratedAt: now}

	windowed := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if w.Contains(e.Created.Time) {
			windowed = append(windowed, e)
		}
	}

	r.DailyMoods, r.MoodHistogram, r.MoodedCount = moodStats(windowed)
	r.EntryCount = len(windowed)
	r.TotalWords, r.AverageWords, r.LongestWords, r.ShortestWords = wordStats(windowed)

	r.AllTimeEntryCount = len(all)
	for _, e := range all {
		r.AllTimeWords += e.WordCount()
	}

	times := make([]time.Time, 0, len(all))
	for _, e := range all {
		times = append(times, e.Created.Time)
	}
	r.LongestStreak, r.CurrentStreak = timeutil.Streaks(times, now)

	r.Weekdays, r.MostProductiveDay = weekdayStats(windowed)
	r.DayBuckets, r.MostProductiveBucket = bucketStats(windowed)
	r.TopTags = tagStats(windowed)
	return r
}

func moodStats(entries []*entry.Entry) ([]DailyMood, []MoodCount, int) {
	type daySum struct {
		day   time.Time
		total int
		count int
	}
	byDay := make(map[string]*daySum)
	counts := make(map[mood.Mood]int)
	mooded := 0

	for _, e := range entries {
		if !e.HasMood() {
			continue
		}
		mooded++
		counts[*e.Mood]++
		key := timeutil.DayKey(e.Created.Time)
		s, ok := byDay[key]
		if !ok {
			s = &daySum{day: timeutil.StartOfDay(e.Created.Time)}
			byDay[key] = s
		}
		s.total += e.Mood.Score()
		s.count++
	}

	daily := make([]DailyMood, 0, len(byDay))
	for _, s := range byDay {
		avg := float64(s.total) / float64(s.count)
		daily = append(daily, DailyMood{
			Day:     s.day,
			Average: avg,
			Class:   mood.FromAverage(avg),
			Entries: s.count,
		})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Day.Before(daily[j].Day) })

	denominator := mooded
	if denominator < 1 {
		denominator = 1
	}
	histogram := make([]MoodCount, 0, 5)
	for _, m := range mood.All() {
		histogram = append(histogram, MoodCount{
			Mood:    m,
			Count:   counts[m],
			Percent: float64(counts[m]) / float64(denominator) * 100,
		})
	}
	return daily, histogram, mooded
}

func wordStats(entries []*entry.Entry) (total int, average float64, longest, shortest int) {
	if len(entries) == 0 {
		return 0, 0, 0, 0
	}
	shortest = entries[0].WordCount()
	for _, e := range entries {
		wc := e.WordCount()
		total += wc
		if wc > longest {
			longest = wc
		}
		if wc < shortest {
			shortest = wc
		}
	}
	average = float64(total) / float64(len(entries))
	return total, average, longest, shortest
}

func weekdayStats(entries []*entry.Entry) ([]WeekdayCount, time.Weekday) {
	counts := make(map[time.Weekday]int)
	for _, e := range entries {
		counts[e.Created.Local().Weekday()]++
	}
	out := make([]WeekdayCount, 0, 7)
	best := time.Sunday
	for d := time.Sunday; d <= time.Saturday; d++ {
		out = append(out, WeekdayCount{Day: d, Count: counts[d]})
		// First-encountered maximum wins ties.
		if counts[d] > counts[best] {
			best = d
		}
	}
	return out, best
}

func bucketStats(entries []*entry.Entry) ([]BucketCount, timeutil.DayBucket) {
	counts := make(map[timeutil.DayBucket]int)
	for _, e := range entries {
		counts[timeutil.BucketOf(e.Created.Time)]++
	}
	buckets := timeutil.DayBuckets()
	out := make([]BucketCount, 0, len(buckets))
	best := buckets[0]
	for _, b := range buckets {
		out = append(out, BucketCount{Bucket: b, Count: counts[b]})
		if counts[b] > counts[best] {
			best = b
		}
	}
	return out, best
}

// NormalizeTag trims and capitalizes so "travel", " Travel " and "TRAVEL"
// rank as one topic.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	runes := []rune(strings.ToLower(tag))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func tagStats(entries []*entry.Entry) []TagCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, e := range entries {
		for _, raw := range e.Tags {
			tag := NormalizeTag(raw)
			if tag == "" {
				continue
			}
			if _, ok := counts[tag]; !ok {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(order))
	for _, tag := range order {
		out = append(out, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > TopTagLimit {
		out = out[:TopTagLimit]
	}
	return out
}
