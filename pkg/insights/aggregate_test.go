package insights

import (
	"testing"
	"time"

	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/mood"
	"tableflip.dev/memoir/pkg/timeutil"
)

func makeEntry(t time.Time, m mood.Mood, words int, tags ...string) *entry.Entry {
	e := entry.New("", "")
	for i := 0; i < words; i++ {
		e.Content += "word "
	}
	e.Created = entry.Timestamp{Time: t}
	e.Updated = e.Created
	if m != "" {
		e.SetMood(m)
	}
	e.Tags = tags
	return e
}

func TestDailyMoodsSkipMoodlessDays(t *testing.T) {
	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.Local)
	all := []*entry.Entry{
		makeEntry(base, mood.Great, 5),
		makeEntry(base.Add(2*time.Hour), mood.Good, 5),
		makeEntry(base.AddDate(0, 0, 1), "", 5), // moodless day
		makeEntry(base.AddDate(0, 0, 2), mood.Bad, 5),
	}

	r := Build(all, timeutil.Window{}, base.AddDate(0, 0, 3))
	if len(r.DailyMoods) != 2 {
		t.Fatalf("expected 2 mooded days, got %d", len(r.DailyMoods))
	}
	first := r.DailyMoods[0]
	if first.Average != 4.5 || first.Class != mood.Great {
		t.Fatalf("day average wrong: %+v", first)
	}
	if r.DailyMoods[1].Class != mood.Bad {
		t.Fatalf("second day wrong: %+v", r.DailyMoods[1])
	}
}

func TestMoodHistogramPercentages(t *testing.T) {
	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.Local)
	all := []*entry.Entry{
		makeEntry(base, mood.Good, 1),
		makeEntry(base, mood.Good, 1),
		makeEntry(base, mood.Bad, 1),
		makeEntry(base, "", 1),
	}

	r := Build(all, timeutil.Window{}, base)
	if r.MoodedCount != 3 {
		t.Fatalf("mooded count = %d", r.MoodedCount)
	}
	for _, mc := range r.MoodHistogram {
		switch mc.Mood {
		case mood.Good:
			if mc.Count != 2 || mc.Percent < 66 || mc.Percent > 67 {
				t.Fatalf("good bucket wrong: %+v", mc)
			}
		case mood.Bad:
			if mc.Count != 1 {
				t.Fatalf("bad bucket wrong: %+v", mc)
			}
		default:
			if mc.Count != 0 {
				t.Fatalf("unexpected count in %s", mc.Mood)
			}
		}
	}
}

func TestMoodHistogramEmptyIsZeroNotNaN(t *testing.T) {
	r := Build(nil, timeutil.Window{}, time.Now())
	for _, mc := range r.MoodHistogram {
		if mc.Percent != 0 {
			t.Fatalf("expected 0%% on empty set, got %v", mc.Percent)
		}
	}
}

func TestWordStatsWindowedVsAllTime(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	all := []*entry.Entry{
		makeEntry(now.AddDate(0, 0, -1), "", 10),
		makeEntry(now.AddDate(0, 0, -2), "", 30),
		makeEntry(now.AddDate(0, 0, -40), "", 100), // outside the window
	}
	w, _ := timeutil.ResolveWindow("week", now)

	r := Build(all, w, now)
	if r.EntryCount != 2 || r.TotalWords != 40 {
		t.Fatalf("windowed stats wrong: %d entries, %d words", r.EntryCount, r.TotalWords)
	}
	if r.AverageWords != 20 || r.LongestWords != 30 || r.ShortestWords != 10 {
		t.Fatalf("stats wrong: %+v", r)
	}
	if r.AllTimeEntryCount != 3 || r.AllTimeWords != 140 {
		t.Fatalf("all-time totals must ignore the window: %+v", r)
	}
}

func TestStreaksIgnoreWindow(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	all := []*entry.Entry{
		makeEntry(now.AddDate(0, 0, -40), "", 1),
		makeEntry(now.AddDate(0, 0, -39), "", 1),
		makeEntry(now.AddDate(0, 0, -38), "", 1),
		makeEntry(now, "", 1),
	}
	w, _ := timeutil.ResolveWindow("week", now)

	r := Build(all, w, now)
	if r.LongestStreak != 3 {
		t.Fatalf("longest streak must cover all entries, got %d", r.LongestStreak)
	}
	if r.CurrentStreak != 1 {
		t.Fatalf("current streak = %d", r.CurrentStreak)
	}
}

func TestMostProductiveTieBreaksFirstEncountered(t *testing.T) {
	// Equal counts on Monday and Friday: Monday is encountered first.
	monday := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local)
	friday := time.Date(2025, time.March, 7, 9, 0, 0, 0, time.Local)
	all := []*entry.Entry{
		makeEntry(friday, "", 1),
		makeEntry(monday, "", 1),
	}

	r := Build(all, timeutil.Window{}, friday)
	if r.MostProductiveDay != time.Monday {
		t.Fatalf("expected Monday on tie, got %s", r.MostProductiveDay)
	}
	if r.MostProductiveBucket != timeutil.Morning {
		t.Fatalf("expected morning bucket, got %s", r.MostProductiveBucket)
	}
}

func TestTagRankingNormalizedAndCapped(t *testing.T) {
	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.Local)
	all := []*entry.Entry{
		makeEntry(base, "", 1, "travel", " Travel ", "TRAVEL", "food"),
		makeEntry(base, "", 1, "food", "  "),
	}
	for i := 0; i < 12; i++ {
		all = append(all, makeEntry(base, "", 1, string(rune('a'+i))))
	}

	r := Build(all, timeutil.Window{}, base)
	if len(r.TopTags) != TopTagLimit {
		t.Fatalf("expected cap at %d, got %d", TopTagLimit, len(r.TopTags))
	}
	if r.TopTags[0].Tag != "Travel" || r.TopTags[0].Count != 3 {
		t.Fatalf("expected Travel x3 first, got %+v", r.TopTags[0])
	}
	if r.TopTags[1].Tag != "Food" || r.TopTags[1].Count != 2 {
		t.Fatalf("expected Food x2 second, got %+v", r.TopTags[1])
	}
}

func TestBuildPromptIsDeterministicAndBounded(t *testing.T) {
	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.Local)
	all := []*entry.Entry{
		makeEntry(base, mood.Good, 50, "travel"),
		makeEntry(base.AddDate(0, 0, 1), mood.Okay, 20),
	}
	r := Build(all, timeutil.Window{}, base.AddDate(0, 0, 2))

	p1 := BuildPrompt(r, all)
	p2 := BuildPrompt(r, all)
	if p1 != p2 {
		t.Fatalf("prompt not deterministic")
	}
	if len(p1) == 0 {
		t.Fatalf("empty prompt")
	}
}
