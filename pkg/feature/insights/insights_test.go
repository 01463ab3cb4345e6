package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/memoir/pkg/ai"
	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/feature"
	"tableflip.dev/memoir/pkg/mood"
	"tableflip.dev/memoir/pkg/store"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)

func testDeps(t *testing.T) (Deps, store.Persistence, *ai.Scripted) {
	t.Helper()
	db, err := store.OpenMemory(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	gen := &ai.Scripted{Text: `{"summary":"Good week.","moodInsight":"Upbeat.","patterns":[],"suggestions":[]}`}
	return Deps{Store: db, AI: gen, Now: func() time.Time { return testNow }}, db, gen
}

func drain(t *testing.T, e feature.Effect) []feature.Action {
	t.Helper()
	var got []feature.Action
	done := make(chan struct{})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() {
		defer close(done)
		feature.Perform(ctx, e, func(a feature.Action) { got = append(got, a) })
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("effect did not finish")
	}
	return got
}

func apply(t *testing.T, d Deps, s State, a feature.Action) State {
	t.Helper()
	s, eff := d.Reduce(s, a)
	for _, follow := range drain(t, eff) {
		s = apply(t, d, s, follow)
	}
	return s
}

func seed(t *testing.T, db store.Persistence, at time.Time, m mood.Mood, content string) {
	t.Helper()
	e := entry.New("", content)
	e.Created = entry.Timestamp{Time: at}
	e.Updated = e.Created
	if m != "" {
		e.SetMood(m)
	}
	if err := db.CreateEntry(context.Background(), e); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestLoadBuildsWindowedReport(t *testing.T) {
	d, db, _ := testDeps(t)
	seed(t, db, testNow.AddDate(0, 0, -1), mood.Good, "one two three")
	seed(t, db, testNow.AddDate(0, 0, -2), mood.Great, "four five")
	seed(t, db, testNow.AddDate(0, 0, -60), mood.Bad, "ancient words here")

	s := apply(t, d, New(), Load{})
	if s.Loading || s.Report == nil {
		t.Fatalf("load did not land: %+v", s)
	}
	if s.Report.EntryCount != 2 {
		t.Fatalf("week window should hold 2 entries, got %d", s.Report.EntryCount)
	}
	if s.Report.AllTimeEntryCount != 3 {
		t.Fatalf("all-time count = %d", s.Report.AllTimeEntryCount)
	}
	if len(s.Sample) != 2 {
		t.Fatalf("sample should follow the window, got %d", len(s.Sample))
	}
}

func TestWindowChangeReloadsAndDropsAnalysis(t *testing.T) {
	d, db, _ := testDeps(t)
	seed(t, db, testNow.AddDate(0, 0, -20), mood.Okay, "words")

	s := apply(t, d, New(), Load{})
	s = apply(t, d, s, Analyze{})
	if s.Analysis == nil {
		t.Fatalf("analysis missing")
	}

	s = apply(t, d, s, WindowChanged{Name: "month"})
	if s.Analysis != nil {
		t.Fatalf("window change must drop the old narrative")
	}
	if s.Report == nil || s.Report.EntryCount != 1 {
		t.Fatalf("month window should hold the entry: %+v", s.Report)
	}

	_, eff := d.Reduce(s, WindowChanged{Name: "month"})
	if !feature.IsNone(eff) {
		t.Fatalf("same-window change should be a no-op")
	}
}

func TestAnalyzeParsesEnvelope(t *testing.T) {
	d, db, gen := testDeps(t)
	seed(t, db, testNow, mood.Good, "words")

	s := apply(t, d, New(), Load{})
	s = apply(t, d, s, Analyze{})

	if s.Analyzing {
		t.Fatalf("flag not cleared")
	}
	if s.Analysis == nil || s.Analysis.Summary != "Good week." {
		t.Fatalf("analysis = %+v", s.Analysis)
	}
	if gen.TextCalls != 1 {
		t.Fatalf("model calls = %d", gen.TextCalls)
	}
}

func TestAnalyzeWithoutReportIsNoop(t *testing.T) {
	d, _, gen := testDeps(t)
	_, eff := d.Reduce(New(), Analyze{})
	if !feature.IsNone(eff) || gen.TextCalls != 0 {
		t.Fatalf("analyze before load must be a no-op")
	}
}

func TestAnalyzeFailureSurfaces(t *testing.T) {
	d, db, gen := testDeps(t)
	gen.TextErr = errors.New("rate limited")
	seed(t, db, testNow, mood.Good, "words")

	s := apply(t, d, New(), Load{})
	s = apply(t, d, s, Analyze{})
	if s.Err != "rate limited" || s.Analyzing {
		t.Fatalf("failure not surfaced: %+v", s)
	}
	if s.Analysis != nil {
		t.Fatalf("no analysis expected on failure")
	}
}
