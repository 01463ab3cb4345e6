// Package insights implements the insights feature: windowed
// aggregation over the journal plus an AI narrative of the results.
package insights

import (
	"context"
	"time"

	"tableflip.dev/memoir/pkg/ai"
	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/feature"
	agg "tableflip.dev/memoir/pkg/insights"
	"tableflip.dev/memoir/pkg/store"
	"tableflip.dev/memoir/pkg/timeutil"
)

const (
	loadKey    = "insights.load"
	analyzeKey = "insights.analyze"
)

// State is the insights snapshot.
type State struct {
	WindowName string

	Report *agg.Report
	Sample []*entry.Entry

	Analysis *agg.Analysis

	Loading   bool
	Analyzing bool
	Err       string
}

// New returns an unloaded state on the weekly window.
func New() State {
	return State{WindowName: "week"}
}

// Action is the sealed action set for insights.
type Action interface {
	feature.Action
	isInsights()
}

// Load recomputes the report for the active window.
type Load struct{}

// Loaded lands the report plus the entry sample used for prompting.
type Loaded struct {
	Report agg.Report
	Sample []*entry.Entry
}

// LoadFailed reports a failed recompute.
type LoadFailed struct{ Message string }

// WindowChanged switches the window and recomputes.
type WindowChanged struct{ Name string }

// Analyze asks the model to narrate the current report.
type Analyze struct{}

// Analyzed lands the parsed narrative.
type Analyzed struct{ Analysis agg.Analysis }

// AnalyzeFailed reports a failed narrative request.
type AnalyzeFailed struct{ Message string }

func (Load) isInsights()          {}
func (Loaded) isInsights()        {}
func (LoadFailed) isInsights()    {}
func (WindowChanged) isInsights() {}
func (Analyze) isInsights()       {}
func (Analyzed) isInsights()      {}
func (AnalyzeFailed) isInsights() {}

// Deps are the insights collaborators. Now is injectable so report
// windows are stable under test; nil means time.Now.
type Deps struct {
	Store store.Persistence
	AI    ai.Generator
	Now   func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Reduce is the insights transition function.
func (d Deps) Reduce(s State, a feature.Action) (State, feature.Effect) {
	switch act := a.(type) {
	case Load:
		s.Loading = true
		s.Err = ""
		return s, d.load(s.WindowName)

	case Loaded:
		s.Loading = false
		r := act.Report
		s.Report = &r
		s.Sample = act.Sample
		return s, feature.None()

	case LoadFailed:
		s.Loading = false
		s.Err = act.Message
		return s, feature.None()

	case WindowChanged:
		if act.Name == s.WindowName {
			return s, feature.None()
		}
		s.WindowName = act.Name
		s.Loading = true
		s.Err = ""
		s.Analysis = nil
		return s, feature.Batch(feature.Cancel(analyzeKey), d.load(s.WindowName))

	case Analyze:
		if s.Report == nil || s.Analyzing {
			return s, feature.None()
		}
		s.Analyzing = true
		s.Err = ""
		prompt := agg.BuildPrompt(*s.Report, s.Sample)
		return s, feature.Cancellable(analyzeKey, func(ctx context.Context, emit func(feature.Action)) {
			text, err := d.AI.GenerateText(ctx, prompt)
			if err != nil {
				emit(AnalyzeFailed{Message: err.Error()})
				return
			}
			emit(Analyzed{Analysis: agg.ParseAnalysis(text)})
		})

	case Analyzed:
		s.Analyzing = false
		analysis := act.Analysis
		s.Analysis = &analysis
		return s, feature.None()

	case AnalyzeFailed:
		s.Analyzing = false
		s.Err = act.Message
		return s, feature.None()
	}
	return s, feature.None()
}

func (d Deps) load(windowName string) feature.Effect {
	return feature.Cancellable(loadKey, func(ctx context.Context, emit func(feature.Action)) {
		now := d.now()
		w, err := timeutil.ResolveWindow(windowName, now)
		if err != nil {
			emit(LoadFailed{Message: err.Error()})
			return
		}
		all, err := d.Store.ListEntries(ctx)
		if err != nil {
			emit(LoadFailed{Message: err.Error()})
			return
		}
		report := agg.Build(all, w, now)
		sample := make([]*entry.Entry, 0, len(all))
		for _, e := range all {
			if w.Contains(e.Created.Time) {
				sample = append(sample, e)
			}
		}
		emit(Loaded{Report: report, Sample: sample})
	})
}
