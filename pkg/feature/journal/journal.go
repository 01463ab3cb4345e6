// Package journal implements the journal list feature: loading,
// filtering, day grouping, deletion, and presenting the editor.
package journal

import (
	"context"
	"time"

	"tableflip.dev/memoir/pkg/collection"
	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/feature"
	"tableflip.dev/memoir/pkg/feature/editor"
	"tableflip.dev/memoir/pkg/mood"
	"tableflip.dev/memoir/pkg/store"
	"tableflip.dev/memoir/pkg/timeutil"
)

const loadKey = "journal.load"

// State is the journal list snapshot. Editor is a presentation slot:
// non-nil means the editor sheet is up.
type State struct {
	Entries *collection.Identified[*entry.Entry]
	Loading bool
	Err     string

	Query      string
	MoodFilter mood.Mood
	WindowName string

	Editor *editor.State
}

// New returns an empty, not-yet-loaded journal.
func New() State {
	return State{Entries: collection.NewIdentified[*entry.Entry]()}
}

// Count is the unfiltered entry count, used to tell an empty journal
// apart from filters that match nothing.
func (s State) Count() int {
	return s.Entries.Len()
}

// Filtered applies the window, mood, and search filters together.
func (s State) Filtered(now time.Time) []*entry.Entry {
	w, err := timeutil.ResolveWindow(s.WindowName, now)
	if err != nil {
		w = timeutil.Window{}
	}
	return s.Entries.Filter(func(e *entry.Entry) bool {
		if !w.Contains(e.Created.Time) {
			return false
		}
		if s.MoodFilter != "" && (e.Mood == nil || *e.Mood != s.MoodFilter) {
			return false
		}
		return e.Matches(s.Query)
	})
}

// Section is one day's worth of filtered entries.
type Section struct {
	Label   string
	Day     string
	Entries []*entry.Entry
}

// Sections groups the filtered entries by calendar day, newest day
// first, so Today and Yesterday lead when present.
func (s State) Sections(now time.Time) []Section {
	filtered := s.Filtered(now)
	var out []Section
	index := make(map[string]int)
	for _, e := range filtered {
		day := timeutil.DayKey(e.Created.Time)
		i, ok := index[day]
		if !ok {
			i = len(out)
			index[day] = i
			out = append(out, Section{
				Label: timeutil.DayLabel(e.Created.Time, now),
				Day:   day,
			})
		}
		out[i].Entries = append(out[i].Entries, e)
	}
	return out
}

// Action is the sealed action set for the journal list.
type Action interface {
	feature.Action
	isJournal()
}

// Load fetches the entries.
type Load struct{}

// Loaded lands the fetched entries.
type Loaded struct{ Entries []*entry.Entry }

// LoadFailed reports a failed fetch.
type LoadFailed struct{ Message string }

// Delete removes an entry, optimistically.
type Delete struct{ ID string }

// DeleteFailed reports a failed delete; the list is reloaded.
type DeleteFailed struct{ Message string }

// EntryTapped opens the editor on an existing entry.
type EntryTapped struct{ ID string }

// NewEntryTapped opens the editor on a fresh draft.
type NewEntryTapped struct{}

// QueryChanged updates the search filter.
type QueryChanged struct{ Text string }

// MoodFilterChanged updates the mood filter; empty clears it.
type MoodFilterChanged struct{ Mood mood.Mood }

// WindowChanged updates the window filter by name.
type WindowChanged struct{ Name string }

// Editor wraps an editor action into the journal's action space.
type Editor struct{ Action editor.Action }

func (Load) isJournal()              {}
func (Loaded) isJournal()            {}
func (LoadFailed) isJournal()        {}
func (Delete) isJournal()            {}
func (DeleteFailed) isJournal()      {}
func (EntryTapped) isJournal()       {}
func (NewEntryTapped) isJournal()    {}
func (QueryChanged) isJournal()      {}
func (MoodFilterChanged) isJournal() {}
func (WindowChanged) isJournal()     {}
func (Editor) isJournal()            {}

// Deps are the journal's collaborators.
type Deps struct {
	Store  store.Persistence
	Editor editor.Deps
}

// Reduce is the journal's transition function.
func (d Deps) Reduce(s State, a feature.Action) (State, feature.Effect) {
	switch act := a.(type) {
	case Load:
		s.Loading = true
		s.Err = ""
		return s, feature.Cancellable(loadKey, func(ctx context.Context, emit func(feature.Action)) {
			entries, err := d.Store.ListEntries(ctx)
			if err != nil {
				emit(LoadFailed{Message: err.Error()})
				return
			}
			emit(Loaded{Entries: entries})
		})

	case Loaded:
		s.Loading = false
		s.Entries = collection.FromSlice(act.Entries)
		return s, feature.None()

	case LoadFailed:
		s.Loading = false
		s.Err = act.Message
		return s, feature.None()

	case Delete:
		if _, ok := s.Entries.Get(act.ID); !ok {
			return s, feature.None()
		}
		next := s.Entries.Clone()
		next.Remove(act.ID)
		s.Entries = next
		id := act.ID
		return s, feature.Task(func(ctx context.Context, emit func(feature.Action)) {
			if err := d.Store.DeleteEntry(ctx, id); err != nil {
				emit(DeleteFailed{Message: err.Error()})
			}
		})

	case DeleteFailed:
		s.Err = act.Message
		return s, feature.Emit(Load{})

	case EntryTapped:
		e, ok := s.Entries.Get(act.ID)
		if !ok {
			return s, feature.None()
		}
		ed := editor.NewEdit(e)
		s.Editor = &ed
		return s, feature.None()

	case NewEntryTapped:
		ed := editor.NewCreate()
		s.Editor = &ed
		return s, feature.None()

	case QueryChanged:
		s.Query = act.Text
		return s, feature.None()

	case MoodFilterChanged:
		s.MoodFilter = act.Mood
		return s, feature.None()

	case WindowChanged:
		s.WindowName = act.Name
		return s, feature.None()

	case Editor:
		if s.Editor == nil {
			return s, feature.None()
		}
		child, eff := d.Editor.Reduce(*s.Editor, act.Action)
		s.Editor = &child

		switch res := act.Action.(type) {
		case editor.SaveCompleted:
			s.Editor = nil
			if res.Entry != nil {
				next := s.Entries.Clone()
				if !next.Update(res.Entry) {
					next.InsertHead(res.Entry)
				}
				s.Entries = next
			}
		case editor.CancelTapped:
			s.Editor = nil
		}

		return s, feature.Map(eff, func(a feature.Action) feature.Action {
			return Editor{Action: a.(editor.Action)}
		})
	}
	return s, feature.None()
}
