// Package editor implements the entry editor feature. It covers both
// creating a new entry and editing an existing one, carries an embedded
// input bar for voice/photo/scan capture into the draft, and can ask the
// generative client for a title suggestion.
package editor

import (
	"context"
	"strings"

	"tableflip.dev/memoir/pkg/ai"
	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/feature"
	"tableflip.dev/memoir/pkg/feature/inputbar"
	"tableflip.dev/memoir/pkg/insights"
	"tableflip.dev/memoir/pkg/mood"
	"tableflip.dev/memoir/pkg/store"
)

const (
	saveKey    = "editor.save"
	suggestKey = "editor.suggestTitle"
)

// Mode tells the save path apart: create inserts, edit updates in place.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// State is the editor's draft plus its embedded input bar.
type State struct {
	Mode    Mode
	EntryID string

	Title       string
	Content     string
	Mood        mood.Mood
	Tags        []string
	Attachments []*entry.Attachment
	AITitle     string

	SourceInboxItemID string

	Saving bool
	Err    string

	Bar inputbar.State
}

// NewCreate returns an empty create-mode draft.
func NewCreate() State {
	return State{Mode: ModeCreate, Bar: inputbar.New()}
}

// NewEdit returns an edit-mode draft seeded from the entry's current
// fields.
func NewEdit(e *entry.Entry) State {
	s := State{
		Mode:        ModeEdit,
		EntryID:     e.ID,
		Title:       e.Title,
		Content:     e.Content,
		Tags:        append([]string(nil), e.Tags...),
		Attachments: append([]*entry.Attachment(nil), e.Attachments...),
		AITitle:     e.AIGeneratedTitle,
		Bar:         inputbar.New(),
	}
	if e.Mood != nil {
		s.Mood = *e.Mood
	}
	return s
}

// CanSave reports whether the draft has anything worth keeping and no
// save is already in flight.
func (s State) CanSave() bool {
	if s.Saving {
		return false
	}
	return strings.TrimSpace(s.Title) != "" ||
		strings.TrimSpace(s.Content) != "" ||
		len(s.Attachments) > 0
}

// Action is the sealed action set for the editor.
type Action interface {
	feature.Action
	isEditor()
}

// TitleChanged replaces the draft title.
type TitleChanged struct{ Text string }

// ContentChanged replaces the draft body.
type ContentChanged struct{ Text string }

// MoodPicked tags the draft; an invalid mood clears it.
type MoodPicked struct{ Mood mood.Mood }

// TagAdded appends a tag, skipping duplicates after normalization.
type TagAdded struct{ Tag string }

// TagRemoved drops a tag.
type TagRemoved struct{ Tag string }

// SuggestTitleTapped asks the generative client for a title based on
// the draft content.
type SuggestTitleTapped struct{}

// TitleSuggested lands the AI title suggestion.
type TitleSuggested struct{ Text string }

// SuggestFailed reports a failed title request.
type SuggestFailed struct{ Message string }

// SaveTapped persists the draft.
type SaveTapped struct{}

// SaveCompleted carries the persisted entry. A nil Entry means an edit
// targeted an entry that no longer exists; parents just dismiss.
type SaveCompleted struct{ Entry *entry.Entry }

// SaveFailed reports a failed persist.
type SaveFailed struct{ Message string }

// CancelTapped dismisses the editor without saving. Parents intercept.
type CancelTapped struct{}

// Bar wraps an input bar action into the editor's action space.
type Bar struct{ Action inputbar.Action }

func (TitleChanged) isEditor()       {}
func (ContentChanged) isEditor()     {}
func (MoodPicked) isEditor()         {}
func (TagAdded) isEditor()           {}
func (TagRemoved) isEditor()         {}
func (SuggestTitleTapped) isEditor() {}
func (TitleSuggested) isEditor()     {}
func (SuggestFailed) isEditor()      {}
func (SaveTapped) isEditor()         {}
func (SaveCompleted) isEditor()      {}
func (SaveFailed) isEditor()         {}
func (CancelTapped) isEditor()       {}
func (Bar) isEditor()                {}

// Deps are the editor's collaborators.
type Deps struct {
	Store store.Persistence
	AI    ai.Generator
	Bar   inputbar.Deps
}

// Reduce is the editor's transition function.
func (d Deps) Reduce(s State, a feature.Action) (State, feature.Effect) {
	switch act := a.(type) {
	case TitleChanged:
		s.Title = act.Text
		return s, feature.None()

	case ContentChanged:
		s.Content = act.Text
		return s, feature.None()

	case MoodPicked:
		s.Mood = act.Mood
		if !act.Mood.Valid() {
			s.Mood = ""
		}
		return s, feature.None()

	case TagAdded:
		tag := insights.NormalizeTag(act.Tag)
		if tag == "" {
			return s, feature.None()
		}
		for _, t := range s.Tags {
			if t == tag {
				return s, feature.None()
			}
		}
		s.Tags = append(append([]string(nil), s.Tags...), tag)
		return s, feature.None()

	case TagRemoved:
		kept := make([]string, 0, len(s.Tags))
		for _, t := range s.Tags {
			if t != act.Tag {
				kept = append(kept, t)
			}
		}
		s.Tags = kept
		return s, feature.None()

	case SuggestTitleTapped:
		content := strings.TrimSpace(s.Content)
		if content == "" {
			return s, feature.None()
		}
		return s, feature.Cancellable(suggestKey, func(ctx context.Context, emit func(feature.Action)) {
			text, err := d.AI.GenerateText(ctx, insights.TitlePrompt(content))
			if err != nil {
				emit(SuggestFailed{Message: err.Error()})
				return
			}
			emit(TitleSuggested{Text: strings.TrimSpace(text)})
		})

	case TitleSuggested:
		s.AITitle = act.Text
		return s, feature.None()

	case SuggestFailed:
		s.Err = act.Message
		return s, feature.None()

	case SaveTapped:
		if !s.CanSave() {
			return s, feature.None()
		}
		s.Saving = true
		s.Err = ""
		return s, d.save(s)

	case SaveCompleted:
		s.Saving = false
		s.Err = ""
		return s, feature.None()

	case SaveFailed:
		s.Saving = false
		s.Err = act.Message
		return s, feature.None()

	case CancelTapped:
		return s, feature.Cancel(saveKey)

	case Bar:
		bar, eff := d.Bar.Reduce(s.Bar, act.Action)
		s.Bar = bar
		switch res := act.Action.(type) {
		case inputbar.Transcribed:
			s.Content = appendText(s.Content, res.Text)
		case inputbar.Picked:
			s.Attachments = append(append([]*entry.Attachment(nil), s.Attachments...), res.Attachment)
		}
		return s, feature.Map(eff, func(a feature.Action) feature.Action {
			return Bar{Action: a.(inputbar.Action)}
		})
	}
	return s, feature.None()
}

// save snapshots the draft before the effect runs so a later keystroke
// cannot change what gets persisted.
func (d Deps) save(s State) feature.Effect {
	draft := s
	return feature.Cancellable(saveKey, func(ctx context.Context, emit func(feature.Action)) {
		var e *entry.Entry
		switch draft.Mode {
		case ModeCreate:
			title := strings.TrimSpace(draft.Title)
			if title == "" {
				title = strings.TrimSpace(draft.AITitle)
			}
			if title == "" {
				title = "Untitled"
			}
			e = entry.New(title, draft.Content)
			e.AIGeneratedTitle = draft.AITitle
			e.SourceInboxItemID = draft.SourceInboxItemID
		case ModeEdit:
			existing, err := d.Store.GetEntry(ctx, draft.EntryID)
			if err != nil {
				emit(SaveFailed{Message: err.Error()})
				return
			}
			if existing == nil {
				// The entry was deleted out from under the editor.
				emit(SaveCompleted{Entry: nil})
				return
			}
			e = existing
			e.Title = draft.Title
			e.Content = draft.Content
			e.AIGeneratedTitle = draft.AITitle
			e.Touch()
		}

		e.SetMood(draft.Mood)
		e.Tags = draft.Tags
		e.Attachments = draft.Attachments

		var err error
		if draft.Mode == ModeCreate {
			err = d.Store.CreateEntry(ctx, e)
		} else {
			err = d.Store.UpdateEntry(ctx, e)
		}
		if err != nil {
			emit(SaveFailed{Message: err.Error()})
			return
		}
		emit(SaveCompleted{Entry: e})
	})
}

func appendText(base, extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return base
	}
	if strings.TrimSpace(base) == "" {
		return extra
	}
	return strings.TrimRight(base, "\n") + "\n\n" + extra
}
