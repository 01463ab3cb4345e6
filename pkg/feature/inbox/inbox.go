// Package inbox implements the quick-capture inbox feature: capturing
// voice/photo/scan/text items, transcription, archiving, and conversion
// into journal entries.
package inbox

import (
	"context"
	"strings"

	"tableflip.dev/memoir/pkg/collection"
	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/feature"
	"tableflip.dev/memoir/pkg/inbox"
	"tableflip.dev/memoir/pkg/platform"
	"tableflip.dev/memoir/pkg/store"
)

const loadKey = "inbox.load"

const previewRunes = 80

// Filter selects which items show.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterVoice    Filter = "voiceNotes"
	FilterPhotos   Filter = "photos"
	FilterScans    Filter = "scans"
	FilterArchived Filter = "archived"
)

// State is the inbox snapshot.
type State struct {
	Items   *collection.Identified[*inbox.Item]
	Filter  Filter
	Loading bool
	Err     string
}

// New returns an empty inbox showing everything.
func New() State {
	return State{Items: collection.NewIdentified[*inbox.Item](), Filter: FilterAll}
}

// Count is the unfiltered item count.
func (s State) Count() int {
	return s.Items.Len()
}

// Filtered applies the active filter. Archived items only show under
// the archived filter, even when their capture kind matches.
func (s State) Filtered() []*inbox.Item {
	return s.Items.Filter(func(it *inbox.Item) bool {
		if s.Filter == FilterArchived {
			return it.Archived
		}
		if it.Archived {
			return false
		}
		switch s.Filter {
		case FilterVoice:
			return it.Kind == inbox.CaptureVoice
		case FilterPhotos:
			return it.Kind == inbox.CapturePhoto
		case FilterScans:
			return it.Kind == inbox.CaptureScan
		}
		return true
	})
}

// Action is the sealed action set for the inbox.
type Action interface {
	feature.Action
	isInbox()
}

// Load fetches the items.
type Load struct{}

// Loaded lands the fetched items.
type Loaded struct{ Items []*inbox.Item }

// LoadFailed reports a failed fetch.
type LoadFailed struct{ Message string }

// FilterChanged switches the active filter.
type FilterChanged struct{ Filter Filter }

// Capture records a new item of the given kind. Sample carries raw
// audio for voice captures and is ignored otherwise; Text seeds text
// captures.
type Capture struct {
	Kind   inbox.CaptureKind
	Sample []byte
	Text   string
}

// TranscriptionCompleted lands a finished voice transcription.
type TranscriptionCompleted struct {
	ID   string
	Text string
}

// TranscriptionFailed reports a failed transcription.
type TranscriptionFailed struct {
	ID      string
	Message string
}

// Archive hides an item from the active filters.
type Archive struct{ ID string }

// Unarchive restores an archived item.
type Unarchive struct{ ID string }

// Convert turns an item into a journal entry.
type Convert struct{ ID string }

// Converted lands the conversion result.
type Converted struct {
	Item  *inbox.Item
	Entry *entry.Entry
}

// ConvertFailed reports a failed conversion.
type ConvertFailed struct{ Message string }

// SaveFailed reports a failed item persist.
type SaveFailed struct{ Message string }

// Delete removes an item, optimistically.
type Delete struct{ ID string }

// DeleteFailed reports a failed delete.
type DeleteFailed struct{ Message string }

func (Load) isInbox()                   {}
func (Loaded) isInbox()                 {}
func (LoadFailed) isInbox()             {}
func (FilterChanged) isInbox()          {}
func (Capture) isInbox()                {}
func (TranscriptionCompleted) isInbox() {}
func (TranscriptionFailed) isInbox()    {}
func (Archive) isInbox()                {}
func (Unarchive) isInbox()              {}
func (Convert) isInbox()                {}
func (Converted) isInbox()              {}
func (ConvertFailed) isInbox()          {}
func (SaveFailed) isInbox()             {}
func (Delete) isInbox()                 {}
func (DeleteFailed) isInbox()           {}

// Deps are the inbox's collaborators.
type Deps struct {
	Store  store.Persistence
	Speech platform.Speech
}

// Reduce is the inbox's transition function.
func (d Deps) Reduce(s State, a feature.Action) (State, feature.Effect) {
	switch act := a.(type) {
	case Load:
		s.Loading = true
		s.Err = ""
		return s, feature.Cancellable(loadKey, func(ctx context.Context, emit func(feature.Action)) {
			items, err := d.Store.ListInboxItems(ctx)
			if err != nil {
				emit(LoadFailed{Message: err.Error()})
				return
			}
			emit(Loaded{Items: items})
		})

	case Loaded:
		s.Loading = false
		s.Items = collection.FromSlice(act.Items)
		return s, feature.None()

	case LoadFailed:
		s.Loading = false
		s.Err = act.Message
		return s, feature.None()

	case FilterChanged:
		s.Filter = act.Filter
		return s, feature.None()

	case Capture:
		item := inbox.NewItem(act.Kind)
		if act.Kind == inbox.CaptureText {
			item.Transcription = act.Text
			item.Preview = preview(act.Text)
		}
		next := s.Items.Clone()
		next.InsertHead(item)
		s.Items = next
		return s, d.capture(item, act.Sample)

	case TranscriptionCompleted:
		item, ok := s.Items.Get(act.ID)
		if !ok {
			// Item was deleted while the transcription ran.
			return s, feature.None()
		}
		updated := *item
		updated.Transcription = act.Text
		updated.Preview = preview(act.Text)
		next := s.Items.Clone()
		next.Update(&updated)
		s.Items = next
		saved := updated
		return s, feature.Task(func(ctx context.Context, emit func(feature.Action)) {
			if err := d.Store.SaveInboxItem(ctx, &saved); err != nil {
				emit(SaveFailed{Message: err.Error()})
			}
		})

	case TranscriptionFailed:
		if _, ok := s.Items.Get(act.ID); !ok {
			return s, feature.None()
		}
		s.Err = act.Message
		return s, feature.None()

	case Archive:
		return d.setArchived(s, act.ID, true)

	case Unarchive:
		return d.setArchived(s, act.ID, false)

	case Convert:
		item, ok := s.Items.Get(act.ID)
		if !ok || item.Processed {
			return s, feature.None()
		}
		return s, d.convert(item)

	case Converted:
		if _, ok := s.Items.Get(act.Item.ID); !ok {
			return s, feature.None()
		}
		next := s.Items.Clone()
		next.Update(act.Item)
		s.Items = next
		return s, feature.None()

	case ConvertFailed:
		s.Err = act.Message
		return s, feature.None()

	case SaveFailed:
		s.Err = act.Message
		return s, feature.Emit(Load{})

	case Delete:
		if _, ok := s.Items.Get(act.ID); !ok {
			return s, feature.None()
		}
		next := s.Items.Clone()
		next.Remove(act.ID)
		s.Items = next
		id := act.ID
		return s, feature.Task(func(ctx context.Context, emit func(feature.Action)) {
			if err := d.Store.DeleteInboxItem(ctx, id); err != nil {
				emit(DeleteFailed{Message: err.Error()})
			}
		})

	case DeleteFailed:
		s.Err = act.Message
		return s, feature.Emit(Load{})
	}
	return s, feature.None()
}

func (d Deps) capture(item *inbox.Item, sample []byte) feature.Effect {
	saved := *item
	return feature.Task(func(ctx context.Context, emit func(feature.Action)) {
		if err := d.Store.SaveInboxItem(ctx, &saved); err != nil {
			emit(TranscriptionFailed{ID: saved.ID, Message: err.Error()})
			return
		}
		if saved.Kind != inbox.CaptureVoice {
			return
		}
		text, err := d.Speech.Transcribe(ctx, sample)
		if err != nil {
			emit(TranscriptionFailed{ID: saved.ID, Message: err.Error()})
			return
		}
		emit(TranscriptionCompleted{ID: saved.ID, Text: text})
	})
}

func (d Deps) setArchived(s State, id string, archived bool) (State, feature.Effect) {
	item, ok := s.Items.Get(id)
	if !ok || item.Archived == archived {
		return s, feature.None()
	}
	updated := *item
	updated.Archived = archived
	next := s.Items.Clone()
	next.Update(&updated)
	s.Items = next
	saved := updated
	return s, feature.Task(func(ctx context.Context, emit func(feature.Action)) {
		if err := d.Store.SaveInboxItem(ctx, &saved); err != nil {
			emit(SaveFailed{Message: err.Error()})
		}
	})
}

// convert builds the entry from the item's transcription, attaches the
// capture media kind, persists both sides, and marks the item processed.
func (d Deps) convert(item *inbox.Item) feature.Effect {
	snapshot := *item
	return feature.Task(func(ctx context.Context, emit func(feature.Action)) {
		e := entry.New("", snapshot.Transcription)
		e.SourceInboxItemID = snapshot.ID
		if snapshot.Kind != inbox.CaptureText {
			e.Attachments = []*entry.Attachment{
				entry.NewAttachment(snapshot.Kind.AttachmentKind(), nil, ""),
			}
		}
		if err := d.Store.CreateEntry(ctx, e); err != nil {
			emit(ConvertFailed{Message: err.Error()})
			return
		}
		snapshot.MarkProcessed(e.ID)
		if err := d.Store.SaveInboxItem(ctx, &snapshot); err != nil {
			emit(ConvertFailed{Message: err.Error()})
			return
		}
		emit(Converted{Item: &snapshot, Entry: e})
	})
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	runes := []rune(text)
	if len(runes) > previewRunes {
		return string(runes[:previewRunes]) + "…"
	}
	return text
}
