package editor

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/memoir/pkg/ai"
	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/feature"
	"tableflip.dev/memoir/pkg/feature/inputbar"
	"tableflip.dev/memoir/pkg/mood"
	"tableflip.dev/memoir/pkg/platform"
	"tableflip.dev/memoir/pkg/store"
)

func testDeps(t *testing.T) (Deps, store.Persistence) {
	t.Helper()
	db, err := store.OpenMemory(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	caps := platform.Doubles()
	return Deps{
		Store: db,
		AI:    &ai.Scripted{Text: "A Quiet Morning"},
		Bar:   inputbar.Deps{Speech: caps.Speech, Picker: caps.PhotoPicker},
	}, db
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

func TestCanSave(t *testing.T) {
	s := NewCreate()
	if s.CanSave() {
		t.Fatalf("empty draft should not save")
	}
	s.Content = "something"
	if !s.CanSave() {
		t.Fatalf("content should enable save")
	}
	s.Saving = true
	if s.CanSave() {
		t.Fatalf("in-flight save should disable save")
	}

	s = NewCreate()
	s.Attachments = []*entry.Attachment{entry.NewAttachment(entry.AttachmentPhoto, []byte{1}, "p.png")}
	if !s.CanSave() {
		t.Fatalf("attachment alone should enable save")
	}
}

func TestCreateSavePersists(t *testing.T) {
	d, db := testDeps(t)
	s := NewCreate()
	s, _ = d.Reduce(s, ContentChanged{Text: "first entry"})
	s, _ = d.Reduce(s, MoodPicked{Mood: mood.Good})
	s, _ = d.Reduce(s, TagAdded{Tag: " travel "})

	s, eff := d.Reduce(s, SaveTapped{})
	if !s.Saving {
		t.Fatalf("save should set the flag")
	}

	var saved *entry.Entry
	for _, a := range drain(t, eff) {
		if done, ok := a.(SaveCompleted); ok {
			saved = done.Entry
		}
		s, _ = d.Reduce(s, a)
	}
	if saved == nil {
		t.Fatalf("no SaveCompleted")
	}
	if s.Saving {
		t.Fatalf("completion should clear the flag")
	}
	if saved.Title != "Untitled" {
		t.Fatalf("blank title should be saved as Untitled, got %q", saved.Title)
	}
	if len(saved.Tags) != 1 || saved.Tags[0] != "Travel" {
		t.Fatalf("tags = %v", saved.Tags)
	}

	got, err := db.GetEntry(context.Background(), saved.ID)
	if err != nil || got == nil {
		t.Fatalf("persisted entry missing: %v", err)
	}
	if got.Title != "Untitled" {
		t.Fatalf("persisted title = %q, want Untitled", got.Title)
	}
	if got.Mood == nil || *got.Mood != mood.Good {
		t.Fatalf("mood not persisted")
	}
}

func TestCreateSavePrefersSuggestedTitle(t *testing.T) {
	d, db := testDeps(t)
	s := NewCreate()
	s, _ = d.Reduce(s, ContentChanged{Text: "walked along the river before work"})
	s, _ = d.Reduce(s, TitleSuggested{Text: "A Quiet Morning"})

	s, eff := d.Reduce(s, SaveTapped{})
	var saved *entry.Entry
	for _, a := range drain(t, eff) {
		if done, ok := a.(SaveCompleted); ok {
			saved = done.Entry
		}
		s, _ = d.Reduce(s, a)
	}
	if saved == nil {
		t.Fatalf("no SaveCompleted")
	}
	if saved.Title != "A Quiet Morning" {
		t.Fatalf("blank title should take the suggestion, got %q", saved.Title)
	}

	got, _ := db.GetEntry(context.Background(), saved.ID)
	if got == nil || got.Title != "A Quiet Morning" {
		t.Fatalf("persisted title wrong: %+v", got)
	}
}

func TestEditSaveUpdatesInPlace(t *testing.T) {
	d, db := testDeps(t)
	orig := entry.New("Before", "old body")
	if err := db.CreateEntry(context.Background(), orig); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewEdit(orig)
	s, _ = d.Reduce(s, TitleChanged{Text: "After"})
	s, eff := d.Reduce(s, SaveTapped{})
	for _, a := range drain(t, eff) {
		s, _ = d.Reduce(s, a)
	}

	got, _ := db.GetEntry(context.Background(), orig.ID)
	if got == nil || got.Title != "After" {
		t.Fatalf("edit did not persist: %+v", got)
	}
	if got.Content != "old body" {
		t.Fatalf("content should be untouched")
	}
}

func TestEditSaveMissingEntryDismissesSilently(t *testing.T) {
	d, _ := testDeps(t)
	ghost := entry.New("gone", "gone")

	s := NewEdit(ghost)
	s, eff := d.Reduce(s, SaveTapped{})

	var completed *SaveCompleted
	for _, a := range drain(t, eff) {
		if done, ok := a.(SaveCompleted); ok {
			completed = &done
		}
		s, _ = d.Reduce(s, a)
	}
	if completed == nil || completed.Entry != nil {
		t.Fatalf("missing target should complete with a nil entry")
	}
	if s.Err != "" || s.Saving {
		t.Fatalf("missing target should not surface an error: %+v", s)
	}
}

func TestDoubleSaveGuarded(t *testing.T) {
	d, _ := testDeps(t)
	s := NewCreate()
	s.Content = "body"
	s, _ = d.Reduce(s, SaveTapped{})
	_, eff := d.Reduce(s, SaveTapped{})
	if !feature.IsNone(eff) {
		t.Fatalf("second save while in flight should be a no-op")
	}
}

func TestTagAddedDedupes(t *testing.T) {
	d, _ := testDeps(t)
	s := NewCreate()
	s, _ = d.Reduce(s, TagAdded{Tag: "travel"})
	s, _ = d.Reduce(s, TagAdded{Tag: "TRAVEL"})
	s, _ = d.Reduce(s, TagAdded{Tag: "  "})
	if len(s.Tags) != 1 || s.Tags[0] != "Travel" {
		t.Fatalf("tags = %v", s.Tags)
	}
	s, _ = d.Reduce(s, TagRemoved{Tag: "Travel"})
	if len(s.Tags) != 0 {
		t.Fatalf("remove failed: %v", s.Tags)
	}
}

func TestSuggestTitle(t *testing.T) {
	d, _ := testDeps(t)
	s := NewCreate()

	_, eff := d.Reduce(s, SuggestTitleTapped{})
	if !feature.IsNone(eff) {
		t.Fatalf("empty content should not call the model")
	}

	s.Content = "walked along the river before work"
	s, eff = d.Reduce(s, SuggestTitleTapped{})
	for _, a := range drain(t, eff) {
		s, _ = d.Reduce(s, a)
	}
	if s.AITitle != "A Quiet Morning" {
		t.Fatalf("ai title = %q", s.AITitle)
	}
}

func TestBarResultsFlowIntoDraft(t *testing.T) {
	d, _ := testDeps(t)
	s := NewCreate()
	s.Content = "typed text"

	s, _ = d.Reduce(s, Bar{Action: inputbar.Transcribed{Text: "spoken text"}})
	if s.Content != "typed text\n\nspoken text" {
		t.Fatalf("content = %q", s.Content)
	}

	att := entry.NewAttachment(entry.AttachmentScan, []byte{1, 2}, "doc.png")
	s, _ = d.Reduce(s, Bar{Action: inputbar.Picked{Attachment: att}})
	if len(s.Attachments) != 1 || s.Attachments[0].Kind != entry.AttachmentScan {
		t.Fatalf("attachment not collected: %+v", s.Attachments)
	}
}

func TestBarEffectsAreRewrapped(t *testing.T) {
	d, _ := testDeps(t)
	s := NewCreate()
	s, _ = d.Reduce(s, Bar{Action: inputbar.RecordTapped{}})
	if !s.Bar.Recording {
		t.Fatalf("child state not applied")
	}

	s, eff := d.Reduce(s, Bar{Action: inputbar.StopTapped{Sample: []byte("hi")}})
	for _, a := range drain(t, eff) {
		if _, ok := a.(Bar); !ok {
			t.Fatalf("child effect leaked an unwrapped action: %T", a)
		}
		s, _ = d.Reduce(s, a)
	}
	if s.Content == "" {
		t.Fatalf("transcription should land in the draft")
	}
}
