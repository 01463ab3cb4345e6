package add

import (
	"context"
	"errors"

	"tableflip.dev/memoir/pkg/ai"
	"tableflip.dev/memoir/pkg/feature"
	"tableflip.dev/memoir/pkg/feature/editor"
	"tableflip.dev/memoir/pkg/feature/inputbar"
	"tableflip.dev/memoir/pkg/mood"
	"tableflip.dev/memoir/pkg/platform"
	"tableflip.dev/memoir/pkg/printers"
	"tableflip.dev/memoir/pkg/store"
)

// Add writes a quick text entry straight from the command line.
type Add struct {
	Title   string
	Message string
	Mood    string
	Tags    []string

	Persistence store.Persistence
	Generator   ai.Generator
	Caps        platform.Capabilities
}

func (a *Add) Do(ctx context.Context) error {
	deps := editor.Deps{
		Store: a.Persistence,
		AI:    a.Generator,
		Bar:   inputbar.Deps{Speech: a.Caps.Speech, Picker: a.Caps.PhotoPicker},
	}

	s := editor.NewCreate()
	s = feature.Drive(ctx, deps.Reduce, s, editor.TitleChanged{Text: a.Title})
	s = feature.Drive(ctx, deps.Reduce, s, editor.ContentChanged{Text: a.Message})
	if a.Mood != "" {
		m, err := mood.Parse(a.Mood)
		if err != nil {
			return err
		}
		s = feature.Drive(ctx, deps.Reduce, s, editor.MoodPicked{Mood: m})
	}
	for _, tag := range a.Tags {
		s = feature.Drive(ctx, deps.Reduce, s, editor.TagAdded{Tag: tag})
	}

	if !s.CanSave() {
		return errors.New("nothing to save, give the entry a title or some text")
	}
	s = feature.Drive(ctx, deps.Reduce, s, editor.SaveTapped{})
	if s.Err != "" {
		return errors.New(s.Err)
	}

	entries, err := a.Persistence.ListEntries(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.TitleWithCount("Journal", len(entries))
	pp.Entries(entries...)
	return nil
}
