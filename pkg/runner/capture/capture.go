package capture

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/memoir/pkg/feature"
	fxinbox "tableflip.dev/memoir/pkg/feature/inbox"
	"tableflip.dev/memoir/pkg/inbox"
	"tableflip.dev/memoir/pkg/platform"
	"tableflip.dev/memoir/pkg/printers"
	"tableflip.dev/memoir/pkg/store"
)

// Capture records a new inbox item: quick text, or a voice sample read
// from a file and transcribed.
type Capture struct {
	Kind       inbox.CaptureKind
	Text       string
	SamplePath string
	Convert    bool

	Persistence store.Persistence
	Speech      platform.Speech
}

func (c *Capture) Do(ctx context.Context) error {
	deps := fxinbox.Deps{Store: c.Persistence, Speech: c.Speech}

	var sample []byte
	if c.Kind == inbox.CaptureVoice {
		if c.SamplePath == "" {
			return errors.New("voice capture needs --sample")
		}
		data, err := os.ReadFile(c.SamplePath)
		if err != nil {
			return fmt.Errorf("read sample: %w", err)
		}
		sample = data
	}

	s := feature.Drive(ctx, deps.Reduce, fxinbox.New(), fxinbox.Load{})
	s = feature.Drive(ctx, deps.Reduce, s, fxinbox.Capture{
		Kind:   c.Kind,
		Sample: sample,
		Text:   c.Text,
	})
	if s.Err != "" {
		return errors.New(s.Err)
	}

	if c.Convert && s.Count() > 0 {
		id := s.Items.All()[0].ID
		s = feature.Drive(ctx, deps.Reduce, s, fxinbox.Convert{ID: id})
		if s.Err != "" {
			return errors.New(s.Err)
		}
	}

	pp := printers.PrettyPrint{}
	pp.TitleWithCount("Inbox", s.Count())
	pp.InboxItems(s.Items.All()...)
	return nil
}
