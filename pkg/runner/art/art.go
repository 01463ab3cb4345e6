package art

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/memoir/pkg/ai"
	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/feature"
	fxgallery "tableflip.dev/memoir/pkg/feature/gallery"
	"tableflip.dev/memoir/pkg/gallery"
	"tableflip.dev/memoir/pkg/printers"
	"tableflip.dev/memoir/pkg/store"
)

// Art generates a gallery piece for an entry.
type Art struct {
	EntryID string
	Style   string
	Ratio   string
	ShowID  bool

	Persistence store.Persistence
	Generator   ai.Generator
}

func (a *Art) Do(ctx context.Context) error {
	target, err := a.resolve(ctx)
	if err != nil {
		return err
	}

	deps := fxgallery.Deps{Store: a.Persistence, AI: a.Generator}
	s := feature.Drive(ctx, deps.Reduce, fxgallery.New(), fxgallery.Load{})
	if s.Err != "" {
		return errors.New(s.Err)
	}

	if a.Style != "" {
		style, err := parseStyle(a.Style)
		if err != nil {
			return err
		}
		s = feature.Drive(ctx, deps.Reduce, s, fxgallery.StyleChanged{Style: style})
	}
	if a.Ratio != "" {
		ratio, err := parseRatio(a.Ratio)
		if err != nil {
			return err
		}
		s = feature.Drive(ctx, deps.Reduce, s, fxgallery.RatioChanged{Ratio: ratio})
	}

	s = feature.Drive(ctx, deps.Reduce, s, fxgallery.Generate{Entry: target})
	if s.Err != "" {
		return errors.New(s.Err)
	}

	pp := printers.PrettyPrint{ShowID: a.ShowID}
	pp.Title("Gallery")
	pp.Artworks(s.Items.All()...)
	return nil
}

// resolve finds the entry by id, accepting a unique prefix so ids can
// be copied from truncated listings.
func (a *Art) resolve(ctx context.Context) (*entry.Entry, error) {
	id := strings.TrimSpace(a.EntryID)
	if id == "" {
		return nil, errors.New("an entry id is required")
	}
	if e, err := a.Persistence.GetEntry(ctx, id); err != nil {
		return nil, err
	} else if e != nil {
		return e, nil
	}

	all, err := a.Persistence.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	var found *entry.Entry
	for _, e := range all {
		if !strings.HasPrefix(e.ID, id) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("entry id %q is ambiguous", id)
		}
		found = e
	}
	if found == nil {
		return nil, fmt.Errorf("no entry with id %q", id)
	}
	return found, nil
}

func parseStyle(s string) (gallery.ArtStyle, error) {
	for _, style := range gallery.Styles() {
		if string(style) == strings.ToLower(strings.TrimSpace(s)) {
			return style, nil
		}
	}
	return "", fmt.Errorf("unknown style %q, want watercolor, ink, impressionist, or abstract", s)
}

func parseRatio(s string) (gallery.AspectRatio, error) {
	switch strings.TrimSpace(s) {
	case string(gallery.RatioSquare):
		return gallery.RatioSquare, nil
	case string(gallery.RatioPortrait):
		return gallery.RatioPortrait, nil
	case string(gallery.RatioLandscape):
		return gallery.RatioLandscape, nil
	}
	return "", fmt.Errorf("unknown aspect ratio %q, want 1:1, 3:4, or 4:3", s)
}
