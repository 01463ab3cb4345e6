package get

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/mood"
	"tableflip.dev/memoir/pkg/printers"
	"tableflip.dev/memoir/pkg/store"
	"tableflip.dev/memoir/pkg/timeutil"
)

// Get lists entries, inbox items, or artworks.
type Get struct {
	What   string
	Query  string
	Mood   string
	Window string
	ShowID bool
	Table  bool

	Persistence store.Persistence
}

func (g *Get) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: g.ShowID}

	switch g.What {
	case "", "entries":
		return g.entries(ctx, &pp)
	case "inbox":
		items, err := g.Persistence.ListInboxItems(ctx)
		if err != nil {
			return err
		}
		pp.Title("Inbox")
		pp.InboxItems(items...)
		return nil
	case "artworks":
		items, err := g.Persistence.ListArtworks(ctx)
		if err != nil {
			return err
		}
		pp.Title("Gallery")
		pp.Artworks(items...)
		return nil
	}
	return fmt.Errorf("unknown resource %q, want entries, inbox, or artworks", g.What)
}

func (g *Get) entries(ctx context.Context, pp *printers.PrettyPrint) error {
	now := time.Now()
	w, err := timeutil.ResolveWindow(g.Window, now)
	if err != nil {
		return err
	}

	var moodFilter mood.Mood
	if g.Mood != "" {
		if moodFilter, err = mood.Parse(g.Mood); err != nil {
			return err
		}
	}

	all, err := g.Persistence.ListEntries(ctx)
	if err != nil {
		return err
	}

	kept := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if !w.Contains(e.Created.Time) {
			continue
		}
		if moodFilter != "" && (e.Mood == nil || *e.Mood != moodFilter) {
			continue
		}
		if !e.Matches(g.Query) {
			continue
		}
		kept = append(kept, e)
	}

	pp.TitleWithCount("Journal", len(kept))
	if g.Table {
		entry.PrettyPrintEntries(kept...)
		return nil
	}
	pp.Entries(kept...)
	return nil
}
