package art

import (
	"context"
	"strings"
	"testing"

	"tableflip.dev/memoir/pkg/ai"
	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/gallery"
	"tableflip.dev/memoir/pkg/store"
)

func testStore(t *testing.T, titles ...string) (store.Persistence, []*entry.Entry) {
	t.Helper()
	db, err := store.OpenMemory(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	var seeded []*entry.Entry
	for _, title := range titles {
		e := entry.New(title, "body")
		if err := db.CreateEntry(context.Background(), e); err != nil {
			t.Fatalf("seed: %v", err)
		}
		seeded = append(seeded, e)
	}
	return db, seeded
}

func TestDoGeneratesArtwork(t *testing.T) {
	db, seeded := testStore(t, "Harbor walk")
	a := Art{
		EntryID:     seeded[0].ID,
		Style:       "ink",
		Ratio:       "3:4",
		Persistence: db,
		Generator:   &ai.Scripted{Image: []byte{0x89, 0x50}},
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	items, err := db.ListArtworks(context.Background())
	if err != nil || len(items) != 1 {
		t.Fatalf("artworks = %d, %v", len(items), err)
	}
	art := items[0]
	if art.Status != gallery.StatusCompleted {
		t.Fatalf("status = %s", art.Status)
	}
	if art.Style != gallery.StyleInk || art.AspectRatio != gallery.RatioPortrait {
		t.Fatalf("style/ratio not applied: %+v", art)
	}
	if art.EntryID != seeded[0].ID {
		t.Fatalf("artwork not tied to the entry")
	}
}

func TestResolveAcceptsUniquePrefix(t *testing.T) {
	db, seeded := testStore(t, "Only one")
	a := Art{
		EntryID:     seeded[0].ID[:8],
		Persistence: db,
		Generator:   &ai.Scripted{Image: []byte{1}},
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	items, _ := db.ListArtworks(context.Background())
	if len(items) != 1 {
		t.Fatalf("prefix lookup did not generate")
	}
}

func TestResolveRejectsUnknownID(t *testing.T) {
	db, _ := testStore(t, "Here")
	a := Art{
		EntryID:     "nope",
		Persistence: db,
		Generator:   &ai.Scripted{},
	}
	err := a.Do(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no entry") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseStyleAndRatio(t *testing.T) {
	if _, err := parseStyle("cubist"); err == nil {
		t.Fatalf("unknown style should error")
	}
	if got, err := parseStyle(" Watercolor "); err != nil || got != gallery.StyleWatercolor {
		t.Fatalf("style = %v %v", got, err)
	}
	if _, err := parseRatio("16:9"); err == nil {
		t.Fatalf("unknown ratio should error")
	}
}
