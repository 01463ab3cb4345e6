package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/gallery"
	"tableflip.dev/memoir/pkg/inbox"
	"tableflip.dev/memoir/pkg/mood"
)

func newTestStore(t *testing.T) Persistence {
	t.Helper()
	p, err := OpenMemory(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestEntryRoundTrip(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	e := entry.New("Beach Day", "We walked along the shore")
	e.SetMood(mood.Great)
	e.Tags = []string{"travel", "family"}
	e.Attachments = []*entry.Attachment{
		entry.NewAttachment(entry.AttachmentPhoto, []byte("img-bytes"), "beach.jpg"),
	}

	if err := p.CreateEntry(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := p.GetEntry(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("entry not found after create")
	}
	if got.Title != e.Title || got.Content != e.Content {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.HasMood() || *got.Mood != mood.Great {
		t.Fatalf("mood lost in round trip")
	}
	if len(got.Tags) != 2 || got.Tags[0] != "travel" {
		t.Fatalf("tags lost: %v", got.Tags)
	}
	if len(got.Attachments) != 1 || got.Attachments[0].Kind != entry.AttachmentPhoto {
		t.Fatalf("attachments lost: %v", got.Attachments)
	}
	if !got.Created.Time.Equal(e.Created.Time) {
		t.Fatalf("created_at drifted: %v vs %v", got.Created, e.Created)
	}

	data, err := p.Blobs().Get(AttachmentKey(e.Attachments[0].ID))
	if err != nil || string(data) != "img-bytes" {
		t.Fatalf("attachment blob missing: %q, %v", data, err)
	}
}

func TestGetEntryMissIsNil(t *testing.T) {
	p := newTestStore(t)
	got, err := p.GetEntry(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing entry")
	}
}

func TestDeleteEntryIdempotent(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	e := entry.New("t", "c")
	if err := p.CreateEntry(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := p.DeleteEntry(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := p.DeleteEntry(ctx, e.ID); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if err := p.DeleteEntry(ctx, "never-there"); err != nil {
		t.Fatalf("deleting unknown id should be a no-op: %v", err)
	}
}

func TestListEntriesRange(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		e := entry.New("t", "c")
		e.Created = entry.Timestamp{Time: base.AddDate(0, 0, -i)}
		e.Updated = e.Created
		if err := p.CreateEntry(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := p.ListEntriesRange(ctx, base.AddDate(0, 0, -2), base.Add(time.Hour))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries in range, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Created.Time.After(got[i-1].Created.Time) {
			t.Fatalf("expected descending order")
		}
	}

	n, err := p.EntryCount(ctx)
	if err != nil || n != 5 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

func TestCalculateStreak(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for _, back := range []int{0, 1, 2} {
		e := entry.New("t", "c")
		e.Created = entry.Timestamp{Time: now.AddDate(0, 0, -back)}
		e.Updated = e.Created
		if err := p.CreateEntry(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	streak, err := p.CalculateStreak(ctx, now)
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 3 {
		t.Fatalf("expected streak 3, got %d", streak)
	}
}

func TestInboxRoundTripAndProcessedFlag(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	it := inbox.NewItem(inbox.CaptureVoice)
	it.Transcription = "remember the milk"
	if err := p.SaveInboxItem(ctx, it); err != nil {
		t.Fatalf("save: %v", err)
	}

	it.MarkProcessed("entry-123")
	if err := p.SaveInboxItem(ctx, it); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := p.GetInboxItem(ctx, it.ID)
	if err != nil || got == nil {
		t.Fatalf("get: %v, %v", got, err)
	}
	if !got.Processed || got.ProcessedEntryID != "entry-123" {
		t.Fatalf("processed flag lost: %+v", got)
	}
}

func TestArtworkUpsert(t *testing.T) {
	p := newTestStore(t)
	ctx := context.Background()

	e := entry.New("Sunset", "colors everywhere")
	a := gallery.NewArtwork(e, gallery.StyleWatercolor, gallery.RatioSquare)
	if err := p.SaveArtwork(ctx, a); err != nil {
		t.Fatalf("save: %v", err)
	}

	a.Status = gallery.StatusCompleted
	a.Image = []byte("png-bytes")
	if err := p.SaveArtwork(ctx, a); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	list, err := p.ListArtworks(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v, %v", list, err)
	}
	if list[0].Status != gallery.StatusCompleted {
		t.Fatalf("status not updated: %s", list[0].Status)
	}
	img, err := p.Blobs().Get(ArtworkKey(a.ID))
	if err != nil || string(img) != "png-bytes" {
		t.Fatalf("image blob missing")
	}

	if err := p.DeleteArtwork(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := p.DeleteArtwork(ctx, a.ID); err != nil {
		t.Fatalf("second delete should no-op: %v", err)
	}
}
