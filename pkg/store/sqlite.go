package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/gallery"
	"tableflip.dev/memoir/pkg/inbox"
	"tableflip.dev/memoir/pkg/mood"
	"tableflip.dev/memoir/pkg/timeutil"
)

// Persistence is the storage contract consumed by features. All not-found
// reads return nil values and deletes are delete-if-exists; concurrent
// writers deleting overlapping ids stay idempotent.
type Persistence interface {
	CreateEntry(ctx context.Context, e *entry.Entry) error
	UpdateEntry(ctx context.Context, e *entry.Entry) error
	DeleteEntry(ctx context.Context, id string) error
	GetEntry(ctx context.Context, id string) (*entry.Entry, error)
	ListEntries(ctx context.Context) ([]*entry.Entry, error)
	ListEntriesRange(ctx context.Context, start, end time.Time) ([]*entry.Entry, error)
	EntryCount(ctx context.Context) (int, error)
	CalculateStreak(ctx context.Context, now time.Time) (int, error)

	SaveInboxItem(ctx context.Context, it *inbox.Item) error
	DeleteInboxItem(ctx context.Context, id string) error
	GetInboxItem(ctx context.Context, id string) (*inbox.Item, error)
	ListInboxItems(ctx context.Context) ([]*inbox.Item, error)

	SaveArtwork(ctx context.Context, a *gallery.Artwork) error
	DeleteArtwork(ctx context.Context, id string) error
	ListArtworks(ctx context.Context) ([]*gallery.Artwork, error)

	Blobs() *BlobStore
	Close() error
}

// Open connects to the configured SQLite database, applies migrations,
// and attaches the blob store.
func Open(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if err := EnsureDirs(cfg); err != nil {
		return nil, fmt.Errorf("store: ensure dirs: %w", err)
	}

	db, err := sqlx.Connect("sqlite", cfg.DatabasePath()+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent effect goroutines.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &sqliteStore{db: db, blobs: NewBlobStore(cfg.BlobPath())}, nil
}

// OpenMemory opens a throwaway in-memory database rooted at dir for blobs.
// Used by tests and the deterministic capability doubles.
func OpenMemory(blobDir string) (Persistence, error) {
	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("store: open memory database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db, blobs: NewBlobStore(blobDir)}, nil
}

type sqliteStore struct {
	db    *sqlx.DB
	blobs *BlobStore
}

func (s *sqliteStore) Blobs() *BlobStore { return s.blobs }

func (s *sqliteStore) Close() error { return s.db.Close() }

type entryRow struct {
	ID                string         `db:"id"`
	Title             string         `db:"title"`
	Content           string         `db:"content"`
	CreatedAt         string         `db:"created_at"`
	UpdatedAt         string         `db:"updated_at"`
	Mood              sql.NullString `db:"mood"`
	Tags              string         `db:"tags"`
	AITitle           string         `db:"ai_title"`
	AISummary         string         `db:"ai_summary"`
	IsSynced          bool           `db:"is_synced"`
	SourceInboxItemID sql.NullString `db:"source_inbox_item_id"`
}

func toEntryRow(e *entry.Entry) (entryRow, error) {
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return entryRow{}, fmt.Errorf("store: marshal tags: %w", err)
	}
	row := entryRow{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: entry.FormatTime(e.Created.Time),
		UpdatedAt: entry.FormatTime(e.Updated.Time),
		Tags:      string(tags),
		AITitle:   e.AIGeneratedTitle,
		AISummary: e.AISummary,
		IsSynced:  e.Synced,
	}
	if e.HasMood() {
		row.Mood = sql.NullString{String: e.Mood.String(), Valid: true}
	}
	if e.SourceInboxItemID != "" {
		row.SourceInboxItemID = sql.NullString{String: e.SourceInboxItemID, Valid: true}
	}
	return row, nil
}

func (r entryRow) toEntry() (*entry.Entry, error) {
	created, err := parseStamp(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: entry %s created_at: %w", r.ID, err)
	}
	updated, err := parseStamp(r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: entry %s updated_at: %w", r.ID, err)
	}
	e := &entry.Entry{
		ID:               r.ID,
		Title:            r.Title,
		Content:          r.Content,
		Created:          entry.Timestamp{Time: created},
		Updated:          entry.Timestamp{Time: updated},
		AIGeneratedTitle: r.AITitle,
		AISummary:        r.AISummary,
		Synced:           r.IsSynced,
	}
	if r.Mood.Valid {
		if m, err := mood.Parse(r.Mood.String); err == nil {
			e.Mood = &m
		}
	}
	if r.SourceInboxItemID.Valid {
		e.SourceInboxItemID = r.SourceInboxItemID.String
	}
	if r.Tags != "" {
		if err := json.Unmarshal([]byte(r.Tags), &e.Tags); err != nil {
			return nil, fmt.Errorf("store: entry %s tags: %w", r.ID, err)
		}
	}
	return e, nil
}

func parseStamp(v string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, v)
}

const entryColumns = `id, title, content, created_at, updated_at, mood, tags, ai_title, ai_summary, is_synced, source_inbox_item_id`

func (s *sqliteStore) CreateEntry(ctx context.Context, e *entry.Entry) error {
	row, err := toEntryRow(e)
	if err != nil {
		return err
	}
	_, err = s.db.NamedExecContext(ctx, `INSERT INTO entries (`+entryColumns+`)
		VALUES (:id, :title, :content, :created_at, :updated_at, :mood, :tags, :ai_title, :ai_summary, :is_synced, :source_inbox_item_id)`, row)
	if err != nil {
		return fmt.Errorf("store: create entry: %w", err)
	}
	if err := s.saveAttachments(ctx, e); err != nil {
		return err
	}
	slog.Debug("entry created", "id", e.ID)
	return nil
}

func (s *sqliteStore) UpdateEntry(ctx context.Context, e *entry.Entry) error {
	row, err := toEntryRow(e)
	if err != nil {
		return err
	}
	_, err = s.db.NamedExecContext(ctx, `UPDATE entries SET
		title = :title, content = :content, created_at = :created_at,
		updated_at = :updated_at, mood = :mood, tags = :tags,
		ai_title = :ai_title, ai_summary = :ai_summary,
		is_synced = :is_synced, source_inbox_item_id = :source_inbox_item_id
		WHERE id = :id`, row)
	if err != nil {
		return fmt.Errorf("store: update entry: %w", err)
	}
	return s.saveAttachments(ctx, e)
}

func (s *sqliteStore) saveAttachments(ctx context.Context, e *entry.Entry) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attachments WHERE entry_id = ?`, e.ID); err != nil {
		return fmt.Errorf("store: clear attachments: %w", err)
	}
	for _, a := range e.Attachments {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO attachments (id, entry_id, kind, filename) VALUES (?, ?, ?, ?)`,
			a.ID, e.ID, string(a.Kind), a.Filename); err != nil {
			return fmt.Errorf("store: insert attachment: %w", err)
		}
		if len(a.Data) > 0 {
			if err := s.blobs.Put(AttachmentKey(a.ID), a.Data); err != nil {
				return err
			}
		}
		if len(a.Thumbnail) > 0 {
			if err := s.blobs.Put(ThumbnailKey(a.ID), a.Thumbnail); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *sqliteStore) DeleteEntry(ctx context.Context, id string) error {
	var attIDs []string
	if err := s.db.SelectContext(ctx, &attIDs, `SELECT id FROM attachments WHERE entry_id = ?`, id); err != nil {
		return fmt.Errorf("store: list attachments: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete entry: %w", err)
	}
	for _, attID := range attIDs {
		if err := s.blobs.Delete(AttachmentKey(attID)); err != nil {
			return err
		}
		if err := s.blobs.Delete(ThumbnailKey(attID)); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteStore) GetEntry(ctx context.Context, id string) (*entry.Entry, error) {
	var row entryRow
	err := s.db.GetContext(ctx, &row, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get entry: %w", err)
	}
	e, err := row.toEntry()
	if err != nil {
		return nil, err
	}
	if err := s.loadAttachments(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

type attachmentRow struct {
	ID       string `db:"id"`
	EntryID  string `db:"entry_id"`
	Kind     string `db:"kind"`
	Filename string `db:"filename"`
}

func (s *sqliteStore) loadAttachments(ctx context.Context, e *entry.Entry) error {
	var rows []attachmentRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, entry_id, kind, filename FROM attachments WHERE entry_id = ? ORDER BY rowid`, e.ID); err != nil {
		return fmt.Errorf("store: load attachments: %w", err)
	}
	for _, r := range rows {
		e.Attachments = append(e.Attachments, &entry.Attachment{
			ID:       r.ID,
			Kind:     entry.AttachmentKind(r.Kind),
			Filename: r.Filename,
		})
	}
	return nil
}

func (s *sqliteStore) ListEntries(ctx context.Context) ([]*entry.Entry, error) {
	return s.listEntries(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY created_at DESC`)
}

func (s *sqliteStore) ListEntriesRange(ctx context.Context, start, end time.Time) ([]*entry.Entry, error) {
	return s.listEntries(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE created_at >= ? AND created_at < ? ORDER BY created_at DESC`,
		entry.FormatTime(start), entry.FormatTime(end))
}

func (s *sqliteStore) listEntries(ctx context.Context, query string, args ...any) ([]*entry.Entry, error) {
	var rows []entryRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("store: list entries: %w", err)
	}
	out := make([]*entry.Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		if err := s.loadAttachments(ctx, e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *sqliteStore) EntryCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM entries`); err != nil {
		return 0, fmt.Errorf("store: entry count: %w", err)
	}
	return n, nil
}

func (s *sqliteStore) CalculateStreak(ctx context.Context, now time.Time) (int, error) {
	var stamps []string
	if err := s.db.SelectContext(ctx, &stamps, `SELECT created_at FROM entries`); err != nil {
		return 0, fmt.Errorf("store: streak: %w", err)
	}
	times := make([]time.Time, 0, len(stamps))
	for _, v := range stamps {
		t, err := parseStamp(v)
		if err != nil {
			continue
		}
		times = append(times, t)
	}
	_, current := timeutil.Streaks(times, now)
	return current, nil
}

type inboxRow struct {
	ID               string         `db:"id"`
	Kind             string         `db:"kind"`
	Transcription    string         `db:"transcription"`
	Preview          string         `db:"preview"`
	CreatedAt        string         `db:"created_at"`
	IsProcessed      bool           `db:"is_processed"`
	IsArchived       bool           `db:"is_archived"`
	ProcessedEntryID sql.NullString `db:"processed_entry_id"`
}

func (r inboxRow) toItem() (*inbox.Item, error) {
	created, err := parseStamp(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: inbox item %s created_at: %w", r.ID, err)
	}
	it := &inbox.Item{
		ID:            r.ID,
		Kind:          inbox.CaptureKind(r.Kind),
		Transcription: r.Transcription,
		Preview:       r.Preview,
		Created:       entry.Timestamp{Time: created},
		Processed:     r.IsProcessed,
		Archived:      r.IsArchived,
	}
	if r.ProcessedEntryID.Valid {
		it.ProcessedEntryID = r.ProcessedEntryID.String
	}
	return it, nil
}

func (s *sqliteStore) SaveInboxItem(ctx context.Context, it *inbox.Item) error {
	row := inboxRow{
		ID:            it.ID,
		Kind:          string(it.Kind),
		Transcription: it.Transcription,
		Preview:       it.Preview,
		CreatedAt:     entry.FormatTime(it.Created.Time),
		IsProcessed:   it.Processed,
		IsArchived:    it.Archived,
	}
	if it.ProcessedEntryID != "" {
		row.ProcessedEntryID = sql.NullString{String: it.ProcessedEntryID, Valid: true}
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO inbox_items
		(id, kind, transcription, preview, created_at, is_processed, is_archived, processed_entry_id)
		VALUES (:id, :kind, :transcription, :preview, :created_at, :is_processed, :is_archived, :processed_entry_id)
		ON CONFLICT (id) DO UPDATE SET
			transcription = excluded.transcription,
			preview = excluded.preview,
			is_processed = excluded.is_processed,
			is_archived = excluded.is_archived,
			processed_entry_id = excluded.processed_entry_id`, row)
	if err != nil {
		return fmt.Errorf("store: save inbox item: %w", err)
	}
	return nil
}

func (s *sqliteStore) DeleteInboxItem(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM inbox_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete inbox item: %w", err)
	}
	return s.blobs.Delete(AttachmentKey(id))
}

func (s *sqliteStore) GetInboxItem(ctx context.Context, id string) (*inbox.Item, error) {
	var row inboxRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM inbox_items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get inbox item: %w", err)
	}
	return row.toItem()
}

func (s *sqliteStore) ListInboxItems(ctx context.Context) ([]*inbox.Item, error) {
	var rows []inboxRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM inbox_items ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("store: list inbox items: %w", err)
	}
	out := make([]*inbox.Item, 0, len(rows))
	for _, r := range rows {
		it, err := r.toItem()
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

type artworkRow struct {
	ID          string         `db:"id"`
	EntryID     string         `db:"entry_id"`
	EntryTitle  string         `db:"entry_title"`
	EntryDate   string         `db:"entry_date"`
	Mood        sql.NullString `db:"mood"`
	Style       string         `db:"style"`
	AspectRatio string         `db:"aspect_ratio"`
	Status      string         `db:"status"`
	Error       string         `db:"error"`
	CreatedAt   string         `db:"created_at"`
}

func (r artworkRow) toArtwork() (*gallery.Artwork, error) {
	date, err := parseStamp(r.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("store: artwork %s entry_date: %w", r.ID, err)
	}
	created, err := parseStamp(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: artwork %s created_at: %w", r.ID, err)
	}
	a := &gallery.Artwork{
		ID:          r.ID,
		EntryID:     r.EntryID,
		EntryTitle:  r.EntryTitle,
		EntryDate:   entry.Timestamp{Time: date},
		Style:       gallery.ArtStyle(r.Style),
		AspectRatio: gallery.AspectRatio(r.AspectRatio),
		Status:      gallery.Status(r.Status),
		Error:       r.Error,
		Created:     entry.Timestamp{Time: created},
	}
	if r.Mood.Valid {
		if m, err := mood.Parse(r.Mood.String); err == nil {
			a.Mood = &m
		}
	}
	return a, nil
}

func (s *sqliteStore) SaveArtwork(ctx context.Context, a *gallery.Artwork) error {
	row := artworkRow{
		ID:          a.ID,
		EntryID:     a.EntryID,
		EntryTitle:  a.EntryTitle,
		EntryDate:   entry.FormatTime(a.EntryDate.Time),
		Style:       string(a.Style),
		AspectRatio: string(a.AspectRatio),
		Status:      string(a.Status),
		Error:       a.Error,
		CreatedAt:   entry.FormatTime(a.Created.Time),
	}
	if a.Mood != nil && a.Mood.Valid() {
		row.Mood = sql.NullString{String: a.Mood.String(), Valid: true}
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO artworks
		(id, entry_id, entry_title, entry_date, mood, style, aspect_ratio, status, error, created_at)
		VALUES (:id, :entry_id, :entry_title, :entry_date, :mood, :style, :aspect_ratio, :status, :error, :created_at)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			error = excluded.error,
			style = excluded.style,
			aspect_ratio = excluded.aspect_ratio`, row)
	if err != nil {
		return fmt.Errorf("store: save artwork: %w", err)
	}
	if len(a.Image) > 0 {
		return s.blobs.Put(ArtworkKey(a.ID), a.Image)
	}
	return nil
}

func (s *sqliteStore) DeleteArtwork(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM artworks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete artwork: %w", err)
	}
	return s.blobs.Delete(ArtworkKey(id))
}

func (s *sqliteStore) ListArtworks(ctx context.Context) ([]*gallery.Artwork, error) {
	var rows []artworkRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM artworks ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("store: list artworks: %w", err)
	}
	out := make([]*gallery.Artwork, 0, len(rows))
	for _, r := range rows {
		a, err := r.toArtwork()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
