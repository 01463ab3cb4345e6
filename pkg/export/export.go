package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"tableflip.dev/memoir/pkg/entry"
)

// Record is the public shape of an exported entry. Attachments and AI
// fields stay out of the export on purpose.
type Record struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Mood      string   `json:"mood"`
	Tags      []string `json:"tags"`
	WordCount int      `json:"wordCount"`
}

func toRecord(e *entry.Entry) Record {
	r := Record{
		ID:        e.ID,
		Title:     e.DisplayTitle(),
		Content:   e.Content,
		CreatedAt: e.Created.UTC().Format(time.RFC3339),
		UpdatedAt: e.Updated.UTC().Format(time.RFC3339),
		Tags:      e.Tags,
		WordCount: e.WordCount(),
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if e.Mood != nil {
		r.Mood = string(*e.Mood)
	}
	return r
}

// Write renders entries as a pretty printed JSON array.
func Write(w io.Writer, entries []*entry.Entry) error {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, toRecord(e))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode export > %w", err)
	}
	return nil
}

// WriteFile writes the export through a temp file in the target
// directory and renames it into place.
func WriteFile(path string, entries []*entry.Entry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("export dir > %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".memoir-export-*.json")
	if err != nil {
		return fmt.Errorf("export temp > %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, entries); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export close > %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export rename > %w", err)
	}
	return nil
}

// DefaultFilename stamps the export with the day it was taken.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("memoir-export-%s.json", now.Format("2006-01-02"))
}
