// Package inbox holds the quick-capture inbox entity. Captured items wait
// here until they are converted into journal entries or archived.
package inbox

import (
	"time"

	"github.com/google/uuid"

	"tableflip.dev/memoir/pkg/entry"
)

// CaptureKind describes how an inbox item was captured.
type CaptureKind string

const (
	CaptureVoice CaptureKind = "voice"
	CapturePhoto CaptureKind = "photo"
	CaptureScan  CaptureKind = "scan"
	CaptureText  CaptureKind = "text"
)

// AttachmentKind maps a capture kind to the attachment it produces on
// conversion.
func (k CaptureKind) AttachmentKind() entry.AttachmentKind {
	switch k {
	case CaptureVoice:
		return entry.AttachmentVoice
	case CapturePhoto:
		return entry.AttachmentPhoto
	case CaptureScan:
		return entry.AttachmentScan
	default:
		return entry.AttachmentFile
	}
}

// Item is a captured-but-not-yet-journaled note.
// Processed implies ProcessedEntryID was assigned at conversion time.
type Item struct {
	ID               string          `json:"id" db:"id"`
	Kind             CaptureKind     `json:"kind" db:"kind"`
	Transcription    string          `json:"transcription,omitempty" db:"transcription"`
	Preview          string          `json:"preview,omitempty" db:"preview"`
	Created          entry.Timestamp `json:"created" db:"created_at"`
	Processed        bool            `json:"processed" db:"is_processed"`
	Archived         bool            `json:"archived" db:"is_archived"`
	ProcessedEntryID string          `json:"processedEntryId,omitempty" db:"processed_entry_id"`
}

// NewItem creates an unprocessed, unarchived item captured now.
func NewItem(kind CaptureKind) *Item {
	return &Item{
		ID:      uuid.NewString(),
		Kind:    kind,
		Created: entry.Timestamp{Time: time.Now()},
	}
}

// Identity returns the item id.
func (it *Item) Identity() string {
	return it.ID
}

// MarkProcessed records the entry the item was converted into.
func (it *Item) MarkProcessed(entryID string) {
	it.Processed = true
	it.ProcessedEntryID = entryID
}
