// Package gallery holds the AI artwork entity.
package gallery

import (
	"time"

	"github.com/google/uuid"

	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/mood"
)

// Status tracks an artwork generation attempt. Transitions within one
// attempt are one-directional: pending/generating -> completed | failed.
// Regeneration starts a new attempt and resets the item to generating.
type Status string

const (
	StatusPending    Status = "pending"
	StatusGenerating Status = "generating"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ArtStyle selects the visual style requested from the image model.
type ArtStyle string

const (
	StyleWatercolor  ArtStyle = "watercolor"
	StyleInk         ArtStyle = "ink"
	StyleImpressions ArtStyle = "impressionist"
	StyleAbstract    ArtStyle = "abstract"
)

// Styles lists the selectable styles in display order.
func Styles() []ArtStyle {
	return []ArtStyle{StyleWatercolor, StyleInk, StyleImpressions, StyleAbstract}
}

// AspectRatio is passed through to the image model.
type AspectRatio string

const (
	RatioSquare    AspectRatio = "1:1"
	RatioPortrait  AspectRatio = "3:4"
	RatioLandscape AspectRatio = "4:3"
)

// Artwork is one generated (or generating, or failed) piece tied to an
// entry. Image bytes live in the blob store; Image may be nil when listed.
type Artwork struct {
	ID          string          `json:"id" db:"id"`
	EntryID     string          `json:"entryId" db:"entry_id"`
	EntryTitle  string          `json:"entryTitle" db:"entry_title"`
	EntryDate   entry.Timestamp `json:"entryDate" db:"entry_date"`
	Mood        *mood.Mood      `json:"mood,omitempty" db:"mood"`
	Style       ArtStyle        `json:"style" db:"style"`
	AspectRatio AspectRatio     `json:"aspectRatio" db:"aspect_ratio"`
	Status      Status          `json:"status" db:"status"`
	Image       []byte          `json:"-"`
	Error       string          `json:"error,omitempty" db:"error"`
	Created     entry.Timestamp `json:"created" db:"created_at"`
}

// Identity returns the artwork id.
func (a *Artwork) Identity() string {
	return a.ID
}

// NewArtwork creates a generating-state placeholder for e.
func NewArtwork(e *entry.Entry, style ArtStyle, ratio AspectRatio) *Artwork {
	return &Artwork{
		ID:          uuid.NewString(),
		EntryID:     e.ID,
		EntryTitle:  e.DisplayTitle(),
		EntryDate:   e.Created,
		Mood:        e.Mood,
		Style:       style,
		AspectRatio: ratio,
		Status:      StatusGenerating,
		Created:     entry.Timestamp{Time: time.Now()},
	}
}
