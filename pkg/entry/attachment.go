package entry

import "github.com/google/uuid"

// AttachmentKind describes what kind of media an attachment holds.
type AttachmentKind string

const (
	AttachmentVoice AttachmentKind = "voice"
	AttachmentPhoto AttachmentKind = "photo"
	AttachmentScan  AttachmentKind = "scan"
	AttachmentFile  AttachmentKind = "file"
)

// Symbol returns the glyph used when listing attachments.
func (k AttachmentKind) Symbol() string {
	switch k {
	case AttachmentVoice:
		return "♫"
	case AttachmentPhoto:
		return "◉"
	case AttachmentScan:
		return "▤"
	default:
		return "•"
	}
}

// Attachment is media attached to an entry. It is immutable after
// creation and cascade-deletes with its owning entry. Data and Thumbnail
// may be unloaded when the entry came from the store; the blob keys on the
// persistence side are derived from the attachment id.
type Attachment struct {
	ID        string         `json:"id" db:"id"`
	Kind      AttachmentKind `json:"kind" db:"kind"`
	Data      []byte         `json:"-"`
	Thumbnail []byte         `json:"-"`
	Filename  string         `json:"filename,omitempty" db:"filename"`
}

// NewAttachment creates an attachment with a fresh id.
func NewAttachment(kind AttachmentKind, data []byte, filename string) *Attachment {
	return &Attachment{
		ID:       uuid.NewString(),
		Kind:     kind,
		Data:     data,
		Filename: filename,
	}
}
