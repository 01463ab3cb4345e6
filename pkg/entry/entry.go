package entry

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/memoir/pkg/mood"
)

// Entry is a single journal entry.
type Entry struct {
	ID                string        `json:"id" db:"id"`
	Title             string        `json:"title" db:"title"`
	Content           string        `json:"content" db:"content"`
	Created           Timestamp     `json:"created" db:"created_at"`
	Updated           Timestamp     `json:"updated" db:"updated_at"`
	Mood              *mood.Mood    `json:"mood,omitempty" db:"mood"`
	Tags              []string      `json:"tags,omitempty"`
	Attachments       []*Attachment `json:"attachments,omitempty"`
	AIGeneratedTitle  string        `json:"aiGeneratedTitle,omitempty" db:"ai_title"`
	AISummary         string        `json:"aiSummary,omitempty" db:"ai_summary"`
	Synced            bool          `json:"synced" db:"is_synced"`
	SourceInboxItemID string        `json:"sourceInboxItemId,omitempty" db:"source_inbox_item_id"`
}

// New creates an entry with a fresh id and both timestamps set to now.
func New(title, content string) *Entry {
	now := time.Now()
	return &Entry{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Created: Timestamp{Time: now},
		Updated: Timestamp{Time: now},
	}
}

// Identity returns the entry id.
func (e *Entry) Identity() string {
	return e.ID
}

// Touch bumps Updated, keeping it at or after Created.
func (e *Entry) Touch() {
	now := time.Now()
	if now.Before(e.Created.Time) {
		now = e.Created.Time
	}
	e.Updated = Timestamp{Time: now}
}

// WordCount counts whitespace-separated words in the content.
func (e *Entry) WordCount() int {
	return len(strings.Fields(e.Content))
}

// DisplayTitle is the user title, falling back to the AI suggestion and
// then to "Untitled".
func (e *Entry) DisplayTitle() string {
	if t := strings.TrimSpace(e.Title); t != "" {
		return t
	}
	if t := strings.TrimSpace(e.AIGeneratedTitle); t != "" {
		return t
	}
	return "Untitled"
}

// Preview returns the first line of content, truncated to max runes.
func (e *Entry) Preview(max int) string {
	line := e.Content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	runes := []rune(line)
	if max > 0 && len(runes) > max {
		return strings.TrimRight(string(runes[:max]), " ") + "…"
	}
	return line
}

// HasMood reports whether a mood was tagged.
func (e *Entry) HasMood() bool {
	return e.Mood != nil && e.Mood.Valid()
}

// SetMood tags the entry with m. An invalid mood clears the tag.
func (e *Entry) SetMood(m mood.Mood) {
	if !m.Valid() {
		e.Mood = nil
		return
	}
	e.Mood = &m
}

// Matches reports whether q appears in the title, content, or any tag,
// ignoring case. An empty query matches everything.
func (e *Entry) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Content), q) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
