package insights

import (
	"fmt"
	"strings"

	"tableflip.dev/memoir/pkg/entry"
)

const (
	promptSampleEntries = 3
	promptSampleRunes   = 120
)

// BuildPrompt renders the aggregate report as a deterministic prompt for
// the narrative model. Raw entry text never leaks beyond a small bounded
// preview sample.
func BuildPrompt(r Report, sample []*entry.Entry) string {
	var b strings.Builder

	b.WriteString("You are a reflective journaling assistant. Given the aggregate statistics below, write an encouraging monthly narrative.\n")
	b.WriteString("Respond with ONLY a JSON object of the form {\"summary\": string, \"moodInsight\": string, \"patterns\": [string], \"suggestions\": [string]}.\n\n")

	fmt.Fprintf(&b, "Entries in period: %d (all time: %d)\n", r.EntryCount, r.AllTimeEntryCount)
	fmt.Fprintf(&b, "Words in period: %d, average %.1f per entry, longest %d, shortest %d\n",
		r.TotalWords, r.AverageWords, r.LongestWords, r.ShortestWords)
	fmt.Fprintf(&b, "Longest streak: %d days, current streak: %d days\n", r.LongestStreak, r.CurrentStreak)
	fmt.Fprintf(&b, "Most productive: %s, %s\n", r.MostProductiveDay, r.MostProductiveBucket)

	if r.MoodedCount > 0 {
		b.WriteString("Mood distribution:")
		for _, mc := range r.MoodHistogram {
			if mc.Count == 0 {
				continue
			}
			fmt.Fprintf(&b, " %s %.0f%%", mc.Mood, mc.Percent)
		}
		b.WriteString("\n")
	}

	if len(r.TopTags) > 0 {
		b.WriteString("Top topics:")
		for _, tc := range r.TopTags {
			fmt.Fprintf(&b, " %s(%d)", tc.Tag, tc.Count)
		}
		b.WriteString("\n")
	}

	if len(sample) > 0 {
		b.WriteString("\nA few entry previews:\n")
		n := len(sample)
		if n > promptSampleEntries {
			n = promptSampleEntries
		}
		for _, e := range sample[:n] {
			fmt.Fprintf(&b, "- %s: %s\n", e.DisplayTitle(), e.Preview(promptSampleRunes))
		}
	}

	return b.String()
}

// TitlePrompt asks for a short title suggestion for a draft.
func TitlePrompt(content string) string {
	preview := content
	if runes := []rune(preview); len(runes) > 400 {
		preview = string(runes[:400])
	}
	return "Suggest a title of at most six words for this journal entry. Respond with the title only, no quotes.\n\n" + preview
}

// ArtworkPrompt describes an entry for the image model.
func ArtworkPrompt(title, style string, moodName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "An evocative %s illustration inspired by a journal entry titled %q.", style, title)
	if moodName != "" {
		fmt.Fprintf(&b, " The overall emotional tone is %s.", moodName)
	}
	b.WriteString(" No text or lettering in the image.")
	return b.String()
}
