package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/gallery"
	"tableflip.dev/memoir/pkg/inbox"
	"tableflip.dev/memoir/pkg/insights"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69-f8b9-9dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Print(" none\n\n")
}

func (pp *PrettyPrint) id(id string) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	short := id
	if len(short) > 18 {
		short = short[:18]
	}
	_, _ = y.Print(short)
	_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(short)))
}

// Entries prints one line per entry: date, mood glyph, title, preview.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	t := color.New()
	f := color.New(color.Faint)

	for _, e := range entries {
		if pp.ShowID {
			pp.id(e.ID)
		}
		glyph := " "
		if e.HasMood() {
			glyph = e.Mood.Symbol()
		}
		_, _ = t.Printf("%s  %s %s", e.Created.Format("2006-01-02"), glyph, e.DisplayTitle())
		if p := e.Preview(48); p != "" && p != e.DisplayTitle() {
			_, _ = f.Printf("  %s", p)
		}
		for _, a := range e.Attachments {
			_, _ = f.Printf(" %s", a.Kind.Symbol())
		}
		_, _ = t.Println("")
	}
	_, _ = t.Println("")
}

// InboxItems prints one line per item: date, kind, state, preview.
func (pp *PrettyPrint) InboxItems(items ...*inbox.Item) {
	if len(items) == 0 {
		pp.none()
		return
	}

	t := color.New()
	f := color.New(color.Faint)
	g := color.New(color.FgGreen)

	for _, it := range items {
		if pp.ShowID {
			pp.id(it.ID)
		}
		_, _ = t.Printf("%s  %s %-6s", it.Created.Format("2006-01-02"), it.Kind.AttachmentKind().Symbol(), it.Kind)
		switch {
		case it.Processed:
			_, _ = g.Print("  journaled")
		case it.Archived:
			_, _ = f.Print("  archived")
		}
		if it.Preview != "" {
			_, _ = f.Printf("  %s", it.Preview)
		}
		_, _ = t.Println("")
	}
	_, _ = t.Println("")
}

// Artworks prints one line per piece: date, status, style, entry title.
func (pp *PrettyPrint) Artworks(items ...*gallery.Artwork) {
	if len(items) == 0 {
		pp.none()
		return
	}

	t := color.New()
	r := color.New(color.FgRed)

	for _, a := range items {
		if pp.ShowID {
			pp.id(a.ID)
		}
		_, _ = t.Printf("%s  %-13s %-10s %s", a.Created.Format("2006-01-02"), a.Style, a.Status, a.EntryTitle)
		if a.Status == gallery.StatusFailed && a.Error != "" {
			_, _ = r.Printf("  %s", a.Error)
		}
		_, _ = t.Println("")
	}
	_, _ = t.Println("")
}

// Report prints the insights report as labeled sections.
func (pp *PrettyPrint) Report(r insights.Report) {
	t := color.New()
	f := color.New(color.Faint)
	b := color.New(color.Bold)

	_, _ = b.Println("Entries")
	_, _ = t.Printf("  this window: %d (%d words, avg %.0f)\n", r.EntryCount, r.TotalWords, r.AverageWords)
	_, _ = t.Printf("  all time:    %d (%d words)\n", r.AllTimeEntryCount, r.AllTimeWords)
	_, _ = t.Printf("  streak:      %d current, %d longest\n\n", r.CurrentStreak, r.LongestStreak)

	if len(r.DailyMoods) > 0 {
		_, _ = b.Println("Mood by day")
		for _, dm := range r.DailyMoods {
			_, _ = t.Printf("  %s  %s %.1f", dm.Day.Format("2006-01-02"), dm.Class.Symbol(), dm.Average)
			_, _ = f.Printf("  (%d entries)\n", dm.Entries)
		}
		_, _ = t.Println("")
	}

	if r.MoodedCount > 0 {
		_, _ = b.Println("Mood histogram")
		for _, mc := range r.MoodHistogram {
			_, _ = t.Printf("  %-6s %3d  %5.1f%%\n", mc.Mood, mc.Count, mc.Percent)
		}
		_, _ = t.Println("")
	}

	if r.EntryCount > 0 {
		_, _ = b.Println("Habits")
		_, _ = t.Printf("  most productive day:  %s\n", r.MostProductiveDay)
		_, _ = t.Printf("  most productive time: %s\n\n", r.MostProductiveBucket)
	}

	if len(r.TopTags) > 0 {
		_, _ = b.Println("Top tags")
		for _, tc := range r.TopTags {
			_, _ = t.Printf("  %-20s %d\n", tc.Tag, tc.Count)
		}
		_, _ = t.Println("")
	}
}

// Analysis prints the AI narrative under the report.
func (pp *PrettyPrint) Analysis(a insights.Analysis) {
	t := color.New()
	b := color.New(color.Bold)

	_, _ = b.Println("Reflection")
	if a.Summary != "" {
		_, _ = t.Printf("  %s\n", a.Summary)
	}
	if a.MoodInsight != "" {
		_, _ = t.Printf("  %s\n", a.MoodInsight)
	}
	for _, p := range a.Patterns {
		_, _ = t.Printf("  • %s\n", p)
	}
	for _, s := range a.Suggestions {
		_, _ = t.Printf("  → %s\n", s)
	}
	_, _ = t.Println("")
}
