package mood

import "fmt"

// Mood is one of five ordinal emotional-valence buckets.
type Mood string

const (
	Bad   Mood = "bad"
	Low   Mood = "low"
	Okay  Mood = "okay"
	Good  Mood = "good"
	Great Mood = "great"
)

// All lists moods in ascending order of valence.
func All() []Mood {
	return []Mood{Bad, Low, Okay, Good, Great}
}

// Score is the linear numeric projection, 1 (bad) through 5 (great).
func (m Mood) Score() int {
	switch m {
	case Bad:
		return 1
	case Low:
		return 2
	case Okay:
		return 3
	case Good:
		return 4
	case Great:
		return 5
	}
	return 0
}

// Valid reports whether m is one of the five moods.
func (m Mood) Valid() bool {
	return m.Score() != 0
}

// Parse returns the mood for a name, or an error for anything else.
func Parse(s string) (Mood, error) {
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

// Symbol returns a one-rune glyph for list rendering.
func (m Mood) Symbol() string {
	switch m {
	case Bad:
		return "▂"
	case Low:
		return "▄"
	case Okay:
		return "▅"
	case Good:
		return "▇"
	case Great:
		return "█"
	}
	return " "
}

func (m Mood) String() string {
	return string(m)
}

// FromAverage maps a numeric average back to a mood class.
// The thresholds are shared by per-day classification and running-average
// reclassification; both directions must use this function.
func FromAverage(avg float64) Mood {
	switch {
	case avg >= 4.5:
		return Great
	case avg >= 3.5:
		return Good
	case avg >= 2.5:
		return Okay
	case avg >= 1.5:
		return Low
	default:
		return Bad
	}
}
