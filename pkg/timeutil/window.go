package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Window is a half-open [Start, End) time range. A zero Start with a
// nonzero End means "everything up to End".
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && !t.Before(w.End) {
		return false
	}
	return true
}

// All reports whether the window is unbounded.
func (w Window) All() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// ResolveWindow turns a window name or compact duration (see ParseWindow)
// into a concrete window ending just after now. Recognized names: "all",
// "week" (trailing 7 days), "month" (trailing 30 days).
func ResolveWindow(name string, now time.Time) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return Window{}, nil
	case "week":
		name = "7d"
	case "month":
		name = "30d"
	}
	d, _, err := ParseWindow(name)
	if err != nil {
		return Window{}, fmt.Errorf("resolve window %q: %w", name, err)
	}
	return Window{Start: now.Add(-d), End: now.Add(time.Second)}, nil
}
