package remind

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/memoir/pkg/feature"
	"tableflip.dev/memoir/pkg/feature/settings"
	"tableflip.dev/memoir/pkg/platform"
	"tableflip.dev/memoir/pkg/store"
)

// Remind schedules or clears the daily journaling reminder.
type Remind struct {
	At  string
	Off bool

	Persistence store.Persistence
	Notifier    platform.Notifier
}

func (r *Remind) Do(ctx context.Context) error {
	deps := settings.Deps{
		Store:     r.Persistence,
		Notifier:  r.Notifier,
		Biometric: platform.NoBiometric{},
	}

	s := settings.New()

	if r.Off {
		s = feature.Drive(ctx, deps.Reduce, s, settings.ReminderToggled{Enabled: false})
		if s.Err != "" {
			return errors.New(s.Err)
		}
		fmt.Println("reminder off")
		return nil
	}

	if r.At != "" {
		hour, minute, err := parseClock(r.At)
		if err != nil {
			return err
		}
		s = feature.Drive(ctx, deps.Reduce, s, settings.ReminderTimeChanged{Hour: hour, Minute: minute})
	}

	s = feature.Drive(ctx, deps.Reduce, s, settings.ReminderToggled{Enabled: true})
	if s.Err != "" {
		return errors.New(s.Err)
	}
	if !s.ReminderEnabled {
		return errors.New("notification authorization was denied")
	}

	fmt.Printf("reminder set for %02d:%02d daily\n", s.ReminderHour, s.ReminderMinute)
	return nil
}

func parseClock(at string) (int, int, error) {
	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad time %q, want HH:MM", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad time %q, want HH:MM", at)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad time %q, want HH:MM", at)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", at)
	}
	return hour, minute, nil
}
