// Package settings implements the settings feature: the daily reminder,
// the biometric journal lock, and JSON export.
package settings

import (
	"context"
	"path/filepath"
	"time"

	"tableflip.dev/memoir/pkg/export"
	"tableflip.dev/memoir/pkg/feature"
	"tableflip.dev/memoir/pkg/platform"
	"tableflip.dev/memoir/pkg/store"
)

const exportKey = "settings.export"

// Default reminder time.
const (
	DefaultReminderHour   = 20
	DefaultReminderMinute = 0
)

// State is the settings snapshot.
type State struct {
	ReminderEnabled bool
	ReminderHour    int
	ReminderMinute  int

	BiometricEnabled bool

	Exporting  bool
	ExportPath string

	Err string
}

// New returns the defaults: everything off, reminder slot at 20:00.
func New() State {
	return State{
		ReminderHour:   DefaultReminderHour,
		ReminderMinute: DefaultReminderMinute,
	}
}

// Action is the sealed action set for settings.
type Action interface {
	feature.Action
	isSettings()
}

// ReminderToggled turns the daily reminder on or off.
type ReminderToggled struct{ Enabled bool }

// ReminderDenied lands a rejected notification authorization. The
// toggle drops back to off without an error.
type ReminderDenied struct{}

// ReminderScheduled confirms the reminder is set.
type ReminderScheduled struct{}

// ReminderFailed reports a scheduling error.
type ReminderFailed struct{ Message string }

// ReminderTimeChanged moves the reminder slot.
type ReminderTimeChanged struct{ Hour, Minute int }

// BiometricToggled turns the journal lock on or off.
type BiometricToggled struct{ Enabled bool }

// BiometricResult lands the authentication outcome.
type BiometricResult struct {
	OK      bool
	Message string
}

// ExportTapped writes the journal export.
type ExportTapped struct{}

// Exported lands the written file's path.
type Exported struct{ Path string }

// ExportFailed reports a failed export.
type ExportFailed struct{ Message string }

func (ReminderToggled) isSettings()     {}
func (ReminderDenied) isSettings()      {}
func (ReminderScheduled) isSettings()   {}
func (ReminderFailed) isSettings()      {}
func (ReminderTimeChanged) isSettings() {}
func (BiometricToggled) isSettings()    {}
func (BiometricResult) isSettings()     {}
func (ExportTapped) isSettings()        {}
func (Exported) isSettings()            {}
func (ExportFailed) isSettings()        {}

// Deps are the settings collaborators. ExportDir is where export files
// land; Now is injectable for stable file names, nil means time.Now.
type Deps struct {
	Store     store.Persistence
	Notifier  platform.Notifier
	Biometric platform.Biometric
	ExportDir string
	Now       func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Reduce is the settings transition function.
func (d Deps) Reduce(s State, a feature.Action) (State, feature.Effect) {
	switch act := a.(type) {
	case ReminderToggled:
		if !act.Enabled {
			s.ReminderEnabled = false
			return s, feature.Task(func(ctx context.Context, emit func(feature.Action)) {
				d.Notifier.CancelAll(ctx)
			})
		}
		s.ReminderEnabled = true
		s.Err = ""
		hour, minute := s.ReminderHour, s.ReminderMinute
		return s, feature.Task(func(ctx context.Context, emit func(feature.Action)) {
			granted, err := d.Notifier.RequestAuthorization(ctx)
			if err != nil {
				emit(ReminderFailed{Message: err.Error()})
				return
			}
			if !granted {
				emit(ReminderDenied{})
				return
			}
			if err := d.Notifier.ScheduleDaily(ctx, hour, minute); err != nil {
				emit(ReminderFailed{Message: err.Error()})
				return
			}
			emit(ReminderScheduled{})
		})

	case ReminderDenied:
		s.ReminderEnabled = false
		return s, feature.None()

	case ReminderScheduled:
		return s, feature.None()

	case ReminderFailed:
		s.ReminderEnabled = false
		s.Err = act.Message
		return s, feature.None()

	case ReminderTimeChanged:
		if act.Hour < 0 || act.Hour > 23 || act.Minute < 0 || act.Minute > 59 {
			return s, feature.None()
		}
		s.ReminderHour = act.Hour
		s.ReminderMinute = act.Minute
		if !s.ReminderEnabled {
			return s, feature.None()
		}
		hour, minute := act.Hour, act.Minute
		return s, feature.Task(func(ctx context.Context, emit func(feature.Action)) {
			if err := d.Notifier.ScheduleDaily(ctx, hour, minute); err != nil {
				emit(ReminderFailed{Message: err.Error()})
			}
		})

	case BiometricToggled:
		if !act.Enabled {
			s.BiometricEnabled = false
			return s, feature.None()
		}
		if !d.Biometric.Available() {
			s.BiometricEnabled = false
			s.Err = "biometric authentication is not available"
			return s, feature.None()
		}
		s.Err = ""
		return s, feature.Task(func(ctx context.Context, emit func(feature.Action)) {
			ok, err := d.Biometric.Authenticate(ctx, "Lock your journal")
			if err != nil {
				emit(BiometricResult{OK: false, Message: err.Error()})
				return
			}
			emit(BiometricResult{OK: ok})
		})

	case BiometricResult:
		s.BiometricEnabled = act.OK
		s.Err = act.Message
		return s, feature.None()

	case ExportTapped:
		if s.Exporting {
			return s, feature.None()
		}
		s.Exporting = true
		s.Err = ""
		return s, feature.Cancellable(exportKey, func(ctx context.Context, emit func(feature.Action)) {
			entries, err := d.Store.ListEntries(ctx)
			if err != nil {
				emit(ExportFailed{Message: err.Error()})
				return
			}
			path := filepath.Join(d.ExportDir, export.DefaultFilename(d.now()))
			if err := export.WriteFile(path, entries); err != nil {
				emit(ExportFailed{Message: err.Error()})
				return
			}
			emit(Exported{Path: path})
		})

	case Exported:
		s.Exporting = false
		s.ExportPath = act.Path
		return s, feature.None()

	case ExportFailed:
		s.Exporting = false
		s.Err = act.Message
		return s, feature.None()
	}
	return s, feature.None()
}
