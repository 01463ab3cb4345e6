// Package platform declares the device-service capabilities the features
// depend on. The real bindings (system notifications, biometric prompts,
// microphones, photo libraries) live outside this process; the live
// implementations here are local stand-ins and the doubles are for tests.
package platform

import (
	"context"

	"tableflip.dev/memoir/pkg/entry"
)

// Notifier schedules the single daily journaling reminder.
type Notifier interface {
	RequestAuthorization(ctx context.Context) (bool, error)
	ScheduleDaily(ctx context.Context, hour, minute int) error
	CancelAll(ctx context.Context) error
}

// Biometric gates the journal behind a device unlock.
type Biometric interface {
	Available() bool
	Authenticate(ctx context.Context, reason string) (bool, error)
}

// Speech turns captured audio into text.
type Speech interface {
	Transcribe(ctx context.Context, sample []byte) (string, error)
}

// PhotoPicker returns a user-chosen photo as an attachment.
type PhotoPicker interface {
	Pick(ctx context.Context) (*entry.Attachment, error)
}

// Capabilities bundles the collaborators handed to features.
type Capabilities struct {
	Notifier    Notifier
	Biometric   Biometric
	Speech      Speech
	PhotoPicker PhotoPicker
}
