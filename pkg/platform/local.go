package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tableflip.dev/memoir/pkg/entry"
)

// LocalNotifier persists the reminder schedule to a state file so a cron
// or launchd wrapper can pick it up. It stands in for a system
// notification center.
type LocalNotifier struct {
	Path string
}

var _ Notifier = (*LocalNotifier)(nil)

type reminderState struct {
	Hour   int  `json:"hour"`
	Minute int  `json:"minute"`
	Active bool `json:"active"`
}

func (n *LocalNotifier) RequestAuthorization(context.Context) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(n.Path), 0o755); err != nil {
		return false, err
	}
	return true, nil
}

func (n *LocalNotifier) ScheduleDaily(_ context.Context, hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("platform: invalid reminder time %02d:%02d", hour, minute)
	}
	data, err := json.MarshalIndent(reminderState{Hour: hour, Minute: minute, Active: true}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(n.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(n.Path, data, 0o644)
}

func (n *LocalNotifier) CancelAll(context.Context) error {
	err := os.Remove(n.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// FileSpeech "transcribes" by treating the sample as UTF-8 text, which is
// what the CLI capture path feeds it.
type FileSpeech struct{}

var _ Speech = (*FileSpeech)(nil)

func (FileSpeech) Transcribe(_ context.Context, sample []byte) (string, error) {
	return string(sample), nil
}

// FilePicker reads an image from a path chosen ahead of time.
type FilePicker struct {
	Path string
}

var _ PhotoPicker = (*FilePicker)(nil)

func (p *FilePicker) Pick(context.Context) (*entry.Attachment, error) {
	if p.Path == "" {
		return nil, fmt.Errorf("platform: no photo path configured")
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("platform: read photo: %w", err)
	}
	return entry.NewAttachment(entry.AttachmentPhoto, data, filepath.Base(p.Path)), nil
}

// NoBiometric reports biometrics as unavailable, the honest answer for a
// terminal session.
type NoBiometric struct{}

var _ Biometric = (*NoBiometric)(nil)

func (NoBiometric) Available() bool { return false }

func (NoBiometric) Authenticate(context.Context, string) (bool, error) {
	return false, nil
}
