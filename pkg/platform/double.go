package platform

import (
	"context"

	"tableflip.dev/memoir/pkg/entry"
)

// FakeNotifier records scheduling calls.
type FakeNotifier struct {
	Authorized bool
	AuthErr    error

	ScheduledHour   int
	ScheduledMinute int
	ScheduleCalls   int
	CancelCalls     int
}

var _ Notifier = (*FakeNotifier)(nil)

func (f *FakeNotifier) RequestAuthorization(context.Context) (bool, error) {
	return f.Authorized, f.AuthErr
}

func (f *FakeNotifier) ScheduleDaily(_ context.Context, hour, minute int) error {
	f.ScheduleCalls++
	f.ScheduledHour = hour
	f.ScheduledMinute = minute
	return nil
}

func (f *FakeNotifier) CancelAll(context.Context) error {
	f.CancelCalls++
	return nil
}

// FakeBiometric answers availability and authentication from fields.
type FakeBiometric struct {
	IsAvailable bool
	Success     bool
	Err         error
}

var _ Biometric = (*FakeBiometric)(nil)

func (f *FakeBiometric) Available() bool { return f.IsAvailable }

func (f *FakeBiometric) Authenticate(context.Context, string) (bool, error) {
	return f.Success, f.Err
}

// FakeSpeech returns a scripted transcription.
type FakeSpeech struct {
	Text string
	Err  error
}

var _ Speech = (*FakeSpeech)(nil)

func (f *FakeSpeech) Transcribe(context.Context, []byte) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

// FakePicker returns a scripted attachment.
type FakePicker struct {
	Attachment *entry.Attachment
	Err        error
}

var _ PhotoPicker = (*FakePicker)(nil)

func (f *FakePicker) Pick(context.Context) (*entry.Attachment, error) {
	return f.Attachment, f.Err
}

// Doubles returns a Capabilities bundle of permissive fakes.
func Doubles() Capabilities {
	return Capabilities{
		Notifier:    &FakeNotifier{Authorized: true},
		Biometric:   &FakeBiometric{IsAvailable: true, Success: true},
		Speech:      &FakeSpeech{Text: "transcription"},
		PhotoPicker: &FakePicker{Attachment: entry.NewAttachment(entry.AttachmentPhoto, []byte{0x89}, "photo.png")},
	}
}
