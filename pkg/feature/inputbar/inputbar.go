// Package inputbar implements the active input bar shared by capture
// surfaces: voice recording with a live elapsed timer, plus photo and
// scan capture. Results are plain actions so a parent feature can
// intercept them.
package inputbar

import (
	"context"
	"time"

	"tableflip.dev/memoir/pkg/entry"
	"tableflip.dev/memoir/pkg/feature"
	"tableflip.dev/memoir/pkg/platform"
)

const tickKey = "inputbar.recordTick"

// State is the bar's snapshot.
type State struct {
	Recording bool
	Elapsed   time.Duration
	Err       string
}

// New returns the idle bar.
func New() State {
	return State{}
}

// Action is the sealed action set for the bar.
type Action interface {
	feature.Action
	isInputBar()
}

// RecordTapped starts a voice recording.
type RecordTapped struct{}

// Tick advances the elapsed timer while recording.
type Tick struct{}

// StopTapped ends the recording. Sample carries the captured audio.
type StopTapped struct{ Sample []byte }

// PhotoTapped asks the photo picker for an image.
type PhotoTapped struct{}

// ScanTapped asks the photo picker for a document scan.
type ScanTapped struct{}

// Transcribed is the finished voice capture. Parents append the text.
type Transcribed struct{ Text string }

// TranscribeFailed reports a failed transcription.
type TranscribeFailed struct{ Message string }

// Picked is a finished photo or scan capture. Parents collect the
// attachment.
type Picked struct{ Attachment *entry.Attachment }

// PickFailed reports a cancelled or failed pick.
type PickFailed struct{ Message string }

func (RecordTapped) isInputBar()     {}
func (Tick) isInputBar()             {}
func (StopTapped) isInputBar()       {}
func (PhotoTapped) isInputBar()      {}
func (ScanTapped) isInputBar()       {}
func (Transcribed) isInputBar()      {}
func (TranscribeFailed) isInputBar() {}
func (Picked) isInputBar()           {}
func (PickFailed) isInputBar()       {}

// Deps are the capabilities the bar's effects call out to.
type Deps struct {
	Speech platform.Speech
	Picker platform.PhotoPicker
}

// Reduce is the bar's transition function.
func (d Deps) Reduce(s State, a feature.Action) (State, feature.Effect) {
	switch act := a.(type) {
	case RecordTapped:
		if s.Recording {
			return s, feature.None()
		}
		s.Recording = true
		s.Elapsed = 0
		s.Err = ""
		return s, feature.Stream(tickKey, func(ctx context.Context, emit func(feature.Action)) {
			t := time.NewTicker(time.Second)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					emit(Tick{})
				}
			}
		})

	case Tick:
		if s.Recording {
			s.Elapsed += time.Second
		}
		return s, feature.None()

	case StopTapped:
		if !s.Recording {
			return s, feature.None()
		}
		s.Recording = false
		sample := act.Sample
		return s, feature.Batch(
			feature.Cancel(tickKey),
			feature.Task(func(ctx context.Context, emit func(feature.Action)) {
				text, err := d.Speech.Transcribe(ctx, sample)
				if err != nil {
					emit(TranscribeFailed{Message: err.Error()})
					return
				}
				emit(Transcribed{Text: text})
			}),
		)

	case PhotoTapped:
		return s, d.pick(entry.AttachmentPhoto)

	case ScanTapped:
		return s, d.pick(entry.AttachmentScan)

	case Transcribed:
		s.Err = ""
		return s, feature.None()

	case TranscribeFailed:
		s.Err = act.Message
		return s, feature.None()

	case Picked:
		s.Err = ""
		return s, feature.None()

	case PickFailed:
		s.Err = act.Message
		return s, feature.None()
	}
	return s, feature.None()
}

func (d Deps) pick(kind entry.AttachmentKind) feature.Effect {
	return feature.Task(func(ctx context.Context, emit func(feature.Action)) {
		att, err := d.Picker.Pick(ctx)
		if err != nil {
			emit(PickFailed{Message: err.Error()})
			return
		}
		if att == nil {
			return
		}
		att.Kind = kind
		emit(Picked{Attachment: att})
	})
}
