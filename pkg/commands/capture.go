package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/memoir/pkg/inbox"
	"tableflip.dev/memoir/pkg/runner/capture"
)

func addCapture(topLevel *cobra.Command) {
	kind := "text"
	sample := ""
	convert := false

	cmd := &cobra.Command{
		Use:   "capture [text]",
		Short: "Drop something in the inbox for later",
		Example: `
memoir capture call the plumber
memoir capture --kind voice --sample note.wav
memoir capture --convert idea: weekend trip
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openStore()
			if err != nil {
				return err
			}
			defer p.Close()

			caps := capabilities("")
			c := capture.Capture{
				Kind:        inbox.CaptureKind(kind),
				Text:        strings.Join(args, " "),
				SamplePath:  sample,
				Convert:     convert,
				Persistence: p,
				Speech:      caps.Speech,
			}
			return oo.HandleError(c.Do(context.Background()))
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "text", "Capture kind: text, voice, photo, or scan.")
	cmd.Flags().StringVar(&sample, "sample", "", "Audio file for voice captures.")
	cmd.Flags().BoolVar(&convert, "convert", false, "Convert straight into a journal entry.")

	topLevel.AddCommand(cmd)
}
