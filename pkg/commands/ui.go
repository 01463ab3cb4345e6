package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/memoir/pkg/feature/editor"
	"tableflip.dev/memoir/pkg/feature/inputbar"
	"tableflip.dev/memoir/pkg/feature/journal"
	"tableflip.dev/memoir/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse the journal in the terminal",
		Example: `
memoir ui
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openStore()
			if err != nil {
				return err
			}
			defer p.Close()

			caps := capabilities("")
			return tui.Run(journal.Deps{
				Store: p,
				Editor: editor.Deps{
					Store: p,
					AI:    generator(),
					Bar:   inputbar.Deps{Speech: caps.Speech, Picker: caps.PhotoPicker},
				},
			})
		},
	}

	topLevel.AddCommand(cmd)
}
