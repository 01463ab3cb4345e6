package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/memoir/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	out := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the journal as a JSON document",
		Example: `
memoir export
memoir export --out backup.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openStore()
			if err != nil {
				return err
			}
			defer p.Close()

			e := export.Export{
				Out:         out,
				Persistence: p,
			}
			return oo.HandleError(e.Do(context.Background()))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path. Defaults to memoir-export-<date>.json here.")

	topLevel.AddCommand(cmd)
}
