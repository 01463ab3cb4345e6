package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/memoir/pkg/runner/art"
)

func addArt(topLevel *cobra.Command) {
	style := ""
	ratio := ""
	showIDs := false

	cmd := &cobra.Command{
		Use:   "art ENTRY_ID",
		Short: "Generate an artwork for an entry",
		Example: `
memoir art 4f7c2a1e
memoir art 4f7c2a1e --style ink --ratio 3:4
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openStore()
			if err != nil {
				return err
			}
			defer p.Close()

			a := art.Art{
				EntryID:     args[0],
				Style:       style,
				Ratio:       ratio,
				ShowID:      showIDs,
				Persistence: p,
				Generator:   generator(),
			}
			return oo.HandleError(a.Do(context.Background()))
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "", "Art style: watercolor, ink, impressionist, or abstract.")
	cmd.Flags().StringVarP(&ratio, "ratio", "r", "", "Aspect ratio: 1:1, 3:4, or 4:3.")
	cmd.Flags().BoolVar(&showIDs, "show-ids", false, "Include ids in the listing.")

	topLevel.AddCommand(cmd)
}
