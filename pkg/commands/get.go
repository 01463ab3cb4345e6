package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/memoir/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	query := ""
	moodName := ""
	window := ""
	showID := false
	table := false

	cmd := &cobra.Command{
		Use:       "get [entries|inbox|artworks]",
		Short:     "List entries, inbox items, or artworks",
		ValidArgs: []string{"entries", "inbox", "artworks"},
		Args:      cobra.MaximumNArgs(1),
		Example: `
memoir get
memoir get entries --window week --mood good
memoir get entries --query beach
memoir get inbox
memoir get artworks
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openStore()
			if err != nil {
				return err
			}
			defer p.Close()

			what := ""
			if len(args) > 0 {
				what = args[0]
			}
			g := get.Get{
				What:        what,
				Query:       query,
				Mood:        moodName,
				Window:      window,
				ShowID:      showID,
				Table:       table,
				Persistence: p,
			}
			return oo.HandleError(g.Do(context.Background()))
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search titles, text, and tags.")
	cmd.Flags().StringVarP(&moodName, "mood", "m", "", "Only entries with this mood.")
	cmd.Flags().StringVarP(&window, "window", "w", "", "Time window: week, month, all, or a duration like 10d.")
	cmd.Flags().BoolVar(&showID, "show-ids", false, "Show ids.")
	cmd.Flags().BoolVar(&table, "table", false, "Render entries as a compact table.")

	topLevel.AddCommand(cmd)
}
