package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/memoir/pkg/runner/insights"
)

func addInsights(topLevel *cobra.Command) {
	window := "week"
	analyze := false

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Mood trends, streaks, and writing habits",
		Example: `
memoir insights
memoir insights --window month
memoir insights --analyze
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openStore()
			if err != nil {
				return err
			}
			defer p.Close()

			i := insights.Insights{
				Window:      window,
				Analyze:     analyze,
				Persistence: p,
				Generator:   generator(),
			}
			return oo.HandleError(i.Do(context.Background()))
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "week", "Time window: week, month, or all.")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "Add an AI reflection on the window.")

	topLevel.AddCommand(cmd)
}
