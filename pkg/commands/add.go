package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/memoir/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	title := ""
	moodName := ""
	tags := []string{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Write a quick journal entry",
		Example: `
memoir add slow morning, good coffee
memoir add --title "Harbor walk" --mood good fog on the water
memoir add --tag travel --tag food fish market lunch
`,
		Args: cobra.MinimumNArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openStore()
			if err != nil {
				return err
			}
			defer p.Close()

			a := add.Add{
				Title:       title,
				Message:     strings.Join(args, " "),
				Mood:        moodName,
				Tags:        tags,
				Persistence: p,
				Generator:   generator(),
				Caps:        capabilities(""),
			}
			return oo.HandleError(a.Do(context.Background()))
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Entry title.")
	cmd.Flags().StringVarP(&moodName, "mood", "m", "", "Mood: bad, low, okay, good, or great.")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag the entry. Repeatable.")

	topLevel.AddCommand(cmd)
}
