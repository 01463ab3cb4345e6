package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/memoir/pkg/runner/remind"
)

func addRemind(topLevel *cobra.Command) {
	at := ""
	off := false

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Set or clear the daily journaling reminder",
		Example: `
memoir remind --at 20:00
memoir remind --off
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openStore()
			if err != nil {
				return err
			}
			defer p.Close()

			caps := capabilities("")
			r := remind.Remind{
				At:          at,
				Off:         off,
				Persistence: p,
				Notifier:    caps.Notifier,
			}
			return oo.HandleError(r.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Reminder time as HH:MM.")
	cmd.Flags().BoolVar(&off, "off", false, "Clear the reminder.")

	topLevel.AddCommand(cmd)
}
