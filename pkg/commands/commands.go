package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "memoir",
		Short: base.Wrap80("Journaling with mood tracking, quick capture, and AI insights."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addCapture(topLevel)
	addGet(topLevel)
	addArt(topLevel)
	addInsights(topLevel)
	addExport(topLevel)
	addRemind(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
}
