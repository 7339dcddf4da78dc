package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/render/term"
)

// showCommand creates the show command, which prints a chart to the terminal.
func (c *CLI) showCommand() *cobra.Command {
	var (
		flags    chartFlags
		termOpts term.Options
		noLegend bool
	)

	cmd := &cobra.Command{
		Use:   "show [tasks]",
		Short: "Print a task file as a chart in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(c.cfg)
			if err != nil {
				return err
			}
			termOpts.Legend = !noLegend
			return c.runShow(cmd, args[0], opts, termOpts)
		},
	}

	flags.bind(cmd)
	cmd.Flags().IntVar(&termOpts.CellWidth, "cell-width", 0, "characters per grid column (default 6)")
	cmd.Flags().BoolVar(&termOpts.Plain, "plain", false, "disable colours")
	cmd.Flags().BoolVar(&noLegend, "no-legend", false, "omit the lane summary table")

	return cmd
}

func (c *CLI) runShow(cmd *cobra.Command, input string, opts pipeline.Options, termOpts term.Options) error {
	ctx := cmd.Context()
	tasks, err := c.loadTasks(ctx, input, opts)
	if err != nil {
		return err
	}

	l, err := c.compose(ctx, tasks, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), term.Render(l, termOpts))
	return nil
}
