package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/render/sink"
)

// layoutCommand creates the layout command for composing a task file.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   chartFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [tasks]",
		Short: "Compute the chart layout of a task file",
		Long: `Compute the chart layout of a task file.

The layout command reads tasks from a JSON, YAML or CSV file, groups them into
lanes by assignee (or by title for unassigned tasks), packs overlapping tasks
onto separate tracks and projects every task onto the chosen time scale.

The result is written as <tasks>.layout.json: one record per visible task with
its lane, track, row, offset and span in grid columns.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(c.cfg)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")

	return cmd
}

// runLayout loads the tasks, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	tasks, err := c.loadTasks(ctx, input, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	data, cacheHit, err := runner.LayoutJSONWithCacheInfo(ctx, tasks, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var doc sink.Layout
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath(input) + ".layout.json"
	} else if err := errors.ValidatePath(outputPath); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(chartStats{Tasks: len(doc.Records), Lanes: len(doc.Lanes), Rows: doc.TotalRows, Cached: cacheHit})
	if len(doc.Records) == 0 {
		printWarning("No tasks matched the filters")
	}
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
