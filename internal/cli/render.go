package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ganttline/pkg/pipeline"
)

// renderFlags holds the render-only flags. Zero sizes fall back to the
// config file.
type renderFlags struct {
	output      string
	formats     string
	noCache     bool
	refresh     bool
	watch       bool
	title       string
	trackLabels bool
	detailed    bool
	columnWidth float64
	rowHeight   float64
	labelWidth  float64
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags chartFlags
		rf    renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [tasks]",
		Short: "Render a task file as a chart",
		Long: `Render a task file as a chart.

Formats:
  svg    standalone chart with a time header and one band per lane
  json   layout records plus pixel blocks
  csv    the task table, dates formatted for the scale
  dot    Graphviz source of the lane diagram
  graph  lane diagram rendered to SVG with Graphviz
  txt    plain-text chart

A single format is written to --output; several formats are written next to
the output (or input) base path, one file per format.

Rendered artifacts are cached locally; --no-cache disables the cache and
--refresh re-renders while still updating it. With --watch the chart is
rendered again every time the task file is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(c.cfg)
			if err != nil {
				return err
			}
			rf.apply(&opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			ctx := cmd.Context()
			err = c.runRender(ctx, args[0], opts, rf)
			if !rf.watch {
				return err
			}
			if err != nil {
				printError("%v", err)
			}
			return c.watchAndRun(ctx, args[0], func() error {
				return c.runRender(ctx, args[0], opts, rf)
			})
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&rf.formats, "format", "f", "", "output format(s): svg (default), json, csv, dot, graph, txt (comma-separated)")
	cmd.Flags().BoolVar(&rf.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&rf.refresh, "refresh", false, "re-render even when cached artifacts exist")
	cmd.Flags().BoolVarP(&rf.watch, "watch", "w", false, "re-render whenever the task file changes")
	cmd.Flags().StringVar(&rf.title, "title", "", "chart title (svg)")
	cmd.Flags().BoolVar(&rf.trackLabels, "track-labels", false, "label every track, not just the first of each lane (svg)")
	cmd.Flags().BoolVar(&rf.detailed, "detailed", false, "show start and end times on lane diagram nodes (dot, graph)")
	cmd.Flags().Float64Var(&rf.columnWidth, "column-width", 0, "pixels per grid column")
	cmd.Flags().Float64Var(&rf.rowHeight, "row-height", 0, "pixels per track row")
	cmd.Flags().Float64Var(&rf.labelWidth, "label-width", 0, "pixels for the lane label gutter")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// apply copies the render flags onto opts.
func (rf renderFlags) apply(opts *pipeline.Options) {
	opts.Formats = parseFormats(rf.formats)
	opts.Refresh = rf.refresh
	opts.Title = rf.title
	opts.TrackLabels = rf.trackLabels
	opts.Detailed = rf.detailed
	if rf.columnWidth > 0 {
		opts.ColumnWidth = rf.columnWidth
	}
	if rf.rowHeight > 0 {
		opts.RowHeight = rf.rowHeight
	}
	if rf.labelWidth > 0 {
		opts.LabelWidth = rf.labelWidth
	}
}

// runRender loads the tasks, runs the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, rf renderFlags) error {
	paths, err := outputPaths(input, rf.output, opts.Formats)
	if err != nil {
		return err
	}

	tasks, err := c.loadTasks(ctx, input, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(rf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d tasks...", len(tasks)))
	spinner.Start()

	result, err := runner.Execute(ctx, tasks, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}

	spinner.SetMessage(fmt.Sprintf("Writing %d files...", len(result.Artifacts)))
	written, err := writeArtifacts(result.Artifacts, paths)
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", pipeline.Summary(result.Layout))
	for _, p := range written {
		printFile(p)
	}
	printStats(chartStats{
		Tasks:   result.Stats.TaskCount,
		Lanes:   result.Stats.LaneCount,
		Rows:    result.Stats.RowCount,
		Elapsed: result.Stats.LayoutTime + result.Stats.RenderTime,
		Cached:  result.CacheInfo.RenderHit,
	})
	if len(result.Layout.Visible()) == 0 {
		printWarning("No tasks fall inside the visible %s window", result.Layout.View)
	}
	return nil
}

// writeArtifacts writes each artifact to its path and returns the written
// paths in sorted order.
func writeArtifacts(artifacts map[string][]byte, paths map[string]string) ([]string, error) {
	written := make([]string, 0, len(artifacts))
	for format, data := range artifacts {
		path, ok := paths[format]
		if !ok {
			continue
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	sort.Strings(written)
	return written, nil
}
