// Package cli implements the ganttline command-line interface.
//
// # Commands
//
//   - layout: compose a task file into a layout.json
//   - render: write a chart as SVG, JSON, CSV, DOT, a lane diagram or text
//   - show: print a coloured chart to the terminal
//   - view: browse a chart interactively
//   - serve: run the HTTP API
//   - cache: manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to each command's context; see loggerFromContext.
package cli

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ganttline/pkg/buildinfo"
	"github.com/matzehuels/ganttline/pkg/cache"
	"github.com/matzehuels/ganttline/pkg/config"
	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/taskio"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded configuration.
func (c *CLI) Config() *config.Config {
	return c.cfg
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Ganttline lays out timed tasks as swim-lane charts",
		Long:          `Ganttline groups timed tasks into lanes, packs overlapping tasks onto separate tracks and renders the result as an hour, day or month chart.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: <user config dir>/ganttline/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default path when it exists.
func (c *CLI) loadConfig() error {
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
		c.Logger.Debug("loaded config", "path", c.configPath)
		return nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return nil
	}
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	runner.ArtifactTTL = c.cfg.Cache.TTL
	return runner, nil
}

// newCache opens the file cache, falling back to no caching when no cache
// directory can be determined.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cfg.CacheDir()
	if err != nil {
		c.Logger.Debug("caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Chart Flags
// =============================================================================

// chartFlags holds the layout flags shared by every chart command. Zero
// values fall back to the config file.
type chartFlags struct {
	scale       string
	start       int
	end         int
	assignee    string
	color       string
	from        string
	to          string
	minDuration time.Duration
	inputFormat string
	strict      bool
}

// bind registers the chart flags on cmd.
func (f *chartFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.scale, "scale", "s", "", "time scale: hour, day, month (default from config, else hour)")
	flags.IntVar(&f.start, "start", -1, "first visible hour (0-23) or month (1-12)")
	flags.IntVar(&f.end, "end", -1, "last visible hour (0-23) or month (1-12)")
	flags.StringVar(&f.assignee, "assignee", "", "only show tasks assigned to this person")
	flags.StringVar(&f.color, "color", "", "only show tasks with this colour (#RRGGBB or a palette name such as teal)")
	flags.StringVar(&f.from, "from", "", "only show tasks starting after this time")
	flags.StringVar(&f.to, "to", "", "only show tasks ending before this time")
	flags.DurationVar(&f.minDuration, "min-duration", 0, "only show tasks lasting at least this long")
	flags.StringVar(&f.inputFormat, "input-format", "", "task file format: json, yaml, csv (default: from extension)")
	flags.BoolVar(&f.strict, "strict", false, "fail on malformed tasks instead of skipping them")
	_ = cmd.RegisterFlagCompletionFunc("scale", completeScales)
}

// options merges the flags over cfg into pipeline options.
func (f *chartFlags) options(cfg *config.Config) (pipeline.Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		InputFormat: f.inputFormat,
		Strict:      f.strict,
		Location:    loc,
		Scale:       cfg.Chart.Scale,
		Assignee:    f.assignee,
		Color:       f.color,
		MinDuration: f.minDuration,
		ColumnWidth: cfg.Chart.ColumnWidth,
		RowHeight:   cfg.Chart.RowHeight,
		LabelWidth:  cfg.Chart.LabelWidth,
	}
	if f.scale != "" {
		opts.Scale = f.scale
	}

	// A scale change from the command line drops the configured window
	// unless a window was given too.
	g, err := scale.Parse(opts.Scale)
	if err != nil {
		return pipeline.Options{}, err
	}
	cfgScale, _ := scale.Parse(cfg.Chart.Scale)
	if g == cfgScale {
		opts.Range = scale.Range{Start: cfg.Chart.RangeStart, End: cfg.Chart.RangeEnd}
	}
	if f.start >= 0 || f.end >= 0 {
		r := opts.Range
		if r == (scale.Range{}) {
			r = defaultRange(g)
		}
		if f.start >= 0 {
			r.Start = f.start
		}
		if f.end >= 0 {
			r.End = f.end
		}
		opts.Range = r
	}

	if f.from != "" {
		if opts.From, err = taskio.ParseTime(f.from, loc); err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "--from")
		}
	}
	if f.to != "" {
		if opts.To, err = taskio.ParseTime(f.to, loc); err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "--to")
		}
	}
	// Validate a copy so the runner can still supply its logger.
	check := opts
	return opts, check.Validate()
}

func defaultRange(g scale.Granularity) scale.Range {
	if g == scale.Month {
		return scale.DefaultMonthRange
	}
	return scale.DefaultHourRange
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
