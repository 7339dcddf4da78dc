package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/task"
)

// loadTasks reads the task file at path and logs how long it took.
func (c *CLI) loadTasks(ctx context.Context, path string, opts pipeline.Options) ([]*task.Task, error) {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	prog := newProgress(logger)

	tasks, err := pipeline.LoadFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	prog.donef("Loaded %d tasks from %s", len(tasks), filepath.Base(path))
	return tasks, nil
}

// basePath strips the extension from path.
func basePath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// outputPaths decides where each format is written. A single format goes to
// output when given; otherwise every format is written next to the base
// path (output without its extension, or the input file's base).
func outputPaths(input, output string, formats []string) (map[string]string, error) {
	if output != "" {
		if err := errors.ValidatePath(output); err != nil {
			return nil, err
		}
	}
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths, nil
	}

	base := basePath(input)
	if output != "" {
		base = basePath(output)
	}
	for _, f := range formats {
		paths[f] = base + "." + pipeline.FileExtension(f)
	}
	return paths, nil
}

// compose lays out tasks without the cache.
func (c *CLI) compose(ctx context.Context, tasks []*task.Task, opts pipeline.Options) (layout.Layout, error) {
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	opts.Logger = runner.Logger
	l, err := runner.Layout(ctx, tasks, opts)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("compute layout: %w", err)
	}
	return l, nil
}
