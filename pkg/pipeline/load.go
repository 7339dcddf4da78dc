package pipeline

import (
	"io"

	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/taskio"
)

// LoadFile reads a task list from path. The encoding comes from
// opts.InputFormat, or from the file extension when that is empty.
func LoadFile(path string, opts Options) ([]*task.Task, error) {
	opts.SetDefaults()
	if opts.InputFormat == "" {
		return taskio.Load(path, decodeOptions(opts)...)
	}
	f, err := taskio.ParseFormat(opts.InputFormat)
	if err != nil {
		return nil, err
	}
	return taskio.LoadAs(path, f, decodeOptions(opts)...)
}

// Load decodes a task list from r. opts.InputFormat defaults to JSON.
func Load(r io.Reader, opts Options) ([]*task.Task, error) {
	opts.SetDefaults()
	f := taskio.JSON
	if opts.InputFormat != "" {
		var err error
		if f, err = taskio.ParseFormat(opts.InputFormat); err != nil {
			return nil, err
		}
	}
	return taskio.Decode(r, f, decodeOptions(opts)...)
}

func decodeOptions(opts Options) []taskio.Option {
	out := []taskio.Option{
		taskio.WithLocation(opts.Location),
		taskio.WithLogger(opts.Logger),
		taskio.WithPalette(opts.Palette),
	}
	if opts.Strict {
		out = append(out, taskio.WithStrict())
	}
	return out
}
