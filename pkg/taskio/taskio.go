// Package taskio reads and writes task lists.
//
// Three encodings are supported, chosen by file extension or explicitly:
//
//   - JSON: an array of objects, or an object with a "tasks" array
//   - YAML: the same shapes as JSON
//   - CSV: a header row naming the columns (title, assigned, start, end,
//     info, color, id), matched case-insensitively
//
// Timestamps accept RFC 3339 and a few common wall-clock layouts; values
// without a zone are read in the decoder's location (UTC by default).
//
// Malformed tasks (empty title, end not after start, bad colour) are skipped
// with a warning unless [WithStrict] is set, in which case the first one
// aborts the decode.
package taskio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Format names a task list encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

// DetectFormat infers the encoding from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".csv":
		return CSV, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell task format from %q (want .json, .yaml or .csv)", filepath.Base(path))
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, YAML, CSV:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown task format %q", s)
}

type decoder struct {
	loc     *time.Location
	strict  bool
	logger  *log.Logger
	palette *task.Palette
}

// Option configures decoding.
type Option func(*decoder)

// WithLocation sets the zone for timestamps that carry none.
func WithLocation(loc *time.Location) Option {
	return func(d *decoder) {
		if loc != nil {
			d.loc = loc
		}
	}
}

// WithStrict makes malformed tasks an error instead of a warning.
func WithStrict() Option {
	return func(d *decoder) { d.strict = true }
}

// WithLogger reports skipped tasks to l.
func WithLogger(l *log.Logger) Option {
	return func(d *decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithPalette resolves swatch names in the color field against p.
func WithPalette(p *task.Palette) Option {
	return func(d *decoder) {
		if p != nil {
			d.palette = p
		}
	}
}

func newDecoder(opts []Option) *decoder {
	d := &decoder{loc: time.UTC, logger: log.New(io.Discard), palette: task.NewPalette()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load reads the task file at path, detecting its format from the extension.
func Load(path string, opts ...Option) ([]*task.Task, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return LoadAs(path, f, opts...)
}

// LoadAs reads the task file at path in format f, whatever its extension.
func LoadAs(path string, f Format, opts ...Option) ([]*task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "task file %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data), f, opts...)
}

// Decode reads a task list in format f from r.
func Decode(r io.Reader, f Format, opts ...Option) ([]*task.Task, error) {
	d := newDecoder(opts)
	var (
		recs []record
		err  error
	)
	switch f {
	case JSON:
		recs, err = decodeJSON(r)
	case YAML:
		recs, err = decodeYAML(r)
	case CSV:
		recs, err = decodeCSV(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown task format %q", f)
	}
	if err != nil {
		return nil, err
	}
	return d.tasks(recs)
}

// Encode writes tasks to w in format f.
func Encode(w io.Writer, tasks []*task.Task, f Format) error {
	recs := make([]record, len(tasks))
	for i, t := range tasks {
		recs[i] = fromTask(t)
	}
	switch f {
	case JSON:
		return encodeJSON(w, recs)
	case YAML:
		return encodeYAML(w, recs)
	case CSV:
		return encodeCSV(w, recs)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown task format %q", f)
}

// tasks converts records to validated tasks. Records without an id get
// "task-<n>" from their position so repeated loads of one file produce the
// same identifiers; a duplicate id is replaced with a fresh one.
func (d *decoder) tasks(recs []record) ([]*task.Task, error) {
	out := make([]*task.Task, 0, len(recs))
	seen := make(map[task.ID]bool, len(recs))
	for i, rec := range recs {
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("task-%d", i+1)
		}
		t, err := rec.toTask(d.loc)
		if err == nil {
			t.Color = d.palette.Resolve(t.Color)
			err = t.Validate()
		}
		if err != nil {
			if d.strict {
				return nil, errors.Wrap(errors.ErrCodeInvalidTask, err, "task %d", i+1)
			}
			d.logger.Warn("skipping task", "index", i+1, "title", rec.Title, "error", errors.UserMessage(err))
			continue
		}
		if seen[t.ID] {
			d.logger.Warn("duplicate task id", "index", i+1, "id", t.ID)
			t.ID = task.NewID()
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, nil
}
