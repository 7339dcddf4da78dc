// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the HTTP API.
//
// Centralizing the stages here keeps defaults, validation and caching
// identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: decode a task list from JSON, YAML or CSV
//  2. Layout: group tasks into lanes, pack them into tracks and project
//     them onto the view's grid
//  3. Render: write the layout as SVG, JSON, CSV, DOT, a Graphviz lane
//     diagram or a plain-text chart
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Scale:   "day",
//	    Formats: []string{"svg", "csv"},
//	}
//	tasks, err := pipeline.LoadFile("plan.yaml", opts)
//	result, err := runner.Execute(ctx, tasks, opts)
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ganttline/pkg/cache"
	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/render"
	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
)

// =============================================================================
// Formats
// =============================================================================

// Output formats.
const (
	FormatSVG   = "svg"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatDOT   = "dot"
	FormatGraph = "graph" // Graphviz lane diagram, SVG
	FormatText  = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatJSON:  true,
	FormatCSV:   true,
	FormatDOT:   true,
	FormatGraph: true,
	FormatText:  true,
}

// FormatNames lists the supported formats in help-text order.
var FormatNames = []string{FormatSVG, FormatJSON, FormatCSV, FormatDOT, FormatGraph, FormatText}

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatSVG

// ValidateFormat checks that a format is supported. Raster and print
// formats are reported as UNSUPPORTED, anything else unknown as
// INVALID_FORMAT.
func ValidateFormat(format string) error {
	if ValidFormats[format] {
		return nil
	}
	switch format {
	case "png", "pdf":
		return errors.New(errors.ErrCodeUnsupported, "format %q is not supported", format)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: %s)", format, strings.Join(FormatNames, ", "))
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ContentType returns the MIME type served for format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatGraph:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// FileExtension returns the file extension, without the dot, for format.
func FileExtension(format string) string {
	switch format {
	case FormatGraph:
		return "graph.svg"
	case FormatDOT:
		return "dot"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. It supports JSON
// serialization for API requests.
type Options struct {
	// Load options
	InputFormat string         `json:"input_format,omitempty"` // json, yaml or csv; default from file extension
	Strict      bool           `json:"strict,omitempty"`       // reject malformed tasks instead of skipping them
	Location    *time.Location `json:"-"`                      // zone for timestamps without an offset

	// Layout options
	Scale       string        `json:"scale,omitempty"`
	Range       scale.Range   `json:"range"` // zero means the scale's default window
	Assignee    string        `json:"assignee,omitempty"`
	Color       string        `json:"color,omitempty"`
	From        time.Time     `json:"from,omitempty"`
	To          time.Time     `json:"to,omitempty"`
	MinDuration time.Duration `json:"min_duration,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	ColumnWidth float64  `json:"column_width,omitempty"`
	RowHeight   float64  `json:"row_height,omitempty"`
	LabelWidth  float64  `json:"label_width,omitempty"`
	Title       string   `json:"title,omitempty"`
	Background  string   `json:"background,omitempty"` // SVG canvas fill, default white
	TrackLabels bool     `json:"track_labels,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"` // times on lane diagram nodes
	Refresh     bool     `json:"refresh,omitempty"`  // bypass cache reads

	// Runtime options (not serialized)
	Logger  *log.Logger   `json:"-"`
	Palette *task.Palette `json:"-"` // resolves swatch names in colours and task files
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the composed chart.
	Layout layout.Layout

	// TasksHash is the content hash of the input tasks.
	TasksHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TaskCount  int
	LaneCount  int
	RowCount   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout document came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Scale == "" {
		o.Scale = scale.Hour.String()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Palette == nil {
		o.Palette = task.NewPalette()
	}
	o.Color = o.Palette.Resolve(o.Color)
	o.Background = o.Palette.Resolve(o.Background)
}

// Validate applies defaults and checks every option.
func (o *Options) Validate() error {
	o.SetDefaults()
	if _, err := o.View(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateColor(o.Color); err != nil {
		return err
	}
	if err := errors.ValidateColor(o.Background); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "background")
	}
	if !o.From.IsZero() && !o.To.IsZero() && !o.From.Before(o.To) {
		return errors.New(errors.ErrCodeInvalidRange, "from (%s) must be before to (%s)",
			o.From.Format(time.RFC3339), o.To.Format(time.RFC3339))
	}
	if o.MinDuration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "min_duration cannot be negative")
	}
	if o.ColumnWidth < 0 || o.RowHeight < 0 || o.LabelWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "chart sizes cannot be negative")
	}
	return nil
}

// View resolves the scale and window. A zero Range selects the scale's
// default window; Month windows are clamped into 1..12 first, any other
// window must already be valid.
func (o *Options) View() (scale.View, error) {
	g, err := scale.Parse(o.Scale)
	if err != nil {
		return scale.View{}, err
	}
	if o.Range == (scale.Range{}) {
		return scale.NewView(g, o.Range), nil
	}
	r := o.Range
	if g == scale.Month {
		r = scale.MonthRange(r.Start, r.End)
	}
	v := scale.View{Granularity: g, Range: r}
	if err := v.Validate(); err != nil {
		return scale.View{}, err
	}
	return v, nil
}

// Filter combines the task filters into one predicate. An open-ended date
// window is bounded only on the side that was given.
func (o *Options) Filter() task.Predicate {
	var preds []task.Predicate
	if o.Assignee != "" {
		preds = append(preds, task.ByAssignee(o.Assignee))
	}
	if o.Color != "" {
		preds = append(preds, task.ByColor(o.Color))
	}
	if !o.From.IsZero() || !o.To.IsZero() {
		to := o.To
		if to.IsZero() {
			to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
		}
		preds = append(preds, task.ByDateRange(o.From, to))
	}
	if o.MinDuration > 0 {
		preds = append(preds, task.ByMinDuration(o.MinDuration))
	}
	if len(preds) == 0 {
		return nil
	}
	return task.And(preds...)
}

// Frame returns the pixel metrics, with unset sizes taken from
// [render.DefaultFrame].
func (o *Options) Frame() render.Frame {
	f := render.DefaultFrame()
	if o.ColumnWidth > 0 {
		f.ColumnWidth = o.ColumnWidth
	}
	if o.RowHeight > 0 {
		f.RowHeight = o.RowHeight
	}
	if o.LabelWidth > 0 {
		f.LabelWidth = o.LabelWidth
	}
	return f
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	v, _ := o.View()
	opts := cache.LayoutKeyOpts{
		Scale:      v.Granularity.String(),
		RangeStart: v.Range.Start,
		RangeEnd:   v.Range.End,
		Assignee:   o.Assignee,
		Color:      strings.ToLower(o.Color),
	}
	if !o.From.IsZero() {
		opts.From = o.From.UTC().Format(time.RFC3339)
	}
	if !o.To.IsZero() {
		opts.To = o.To.UTC().Format(time.RFC3339)
	}
	if o.MinDuration > 0 {
		opts.MinDuration = o.MinDuration.String()
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	f := o.Frame()
	opts := cache.ArtifactKeyOpts{
		LayoutKeyOpts: o.LayoutKeyOpts(),
		Format:        format,
		ColumnWidth:   f.ColumnWidth,
		RowHeight:     f.RowHeight,
		LabelWidth:    f.LabelWidth,
	}
	switch format {
	case FormatSVG:
		opts.Title = o.Title
		opts.TrackLabels = o.TrackLabels
		opts.Background = strings.ToLower(o.Background)
	case FormatDOT, FormatGraph:
		opts.Detailed = o.Detailed
	}
	return opts
}
