package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/render/lanegraph"
	"github.com/matzehuels/ganttline/pkg/render/sink"
	"github.com/matzehuels/ganttline/pkg/render/term"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, l, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single artifact.
func RenderFormat(ctx context.Context, l layout.Layout, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(l, buildSVGOptions(opts)...)
	case FormatJSON:
		data, err = sink.RenderJSON(l, sink.WithJSONFrame(opts.Frame()))
	case FormatCSV:
		data, err = sink.RenderCSV(l)
	case FormatDOT:
		data = []byte(lanegraph.ToDOT(l, lanegraph.Options{Detailed: opts.Detailed}))
	case FormatGraph:
		data, err = lanegraph.RenderSVG(ctx, lanegraph.ToDOT(l, lanegraph.Options{Detailed: opts.Detailed}))
	case FormatText:
		data = []byte(term.Render(l, term.Options{Plain: true, Legend: true}) + "\n")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithFrame(opts.Frame())}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.TrackLabels {
		svgOpts = append(svgOpts, sink.WithTrackLabels())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}

// Summary is a one-line description of a layout for logs and status output.
func Summary(l layout.Layout) string {
	return fmt.Sprintf("%s: %d tasks in %d lanes, %d rows", l.View, len(l.Records), len(l.Lanes), l.TotalRows)
}
