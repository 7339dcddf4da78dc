package lanegraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Options configures lane diagram generation.
type Options struct {
	// Detailed adds start and end times to every node label.
	Detailed bool
}

// ToDOT converts l to Graphviz DOT source.
func ToDOT(l layout.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"sans-serif\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#90A4AE\"];\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for _, lane := range l.Lanes {
		fmt.Fprintf(&buf, "  subgraph \"cluster_%d\" {\n", lane.Index)
		fmt.Fprintf(&buf, "    label=%q;\n", lane.Key)
		buf.WriteString("    style=\"rounded\";\n    color=\"#B0BEC5\";\n")

		tracks := make([][]layout.Record, lane.TrackCount)
		for _, r := range l.RecordsInLane(lane.Index) {
			tracks[r.Track] = append(tracks[r.Track], r)
			fmt.Fprintf(&buf, "    %q [%s];\n", string(r.Task.ID), strings.Join(fmtAttrs(r.Task, opts.Detailed), ", "))
		}
		for _, chain := range tracks {
			for i := 1; i < len(chain); i++ {
				fmt.Fprintf(&buf, "    %q -> %q;\n", string(chain[i-1].Task.ID), string(chain[i].Task.ID))
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(t *task.Task, detailed bool) []string {
	label := t.Title
	if detailed {
		label += "\n" + t.Start.Format("Mon 15:04") + " - " + t.End.Format("Mon 15:04")
		if t.Info != "" {
			label += "\n" + t.Info
		}
	}
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", task.Fill(t)),
	}
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with a
// plain pixel-sized one so the diagram scales like the chart.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
