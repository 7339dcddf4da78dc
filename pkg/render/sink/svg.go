package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/render"
)

const svgStyle = `
    .header { font: 600 12px sans-serif; fill: #455A64; }
    .lane { font: 600 13px sans-serif; fill: #263238; }
    .track { font: 11px sans-serif; fill: #78909C; }
    .task { stroke: #37474F; stroke-width: 0.5; }
    .task-text { font-family: sans-serif; fill: #212121; pointer-events: none; }
    .grid { stroke: #CFD8DC; stroke-width: 1; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	frame       render.Frame
	title       string
	background  string
	trackLabels bool
}

// WithFrame sets the pixel metrics.
func WithFrame(f render.Frame) SVGOption { return func(r *svgRenderer) { r.frame = f } }

// WithTitle adds a document title.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithBackground fills the canvas with colour c.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithTrackLabels labels every track row with the title of its first task.
func WithTrackLabels() SVGOption { return func(r *svgRenderer) { r.trackLabels = true } }

// RenderSVG draws l as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{frame: render.DefaultFrame(), background: "#FFFFFF"}
	for _, opt := range opts {
		opt(&r)
	}
	f := r.frame.WithDefaults()
	w, h := f.Size(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", render.EscapeXML(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, render.EscapeXML(r.background))
	}

	renderLanes(&buf, l, f, w, r.trackLabels)
	renderGrid(&buf, l, f, h)
	for _, b := range render.Blocks(l, f) {
		renderBlock(&buf, b)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

var laneShades = [2]string{"#FAFAFA", "#F1F4F6"}

func renderLanes(buf *bytes.Buffer, l layout.Layout, f render.Frame, w float64, trackLabels bool) {
	for _, lane := range l.Lanes {
		y := f.RowY(lane.FirstRow)
		h := float64(lane.TrackCount) * f.RowHeight
		fmt.Fprintf(buf, `  <rect class="lane-bg" x="0" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			y, w, h, laneShades[lane.Index%2])
		if f.LabelWidth <= 0 {
			continue
		}
		fmt.Fprintf(buf, `  <text class="lane" x="8" y="%.1f" dominant-baseline="middle">%s</text>`+"\n",
			y+f.RowHeight/2, render.EscapeXML(render.TruncateLabel(lane.Key, f.LabelWidth, 13)))
		if !trackLabels {
			continue
		}
		for tr, label := range lane.Labels {
			if tr == 0 {
				continue
			}
			fmt.Fprintf(buf, `  <text class="track" x="20" y="%.1f" dominant-baseline="middle">%s</text>`+"\n",
				f.RowY(lane.FirstRow+tr)+f.RowHeight/2, render.EscapeXML(render.TruncateLabel(label, f.LabelWidth-12, 11)))
		}
	}
}

func renderGrid(buf *bytes.Buffer, l layout.Layout, f render.Frame, h float64) {
	for i, label := range l.View.Labels() {
		x := f.ColumnX(i)
		fmt.Fprintf(buf, `  <line class="grid" x1="%.1f" y1="0" x2="%.1f" y2="%.1f"/>`+"\n", x, x, h)
		if f.HeaderHeight > 0 {
			fmt.Fprintf(buf, `  <text class="header" x="%.1f" y="%.1f" dominant-baseline="middle">%s</text>`+"\n",
				x+6, f.HeaderHeight/2, render.EscapeXML(label))
		}
	}
	if f.HeaderHeight > 0 {
		fmt.Fprintf(buf, `  <line class="grid" x1="0" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			f.HeaderHeight, f.ColumnX(l.Columns), f.HeaderHeight)
	}
}

func renderBlock(buf *bytes.Buffer, b render.Block) {
	const inset = 3.0
	y, h := b.Y+inset, max(b.H-2*inset, 1)
	fmt.Fprintf(buf, `  <g id="task-%s">`+"\n", render.EscapeXML(string(b.ID)))
	fmt.Fprintf(buf, `    <rect class="task" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" ry="4" fill="%s">`,
		b.X, y, b.W, h, render.EscapeXML(b.Fill))
	fmt.Fprintf(buf, "<title>%s</title></rect>\n", render.EscapeXML(tooltip(b)))

	size := render.FontSize(h)
	if label := render.TruncateLabel(b.Title, b.W, size); label != "" {
		fmt.Fprintf(buf, `    <text class="task-text" x="%.1f" y="%.1f" font-size="%.1f" dominant-baseline="middle">%s</text>`+"\n",
			b.X+6, b.CenterY(), size, render.EscapeXML(label))
	}
	buf.WriteString("  </g>\n")
}

func tooltip(b render.Block) string {
	s := fmt.Sprintf("%s (%s - %s)", b.Title, b.Start.Format("Mon 02 Jan 15:04"), b.End.Format("Mon 02 Jan 15:04"))
	if b.Info != "" {
		s += "\n" + b.Info
	}
	return s
}
