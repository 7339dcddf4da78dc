package render

import (
	"math"
	"time"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Frame holds the pixel metrics of a chart.
type Frame struct {
	ColumnWidth   float64 `json:"column_width"`
	RowHeight     float64 `json:"row_height"`
	LabelWidth    float64 `json:"label_width"`
	HeaderHeight  float64 `json:"header_height"`
	MinBlockWidth float64 `json:"min_block_width"`
}

// Default frame metrics.
const (
	DefaultColumnWidth   = 120
	DefaultRowHeight     = 36
	DefaultLabelWidth    = 180
	DefaultHeaderHeight  = 36
	DefaultMinBlockWidth = 3
)

// DefaultFrame returns the stock chart metrics.
func DefaultFrame() Frame {
	return Frame{
		ColumnWidth:   DefaultColumnWidth,
		RowHeight:     DefaultRowHeight,
		LabelWidth:    DefaultLabelWidth,
		HeaderHeight:  DefaultHeaderHeight,
		MinBlockWidth: DefaultMinBlockWidth,
	}
}

// WithDefaults fills zero fields from [DefaultFrame].
func (f Frame) WithDefaults() Frame {
	d := DefaultFrame()
	if f.ColumnWidth <= 0 {
		f.ColumnWidth = d.ColumnWidth
	}
	if f.RowHeight <= 0 {
		f.RowHeight = d.RowHeight
	}
	if f.LabelWidth < 0 {
		f.LabelWidth = d.LabelWidth
	}
	if f.HeaderHeight < 0 {
		f.HeaderHeight = d.HeaderHeight
	}
	if f.MinBlockWidth <= 0 {
		f.MinBlockWidth = d.MinBlockWidth
	}
	return f
}

// Size returns the full chart width and height for l.
func (f Frame) Size(l layout.Layout) (w, h float64) {
	w = f.LabelWidth + float64(l.Columns)*f.ColumnWidth
	h = f.HeaderHeight + float64(l.TotalRows)*f.RowHeight
	return w, h
}

// ColumnX returns the left edge of column c.
func (f Frame) ColumnX(c int) float64 {
	return f.LabelWidth + float64(c)*f.ColumnWidth
}

// RowY returns the top edge of row r.
func (f Frame) RowY(r int) float64 {
	return f.HeaderHeight + float64(r)*f.RowHeight
}

// Block is one task drawn as a rectangle.
type Block struct {
	ID         task.ID
	Title      string
	Info       string
	Lane       string
	Row        int
	X, Y, W, H float64
	Fill       string
	Start, End time.Time
}

// CenterX returns the horizontal centre of the block.
func (b Block) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical centre of the block.
func (b Block) CenterY() float64 { return b.Y + b.H/2 }

// Blocks converts the visible records of l into pixel rectangles.
func Blocks(l layout.Layout, f Frame) []Block {
	f = f.WithDefaults()
	out := make([]Block, 0, len(l.Records))
	for _, r := range l.Visible() {
		x := f.LabelWidth + math.Round(r.Offset*f.ColumnWidth)
		w := max(math.Round(r.Span*f.ColumnWidth), f.MinBlockWidth)
		if x+w <= f.LabelWidth {
			continue // ends before the first column
		}
		if x < f.LabelWidth {
			w -= f.LabelWidth - x
			x = f.LabelWidth
		}
		t := r.Task
		out = append(out, Block{
			ID:    t.ID,
			Title: t.Title,
			Info:  t.Info,
			Lane:  r.LaneKey,
			Row:   r.Row,
			X:     x,
			Y:     f.RowY(r.Row),
			W:     max(w, f.MinBlockWidth),
			H:     f.RowHeight,
			Fill:  task.Fill(t),
			Start: t.Start,
			End:   t.End,
		})
	}
	return out
}
