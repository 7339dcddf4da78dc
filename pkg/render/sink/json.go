package sink

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/render"
	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	frame *render.Frame
}

// WithJSONFrame includes pixel blocks computed with frame f.
func WithJSONFrame(f render.Frame) JSONOption {
	return func(r *jsonRenderer) { r.frame = &f }
}

// Layout is the JSON document written by [RenderJSON].
type Layout struct {
	Scale     string        `json:"scale"`
	Range     scale.Range   `json:"range"`
	Columns   int           `json:"columns"`
	Headers   []string      `json:"headers"`
	TotalRows int           `json:"total_rows"`
	Lanes     []Lane        `json:"lanes"`
	Records   []Record      `json:"records"`
	Frame     *render.Frame `json:"frame,omitempty"`
	Blocks    []Block       `json:"blocks,omitempty"`
}

// Lane is one lane of a [Layout].
type Lane struct {
	Key        string   `json:"key"`
	FirstRow   int      `json:"first_row"`
	TrackCount int      `json:"track_count"`
	Labels     []string `json:"labels"`
}

// Record places one task.
type Record struct {
	ID       task.ID   `json:"id"`
	Title    string    `json:"title"`
	Lane     int       `json:"lane"`
	Track    int       `json:"track"`
	Row      int       `json:"row"`
	Offset   float64   `json:"offset"`
	Span     float64   `json:"span"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Color    string    `json:"color"`
	Assignee string    `json:"assignee,omitempty"`
	Info     string    `json:"info,omitempty"`
}

// Block is a task rectangle in pixels.
type Block struct {
	ID     task.ID `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BuildJSON converts l to its JSON document form.
func BuildJSON(l layout.Layout, opts ...JSONOption) Layout {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := Layout{
		Scale:     l.View.Granularity.String(),
		Range:     l.View.Range,
		Columns:   l.Columns,
		Headers:   l.View.Labels(),
		TotalRows: l.TotalRows,
		Lanes:     make([]Lane, 0, len(l.Lanes)),
		Records:   make([]Record, 0, len(l.Records)),
	}
	for _, ln := range l.Lanes {
		out.Lanes = append(out.Lanes, Lane{
			Key:        ln.Key,
			FirstRow:   ln.FirstRow,
			TrackCount: ln.TrackCount,
			Labels:     ln.Labels,
		})
	}
	for _, rec := range l.Records {
		t := rec.Task
		out.Records = append(out.Records, Record{
			ID:       t.ID,
			Title:    t.Title,
			Lane:     rec.Lane,
			Track:    rec.Track,
			Row:      rec.Row,
			Offset:   rec.Offset,
			Span:     rec.Span,
			Start:    t.Start,
			End:      t.End,
			Color:    task.Fill(t),
			Assignee: t.Assignee,
			Info:     t.Info,
		})
	}

	if r.frame != nil {
		f := r.frame.WithDefaults()
		out.Frame = &f
		for _, b := range render.Blocks(l, f) {
			out.Blocks = append(out.Blocks, Block{ID: b.ID, X: b.X, Y: b.Y, Width: b.W, Height: b.H})
		}
	}
	return out
}

// RenderJSON encodes l as an indented JSON document.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	return json.MarshalIndent(BuildJSON(l, opts...), "", "  ")
}
