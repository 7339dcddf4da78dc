package layout

import (
	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Config is everything that influences a layout pass. Colours, fonts and
// pixel sizes are rendering concerns and do not belong here.
type Config struct {
	View   scale.View
	Filter task.Predicate // nil keeps every task
}

// Record places one task on the chart.
type Record struct {
	Lane    int        // lane index
	LaneKey string     // lane name
	Track   int        // row within the lane
	Row     int        // absolute row: lane's first row + Track
	Offset  float64    // start column, fractional
	Span    float64    // width in columns, fractional
	Task    *task.Task // source task
}

// LaneInfo summarises one lane of a composed layout.
type LaneInfo struct {
	Key        string
	Index      int
	FirstRow   int
	TrackCount int
	// Labels holds the title of the first task placed on each track.
	Labels []string
}

// Layout is the result of a layout pass.
type Layout struct {
	View      scale.View
	Columns   int
	Lanes     []LaneInfo
	Records   []Record
	TotalRows int
}

// Compose groups, packs and projects tasks for cfg. Lanes are stacked top to
// bottom in group order; records are emitted lane by lane in start order.
//
// The only error is an unknown granularity (INVALID_SCALE). Tasks are not
// validated; filter malformed ones out before calling.
func Compose(tasks []*task.Task, cfg Config) (Layout, error) {
	g := cfg.View.Granularity
	if !g.Valid() {
		return Layout{}, errors.New(errors.ErrCodeInvalidScale, "unknown scale %d", int(g))
	}

	out := Layout{View: cfg.View, Columns: cfg.View.Columns()}
	anchor := cfg.View.Anchor()
	row := 0
	for li, lane := range Group(tasks, cfg.Filter) {
		tracks := Pack(lane.Tasks)
		info := LaneInfo{
			Key:        lane.Key,
			Index:      li,
			FirstRow:   row,
			TrackCount: tracks.Count(),
		}
		info.Labels = make([]string, info.TrackCount)
		labelled := make([]bool, info.TrackCount)

		for _, t := range lane.Tasks {
			tr := tracks[t.ID]
			if !labelled[tr] {
				info.Labels[tr] = t.Title
				labelled[tr] = true
			}
			off, span := OffsetAndSpan(t, g, anchor)
			out.Records = append(out.Records, Record{
				Lane:    li,
				LaneKey: lane.Key,
				Track:   tr,
				Row:     row + tr,
				Offset:  off,
				Span:    span,
				Task:    t,
			})
		}

		out.Lanes = append(out.Lanes, info)
		row += info.TrackCount
	}
	out.TotalRows = row
	return out, nil
}

// RecordsInLane returns the records of lane i.
func (l Layout) RecordsInLane(i int) []Record {
	var out []Record
	for _, r := range l.Records {
		if r.Lane == i {
			out = append(out, r)
		}
	}
	return out
}

// Empty reports whether the layout holds no tasks.
func (l Layout) Empty() bool { return len(l.Records) == 0 }
