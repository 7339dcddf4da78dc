package sink

import (
	"bytes"
	"encoding/csv"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/scale"
)

var csvHeader = []string{"Title", "Assigned", "Start", "End", "Info"}

// DateLayout returns the timestamp layout used in CSV exports for g.
func DateLayout(g scale.Granularity) string {
	switch g {
	case scale.Day:
		return "Mon 15:04"
	case scale.Month:
		return "02 Jan"
	}
	return "2006-01-02 15:04"
}

// RenderCSV exports the tasks of l, lane by lane, in start order.
func RenderCSV(l layout.Layout) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	dates := DateLayout(l.View.Granularity)
	for _, r := range l.Records {
		t := r.Task
		row := []string{t.Title, t.Assignee, t.Start.Format(dates), t.End.Format(dates), t.Info}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
