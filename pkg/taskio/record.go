package taskio

import (
	"strings"
	"time"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/task"
)

// record is the wire shape shared by all encodings.
type record struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Title    string `json:"title" yaml:"title"`
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end" yaml:"end"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	Assignee string `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Info     string `json:"info,omitempty" yaml:"info,omitempty"`
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses s with the first matching layout. Zone-less values are
// interpreted in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidTask, "unable to parse timestamp %q", s)
}

func (r record) toTask(loc *time.Location) (*task.Task, error) {
	start, err := ParseTime(r.Start, loc)
	if err != nil {
		return nil, err
	}
	end, err := ParseTime(r.End, loc)
	if err != nil {
		return nil, err
	}
	t := task.New(strings.TrimSpace(r.Title), start, end, strings.TrimSpace(r.Color), r.Info, strings.TrimSpace(r.Assignee))
	if r.ID != "" {
		t.ID = task.ID(r.ID)
	}
	return t, nil
}

func fromTask(t *task.Task) record {
	return record{
		ID:       string(t.ID),
		Title:    t.Title,
		Start:    t.Start.Format(time.RFC3339),
		End:      t.End.Format(time.RFC3339),
		Color:    t.Color,
		Assignee: t.Assignee,
		Info:     t.Info,
	}
}
