package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/ganttline/pkg/errors"
)

// ID is the stable identity of a task.
type ID string

// NewID returns a fresh random task identifier.
func NewID() ID { return ID(uuid.NewString()) }

// Task is a single bar on the chart.
type Task struct {
	ID       ID
	Title    string
	Start    time.Time
	End      time.Time
	Color    string // hex fill colour, empty means palette default
	Assignee string
	Info     string
}

// New creates a task with a fresh ID. Arguments are not validated; call
// [Task.Validate] when the input comes from outside the program.
func New(title string, start, end time.Time, color, info, assignee string) *Task {
	return &Task{
		ID:       NewID(),
		Title:    title,
		Start:    start,
		End:      end,
		Color:    color,
		Assignee: assignee,
		Info:     info,
	}
}

// LaneKey returns the lane a task belongs to: its assignee, or its title
// when the task is unassigned.
func (t *Task) LaneKey() string {
	if t.Assignee == "" {
		return t.Title
	}
	return t.Assignee
}

// Duration returns End - Start.
func (t *Task) Duration() time.Duration { return t.End.Sub(t.Start) }

// FormattedStart returns the start time as "15:04".
func (t *Task) FormattedStart() string { return t.Start.Format("15:04") }

// FormattedEnd returns the end time as "15:04".
func (t *Task) FormattedEnd() string { return t.End.Format("15:04") }

// SetTitle replaces the title. Empty titles are rejected and leave the task unchanged.
func (t *Task) SetTitle(title string) error {
	if err := errors.ValidateTitle(title); err != nil {
		return err
	}
	t.Title = title
	return nil
}

// SetAssignee replaces the assignee. Empty values are rejected and leave the task unchanged.
func (t *Task) SetAssignee(assignee string) error {
	if assignee == "" {
		return errors.New(errors.ErrCodeInvalidTask, "assignee cannot be empty")
	}
	t.Assignee = assignee
	return nil
}

// SetInfo replaces the info text. Empty values are rejected and leave the task unchanged.
func (t *Task) SetInfo(info string) error {
	if info == "" {
		return errors.New(errors.ErrCodeInvalidTask, "info cannot be empty")
	}
	t.Info = info
	return nil
}

// SetColor replaces the fill colour.
func (t *Task) SetColor(color string) error {
	if err := errors.ValidateColor(color); err != nil {
		return err
	}
	t.Color = color
	return nil
}

// SetSpan replaces both instants. end must be strictly after start.
func (t *Task) SetSpan(start, end time.Time) error {
	if !end.After(start) {
		return errors.New(errors.ErrCodeInvalidTask, "end must be after start")
	}
	t.Start, t.End = start, end
	return nil
}

// Validate reports whether the task is well formed: a non-empty title, a
// valid colour and an end strictly after the start.
func (t *Task) Validate() error {
	if err := errors.ValidateTitle(t.Title); err != nil {
		return err
	}
	if err := errors.ValidateColor(t.Color); err != nil {
		return err
	}
	if !t.End.After(t.Start) {
		return errors.New(errors.ErrCodeInvalidTask, "task %q: end must be after start", t.Title)
	}
	return nil
}
