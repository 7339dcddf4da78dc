package layout

import (
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
)

func assigned(title, who string, start, end time.Time) *task.Task {
	return task.New(title, start, end, "", "", who)
}

func hourConfig() Config {
	return Config{View: scale.DefaultView()}
}

func TestGroup(t *testing.T) {
	tasks := []*task.Task{
		assigned("Design", "alice", hm(9, 0), hm(10, 0)),
		assigned("Standup", "", hm(9, 0), hm(9, 15)),
		assigned("Review", "bob", hm(11, 0), hm(12, 0)),
		assigned("Build", "alice", hm(8, 0), hm(9, 0)),
		assigned("Standup", "", hm(13, 0), hm(13, 15)),
	}
	orig := append([]*task.Task(nil), tasks...)

	lanes := Group(tasks, nil)

	var keys []string
	for _, l := range lanes {
		keys = append(keys, l.Key)
	}
	if want := []string{"alice", "Standup", "bob"}; !slices.Equal(keys, want) {
		t.Fatalf("lane keys = %v, want %v", keys, want)
	}
	if got := lanes[0].Tasks; got[0] != tasks[0] || got[1] != tasks[3] {
		t.Error("alice lane should keep input order")
	}
	if len(lanes[1].Tasks) != 2 {
		t.Errorf("Standup lane has %d tasks, want 2", len(lanes[1].Tasks))
	}
	if !slices.Equal(tasks, orig) {
		t.Error("Group() reordered the input")
	}

	again := Group(tasks, nil)
	for i := range lanes {
		if again[i].Key != lanes[i].Key || !slices.Equal(again[i].Tasks, lanes[i].Tasks) {
			t.Errorf("lane %d differs between calls", i)
		}
	}
}

func TestGroupFilter(t *testing.T) {
	tasks := []*task.Task{
		assigned("a", "alice", hm(9, 0), hm(10, 0)),
		assigned("b", "bob", hm(9, 0), hm(10, 0)),
	}
	lanes := Group(tasks, task.ByAssignee("bob"))
	if len(lanes) != 1 || lanes[0].Key != "bob" {
		t.Errorf("Group() = %+v, want only bob", lanes)
	}
}

func TestComposeRejectAll(t *testing.T) {
	tasks := []*task.Task{assigned("a", "alice", hm(9, 0), hm(10, 0))}
	cfg := hourConfig()
	cfg.Filter = func(*task.Task) bool { return false }

	if lanes := Group(tasks, cfg.Filter); len(lanes) != 0 {
		t.Errorf("Group() = %d lanes, want 0", len(lanes))
	}
	l, err := Compose(tasks, cfg)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if l.TotalRows != 0 || len(l.Lanes) != 0 || !l.Empty() {
		t.Errorf("Compose() = %d rows, %d lanes; want empty", l.TotalRows, len(l.Lanes))
	}
}

func TestComposeEmptyInput(t *testing.T) {
	l, err := Compose(nil, hourConfig())
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if l.TotalRows != 0 || len(l.Records) != 0 {
		t.Errorf("Compose(nil) = %+v", l)
	}
	if l.Columns != 13 {
		t.Errorf("Columns = %d, want 13", l.Columns)
	}
}

func TestComposeSameAssigneeDisjoint(t *testing.T) {
	tasks := []*task.Task{
		assigned("a", "alice", hm(9, 0), hm(10, 0)),
		assigned("b", "alice", hm(11, 0), hm(12, 0)),
	}
	l, err := Compose(tasks, hourConfig())
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if len(l.Lanes) != 1 {
		t.Fatalf("got %d lanes, want 1", len(l.Lanes))
	}
	for _, r := range l.Records {
		if r.Track != 0 {
			t.Errorf("%s on track %d, want 0", r.Task.Title, r.Track)
		}
	}
	if l.TotalRows != 1 {
		t.Errorf("TotalRows = %d, want 1", l.TotalRows)
	}
}

func TestComposeStacksLanes(t *testing.T) {
	tasks := []*task.Task{
		assigned("a1", "alice", hm(9, 0), hm(11, 0)),
		assigned("a2", "alice", hm(10, 0), hm(12, 0)),
		assigned("b1", "bob", hm(9, 0), hm(10, 0)),
		assigned("c1", "carol", hm(9, 0), hm(10, 0)),
		assigned("c2", "carol", hm(9, 30), hm(10, 0)),
		assigned("c3", "carol", hm(9, 45), hm(10, 0)),
	}
	l, err := Compose(tasks, hourConfig())
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	wantFirst := []int{0, 2, 3}
	wantCount := []int{2, 1, 3}
	for i, lane := range l.Lanes {
		if lane.FirstRow != wantFirst[i] || lane.TrackCount != wantCount[i] {
			t.Errorf("lane %s: first row %d count %d, want %d %d",
				lane.Key, lane.FirstRow, lane.TrackCount, wantFirst[i], wantCount[i])
		}
	}
	if l.TotalRows != 6 {
		t.Errorf("TotalRows = %d, want 6", l.TotalRows)
	}

	rows := make(map[string]int)
	for _, r := range l.Records {
		rows[r.Task.Title] = r.Row
		if r.Row != l.Lanes[r.Lane].FirstRow+r.Track {
			t.Errorf("%s: row %d != first row + track", r.Task.Title, r.Row)
		}
	}
	if rows["a2"] != 1 || rows["b1"] != 2 || rows["c3"] != 5 {
		t.Errorf("rows = %v", rows)
	}
	if got := l.Lanes[2].Labels; !slices.Equal(got, []string{"c1", "c2", "c3"}) {
		t.Errorf("carol labels = %v", got)
	}
	if got := len(l.RecordsInLane(0)); got != 2 {
		t.Errorf("RecordsInLane(0) = %d records, want 2", got)
	}
}

func TestComposeLabelsUseStartOrder(t *testing.T) {
	tasks := []*task.Task{
		assigned("late", "alice", hm(14, 0), hm(15, 0)),
		assigned("early", "alice", hm(9, 0), hm(10, 0)),
	}
	l, err := Compose(tasks, hourConfig())
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if got := l.Lanes[0].Labels; !slices.Equal(got, []string{"early"}) {
		t.Errorf("Labels = %v, want [early]", got)
	}
}

func TestComposeInvalidScale(t *testing.T) {
	cfg := Config{View: scale.View{Granularity: scale.Granularity(3)}}
	_, err := Compose([]*task.Task{mk("a", hm(9, 0), hm(10, 0))}, cfg)
	if !errors.Is(err, errors.ErrCodeInvalidScale) {
		t.Errorf("Compose() error = %v, want INVALID_SCALE", err)
	}
}

func TestComposeDayView(t *testing.T) {
	fri := time.Date(2024, time.March, 8, 14, 0, 0, 0, time.UTC)
	sun := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	l, err := Compose([]*task.Task{mk("weekend", fri, sun)}, Config{View: scale.View{Granularity: scale.Day}})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	r := l.Records[0]
	if r.Offset != 5 || r.Span != 3 {
		t.Errorf("record = (%v, %v), want (5, 3)", r.Offset, r.Span)
	}
	if l.Columns != 7 {
		t.Errorf("Columns = %d, want 7", l.Columns)
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		name      string
		off, span float64
		ok        bool
		wantSpan  float64
	}{
		{"inside", 1, 2, true, 2},
		{"overhang", 5, 4, true, 2},
		{"at edge", 7, 1, false, 0},
		{"past edge", 9, 1, false, 0},
		{"before start", -2, 1, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clip(Record{Offset: tt.off, Span: tt.span}, 7)
			if ok != tt.ok {
				t.Fatalf("Clip() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Span != tt.wantSpan {
				t.Errorf("Clip() span = %v, want %v", got.Span, tt.wantSpan)
			}
		})
	}
}

func TestVisible(t *testing.T) {
	tasks := []*task.Task{
		mk("in", hm(9, 0), hm(10, 0)),
		mk("late", hm(22, 0), hm(23, 0)),
	}
	l, err := Compose(tasks, hourConfig())
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	vis := l.Visible()
	if len(vis) != 1 || vis[0].Task.Title != "in" {
		t.Errorf("Visible() = %d records, want only \"in\"", len(vis))
	}
}
