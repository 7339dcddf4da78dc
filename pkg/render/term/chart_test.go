package term

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
)

func hm(h, m int) time.Time {
	return time.Date(2024, time.March, 4, h, m, 0, 0, time.UTC)
}

func sample(t *testing.T) layout.Layout {
	t.Helper()
	tasks := []*task.Task{
		task.New("Design", hm(9, 0), hm(11, 0), "", "", "alice"),
		task.New("Review", hm(10, 0), hm(12, 0), "", "", "alice"),
		task.New("Deploy", hm(13, 0), hm(14, 0), "", "", "bob"),
	}
	l, err := layout.Compose(tasks, layout.Config{View: scale.NewView(scale.Hour, scale.Range{Start: 8, End: 14})})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	return l
}

func TestRenderPlain(t *testing.T) {
	out := Render(sample(t), Options{Plain: true, CellWidth: 8, LabelWidth: 10})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "08:00") || !strings.Contains(lines[0], "14:00") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "alice") || !strings.Contains(lines[1], "[Design--------]") {
		t.Errorf("row 0 = %q", lines[1])
	}
	if strings.HasPrefix(lines[2], "alice") || !strings.Contains(lines[2], "[Review") {
		t.Errorf("row 1 = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "bob") || !strings.Contains(lines[3], "[Deploy]") {
		t.Errorf("row 2 = %q", lines[3])
	}

	// Design starts one column (8 cells) after the gutter.
	if got := strings.Index(lines[1], "["); got != 10+8 {
		t.Errorf("Design starts at %d, want 18", got)
	}
	for i, ln := range lines[1:] {
		if n := len([]rune(ln)); n != 10+7*8 {
			t.Errorf("row %d width = %d, want %d", i, n, 10+7*8)
		}
	}
}

func TestRenderScroll(t *testing.T) {
	out := Render(sample(t), Options{Plain: true, FirstRow: 1, MaxRows: 1})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "Review") {
		t.Errorf("scrolled row = %q", lines[1])
	}
}

func TestRenderLegend(t *testing.T) {
	out := Render(sample(t), Options{Plain: true, Legend: true})
	for _, want := range []string{"Lane", "Tracks", "Tasks", "alice", "bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("legend missing %q", want)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"longer title", 6, "longe…"},
		{"ab", 0, ""},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.n); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
