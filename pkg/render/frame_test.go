package render

import (
	"testing"
	"time"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
)

func hm(h, m int) time.Time {
	return time.Date(2024, time.March, 4, h, m, 0, 0, time.UTC)
}

func compose(t *testing.T, tasks ...*task.Task) layout.Layout {
	t.Helper()
	l, err := layout.Compose(tasks, layout.Config{View: scale.DefaultView()})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	return l
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name  string
		task  *task.Task
		ok    bool
		x, w  float64
		color string
	}{
		{"two hours", task.New("a", hm(9, 0), hm(11, 0), "", "", ""), true, 180 + 120, 240, task.DefaultFill},
		{"tiny gets min width", task.New("a", hm(9, 0), hm(9, 0), "#F06292", "", ""), true, 300, 3, "#F06292"},
		{"overhang clipped", task.New("a", hm(19, 0), hm(23, 0), "", "", ""), true, 180 + 11*120, 240, task.DefaultFill},
		{"starts before range", task.New("a", hm(7, 0), hm(9, 0), "", "", ""), true, 180, 120, task.DefaultFill},
		{"entirely before range", task.New("a", hm(5, 0), hm(6, 0), "", "", ""), false, 0, 0, ""},
		{"after range", task.New("a", hm(21, 0), hm(22, 0), "", "", ""), false, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Blocks(compose(t, tt.task), DefaultFrame())
			if !tt.ok {
				if len(blocks) != 0 {
					t.Errorf("got %d blocks, want none", len(blocks))
				}
				return
			}
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(blocks))
			}
			b := blocks[0]
			if b.X != tt.x || b.W != tt.w {
				t.Errorf("block x=%v w=%v, want x=%v w=%v", b.X, b.W, tt.x, tt.w)
			}
			if b.Fill != tt.color {
				t.Errorf("Fill = %q, want %q", b.Fill, tt.color)
			}
			if b.Y != DefaultHeaderHeight || b.H != DefaultRowHeight {
				t.Errorf("block y=%v h=%v", b.Y, b.H)
			}
		})
	}
}

func TestBlocksRows(t *testing.T) {
	l := compose(t,
		task.New("a", hm(9, 0), hm(11, 0), "", "", "alice"),
		task.New("b", hm(10, 0), hm(12, 0), "", "", "alice"),
		task.New("c", hm(9, 0), hm(10, 0), "", "", "bob"),
	)
	blocks := Blocks(l, Frame{RowHeight: 20, HeaderHeight: 10})
	wantY := map[string]float64{"a": 10, "b": 30, "c": 50}
	for _, b := range blocks {
		if b.Y != wantY[b.Title] {
			t.Errorf("%s: y = %v, want %v", b.Title, b.Y, wantY[b.Title])
		}
	}
}

func TestFrameSize(t *testing.T) {
	l := compose(t, task.New("a", hm(9, 0), hm(11, 0), "", "", ""))
	w, h := DefaultFrame().Size(l)
	if w != 180+13*120 || h != 36+36 {
		t.Errorf("Size() = %v x %v", w, h)
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label string
		w     float64
		want  string
	}{
		{"short", 200, "short"},
		{"a rather long task title", 80, "a rather.."},
		{"anything", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := TruncateLabel(tt.label, tt.w, 12); got != tt.want {
				t.Errorf("TruncateLabel(%q, %v) = %q, want %q", tt.label, tt.w, got, tt.want)
			}
		})
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`a<b & "c"`); got != "a&lt;b &amp; &#34;c&#34;" {
		t.Errorf("EscapeXML() = %q", got)
	}
}
