package lanegraph

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

func TestToDOT(t *testing.T) {
	a := task.New("Design", hm(9, 0), hm(10, 0), "#F06292", "", "alice")
	b := task.New("Build", hm(11, 0), hm(12, 0), "", "", "alice")
	c := task.New("Review", hm(9, 30), hm(11, 30), "", "ask bob", "alice")
	d := task.New("Deploy", hm(13, 0), hm(14, 0), "", "", "bob")
	l, err := layout.Compose([]*task.Task{a, b, c, d}, layout.Config{View: scale.DefaultView()})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	dot := ToDOT(l, Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`subgraph "cluster_0"`,
		`label="alice";`,
		`subgraph "cluster_1"`,
		`label="bob";`,
		`label="Design", fillcolor="#F06292"`,
		`fillcolor="#64B5F6"`,
		`"` + string(a.ID) + `" -> "` + string(b.ID) + `";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"`+string(a.ID)+`" -> "`+string(c.ID)+`"`) {
		t.Error("tasks on different tracks should not be chained")
	}
	if got := strings.Count(dot, "->"); got != 1 {
		t.Errorf("edges = %d, want 1", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	a := task.New("Design", hm(9, 0), hm(10, 0), "", "whiteboard", "")
	l, err := layout.Compose([]*task.Task{a}, layout.Config{View: scale.DefaultView()})
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(l, Options{Detailed: true})
	if !strings.Contains(dot, `Mon 09:00 - Mon 10:00\nwhiteboard`) {
		t.Errorf("detailed label missing times:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := string(normalizeViewBox([]byte("<svg>"))); got != "<svg>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}
