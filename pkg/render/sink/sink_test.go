package sink

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/render"
	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
)

func hm(h, m int) time.Time {
	return time.Date(2024, time.March, 4, h, m, 0, 0, time.UTC)
}

func sample(t *testing.T, g scale.Granularity) layout.Layout {
	t.Helper()
	tasks := []*task.Task{
		task.New("Design <v2>", hm(9, 0), hm(11, 0), "#F06292", "whiteboard", "alice"),
		task.New("Review", hm(10, 0), hm(12, 0), "", "", "alice"),
		task.New("Deploy", hm(13, 0), hm(14, 0), "#81C784", "", "bob"),
	}
	l, err := layout.Compose(tasks, layout.Config{View: scale.NewView(g, scale.DefaultHourRange)})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	return l
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sample(t, scale.Hour))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out Layout
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Scale != "hour" {
		t.Errorf("Scale = %q, want hour", out.Scale)
	}
	if out.Columns != 13 || len(out.Headers) != 13 {
		t.Errorf("Columns = %d, headers = %d", out.Columns, len(out.Headers))
	}
	if out.TotalRows != 3 {
		t.Errorf("TotalRows = %d, want 3", out.TotalRows)
	}
	if len(out.Lanes) != 2 || out.Lanes[1].FirstRow != 2 {
		t.Errorf("Lanes = %+v", out.Lanes)
	}
	if len(out.Records) != 3 {
		t.Fatalf("Records = %d, want 3", len(out.Records))
	}
	if r := out.Records[1]; r.Title != "Review" || r.Track != 1 || r.Color != task.DefaultFill {
		t.Errorf("Review record = %+v", r)
	}
	if out.Frame != nil || len(out.Blocks) != 0 {
		t.Error("blocks should be omitted without a frame")
	}
}

func TestRenderJSONWithFrame(t *testing.T) {
	data, err := RenderJSON(sample(t, scale.Hour), WithJSONFrame(render.Frame{ColumnWidth: 60}))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out Layout
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Frame == nil || out.Frame.ColumnWidth != 60 || out.Frame.RowHeight != render.DefaultRowHeight {
		t.Errorf("Frame = %+v", out.Frame)
	}
	if len(out.Blocks) != 3 {
		t.Fatalf("Blocks = %d, want 3", len(out.Blocks))
	}
	if b := out.Blocks[0]; b.Width != 120 {
		t.Errorf("first block width = %v, want 120", b.Width)
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sample(t, scale.Hour), WithTitle("Sprint"), WithTrackLabels()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`<title>Sprint</title>`,
		`Design &lt;v2&gt;`,
		`fill="#F06292"`,
		`fill="#64B5F6"`,
		`>alice</text>`,
		`>bob</text>`,
		`>Review</text>`, // track label of alice's second row
		`>08:00</text>`,
		`>20:00</text>`,
		"whiteboard",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(svg, `class="task"`); got != 3 {
		t.Errorf("task rects = %d, want 3", got)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not closed")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	l, err := layout.Compose(nil, layout.Config{View: scale.DefaultView()})
	if err != nil {
		t.Fatal(err)
	}
	svg := string(RenderSVG(l))
	if strings.Contains(svg, `class="task"`) {
		t.Error("empty layout should draw no tasks")
	}
}

func TestRenderCSV(t *testing.T) {
	tests := []struct {
		g     scale.Granularity
		start string
	}{
		{scale.Hour, "2024-03-04 09:00"},
		{scale.Day, "Mon 09:00"},
		{scale.Month, "04 Mar"},
	}

	for _, tt := range tests {
		t.Run(tt.g.String(), func(t *testing.T) {
			data, err := RenderCSV(sample(t, tt.g))
			if err != nil {
				t.Fatalf("RenderCSV() error: %v", err)
			}
			rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			if err != nil {
				t.Fatalf("csv.ReadAll() error: %v", err)
			}
			if len(rows) != 4 {
				t.Fatalf("rows = %d, want 4", len(rows))
			}
			if got := strings.Join(rows[0], ","); got != "Title,Assigned,Start,End,Info" {
				t.Errorf("header = %q", got)
			}
			if rows[1][0] != "Design <v2>" || rows[1][1] != "alice" || rows[1][2] != tt.start || rows[1][4] != "whiteboard" {
				t.Errorf("first row = %v", rows[1])
			}
		})
	}
}
