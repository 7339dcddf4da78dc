package cli

import (
	"io"
	"testing"
	"time"

	"github.com/matzehuels/ganttline/pkg/config"
	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/scale"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}
	want := []string{"layout", "render", "show", "view", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestChartFlagsOptions(t *testing.T) {
	unset := chartFlags{start: -1, end: -1}

	tests := []struct {
		name      string
		flags     func(f *chartFlags)
		wantScale string
		wantRange scale.Range
		code      errors.Code
	}{
		{
			name:      "config defaults",
			flags:     func(*chartFlags) {},
			wantScale: "hour",
			wantRange: scale.Range{Start: 8, End: 20},
		},
		{
			name:      "hour window",
			flags:     func(f *chartFlags) { f.start, f.end = 9, 17 },
			wantScale: "hour",
			wantRange: scale.Range{Start: 9, End: 17},
		},
		{
			name:      "start only keeps configured end",
			flags:     func(f *chartFlags) { f.start = 10 },
			wantScale: "hour",
			wantRange: scale.Range{Start: 10, End: 20},
		},
		{
			name:      "scale change drops configured window",
			flags:     func(f *chartFlags) { f.scale = "month" },
			wantScale: "month",
			wantRange: scale.Range{},
		},
		{
			name:      "month start uses month default end",
			flags:     func(f *chartFlags) { f.scale, f.start = "month", 3 },
			wantScale: "month",
			wantRange: scale.Range{Start: 3, End: 12},
		},
		{
			name:  "unknown scale",
			flags: func(f *chartFlags) { f.scale = "fortnight" },
			code:  errors.ErrCodeInvalidScale,
		},
		{
			name:  "inverted hour window",
			flags: func(f *chartFlags) { f.start, f.end = 18, 9 },
			code:  errors.ErrCodeInvalidRange,
		},
		{
			name:  "bad from",
			flags: func(f *chartFlags) { f.from = "yesterday" },
			code:  errors.ErrCodeInvalidInput,
		},
		{
			name:  "from after to",
			flags: func(f *chartFlags) { f.from, f.to = "2024-03-05", "2024-03-04" },
			code:  errors.ErrCodeInvalidRange,
		},
		{
			name:      "palette colour name",
			flags:     func(f *chartFlags) { f.color = "teal" },
			wantScale: "hour",
			wantRange: scale.Range{Start: 8, End: 20},
		},
		{
			name:  "bad colour",
			flags: func(f *chartFlags) { f.color = "crimson" },
			code:  errors.ErrCodeInvalidColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := unset
			tt.flags(&f)
			opts, err := f.options(config.Default())
			if tt.code != "" {
				if got := errors.GetCode(err); got != tt.code {
					t.Fatalf("code = %q, want %q (err %v)", got, tt.code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("options: %v", err)
			}
			if opts.Scale != tt.wantScale {
				t.Errorf("Scale = %q, want %q", opts.Scale, tt.wantScale)
			}
			if opts.Range != tt.wantRange {
				t.Errorf("Range = %+v, want %+v", opts.Range, tt.wantRange)
			}
			if opts.Logger != nil {
				t.Error("options should leave Logger for the runner")
			}
		})
	}
}

func TestChartFlagsOptionsTimezone(t *testing.T) {
	cfg := config.Default()
	cfg.Chart.Timezone = "Europe/Berlin"

	f := chartFlags{start: -1, end: -1, from: "2024-03-04 09:00", minDuration: 30 * time.Minute}
	opts, err := f.options(cfg)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Location.String() != "Europe/Berlin" {
		t.Errorf("Location = %v, want Europe/Berlin", opts.Location)
	}
	if got := opts.From.UTC().Hour(); got != 8 {
		t.Errorf("From hour in UTC = %d, want 8", got)
	}
	if opts.MinDuration != 30*time.Minute {
		t.Errorf("MinDuration = %v", opts.MinDuration)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"json", []string{"json"}},
		{"svg, csv ,dot", []string{"svg", "csv", "dot"}},
		{"svg,,txt,", []string{"svg", "txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseFormats(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}
