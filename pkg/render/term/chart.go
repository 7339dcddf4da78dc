// Package term draws layouts as character-cell charts for terminals.
//
// Each grid column is CellWidth characters wide and each track one line.
// With colour enabled, blocks are painted with the task's fill through
// lipgloss; plain mode draws them as bracketed runs so the output survives
// being piped into a file.
package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Options configures [Render].
type Options struct {
	CellWidth  int  // characters per grid column, default 6
	LabelWidth int  // characters for the lane gutter, default 16
	Plain      bool // no ANSI styling
	FirstRow   int  // first row to draw, for scrolling
	MaxRows    int  // rows to draw, 0 means all
	Legend     bool // append a lane summary table
}

func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = 6
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = 16
	}
	if o.FirstRow < 0 {
		o.FirstRow = 0
	}
	return o
}

var (
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	styleLane   = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)
	styleGrid   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleBlock  = lipgloss.NewStyle().Foreground(lipgloss.Color("#212121"))
)

// segment is one block on a text row, in character cells.
type segment struct {
	start, width int
	title        string
	fill         string
}

// Render draws l as text.
func Render(l layout.Layout, opts Options) string {
	o := opts.withDefaults()
	width := l.Columns * o.CellWidth

	rows := make([][]segment, l.TotalRows)
	for _, r := range l.Visible() {
		start := int(math.Round(r.Offset * float64(o.CellWidth)))
		w := max(int(math.Round(r.Span*float64(o.CellWidth))), 1)
		if start < 0 {
			w += start
			start = 0
		}
		w = min(w, width-start)
		if w <= 0 {
			continue
		}
		rows[r.Row] = append(rows[r.Row], segment{start: start, width: w, title: r.Task.Title, fill: task.Fill(r.Task)})
	}

	laneAt := make(map[int]string, len(l.Lanes))
	for _, ln := range l.Lanes {
		laneAt[ln.FirstRow] = ln.Key
	}

	var b strings.Builder
	b.WriteString(o.style(styleHeader, header(l, o)))
	b.WriteByte('\n')

	last := l.TotalRows
	if o.MaxRows > 0 {
		last = min(last, o.FirstRow+o.MaxRows)
	}
	for row := o.FirstRow; row < last; row++ {
		label := fit(laneAt[row], o.LabelWidth-1)
		b.WriteString(o.style(styleLane, pad(label, o.LabelWidth)))
		b.WriteString(o.line(rows[row], width))
		b.WriteByte('\n')
	}

	if o.Legend && len(l.Lanes) > 0 {
		b.WriteByte('\n')
		b.WriteString(legend(l, o))
		b.WriteByte('\n')
	}
	return b.String()
}

func header(l layout.Layout, o Options) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", o.LabelWidth))
	for _, label := range l.View.Labels() {
		b.WriteString(pad(fit(label, o.CellWidth-1), o.CellWidth))
	}
	return b.String()
}

// line renders the segments of one row over width cells.
func (o Options) line(segs []segment, width int) string {
	var b strings.Builder
	cursor := 0
	for _, s := range segs {
		start := max(s.start, cursor)
		w := s.width - (start - s.start)
		if w <= 0 {
			continue
		}
		b.WriteString(o.gap(cursor, start))
		b.WriteString(o.block(s.title, s.fill, w))
		cursor = start + w
	}
	b.WriteString(o.gap(cursor, width))
	return b.String()
}

// gap fills cells [from, to) with grid dots on column boundaries.
func (o Options) gap(from, to int) string {
	if to <= from {
		return ""
	}
	var b strings.Builder
	for i := from; i < to; i++ {
		if i%o.CellWidth == 0 {
			b.WriteByte('.')
		} else {
			b.WriteByte(' ')
		}
	}
	return o.style(styleGrid, b.String())
}

func (o Options) block(title, fill string, w int) string {
	if o.Plain {
		if w < 3 {
			return strings.Repeat("#", w)
		}
		return "[" + padWith(fit(title, w-2), w-2, '-') + "]"
	}
	return styleBlock.Background(lipgloss.Color(fill)).Render(pad(fit(title, w), w))
}

func (o Options) style(s lipgloss.Style, text string) string {
	if o.Plain {
		return text
	}
	return s.Render(text)
}

func legend(l layout.Layout, o Options) string {
	counts := make([]int, len(l.Lanes))
	for _, r := range l.Records {
		counts[r.Lane]++
	}
	rows := make([][]string, 0, len(l.Lanes))
	for i, ln := range l.Lanes {
		rows = append(rows, []string{ln.Key, fmt.Sprint(ln.TrackCount), fmt.Sprint(counts[i])})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Lane", "Tracks", "Tasks").
		Rows(rows...)
	if !o.Plain {
		t = t.BorderStyle(styleGrid).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return styleHeader
				}
				return lipgloss.NewStyle()
			})
	}
	return t.Render()
}

// fit truncates s to at most n runes.
func fit(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n <= 2 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func pad(s string, n int) string { return padWith(s, n, ' ') }

func padWith(s string, n int, c rune) string {
	if k := n - len([]rune(s)); k > 0 {
		return s + strings.Repeat(string(c), k)
	}
	return s
}
