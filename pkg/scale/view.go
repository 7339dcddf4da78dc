package scale

import (
	"fmt"

	"github.com/matzehuels/ganttline/pkg/errors"
)

// Range is an inclusive [Start, End] window of hours (0-23) or months (1-12).
type Range struct {
	Start int `json:"start" toml:"start"`
	End   int `json:"end" toml:"end"`
}

// Default visible windows.
var (
	DefaultHourRange  = Range{Start: 8, End: 20}
	DefaultMonthRange = Range{Start: 1, End: 12}
)

var (
	weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	monthLabels   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// MonthRange builds a month window, clamping both ends to 1..12 and
// swapping them when they arrive reversed.
func MonthRange(start, end int) Range {
	start, end = clamp(start, 1, 12), clamp(end, 1, 12)
	if start > end {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// View is the granularity plus visible window a layout is computed for.
type View struct {
	Granularity Granularity `json:"scale"`
	Range       Range       `json:"range"`
}

// NewView returns a normalized view for g with the given window.
func NewView(g Granularity, r Range) View {
	return View{Granularity: g, Range: r}.Normalize()
}

// DefaultView is an Hour view over the default working-day window.
func DefaultView() View {
	return View{Granularity: Hour, Range: DefaultHourRange}
}

// Normalize repairs a window that does not fit the granularity: Month views
// outside 1..12 fall back to the full year and Hour views with End <= Start
// fall back to [DefaultHourRange]. Day views ignore the window.
func (v View) Normalize() View {
	switch v.Granularity {
	case Month:
		if v.Range.Start < 1 || v.Range.End > 12 || v.Range.End < v.Range.Start {
			v.Range = DefaultMonthRange
		}
	case Hour:
		if v.Range.End <= v.Range.Start || v.Range.Start < 0 || v.Range.End > 23 {
			v.Range = DefaultHourRange
		}
	}
	return v
}

// Validate checks the granularity and window without repairing them.
func (v View) Validate() error {
	if !v.Granularity.Valid() {
		return errors.New(errors.ErrCodeInvalidScale, "unknown scale %d", int(v.Granularity))
	}
	r := v.Range
	switch v.Granularity {
	case Hour:
		if r.Start < 0 || r.End > 23 || r.End <= r.Start {
			return errors.New(errors.ErrCodeInvalidRange, "hour range %d..%d must satisfy 0 <= start < end <= 23", r.Start, r.End)
		}
	case Month:
		if r.Start < 1 || r.End > 12 || r.End < r.Start {
			return errors.New(errors.ErrCodeInvalidRange, "month range %d..%d must satisfy 1 <= start <= end <= 12", r.Start, r.End)
		}
	}
	return nil
}

// Columns returns the number of grid columns the view shows.
func (v View) Columns() int {
	if v.Granularity == Day {
		return len(weekdayLabels)
	}
	return max(0, v.Range.End-v.Range.Start+1)
}

// Anchor is the range start the coordinate mapping measures from. Day views
// are always anchored at Sunday.
func (v View) Anchor() int {
	if v.Granularity == Day {
		return 0
	}
	return v.Range.Start
}

// Labels returns one header label per column.
func (v View) Labels() []string {
	n := v.Columns()
	out := make([]string, 0, n)
	switch v.Granularity {
	case Hour:
		for h := v.Range.Start; h <= v.Range.End; h++ {
			out = append(out, fmt.Sprintf("%02d:00", h))
		}
	case Day:
		out = append(out, weekdayLabels...)
	case Month:
		for m := v.Range.Start; m <= v.Range.End; m++ {
			if m >= 1 && m <= 12 {
				out = append(out, monthLabels[m-1])
			}
		}
	}
	return out
}

// Shift moves the window by n units, keeping its width and staying inside
// the granularity's domain. Day views are returned unchanged.
func (v View) Shift(n int) View {
	lo, hi := 0, 23
	switch v.Granularity {
	case Day:
		return v
	case Month:
		lo, hi = 1, 12
	}
	width := v.Range.End - v.Range.Start
	start := clamp(v.Range.Start+n, lo, hi-width)
	v.Range = Range{Start: start, End: start + width}
	return v
}

// String renders the view as "hour 8..20".
func (v View) String() string {
	if v.Granularity == Day {
		return "day"
	}
	return fmt.Sprintf("%s %d..%d", v.Granularity, v.Range.Start, v.Range.End)
}
