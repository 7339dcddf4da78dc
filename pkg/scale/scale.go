// Package scale defines the time granularities a chart can be drawn at and
// the visible column range for each of them.
//
// A chart column is one hour, one weekday or one month. Hour and Month views
// show a configurable window ([Range]); Day views always show a Sunday-first
// week of seven columns.
package scale

import (
	"fmt"
	"strings"

	"github.com/matzehuels/ganttline/pkg/errors"
)

// Granularity is the time unit of one chart column.
type Granularity int

const (
	Hour Granularity = iota
	Day
	Month
)

// All lists every supported granularity in attribute-index order.
var All = []Granularity{Hour, Day, Month}

// String returns the lower-case name used by flags, config files and the API.
func (g Granularity) String() string {
	switch g {
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Month:
		return "month"
	}
	return fmt.Sprintf("Granularity(%d)", int(g))
}

// Valid reports whether g is one of the known granularities.
func (g Granularity) Valid() bool {
	return g == Hour || g == Day || g == Month
}

// Parse converts a name ("hour", "day", "month", case-insensitive) to a Granularity.
func Parse(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hour", "hours", "h":
		return Hour, nil
	case "day", "days", "d", "week":
		return Day, nil
	case "month", "months", "m":
		return Month, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidScale, "unknown scale %q (want hour, day or month)", s)
}

// FromIndex maps a stored attribute index (0, 1, 2) back to a Granularity.
func FromIndex(i int) (Granularity, error) {
	g := Granularity(i)
	if !g.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidScale, "unknown scale index %d", i)
	}
	return g, nil
}

// MarshalText implements encoding.TextMarshaler.
func (g Granularity) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidScale, "unknown scale %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Granularity) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}
