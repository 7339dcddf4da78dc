package layout

import (
	"fmt"
	"time"

	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Minimum spans keeping zero-length tasks visible.
const (
	MinHourSpan  = 1.0 / 60
	MinMonthSpan = 1.0 / 30
)

const monthUnit = 30 * 24 * time.Hour

// OffsetAndSpan projects t onto the grid of granularity g. rangeStart is the
// first visible hour (Hour) or month (Month); Day grids always start on
// Sunday and ignore it. Calendar fields are read in the location of t.Start.
//
// An unknown granularity is a programming error and panics; validate user
// input with [scale.Parse] or go through [Compose].
func OffsetAndSpan(t *task.Task, g scale.Granularity, rangeStart int) (offset, span float64) {
	switch g {
	case scale.Hour:
		return hourCoords(t, rangeStart)
	case scale.Day:
		return dayCoords(t)
	case scale.Month:
		return monthCoords(t, rangeStart)
	}
	panic(fmt.Sprintf("layout: unknown granularity %d", int(g)))
}

func hourCoords(t *task.Task, rangeStart int) (float64, float64) {
	y, m, d := t.Start.Date()
	anchor := time.Date(y, m, d, rangeStart, 0, 0, 0, t.Start.Location())
	offset := t.Start.Sub(anchor).Hours()
	span := max(t.End.Sub(t.Start).Hours(), MinHourSpan)
	return offset, span
}

func dayCoords(t *task.Task) (float64, float64) {
	offset := float64(t.Start.Weekday() - time.Sunday)
	end := t.End.In(t.Start.Location())
	span := float64(calendarDays(t.Start, end) + 1)
	return offset, span
}

// calendarDays counts midnights crossed between the dates of a and b. The
// dates are compared in UTC so DST transitions cannot shorten a day.
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}

func monthCoords(t *task.Task, rangeStart int) (float64, float64) {
	s := t.Start
	days := daysIn(s.Year(), s.Month())
	hour := float64(s.Hour()) + float64(s.Minute())/60
	frac := (float64(s.Day()-1) + hour/24) / float64(days)
	offset := float64(int(s.Month())-rangeStart) + frac
	span := max(float64(t.End.Sub(s))/float64(monthUnit), MinMonthSpan)
	return offset, span
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
