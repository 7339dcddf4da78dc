package layout

import (
	"slices"
	"time"

	"github.com/matzehuels/ganttline/pkg/task"
)

// EPS is the gap a task must leave after the previous occupant of a track
// before it may share that track. Tasks that touch, or come within EPS of
// each other, go on separate rows so their blocks never visually abut.
const EPS = 1000 * time.Millisecond

// Tracks maps each packed task to its row within the lane.
type Tracks map[task.ID]int

// Count returns the number of tracks in use.
func (tr Tracks) Count() int {
	n := 0
	for _, i := range tr {
		n = max(n, i+1)
	}
	return n
}

// Conflicts reports whether a and b may not share a track.
func Conflicts(a, b *task.Task) bool {
	return !a.Start.After(b.End.Add(EPS)) && !b.Start.After(a.End.Add(EPS))
}

// Pack assigns tracks greedily: tasks are taken in start order and each goes
// on the lowest-numbered track it does not conflict with, opening a new track
// when none fits.
//
// Pack stable-sorts tasks by start time in place; ties keep their original
// order. Pass a copy if the caller's order matters.
func Pack(tasks []*task.Task) Tracks {
	slices.SortStableFunc(tasks, func(a, b *task.Task) int {
		return a.Start.Compare(b.Start)
	})

	tracks := make(Tracks, len(tasks))
	var ends []time.Time
	for _, t := range tasks {
		row := -1
		for i, end := range ends {
			if t.Start.After(end.Add(EPS)) {
				row = i
				break
			}
		}
		if row < 0 {
			row = len(ends)
			ends = append(ends, t.End)
		} else {
			ends[row] = t.End
		}
		tracks[t.ID] = row
	}
	return tracks
}
