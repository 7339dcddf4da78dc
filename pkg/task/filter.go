package task

import (
	"strings"
	"time"
)

// Predicate decides whether a task takes part in a layout.
type Predicate func(*Task) bool

// All keeps every task.
func All(*Task) bool { return true }

// ByAssignee keeps tasks assigned to user. An empty user keeps everything.
func ByAssignee(user string) Predicate {
	if user == "" {
		return All
	}
	return func(t *Task) bool { return t.Assignee == user }
}

// ByColor keeps tasks drawn in hex (case-insensitive). Tasks without a
// colour of their own match [DefaultFill].
func ByColor(hex string) Predicate {
	return func(t *Task) bool { return strings.EqualFold(Fill(t), hex) }
}

// ByDateRange keeps tasks that start strictly after from and end strictly before to.
func ByDateRange(from, to time.Time) Predicate {
	return func(t *Task) bool { return t.Start.After(from) && t.End.Before(to) }
}

// ByMinDuration keeps tasks lasting at least d.
func ByMinDuration(d time.Duration) Predicate {
	return func(t *Task) bool { return t.Duration() >= d }
}

// And keeps tasks accepted by every predicate. Nil predicates are skipped.
func And(preds ...Predicate) Predicate {
	return func(t *Task) bool {
		for _, p := range preds {
			if p != nil && !p(t) {
				return false
			}
		}
		return true
	}
}
