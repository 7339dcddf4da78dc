package layout

import "github.com/matzehuels/ganttline/pkg/task"

// Lane is a named group of tasks drawn as a contiguous band of rows.
type Lane struct {
	Key   string
	Tasks []*task.Task
}

// Group partitions the tasks accepted by keep into lanes. A nil keep accepts
// everything. Lanes appear in the order their first task appears in tasks
// and keep input order inside; the input slice itself is left untouched.
func Group(tasks []*task.Task, keep task.Predicate) []Lane {
	if keep == nil {
		keep = task.All
	}

	index := make(map[string]int)
	var lanes []Lane
	for _, t := range tasks {
		if !keep(t) {
			continue
		}
		key := t.LaneKey()
		i, ok := index[key]
		if !ok {
			i = len(lanes)
			index[key] = i
			lanes = append(lanes, Lane{Key: key})
		}
		lanes[i].Tasks = append(lanes[i].Tasks, t)
	}
	return lanes
}
