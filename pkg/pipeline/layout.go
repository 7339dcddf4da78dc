package pipeline

import (
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/task"
)

// Compose validates opts and lays out tasks. Tasks that fail validation are
// left out of the chart rather than failing the run.
func Compose(tasks []*task.Task, opts Options) (layout.Layout, error) {
	if err := opts.Validate(); err != nil {
		return layout.Layout{}, err
	}
	v, err := opts.View()
	if err != nil {
		return layout.Layout{}, err
	}

	valid := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			opts.Logger.Warn("skipping task", "id", t.ID, "error", err)
			continue
		}
		valid = append(valid, t)
	}

	return layout.Compose(valid, layout.Config{View: v, Filter: opts.Filter()})
}
