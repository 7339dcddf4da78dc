// Package task defines the unit of work drawn on a timeline chart.
//
// A [Task] is a titled interval with an assignee, a fill colour and free-text
// info. Tasks carry a stable [ID] assigned at construction; the layout engine
// keys track assignments by ID, so copying a Task value never changes which
// row it lands on.
//
// The package also provides:
//   - [Palette]: an explicit colour palette with its own round-robin cursor
//   - [Predicate]: plain function filters ([ByAssignee], [ByColor], [ByDateRange], ...)
//
// # Validation
//
// Setters reject empty strings and inverted intervals with an INVALID_TASK
// error from [github.com/matzehuels/ganttline/pkg/errors]. The layout engine
// itself assumes Start <= End and does not re-check; use [Task.Validate] to
// filter malformed tasks before composing a layout.
package task
