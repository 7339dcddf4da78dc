// Package layout turns a set of tasks into chart geometry expressed in
// column units.
//
// A layout pass runs in four steps, each exposed on its own so renderers and
// tests can use them independently:
//
//  1. [Group] splits the tasks that pass a filter into lanes, keyed by
//     assignee (or title for unassigned tasks), in first-appearance order.
//  2. [Pack] assigns every task of a lane to the lowest track whose previous
//     occupant ended more than [EPS] before the task starts.
//  3. [OffsetAndSpan] projects a task's start and end onto fractional grid
//     columns for a [scale.Granularity].
//  4. [Compose] stacks the lanes vertically and emits one [Record] per task.
//
// Everything here is a pure function of its inputs. The only side effect is
// documented on [Pack], which sorts the slice it is given.
//
// Offsets and spans are not clipped to the visible window; renderers call
// [Clip] with their column count and drop what falls outside.
package layout
