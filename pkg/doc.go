// Package pkg holds the ganttline libraries.
//
// # Overview
//
// Ganttline turns a list of timed tasks into a swim-lane chart: tasks are
// grouped into lanes by assignee, overlapping tasks inside a lane are packed
// onto separate tracks, and the result is projected onto an hour, day or
// month grid.
//
// # Data flow
//
//	tasks.yaml / tasks.json / tasks.csv
//	         ↓
//	    [taskio] decode and validate
//	         ↓
//	    [layout] group, pack and project onto a [scale.View]
//	         ↓
//	    [render] pixel geometry, then sink / lanegraph / term
//	         ↓
//	    SVG, JSON, CSV, DOT, lane diagram, text
//
// [pipeline] wires these steps together behind a cache ([cache]) and is
// what the CLI and the HTTP API call.
//
// # Quick start
//
//	tasks, _ := taskio.Load("sprint.yaml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, tasks, pipeline.Options{
//	    Scale:   "hour",
//	    Formats: []string{"svg"},
//	})
//	os.WriteFile("sprint.svg", result.Artifacts["svg"], 0o644)
//
// # Packages
//
//   - [task]: the Task type, colour palette and filters
//   - [scale]: granularities and visible windows
//   - [layout]: lane grouping, track packing and grid projection
//   - [taskio]: JSON, YAML and CSV task files
//   - [render]: frames and blocks, plus the output subpackages
//   - [pipeline]: load → layout → render with caching
//   - [cache]: file, Redis and no-op caches
//   - [config]: the TOML configuration file
//   - [errors]: coded errors shared by the CLI and the API
//   - [observability]: pipeline, cache and server hooks
//   - [buildinfo]: version information
//
// [task]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/task
// [scale]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/scale
// [scale.View]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/scale#View
// [layout]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/layout
// [taskio]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/taskio
// [render]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/buildinfo
package pkg
