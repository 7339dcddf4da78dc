// Package lanegraph renders a layout as a Graphviz diagram of its lanes.
//
// Every lane becomes a cluster and every track a left-to-right chain of the
// tasks packed onto it, so the diagram shows at a glance which tasks run in
// sequence and which had to be split onto parallel rows:
//
//	dot := lanegraph.ToDOT(l, lanegraph.Options{})
//	svg, err := lanegraph.RenderSVG(ctx, dot)
//
// [ToDOT] output can also be saved and fed to the dot command line tool.
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package lanegraph
