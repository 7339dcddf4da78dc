// Package render turns a composed [layout.Layout] into pixel geometry shared
// by every output format.
//
// # Overview
//
// The layout engine works in column units. Renderers choose a [Frame]
// (column width, row height, label gutter, header height) and call [Blocks]
// to obtain clipped pixel rectangles, one per visible task:
//
//	l, _ := layout.Compose(tasks, layout.Config{View: scale.DefaultView()})
//	blocks := render.Blocks(l, render.DefaultFrame())
//
// Tasks that start past the last visible column, or that would be left with
// no width after clipping, are dropped. Anything narrower than
// Frame.MinBlockWidth is widened so it stays visible.
//
// # Output formats
//
// Format-specific writers live in subpackages:
//   - [sink]: SVG chart, JSON layout, CSV export
//   - [lanegraph]: Graphviz lane diagram (DOT and SVG)
//   - [term]: coloured terminal chart
package render
