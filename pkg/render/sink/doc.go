// Package sink writes composed layouts to output formats.
//
//   - [RenderSVG]: a standalone chart with header, lane gutter and task blocks
//   - [RenderJSON]: the layout records (and optionally pixel blocks) for
//     external tools
//   - [RenderCSV]: the task table the chart was built from, with dates
//     formatted for the view's granularity
//
// All writers are pure functions of their inputs and safe for concurrent use.
package sink
