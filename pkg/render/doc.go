// Package render turns a laid-out mind map into images.
//
// Two renderers are provided:
//
//   - [RenderSVG] draws the diagram directly: rounded node boxes coloured by
//     level (see package style) and floating bezier edges attached with the
//     geometry package, the same way the interactive viewer draws them.
//   - [ToDOT] and [RenderDOT] export the diagram to Graphviz. Node positions
//     are pinned, so neato keeps the computed layout and only routes edges.
//     [RenderDOT] runs Graphviz in-process via go-graphviz and produces SVG
//     or PNG.
//
// Both renderers need positioned nodes. Unmeasured nodes are given the size
// estimated from their label by [Prepare]; nodes without a position are left
// out of the SVG and left to neato in the DOT export.
//
//	g = render.Prepare(g)
//	svg := render.RenderSVG(g, render.WithPadding(40))
//	png, err := render.RenderDOT(ctx, render.ToDOT(g, render.DOTOptions{}), render.FormatPNG)
package render
