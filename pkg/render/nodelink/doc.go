// Package nodelink renders a box index as a node-link diagram.
//
// Each node box of a [dnd.Index] becomes a Graphviz node, linked from the
// innermost box that contains it. The diagram makes the targeter's
// innermost-first walk visible: leaves at the bottom, the root on top.
//
// # Usage
//
//	ix := dnd.BuildIndex(view, nil, dnd.DefaultConfig())
//	dot := nodelink.ToDOT(ix, nodelink.Options{Detailed: true, Strips: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: labels carry the border box, flow direction and refusals
//   - Strips: insertion strips are drawn as dashed nodes next to their anchor
//
// Boxes that refuse children are filled grey; synthetic slot boxes are dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
