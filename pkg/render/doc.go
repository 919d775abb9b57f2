// Package render converts rendered diagrams between output formats.
//
// [ToPDF] and [ToPNG] convert SVG produced by the [nodelink] renderer using
// the external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(ix, nodelink.Options{}))
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
package render
