package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/render"
)

// Options configures box index diagrams.
type Options struct {
	// Detailed adds geometry, flow direction and acceptance to node labels.
	// When false, only the selectable key and container kind are shown.
	Detailed bool
	// Strips includes insertion strips as dashed nodes hanging off their
	// anchor's node box.
	Strips bool
}

// ToDOT converts a box index to Graphviz DOT format. Node boxes become
// boxes linked from the innermost node box that geometrically contains
// them, so the diagram shows the nesting the targeter walks. Boxes that
// refuse children are drawn grey.
func ToDOT(ix *dnd.Index, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	byElement := make(map[*dnd.Element]string, len(ix.NodeBoxes))
	for i, nb := range ix.NodeBoxes {
		id := fmt.Sprintf("n%d", i)
		if _, ok := byElement[nb.Element]; !ok {
			byElement[nb.Element] = id
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(nb, opts.Detailed), ", "))
	}

	if opts.Strips {
		buf.WriteString("\n")
		for i, ib := range ix.InsertionBoxes {
			id := fmt.Sprintf("s%d", i)
			label := fmt.Sprintf("%s %s", ib.Loc, ib.Anchor.ID)
			fmt.Fprintf(&buf, "  %s [label=%q, shape=box, style=\"dashed\", fontsize=10];\n", id, label)
			if from, ok := byElement[ib.Element]; ok {
				fmt.Fprintf(&buf, "  %s -> %s [style=dotted, arrowhead=none];\n", from, id)
			}
		}
	}

	buf.WriteString("\n")
	for i := range ix.NodeBoxes {
		if p := parentOf(ix.NodeBoxes, i); p >= 0 {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", p, i)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// parentOf returns the index of the innermost later box containing box i.
// NodeBoxes are ordered innermost first, so ancestors come after i.
func parentOf(boxes []*dnd.NodeBox, i int) int {
	for j := i + 1; j < len(boxes); j++ {
		if boxes[j].Box.ContainsBox(boxes[i].Box) {
			return j
		}
	}
	return -1
}

func fmtLabel(nb *dnd.NodeBox, detailed bool) string {
	kind := string(nb.Container)
	if kind == "" {
		kind = "leaf"
	}
	head := nb.Selectable.Key() + "\n" + kind
	if !detailed {
		return head
	}

	b := nb.Box
	parts := []string{
		fmt.Sprintf("box: %g,%g %gx%g", b.Left, b.Top, b.Width, b.Height),
		"flow: " + nb.FlowDir.String(),
	}
	if nb.AcceptsChildren != nil {
		parts = append(parts, "children: "+string(nb.AcceptsChildren.Code))
	}
	if nb.AcceptsSiblings {
		parts = append(parts, "siblings: yes")
	}
	if nb.Grid != nil {
		parts = append(parts, fmt.Sprintf("grid: %dx%d", len(nb.Grid.Rows), len(nb.Grid.Cols)))
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(nb *dnd.NodeBox, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(nb, detailed))}
	if nb.AcceptsChildren != nil {
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=black")
	}
	if nb.Container == dnd.ContainerSlot {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
