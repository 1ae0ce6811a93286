// Package render turns serialized layouts into drawable artifacts.
//
// The layout engine already decides every coordinate, so rendering is a
// translation step: ToDOT emits a Graphviz neato graph with all node
// positions pinned, and RenderSVG/RenderPNG rasterize that DOT through the
// embedded Graphviz engine. Renderers never reflow or reposition anything.
package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/tidytree/pkg/export"
)

// pointsPerInch converts between DOT's two unit systems: pos attributes
// are in points, node width/height in inches.
const pointsPerInch = 72

// Options configures DOT generation.
type Options struct {
	// Detailed includes coordinates and metadata in node labels.
	// When false, only the node label is shown.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT with pinned positions. Layout
// coordinates map to DOT points: x stays the horizontal center, and y flips
// sign because DOT's y axis grows upward while layouts grow downward.
// The resulting string renders with [RenderSVG] and [RenderPNG], or with any
// Graphviz install via `neato -n2`.
func ToDOT(l export.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph tidytree {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	// One layout unit is one DOT point. pos is given in points; the size
	// attributes want inches.
	for _, b := range l.Blocks {
		cx := b.X
		cy := -(b.Y + b.Height/2)
		fmt.Fprintf(&buf, "  %d [label=%q, pos=\"%.2f,%.2f!\", width=%.4f, height=%.4f];\n",
			b.ID, fmtLabel(b, opts.Detailed), cx, cy, b.Width/pointsPerInch, b.Height/pointsPerInch)
	}

	buf.WriteString("\n")
	for _, e := range l.Links {
		fmt.Fprintf(&buf, "  %d -> %d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b export.Block, detailed bool) string {
	if !detailed {
		return b.Label
	}

	parts := []string{fmt.Sprintf("at (%.1f, %.1f)", b.X, b.Y)}
	for _, k := range slices.Sorted(maps.Keys(b.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, b.Meta[k]))
	}

	return b.Label + "\n" + strings.Join(parts, "\n")
}
