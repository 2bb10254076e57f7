package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tidytree/pkg/core/render"
	"github.com/matzehuels/tidytree/pkg/graph"
)

// DefaultUnit is the number of points drawn per layout unit.
const DefaultUnit = 7.2

// fallbackSpacing sizes nodes when a layout does not record its spacing.
const fallbackSpacing = 10

// Options configures node-link diagram rendering.
type Options struct {
	// Unit is the number of points per layout unit. Zero means DefaultUnit.
	Unit float64

	// Labels draws vertex labels inside the nodes.
	Labels bool

	// Detailed adds the level and metadata to labels. Implies Labels.
	Detailed bool
}

func (o Options) unit() float64 {
	if o.Unit > 0 {
		return o.Unit
	}
	return DefaultUnit
}

// ToDOT converts a placed layout to Graphviz DOT with every node pinned at
// its computed position. Only the tree edges of the layout are drawn.
func ToDOT(l graph.Layout, opts Options) string {
	unit := opts.unit()
	spacing := l.Spacing
	if spacing <= 0 {
		spacing = fallbackSpacing
	}
	// Nodes take 60% of the minimum gap so neighbours never touch.
	size := 0.6 * spacing * unit / 72

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=white, fixedsize=%t, width=%s, fontsize=%s];\n",
		!opts.Labels && !opts.Detailed, fmtFloat(size), fmtFloat(max(8, size*36)))
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts)),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(n.X*unit), fmtFloat(n.Y*unit)),
		}
		if n.ID == l.Root {
			attrs = append(attrs, "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, opts Options) string {
	switch {
	case opts.Detailed:
		parts := []string{fmt.Sprintf("level: %d", n.Level)}
		for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
			parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
		}
		return n.DisplayLabel() + "\n" + strings.Join(parts, "\n")
	case opts.Labels:
		return n.DisplayLabel()
	default:
		return ""
	}
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

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
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing starts at the
// origin and carries explicit pixel dimensions.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion. A scale of 2.0
// doubles the resolution.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
