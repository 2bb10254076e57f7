// Package nodelink renders placed tree layouts as node-link diagrams using
// Graphviz.
//
// # Overview
//
// The tidy engine computes every coordinate itself, so Graphviz is only used
// as a drawing backend. [ToDOT] emits each node with a pinned position
// (pos="x,y!") and the graph is laid out with the neato engine, which keeps
// pinned nodes where they are and only routes the straight tree edges.
//
//	l, _ := graph.ReadLayoutFile("tree.layout.json")
//	dot := nodelink.ToDOT(l, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// PNG and PDF go through [render.ToPNG] and [render.ToPDF], which need
// rsvg-convert (librsvg) on the PATH.
//
// # Coordinates
//
// Layout units are multiplied by [Options.Unit] to get points. Layout y
// values shrink with depth, which matches Graphviz's y-up convention, so the
// root is drawn at the top.
//
// [render.ToPNG]: github.com/matzehuels/tidytree/pkg/core/render.ToPNG
// [render.ToPDF]: github.com/matzehuels/tidytree/pkg/core/render.ToPDF
package nodelink
