// Package pkg provides the libraries behind tidytree.
//
// # Overview
//
// tidytree places the vertices of a graph as a tidy tree: a spanning tree is
// extracted from a chosen root, each parent is centered over its children,
// subtrees at the same depth keep a minimum distance apart, and mirror-image
// subtrees are drawn as mirror images. The pkg directory is organized as:
//
//  1. [core] - Domain logic (graph model, tidy layout engine, rendering)
//  2. [graph] - Serialization types for graphs and layouts
//  3. [pipeline] - Orchestration (layout → render) with caching
//  4. [cache] - File, Redis and null cache backends
//  5. [server] - HTTP API over the pipeline
//
// # Architecture
//
// The typical data flow:
//
//	graph.json
//	     ↓
//	[graph] package (decode into a core graph)
//	     ↓
//	[core/tidy] package (extract, setup, petrify)
//	     ↓
//	[core/render/nodelink] package (DOT with pinned positions)
//	     ↓
//	SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/tidytree/pkg/core/graph"
//	    "github.com/matzehuels/tidytree/pkg/core/tidy"
//	)
//
//	g := graph.New(false, nil)
//	_ = g.AddNode(graph.Node{ID: "root"})
//	_ = g.AddNode(graph.Node{ID: "left"})
//	_ = g.AddNode(graph.Node{ID: "right"})
//	_ = g.AddEdge(graph.Edge{From: "root", To: "left"})
//	_ = g.AddEdge(graph.Edge{From: "root", To: "right"})
//
//	res := tidy.New(tidy.WithRoot("root")).Embed(g)
//	x, y, _ := g.Position("left") // -5.5, -10
//
// Most callers go through [pipeline.Runner], which validates options,
// caches layouts by graph content and renders the requested formats.
//
// # Stability
//
// Packages under pkg/ are public API. The internal/ directory holds the CLI
// and is not importable from outside the module.
package pkg
