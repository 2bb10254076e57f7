// Package tidy lays out rooted trees with the Reingold–Tilford "tidier
// trees" algorithm, generalized to nodes with any number of children.
//
// # Overview
//
// Given a general graph and a root vertex, [Embedder.Embed] runs three
// stages in order:
//
//  1. Extraction: a depth-first walk from the root builds an ordered,
//     acyclic tree. Edges to already visited vertices are dropped, which
//     makes the walk cycle-safe; for directed graphs only edges whose source
//     is the current vertex are followed.
//  2. Setup: a post-order pass places every subtree relative to its parent.
//     Sibling subtrees are merged one at a time by walking the facing
//     contours level by level; threads link a shallow subtree's contour to
//     the deeper neighbour so later walks never see a gap.
//  3. Petrify: a pre-order pass turns relative offsets into absolute
//     coordinates and writes them back with Relocate.
//
// # Guarantees
//
// Nodes sharing a level are at least the configured minimum spacing apart,
// every node sits at rootY - level*verticalSpacing, parents are centered
// between their first and last child, and a mirrored tree produces the
// mirrored drawing.
//
// # Configuration
//
//	e := tidy.New(
//	    tidy.WithRoot("root"),
//	    tidy.WithMinSpacing(10),
//	    tidy.WithVerticalSpacing(20),
//	    tidy.WithRootPosition(400, 0),
//	)
//	res := e.Embed(g)
//
// An empty root, or a root the graph does not know, makes Embed a no-op:
// no vertex moves and the returned [Result] reports zero placed vertices.
//
// # Concurrency
//
// An Embedder holds only configuration and may be shared. Each Embed call
// builds and discards its own tree; the graph passed in must not be
// mutated concurrently.
package tidy
