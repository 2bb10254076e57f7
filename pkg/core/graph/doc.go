// Package graph provides a general graph with ordered incidence lists and
// mutable vertex positions, used as the input and output surface of the
// tidy tree layout engine.
//
// # Overview
//
// A [Graph] may be directed or undirected, may contain cycles, parallel edges
// and self-loops, and may be disconnected. Nothing about it has to be a tree:
// the layout engine derives a spanning tree from a chosen root and discards
// everything else.
//
// # Rotational Order
//
// Every vertex keeps its incident edges in the order they were added with
// [Graph.AddEdge]. That order is the "rotational order" the layout engine
// walks to derive children, so it directly decides the left-to-right order of
// siblings in the final drawing:
//
//	g := graph.New(false, nil)
//	g.AddNode(graph.Node{ID: "root"})
//	g.AddNode(graph.Node{ID: "a"})
//	g.AddNode(graph.Node{ID: "b"})
//	g.AddEdge(graph.Edge{From: "root", To: "a"}) // a is left of b
//	g.AddEdge(graph.Edge{From: "root", To: "b"})
//
// # Positions
//
// Each [Node] carries an X/Y position. [Graph.Relocate] is the single mutator
// used by the layout engine to write results back.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package graph
