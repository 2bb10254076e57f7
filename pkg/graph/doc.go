// Package graph provides serialization types for input graphs and computed
// tree layouts.
//
// This package defines the wire format used for JSON files, API payloads
// and cache entries.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph], [Layout]: serialization types (this package)
//   - pkg/core/graph.Graph: in-memory graph the engine works on
//   - pkg/core/tidy: the layout engine producing positions
//
// Use [FromGraph]/[ToGraph] to convert graphs and [NewLayout]/[Layout.Apply]
// to move positions between a core graph and a Layout.
//
// # Graph Serialization
//
// Graphs use a node-link JSON format. Edge order is the rotational order at
// each vertex and therefore the left-to-right order of children:
//
//	{
//	  "directed": false,
//	  "nodes": [{"id": "root"}, {"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "root", "to": "a"}, {"from": "root", "to": "b"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("tree.json")   // File → core graph
//	graph.WriteGraphFile(g, "output.json")     // core graph → File
//	data, _ := graph.MarshalGraph(g)           // core graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)    // []byte → Graph
//
// # Layout Serialization
//
// A Layout records the parameters, bounds and the placed nodes with their
// level and tree parent:
//
//	res := tidy.New(tidy.WithRoot("root")).Embed(g)
//	l := graph.NewLayout(g, cfg, res)
//	graph.WriteLayoutFile(l, "tree.layout.json")
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
