package graph

import (
	"encoding/json"
	"fmt"
	"maps"

	core "github.com/matzehuels/tidytree/pkg/core/graph"
)

// =============================================================================
// Graph - Input Serialization
// =============================================================================

// Graph is the canonical serialization format for input graphs.
// Used for CLI input files, API requests and cache keys.
//
// Order is significant: the order of Edges fixes the rotational order of
// incident edges at every vertex, which the layout engine uses as the
// left-to-right order of children.
type Graph struct {
	Directed bool   `json:"directed,omitempty"`
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
}

// =============================================================================
// Node - Unified Node Type
// =============================================================================

// Node is the unified node type for all serialization contexts.
// Used in both Graph and Layout; Level and Parent are only set in layouts.
type Node struct {
	ID     string         `json:"id"`
	Label  string         `json:"label,omitempty"` // Display label (defaults to ID)
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Level  int            `json:"level,omitempty"`  // Depth below the layout root
	Parent string         `json:"parent,omitempty"` // Tree parent; empty for the root
	Meta   map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// =============================================================================
// Edge
// =============================================================================

// Edge connects two nodes. For undirected graphs From and To are
// interchangeable.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// core.Graph ↔ Graph Conversion
// =============================================================================

// FromGraph converts a core graph to its serialization format.
// Node and edge order are preserved so the result round-trips to the same
// rotational order.
func FromGraph(g *core.Graph) Graph {
	nodes := g.Nodes()
	edges := g.Edges()
	out := Graph{
		Directed: g.Directed(),
		Nodes:    make([]Node, len(nodes)),
		Edges:    make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = Node{
			ID:    n.ID,
			Label: n.Label,
			X:     n.X,
			Y:     n.Y,
			Meta:  cleanMeta(n.Meta),
		}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{From: e.From, To: e.To}
	}
	return out
}

// ToGraph converts a Graph to a core graph.
// Returns an error for empty or duplicate node IDs and for edges with
// unknown endpoints.
func ToGraph(gj Graph) (*core.Graph, error) {
	g := core.New(gj.Directed, nil)
	for _, nj := range gj.Nodes {
		n := core.Node{
			ID:    nj.ID,
			Label: nj.Label,
			X:     nj.X,
			Y:     nj.Y,
			Meta:  maps.Clone(nj.Meta),
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %q: %w", nj.ID, err)
		}
	}
	for _, ej := range gj.Edges {
		if err := g.AddEdge(core.Edge{From: ej.From, To: ej.To}); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", ej.From, ej.To, err)
		}
	}
	return g, nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

// cleanMeta returns a copy of m, or nil when m is empty so that it is
// omitted from JSON.
func cleanMeta(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}
