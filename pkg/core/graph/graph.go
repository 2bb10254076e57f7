package graph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges or the
// graph. Metadata maps are never nil after a node or edge has been added.
type Metadata map[string]any

// Node is a vertex with a position in the plane.
type Node struct {
	ID    string   // Unique identifier
	Label string   // Display label (defaults to ID)
	X, Y  float64  // Current position; written by Relocate
	Meta  Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge connects two nodes. For undirected graphs From and To only fix the
// order in which the endpoints were given.
type Edge struct {
	From string   // Source node ID
	To   string   // Target node ID
	Meta Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// Other returns the endpoint of e opposite to id. For a self-loop it returns
// id itself.
func (e Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Graph is a general graph whose vertices keep their incident edges in
// insertion order.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	directed bool
	nodes    map[string]*Node
	order    []string         // node IDs in insertion order
	edges    []Edge           // insertion order
	incident map[string][]int // nodeID -> indices into edges, insertion order
	meta     Metadata
}

// New creates an empty graph. Directed graphs let the layout engine follow
// only edges whose source is the vertex being expanded. The metadata
// parameter can be nil, in which case an empty map is created.
func New(directed bool, meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		directed: directed,
		nodes:    make(map[string]*Node),
		incident: make(map[string][]int),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (g *Graph) Meta() Metadata { return g.meta }

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds an edge between two existing nodes and appends it to the
// incidence list of both endpoints (once for a self-loop).
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode for missing endpoints.
//
// Parallel edges and self-loops are accepted; the layout engine discards them.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.incident[e.From] = append(g.incident[e.From], idx)
	if e.To != e.From {
		g.incident[e.To] = append(g.incident[e.To], idx)
	}
	return nil
}

// RemoveEdge removes the first edge from→to if it exists. For undirected
// graphs the edge to→from also matches. No error is returned if the edge
// does not exist.
func (g *Graph) RemoveEdge(from, to string) {
	idx := slices.IndexFunc(g.edges, func(e Edge) bool {
		if e.From == from && e.To == to {
			return true
		}
		return !g.directed && e.From == to && e.To == from
	})
	if idx < 0 {
		return
	}
	g.edges = slices.Delete(g.edges, idx, idx+1)
	g.reindex()
}

func (g *Graph) reindex() {
	g.incident = make(map[string][]int, len(g.nodes))
	for i, e := range g.edges {
		g.incident[e.From] = append(g.incident[e.From], i)
		if e.To != e.From {
			g.incident[e.To] = append(g.incident[e.To], i)
		}
	}
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers to the node stored in the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasVertex reports whether a node with the given ID exists.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the stored nodes, so modifications affect the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// IncidentEdges returns the edges touching id in rotational (insertion)
// order. Incoming and outgoing edges are both included for directed graphs.
// Returns nil if the node has no edges or doesn't exist.
func (g *Graph) IncidentEdges(id string) []Edge {
	idxs := g.incident[id]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Edge, len(idxs))
	for i, idx := range idxs {
		out[i] = g.edges[idx]
	}
	return out
}

// Degree returns the number of incident edges of id, counting a self-loop
// once. Returns 0 if the node doesn't exist.
func (g *Graph) Degree(id string) int { return len(g.incident[id]) }

// Relocate moves the node to (x, y). Unknown IDs are ignored.
func (g *Graph) Relocate(id string, x, y float64) {
	if n, ok := g.nodes[id]; ok {
		n.X, n.Y = x, y
	}
}

// Position returns the current coordinates of id.
func (g *Graph) Position(id string) (x, y float64, ok bool) {
	n, ok := g.nodes[id]
	if !ok {
		return 0, 0, false
	}
	return n.X, n.Y, true
}

// Clone returns a deep copy of the graph structure. Metadata maps are copied
// shallowly.
func (g *Graph) Clone() *Graph {
	c := New(g.directed, maps.Clone(g.meta))
	for _, id := range g.order {
		n := *g.nodes[id]
		n.Meta = maps.Clone(n.Meta)
		c.nodes[id] = &n
		c.order = append(c.order, id)
	}
	for _, e := range g.edges {
		e.Meta = maps.Clone(e.Meta)
		c.edges = append(c.edges, e)
	}
	c.reindex()
	return c
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
