package tidy

import "github.com/matzehuels/tidytree/pkg/core/graph"

// none marks a missing thread or parent.
const none = -1

// node is one vertex of the extracted tree. Nodes live in a slice in
// pre-order, so every descendant has a larger index than its ancestors.
type node struct {
	vertex   string
	parent   int
	children []int // left to right
	level    int
	offset   float64 // horizontal offset from the parent

	// Threads continue a contour past a leaf. The dx fields hold the signed
	// distance x(target) - x(this node).
	threaded    bool
	leftThread  int
	rightThread int
	leftDx      float64
	rightDx     float64
}

func newNode(vertex string, parent, level int) node {
	return node{
		vertex:      vertex,
		parent:      parent,
		level:       level,
		leftThread:  none,
		rightThread: none,
	}
}

// tree is the ordered spanning tree produced by extraction.
type tree struct {
	nodes     []node
	depth     int
	discarded int
}

// edges returns the tree edges in pre-order.
func (t *tree) edges() []TreeEdge {
	if len(t.nodes) < 2 {
		return nil
	}
	out := make([]TreeEdge, 0, len(t.nodes)-1)
	for i := 1; i < len(t.nodes); i++ {
		out = append(out, TreeEdge{
			Parent: t.nodes[t.nodes[i].parent].vertex,
			Child:  t.nodes[i].vertex,
		})
	}
	return out
}

// frame is one pending vertex of the depth-first walk.
type frame struct {
	idx        int
	edges      []graph.Edge
	next       int
	parentSeen bool
}

// extract builds the depth-first spanning tree rooted at root. The walk is
// iterative but visits vertices in the same order a recursive walk over
// IncidentEdges would, so children keep the graph's rotational order.
func extract(g Graph, root string) *tree {
	t := &tree{nodes: []node{newNode(root, none, 0)}}
	directed := g.Directed()
	visited := map[string]bool{root: true}
	stack := []frame{{idx: 0, edges: g.IncidentEdges(root)}}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next == len(f.edges) {
			stack = stack[:len(stack)-1]
			continue
		}
		e := f.edges[f.next]
		f.next++

		cur := t.nodes[f.idx]
		w := e.Other(cur.vertex)

		// The edge that discovered this vertex shows up again in its own
		// incidence list; skip it once without counting it.
		if !f.parentSeen && cur.parent != none && isTreeEdge(e, directed, t.nodes[cur.parent].vertex, cur.vertex) {
			f.parentSeen = true
			continue
		}
		if directed && e.From != cur.vertex {
			t.discarded++
			continue
		}
		if visited[w] {
			t.discarded++
			continue
		}

		visited[w] = true
		child := len(t.nodes)
		level := cur.level + 1
		t.nodes = append(t.nodes, newNode(w, f.idx, level))
		t.nodes[f.idx].children = append(t.nodes[f.idx].children, child)
		if level > t.depth {
			t.depth = level
		}
		stack = append(stack, frame{idx: child, edges: g.IncidentEdges(w)})
	}
	return t
}

func isTreeEdge(e graph.Edge, directed bool, parent, child string) bool {
	if directed {
		return e.From == parent && e.To == child
	}
	return e.Other(child) == parent
}
