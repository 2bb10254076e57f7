package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	core "github.com/matzehuels/tidytree/pkg/core/graph"
	"github.com/matzehuels/tidytree/pkg/core/tidy"
)

// =============================================================================
// Layout - Placed Tree Format
// =============================================================================

// Layout is the serialization format for a computed tree layout.
//
// Nodes holds only the vertices reachable from Root, in pre-order with
// siblings left to right. Edges holds the parent→child links of the
// spanning tree; edges dropped during extraction are only counted.
type Layout struct {
	ID string `json:"id,omitempty"`

	// Parameters the layout was computed with
	Root            string  `json:"root"`
	Spacing         float64 `json:"spacing"`
	VerticalSpacing float64 `json:"vertical_spacing"`
	RootX           float64 `json:"root_x"`
	RootY           float64 `json:"root_y"`

	// Result
	Depth     int    `json:"depth"`
	Discarded int    `json:"discarded"`
	Bounds    Bounds `json:"bounds"`
	Nodes     []Node `json:"nodes"`
	Edges     []Edge `json:"edges,omitempty"`
}

// Bounds is the axis-aligned bounding box of a layout's node centers.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

var (
	// ErrEmptyLayout is returned when a layout has no nodes.
	ErrEmptyLayout = errors.New("layout must contain nodes")

	// ErrMissingRoot is returned when a layout does not name its root.
	ErrMissingRoot = errors.New("layout must name its root")
)

// =============================================================================
// Building and Applying Layouts
// =============================================================================

// NewLayout captures the positions written by an embed run. Only vertices
// listed in res are included; a no-op result yields a layout without nodes.
func NewLayout(g *core.Graph, cfg tidy.Config, res tidy.Result) Layout {
	l := Layout{
		Root:            cfg.Root,
		Spacing:         cfg.MinSpacing,
		VerticalSpacing: cfg.VerticalSpacing,
		RootX:           cfg.RootX,
		RootY:           cfg.RootY,
		Depth:           res.Depth,
		Discarded:       res.Discarded,
	}
	if res.Placed == 0 {
		return l
	}

	children := make(map[string][]string, res.Placed)
	for _, e := range res.TreeEdges {
		children[e.Parent] = append(children[e.Parent], e.Child)
		l.Edges = append(l.Edges, Edge{From: e.Parent, To: e.Child})
	}

	type item struct {
		id, parent string
		level      int
	}
	stack := []item{{id: cfg.Root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := Node{ID: it.id, Level: it.level, Parent: it.parent}
		if cn, ok := g.Node(it.id); ok {
			n.Label = cn.Label
			n.X, n.Y = cn.X, cn.Y
			n.Meta = cleanMeta(cn.Meta)
		}
		l.Nodes = append(l.Nodes, n)

		cs := children[it.id]
		for i := len(cs) - 1; i >= 0; i-- {
			stack = append(stack, item{id: cs[i], parent: it.id, level: it.level + 1})
		}
	}
	l.Bounds = ComputeBounds(l.Nodes)
	return l
}

// Apply relocates the vertices of g to the positions stored in l and returns
// the number of vertices moved. Nodes unknown to g are skipped.
func (l *Layout) Apply(g *core.Graph) int {
	moved := 0
	for _, n := range l.Nodes {
		if g.HasVertex(n.ID) {
			g.Relocate(n.ID, n.X, n.Y)
			moved++
		}
	}
	return moved
}

// ComputeBounds returns the bounding box of the given nodes, or the zero
// Bounds when there are none.
func ComputeBounds(nodes []Node) Bounds {
	if len(nodes) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, n := range nodes {
		b.MinX = min(b.MinX, n.X)
		b.MaxX = max(b.MaxX, n.X)
		b.MinY = min(b.MinY, n.Y)
		b.MaxY = max(b.MaxY, n.Y)
	}
	return b
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that the root and at least one node are present.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Root == "" {
		return Layout{}, ErrMissingRoot
	}
	if len(l.Nodes) == 0 {
		return Layout{}, ErrEmptyLayout
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file, replacing it atomically.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
