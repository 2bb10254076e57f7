package tidy

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tidytree/pkg/core/graph"
)

const (
	// DefaultMinSpacing is the default minimum horizontal distance between
	// neighbouring nodes on the same level.
	DefaultMinSpacing = 10.0

	// DefaultVerticalSpacing is the default distance between levels.
	DefaultVerticalSpacing = 10.0
)

// Graph is the view of a graph the engine needs. [graph.Graph] implements it.
type Graph interface {
	// Directed reports whether only edges sourced at a vertex lead to its
	// children.
	Directed() bool
	// HasVertex reports whether id belongs to the graph.
	HasVertex(id string) bool
	// IncidentEdges lists the edges touching id in a fixed rotational order.
	IncidentEdges(id string) []graph.Edge
	// Relocate moves a vertex. It is the only mutation Embed performs.
	Relocate(id string, x, y float64)
}

var _ Graph = (*graph.Graph)(nil)

// Config holds the layout parameters.
type Config struct {
	Root            string  // Vertex placed at (RootX, RootY); empty means no-op
	MinSpacing      float64 // Minimum horizontal gap between nodes on a level
	VerticalSpacing float64 // Distance between consecutive levels
	RootX, RootY    float64 // Absolute position of the root
}

// Option configures an [Embedder].
type Option func(*Embedder)

// WithRoot sets the root vertex.
func WithRoot(id string) Option { return func(e *Embedder) { e.cfg.Root = id } }

// WithMinSpacing sets the minimum horizontal spacing. Negative and
// non-finite values are ignored.
func WithMinSpacing(d float64) Option {
	return func(e *Embedder) {
		if finite(d) && d >= 0 {
			e.cfg.MinSpacing = d
		}
	}
}

// WithVerticalSpacing sets the distance between levels. Non-finite values
// are ignored.
func WithVerticalSpacing(d float64) Option {
	return func(e *Embedder) {
		if finite(d) {
			e.cfg.VerticalSpacing = d
		}
	}
}

// WithRootPosition sets the absolute position of the root. Non-finite
// coordinates are ignored.
func WithRootPosition(x, y float64) Option {
	return func(e *Embedder) {
		if finite(x) && finite(y) {
			e.cfg.RootX, e.cfg.RootY = x, y
		}
	}
}

// WithConfig replaces the whole configuration. Negative or non-finite
// spacings fall back to the defaults and a non-finite root position to the
// origin.
func WithConfig(cfg Config) Option {
	return func(e *Embedder) {
		e.cfg = cfg
		if !finite(cfg.MinSpacing) || cfg.MinSpacing < 0 {
			e.cfg.MinSpacing = DefaultMinSpacing
		}
		if !finite(cfg.VerticalSpacing) {
			e.cfg.VerticalSpacing = DefaultVerticalSpacing
		}
		if !finite(cfg.RootX) || !finite(cfg.RootY) {
			e.cfg.RootX, e.cfg.RootY = 0, 0
		}
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Embedder) {
		if l != nil {
			e.logger = l
		}
	}
}

// Embedder computes tidy tree layouts. Create one with [New].
type Embedder struct {
	cfg    Config
	logger *log.Logger
}

// New creates an Embedder with default spacing (10, 10), the root at the
// origin and no root vertex.
func New(opts ...Option) *Embedder {
	e := &Embedder{
		cfg: Config{
			MinSpacing:      DefaultMinSpacing,
			VerticalSpacing: DefaultVerticalSpacing,
		},
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns a copy of the current configuration.
func (e *Embedder) Config() Config { return e.cfg }

// SetRoot changes the root vertex used by subsequent Embed calls.
func (e *Embedder) SetRoot(id string) { e.cfg.Root = id }

// TreeEdge is a parent→child link of the extracted spanning tree.
type TreeEdge struct {
	Parent string
	Child  string
}

// Result summarizes an Embed call.
type Result struct {
	// Placed is the number of relocated vertices; zero means nothing moved.
	Placed int
	// Depth is the deepest level reached (the root is level 0).
	Depth int
	// Discarded counts incident edges dropped during extraction: edges to
	// visited vertices, self-loops, parallel edges and, for directed graphs,
	// edges not sourced at the vertex being expanded.
	Discarded int
	// TreeEdges lists the spanning tree in pre-order, siblings left to right.
	TreeEdges []TreeEdge
}

// Embed lays out the tree reachable from the configured root and relocates
// every reachable vertex. Vertices outside that tree are not touched.
//
// Embed is a no-op when g is nil, the root is empty, or g does not contain
// the root.
func (e *Embedder) Embed(g Graph) Result {
	root := e.cfg.Root
	switch {
	case g == nil:
		e.logger.Debug("tidy: no graph, skipping layout")
		return Result{}
	case root == "":
		e.logger.Debug("tidy: no root configured, skipping layout")
		return Result{}
	case !g.HasVertex(root):
		e.logger.Debug("tidy: root not in graph, skipping layout", "root", root)
		return Result{}
	}

	t := extract(g, root)
	newSetup(t.nodes, e.cfg.MinSpacing).run()
	petrify(g, t.nodes, e.cfg)

	res := Result{
		Placed:    len(t.nodes),
		Depth:     t.depth,
		Discarded: t.discarded,
		TreeEdges: t.edges(),
	}
	e.logger.Debug("tidy: layout complete",
		"root", root,
		"placed", res.Placed,
		"depth", res.Depth,
		"discarded", res.Discarded)
	return res
}
