package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/tidytree/pkg/cache"
	core "github.com/matzehuels/tidytree/pkg/core/graph"
	"github.com/matzehuels/tidytree/pkg/core/tidy"
	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/graph"
)

// GenerateLayout embeds g from opts.Root and captures the placed tree.
// The reachable vertices of g are relocated as a side effect.
//
// Returns an ErrCodeRootNotFound error when the root is not a vertex of g.
func GenerateLayout(g *core.Graph, opts Options) (graph.Layout, error) {
	opts.SetLayoutDefaults()
	if g == nil || !g.HasVertex(opts.Root) {
		return graph.Layout{}, errors.New(errors.ErrCodeRootNotFound, "root %q is not a vertex of the graph", opts.Root)
	}

	e := tidy.New(tidy.WithConfig(opts.EmbedConfig()), tidy.WithLogger(opts.Logger))
	res := e.Embed(g)
	return graph.NewLayout(g, e.Config(), res), nil
}

// GraphHash hashes the structure of g: direction, vertices, labels,
// metadata and edges in rotational order. Positions are left out because
// the engine overwrites them, so a graph hashes the same before and after
// it has been laid out.
func GraphHash(g *core.Graph) string {
	gj := graph.FromGraph(g)
	for i := range gj.Nodes {
		gj.Nodes[i].X, gj.Nodes[i].Y = 0, 0
	}
	data, _ := json.Marshal(gj)
	return cache.Hash(data)
}
