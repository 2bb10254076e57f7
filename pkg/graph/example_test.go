package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tidytree/pkg/core/tidy"
	"github.com/matzehuels/tidytree/pkg/graph"
)

func ExampleReadGraph() {
	in := `{
	  "nodes": [{"id": "root"}, {"id": "a"}, {"id": "b"}],
	  "edges": [{"from": "root", "to": "a"}, {"from": "root", "to": "b"}]
	}`
	g, err := graph.ReadGraph(strings.NewReader(in))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// Nodes: 3
	// Edges: 2
}

func ExampleNewLayout() {
	g, _ := graph.ReadGraph(strings.NewReader(`{
	  "nodes": [{"id": "root"}, {"id": "a"}, {"id": "b"}],
	  "edges": [{"from": "root", "to": "a"}, {"from": "root", "to": "b"}]
	}`))
	e := tidy.New(tidy.WithRoot("root"))
	l := graph.NewLayout(g, e.Config(), e.Embed(g))

	for _, n := range l.Nodes {
		fmt.Printf("%s level=%d x=%.1f\n", n.ID, n.Level, n.X)
	}
	fmt.Printf("width=%.0f height=%.0f\n", l.Bounds.Width(), l.Bounds.Height())
	// Output:
	// root level=0 x=0.0
	// a level=1 x=-5.5
	// b level=1 x=5.5
	// width=11 height=10
}
