package graph

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	core "github.com/matzehuels/tidytree/pkg/core/graph"
	"github.com/matzehuels/tidytree/pkg/core/tidy"
)

func sample(directed bool) *core.Graph {
	g := core.New(directed, nil)
	g.AddNode(core.Node{ID: "root", Label: "Root"})
	g.AddNode(core.Node{ID: "a", Meta: core.Metadata{"weight": "2"}})
	g.AddNode(core.Node{ID: "b"})
	g.AddNode(core.Node{ID: "c"})
	g.AddEdge(core.Edge{From: "root", To: "b"})
	g.AddEdge(core.Edge{From: "a", To: "root"})
	g.AddEdge(core.Edge{From: "a", To: "c"})
	return g
}

func TestMarshalGraph(t *testing.T) {
	tests := []struct {
		name      string
		build     func() *core.Graph
		wantNodes int
		wantEdges int
		check     func(t *testing.T, g Graph)
	}{
		{
			name:  "Empty",
			build: func() *core.Graph { return core.New(false, nil) },
		},
		{
			name:      "PreservesOrder",
			build:     func() *core.Graph { return sample(false) },
			wantNodes: 4,
			wantEdges: 3,
			check: func(t *testing.T, g Graph) {
				var ids []string
				for _, n := range g.Nodes {
					ids = append(ids, n.ID)
				}
				if want := []string{"root", "a", "b", "c"}; !slices.Equal(ids, want) {
					t.Errorf("node order = %v, want %v", ids, want)
				}
				if g.Edges[1] != (Edge{From: "a", To: "root"}) {
					t.Errorf("edge[1] = %+v", g.Edges[1])
				}
			},
		},
		{
			name:      "PreservesLabelAndMeta",
			build:     func() *core.Graph { return sample(true) },
			wantNodes: 4,
			wantEdges: 3,
			check: func(t *testing.T, g Graph) {
				if !g.Directed {
					t.Error("Directed = false, want true")
				}
				if g.Nodes[0].Label != "Root" {
					t.Errorf("label = %q, want Root", g.Nodes[0].Label)
				}
				if g.Nodes[1].Meta["weight"] != "2" {
					t.Errorf("meta = %v", g.Nodes[1].Meta)
				}
				if g.Nodes[2].Meta != nil {
					t.Errorf("empty meta serialized: %v", g.Nodes[2].Meta)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalGraph(tt.build())
			if err != nil {
				t.Fatalf("MarshalGraph() error: %v", err)
			}
			g, err := UnmarshalGraph(data)
			if err != nil {
				t.Fatalf("UnmarshalGraph() error: %v", err)
			}
			if len(g.Nodes) != tt.wantNodes || len(g.Edges) != tt.wantEdges {
				t.Errorf("got %d nodes, %d edges; want %d, %d", len(g.Nodes), len(g.Edges), tt.wantNodes, tt.wantEdges)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestReadGraph_RoundTripKeepsRotationalOrder(t *testing.T) {
	orig := sample(false)
	var buf bytes.Buffer
	if err := WriteGraph(orig, &buf); err != nil {
		t.Fatalf("WriteGraph() error: %v", err)
	}
	g, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph() error: %v", err)
	}
	var got []string
	for _, e := range g.IncidentEdges("root") {
		got = append(got, e.Other("root"))
	}
	if want := []string{"b", "a"}; !slices.Equal(got, want) {
		t.Errorf("IncidentEdges(root) = %v, want %v", got, want)
	}
}

func TestToGraph_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      Graph
		wantErr error
	}{
		{"EmptyID", Graph{Nodes: []Node{{ID: ""}}}, core.ErrInvalidNodeID},
		{"Duplicate", Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}}, core.ErrDuplicateNodeID},
		{"UnknownSource", Graph{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{From: "x", To: "a"}}}, core.ErrUnknownSourceNode},
		{"UnknownTarget", Graph{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{From: "a", To: "x"}}}, core.ErrUnknownTargetNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToGraph(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ToGraph() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadGraph_InvalidJSON(t *testing.T) {
	if _, err := ReadGraph(strings.NewReader("{not json")); err == nil {
		t.Error("ReadGraph() expected error for invalid JSON")
	}
}

func TestGraphFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(sample(true), path); err != nil {
		t.Fatalf("WriteGraphFile() error: %v", err)
	}
	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error: %v", err)
	}
	if !g.Directed() || g.NodeCount() != 4 || g.EdgeCount() != 3 {
		t.Errorf("read back directed=%v nodes=%d edges=%d", g.Directed(), g.NodeCount(), g.EdgeCount())
	}
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadGraphFile(missing) error = %v, want ErrNotExist", err)
	}
}

func TestWriteGraphFile_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	for range 2 {
		if err := WriteGraphFile(sample(true), path); err != nil {
			t.Fatalf("WriteGraphFile() error: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "graph.json" {
		t.Errorf("dir holds %v, want only graph.json", entries)
	}

	if err := WriteGraphFile(sample(true), filepath.Join(dir, "missing", "graph.json")); err == nil {
		t.Error("WriteGraphFile() into a missing directory should fail")
	}
}

func embedSample(t *testing.T) (*core.Graph, tidy.Config, tidy.Result) {
	t.Helper()
	g := sample(false)
	e := tidy.New(tidy.WithRoot("root"), tidy.WithRootPosition(50, 100))
	res := e.Embed(g)
	if res.Placed != 4 {
		t.Fatalf("Placed = %d, want 4", res.Placed)
	}
	return g, e.Config(), res
}

func TestNewLayout(t *testing.T) {
	g, cfg, res := embedSample(t)
	l := NewLayout(g, cfg, res)

	var ids []string
	for _, n := range l.Nodes {
		ids = append(ids, n.ID)
	}
	// root's children are b then a (edge order); c hangs below a.
	if want := []string{"root", "b", "a", "c"}; !slices.Equal(ids, want) {
		t.Fatalf("node order = %v, want %v", ids, want)
	}

	byID := map[string]Node{}
	for _, n := range l.Nodes {
		byID[n.ID] = n
	}
	if n := byID["c"]; n.Level != 2 || n.Parent != "a" || n.Y != 80 {
		t.Errorf("c = %+v, want level 2, parent a, y 80", n)
	}
	if n := byID["root"]; n.Parent != "" || n.Label != "Root" || n.X != 50 {
		t.Errorf("root = %+v", n)
	}
	want := Bounds{MinX: 44.5, MinY: 80, MaxX: 55.5, MaxY: 100}
	if l.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", l.Bounds, want)
	}
	if l.Bounds.Width() != 11 || l.Bounds.Height() != 20 {
		t.Errorf("size = %vx%v", l.Bounds.Width(), l.Bounds.Height())
	}
	if len(l.Edges) != 3 || l.Root != "root" || l.Spacing != 10 {
		t.Errorf("layout = %+v", l)
	}
}

func TestNewLayout_NoOp(t *testing.T) {
	g := sample(false)
	e := tidy.New()
	l := NewLayout(g, e.Config(), e.Embed(g))
	if len(l.Nodes) != 0 || l.Bounds != (Bounds{}) {
		t.Errorf("no-op layout = %+v", l)
	}
}

func TestLayout_Apply(t *testing.T) {
	g, cfg, res := embedSample(t)
	l := NewLayout(g, cfg, res)

	fresh := sample(false)
	if moved := l.Apply(fresh); moved != 4 {
		t.Errorf("Apply() moved %d, want 4", moved)
	}
	for _, n := range g.Nodes() {
		x, y, _ := fresh.Position(n.ID)
		if x != n.X || y != n.Y {
			t.Errorf("%s at (%v, %v), want (%v, %v)", n.ID, x, y, n.X, n.Y)
		}
	}
}

func TestUnmarshalLayout_Validation(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"MissingRoot", `{"nodes":[{"id":"a"}]}`, ErrMissingRoot},
		{"NoNodes", `{"root":"a","nodes":[]}`, ErrEmptyLayout},
		{"Valid", `{"root":"a","nodes":[{"id":"a","x":1,"y":2}]}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("UnmarshalLayout() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if _, err := UnmarshalLayout([]byte("nope")); err == nil {
		t.Error("UnmarshalLayout() expected error for invalid JSON")
	}
}

func TestLayoutFile_RoundTrip(t *testing.T) {
	g, cfg, res := embedSample(t)
	l := NewLayout(g, cfg, res)
	l.ID = "abc"

	path := filepath.Join(t.TempDir(), "tree.layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if got.ID != "abc" || got.Bounds != l.Bounds || len(got.Nodes) != len(l.Nodes) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestComputeBounds_Empty(t *testing.T) {
	if b := ComputeBounds(nil); b != (Bounds{}) {
		t.Errorf("ComputeBounds(nil) = %+v", b)
	}
}
