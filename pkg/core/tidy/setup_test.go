package tidy

import (
	"slices"
	"testing"
)

func TestExtract_PreOrderArena(t *testing.T) {
	g := build(t, false, "r-a", "r-b", "a-c", "b-d", "b-e")
	tr := extract(g, "r")

	var got []string
	for _, n := range tr.nodes {
		got = append(got, n.vertex)
	}
	want := []string{"r", "a", "c", "b", "d", "e"}
	if !slices.Equal(got, want) {
		t.Fatalf("arena order = %v, want %v", got, want)
	}
	for i, n := range tr.nodes {
		for _, c := range n.children {
			if c <= i {
				t.Errorf("child %d of %d precedes its parent", c, i)
			}
			if tr.nodes[c].parent != i || tr.nodes[c].level != n.level+1 {
				t.Errorf("node %d has parent %d level %d", c, tr.nodes[c].parent, tr.nodes[c].level)
			}
		}
	}
	if tr.depth != 2 {
		t.Errorf("depth = %d, want 2", tr.depth)
	}
}

func TestSetup_ThreadsShallowSibling(t *testing.T) {
	// r has a deep left child and a leaf on the right; the leaf's right
	// contour must continue into a's child.
	g := build(t, false, "r-a", "r-b", "a-c")
	tr := extract(g, "r")
	newSetup(tr.nodes, 10).run()

	const a, c, b = 1, 2, 3
	if tr.nodes[b].vertex != "b" || tr.nodes[c].vertex != "c" {
		t.Fatalf("unexpected arena layout")
	}
	nb := tr.nodes[b]
	if !nb.threaded || nb.rightThread != c {
		t.Fatalf("b right thread = %d (threaded=%v), want %d", nb.rightThread, nb.threaded, c)
	}
	// a at -5.5, c directly below, b at 5.5.
	if nb.rightDx != -11 {
		t.Errorf("b right dx = %v, want -11", nb.rightDx)
	}
	if tr.nodes[a].offset != -5.5 || nb.offset != 5.5 || tr.nodes[c].offset != 0 {
		t.Errorf("offsets a=%v b=%v c=%v", tr.nodes[a].offset, nb.offset, tr.nodes[c].offset)
	}
}

func TestSetup_Extremes(t *testing.T) {
	g := build(t, false, "r-a", "r-b", "r-c", "a-d", "c-e")
	tr := extract(g, "r")
	s := newSetup(tr.nodes, 10)
	s.run()

	// Arena: r0 a1 d2 b3 c4 e5.
	if l, r := s.left[0], s.right[0]; l.node != 2 || r.node != 5 || l.level != 2 || r.level != 2 {
		t.Fatalf("extremes = %+v / %+v, want d and e at level 2", l, r)
	}
	if s.left[0].off != -s.right[0].off {
		t.Errorf("extremes not symmetric: %v vs %v", s.left[0].off, s.right[0].off)
	}
}

func TestSetup_PinchedMiddleKeepsSpacing(t *testing.T) {
	// Wide outer subtrees with a short one between them.
	g := build(t, false,
		"r-a", "r-m", "r-b",
		"a-a1", "a-a2", "a-a3",
		"b-b1", "b-b2", "b-b3",
		"a3-x", "b1-y",
	)
	res := New(WithRoot("r")).Embed(g)
	checkSeparation(t, g, res, 10)
	checkCentered(t, g, res)

	xa, _ := position(t, g, "a")
	xm, _ := position(t, g, "m")
	xb, _ := position(t, g, "b")
	if xm-xa != xb-xm {
		t.Errorf("middle child not midway: a=%v m=%v b=%v", xa, xm, xb)
	}
}
