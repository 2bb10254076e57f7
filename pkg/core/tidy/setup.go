package tidy

import (
	"fmt"
	"slices"
)

// extreme records the leftmost or rightmost node on the deepest level of a
// subtree, with its horizontal offset from the subtree root.
type extreme struct {
	node  int
	off   float64
	level int
}

func (x extreme) negate() extreme { return extreme{node: x.node, off: -x.off, level: x.level} }

// orient selects the direction of a merge pass. A mirrored pass processes
// siblings right to left with every horizontal quantity negated, so it is
// the left-to-right pass applied to the mirror image of the subtree.
type orient struct{ mirror bool }

func (o orient) x(v float64) float64 {
	if o.mirror {
		return -v
	}
	return v
}

// setup computes relative offsets for every node of an extracted tree.
type setup struct {
	nodes  []node
	minSep float64
	left   []extreme // per node, relative to that node
	right  []extreme
}

func newSetup(nodes []node, minSep float64) *setup {
	return &setup{
		nodes:  nodes,
		minSep: minSep,
		left:   make([]extreme, len(nodes)),
		right:  make([]extreme, len(nodes)),
	}
}

// run lays out all subtrees bottom-up. Nodes are stored in pre-order, so a
// reverse scan visits every child before its parent.
func (s *setup) run() {
	for t := len(s.nodes) - 1; t >= 0; t-- {
		s.layout(t)
	}
}

// layout places the children of t relative to t and records t's extremes.
//
// Children are merged left to right and, separately, right to left on the
// mirror image. Averaging the two placements keeps both sets of separation
// constraints satisfied and makes the result independent of direction.
// The parent is then centered between its first and last child, and a
// final pass over the fixed offsets installs threads and extremes.
func (s *setup) layout(t int) {
	cs := s.nodes[t].children
	k := len(cs)
	if k == 0 {
		s.left[t] = extreme{node: t, level: s.nodes[t].level}
		s.right[t] = s.left[t]
		return
	}
	if k == 1 {
		s.nodes[cs[0]].offset = 0
	} else {
		fwd, _, _ := s.merge(cs, orient{}, false)
		rev := slices.Clone(cs)
		slices.Reverse(rev)
		back, _, _ := s.merge(rev, orient{mirror: true}, false)

		xs := make([]float64, k)
		for i := range cs {
			xs[i] = (fwd[i] - back[k-1-i]) / 2
		}
		mid := (xs[0] + xs[k-1]) / 2
		for i, c := range cs {
			s.nodes[c].offset = xs[i] - mid
		}
	}
	_, s.left[t], s.right[t] = s.merge(cs, orient{}, true)
}

// merge walks the siblings cs in pass order, fusing each into the clump of
// those before it. Positions and extremes are returned in pass coordinates.
//
// With fixed set the current offsets are kept and only threads and extremes
// are computed. Otherwise each new sibling starts on top of its left
// neighbour; the contour walk raises the root separation wherever the gap
// on some level falls below the minimum, and the sibling moves right by
// half of (separation + 1) while the clump moves left by the same amount.
func (s *setup) merge(cs []int, o orient, fixed bool) ([]float64, extreme, extreme) {
	k := len(cs)
	pos := make([]float64, k)
	if fixed {
		for i, c := range cs {
			pos[i] = o.x(s.nodes[c].offset)
		}
	}
	// Clump members are stored relative to drift so a push is O(1).
	var drift float64

	lo, hi := s.extremes(cs[0], o)
	lo.off += pos[0]
	hi.off += pos[0]

	for j := 1; j < k; j++ {
		sub := cs[j]
		slo, shi := s.extremes(sub, o)

		l, lsum := cs[j-1], pos[j-1]+drift
		r, rsum := sub, 0.0
		rootSep, curSep := s.minSep, s.minSep
		for l != none && r != none {
			if curSep < s.minSep {
				rootSep += s.minSep - curSep
				curSep = s.minSep
			}
			var dl, dr float64
			l, dl = s.trail(l, hi.level, o)
			r, dr = s.lead(r, slo.level, o)
			lsum += dl
			rsum += dr
			curSep += dr - dl
		}

		var push float64
		if !fixed {
			push = (rootSep + 1) / 2
			at := pos[j-1] + drift + push
			drift -= push
			pos[j] = at - drift
		}
		subX := pos[j] + drift
		lo.off -= push
		hi.off -= push

		switch {
		case l != none:
			// The clump is deeper: continue the sibling's trailing contour
			// into it.
			s.thread(shi.node, l, o.x((lsum-push)-(subX+shi.off)), !o.mirror)
		case r != none:
			// The sibling is deeper: continue the clump's leading contour
			// into it.
			s.thread(lo.node, r, o.x((subX+rsum)-lo.off), o.mirror)
		}

		if slo.level > lo.level {
			lo = extreme{node: slo.node, off: subX + slo.off, level: slo.level}
		}
		if shi.level >= hi.level {
			hi = extreme{node: shi.node, off: subX + shi.off, level: shi.level}
		}
	}

	for i := range pos {
		pos[i] += drift
	}
	return pos, lo, hi
}

// extremes returns the pass-coordinate leftmost and rightmost deepest nodes
// of the subtree rooted at v.
func (s *setup) extremes(v int, o orient) (lo, hi extreme) {
	if o.mirror {
		return s.right[v].negate(), s.left[v].negate()
	}
	return s.left[v], s.right[v]
}

// trail steps down the contour a clump shows to its right-hand neighbour in
// pass coordinates. It stops at the clump's deepest level.
func (s *setup) trail(v, depth int, o orient) (int, float64) {
	if s.nodes[v].level >= depth {
		return none, 0
	}
	next, dx := s.step(v, !o.mirror)
	return next, o.x(dx)
}

// lead steps down the contour a sibling shows to the clump on its left in
// pass coordinates. It stops at the sibling's deepest level.
func (s *setup) lead(v, depth int, o orient) (int, float64) {
	if s.nodes[v].level >= depth {
		return none, 0
	}
	next, dx := s.step(v, o.mirror)
	return next, o.x(dx)
}

// step returns the next node below v on its right or left contour and the
// signed horizontal distance to it.
func (s *setup) step(v int, right bool) (int, float64) {
	n := &s.nodes[v]
	var next int
	var dx float64
	switch {
	case len(n.children) > 0 && right:
		next = n.children[len(n.children)-1]
		dx = s.nodes[next].offset
	case len(n.children) > 0:
		next = n.children[0]
		dx = s.nodes[next].offset
	case right:
		next, dx = n.rightThread, n.rightDx
	default:
		next, dx = n.leftThread, n.leftDx
	}
	if next == none || s.nodes[next].level != n.level+1 {
		panic(fmt.Sprintf("tidy: broken contour below %q at level %d", n.vertex, n.level))
	}
	return next, dx
}

// thread links from to target. dx is the real distance x(target) - x(from)
// and right selects which contour the thread continues.
func (s *setup) thread(from, target int, dx float64, right bool) {
	n := &s.nodes[from]
	n.threaded = true
	if right {
		n.rightThread, n.rightDx = target, dx
	} else {
		n.leftThread, n.leftDx = target, dx
	}
}
