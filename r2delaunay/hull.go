// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"math"

	"github.com/golang/geo/r2"
)

// hullNode is one point of the moving boundary. Nodes live in an arena
// indexed by point index; a point joins the boundary at most once.
type hullNode struct {
	prev, next int
	// edge is the half-edge from this node to next, interior on its left.
	edge    int
	removed bool
}

// hull is the circular boundary of the points inserted so far, plus an
// angular hash over a pivot used to find a nearby live node quickly.
type hull struct {
	nodes  []hullNode
	start  int
	size   int
	center r2.Point
	hash   []int
}

func newHull(n int, center r2.Point) *hull {
	h := &hull{
		nodes:  make([]hullNode, n),
		center: center,
		hash:   make([]int, int(math.Ceil(math.Sqrt(float64(n))))),
	}
	for i := range h.hash {
		h.hash[i] = noEdge
	}
	return h
}

// init makes the counter-clockwise triangle i0, i1, i2 the boundary. The
// triangle's half-edges must be 0, 1 and 2.
func (h *hull) init(i0, i1, i2 int, points []r2.Point) {
	h.nodes[i0] = hullNode{prev: i2, next: i1, edge: 0}
	h.nodes[i1] = hullNode{prev: i0, next: i2, edge: 1}
	h.nodes[i2] = hullNode{prev: i1, next: i0, edge: 2}
	h.start = i0
	h.size = 3

	h.rehash(i0, points[i0])
	h.rehash(i1, points[i1])
	h.rehash(i2, points[i2])
}

func (h *hull) key(p r2.Point) int {
	a := pseudoAngle(p.X-h.center.X, p.Y-h.center.Y)
	return int(math.Floor(a/4*float64(len(h.hash)))) % len(h.hash)
}

// rehash stores node i in the bucket of p, replacing whatever was there.
func (h *hull) rehash(i int, p r2.Point) {
	h.hash[h.key(p)] = i
}

// lookup probes forward from the bucket of p and returns the first live node.
func (h *hull) lookup(p r2.Point) (int, bool) {
	k := h.key(p)
	for j := range len(h.hash) {
		i := h.hash[(k+j)%len(h.hash)]
		if i != noEdge && !h.nodes[i].removed {
			return i, true
		}
	}
	return noEdge, false
}

// insert links a new node i between after and before.
func (h *hull) insert(i, after, before int) {
	h.nodes[i].prev = after
	h.nodes[i].next = before
	h.nodes[i].removed = false
	h.nodes[after].next = i
	h.nodes[before].prev = i
	h.start = after
	h.size++
}

// remove tombstones node i. Its neighbours are relinked by the caller.
func (h *hull) remove(i int) {
	h.nodes[i].removed = true
	h.size--
}

// replaceEdge updates the node that owns half-edge from so that it owns to.
func (h *hull) replaceEdge(from, to int) {
	i := h.start
	for {
		if h.nodes[i].edge == from {
			h.nodes[i].edge = to
			return
		}
		i = h.nodes[i].prev
		if i == h.start {
			return
		}
	}
}

// ids returns the boundary in counter-clockwise order.
func (h *hull) ids() []int {
	ids := make([]int, 0, h.size)
	i := h.start
	for range h.size {
		ids = append(ids, i)
		i = h.nodes[i].next
	}
	return ids
}
