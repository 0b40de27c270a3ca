// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"cmp"
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const noEdge = -1

// triangulator owns all mutable state of a single construction.
type triangulator struct {
	points []r2.Point
	eps    float64

	triangles []int
	halfedges []int
	trisLen   int

	hull      *hull
	edgeStack []int
}

func newTriangulator(points []r2.Point, eps float64) *triangulator {
	maxTriangles := max(2*len(points)-5, 1)
	return &triangulator{
		points:    points,
		eps:       eps,
		triangles: make([]int, maxTriangles*3),
		halfedges: make([]int, maxTriangles*3),
		edgeStack: make([]int, 0, 64),
	}
}

func (tr *triangulator) run() error {
	i0, i1, i2, err := tr.seed()
	if err != nil {
		return err
	}

	center, _ := circumcenter(tr.points[i0], tr.points[i1], tr.points[i2])
	ids := tr.order(center)

	tr.hull = newHull(len(tr.points), center)
	tr.addTriangle(i0, i1, i2, noEdge, noEdge, noEdge)
	tr.hull.init(i0, i1, i2, tr.points)

	var prev r2.Point
	for k, i := range ids {
		p := tr.points[i]
		if k > 0 && tr.coincident(p, prev) {
			continue
		}
		prev = p

		if i == i0 || i == i1 || i == i2 ||
			tr.coincident(p, tr.points[i0]) ||
			tr.coincident(p, tr.points[i1]) ||
			tr.coincident(p, tr.points[i2]) {
			continue
		}

		if err := tr.insert(i); err != nil {
			return err
		}
	}

	tr.triangles = tr.triangles[:tr.trisLen]
	tr.halfedges = tr.halfedges[:tr.trisLen]
	return nil
}

func (tr *triangulator) coincident(a, b r2.Point) bool {
	return math.Abs(a.X-b.X) <= tr.eps && math.Abs(a.Y-b.Y) <= tr.eps
}

// seed picks a small, well-centered counter-clockwise starting triangle.
func (tr *triangulator) seed() (int, int, int, error) {
	pts := tr.points
	c := r2.RectFromPoints(pts...).Center()

	i0 := 0
	minDist := math.Inf(1)
	for i, p := range pts {
		if d := squaredDistance(c, p); d < minDist {
			i0 = i
			minDist = d
		}
	}
	p0 := pts[i0]

	i1 := noEdge
	minDist = math.Inf(1)
	for i, p := range pts {
		if i == i0 || tr.coincident(p, p0) {
			continue
		}
		if d := squaredDistance(p0, p); d < minDist {
			i1 = i
			minDist = d
		}
	}
	if i1 == noEdge {
		return 0, 0, 0, errors.Wrap(ErrNoTriangulation, "r2delaunay: all points coincide")
	}
	p1 := pts[i1]

	i2 := noEdge
	minRadius := math.Inf(1)
	for i, p := range pts {
		if i == i0 || i == i1 || tr.coincident(p, p0) || tr.coincident(p, p1) {
			continue
		}
		if r := circumradius(p0, p1, p); r < minRadius {
			i2 = i
			minRadius = r
		}
	}
	if i2 == noEdge {
		return 0, 0, 0, errors.Wrap(ErrNoTriangulation, "r2delaunay: all points are collinear")
	}

	if orient(p0, p1, pts[i2]) < 0 {
		i1, i2 = i2, i1
	}
	return i0, i1, i2, nil
}

// order returns all point indices sorted by distance from center, ties
// broken by x, then y, then index.
func (tr *triangulator) order(center r2.Point) []int {
	pts := tr.points
	dists := make([]float64, len(pts))
	ids := make([]int, len(pts))
	for i, p := range pts {
		dists[i] = squaredDistance(center, p)
		ids[i] = i
	}

	slices.SortFunc(ids, func(a, b int) int {
		return cmp.Or(
			cmp.Compare(dists[a], dists[b]),
			cmp.Compare(pts[a].X, pts[b].X),
			cmp.Compare(pts[a].Y, pts[b].Y),
			cmp.Compare(a, b),
		)
	})
	return ids
}

// insert adds point i, which lies outside the current hull.
func (tr *triangulator) insert(i int) error {
	h := tr.hull
	p := tr.points[i]

	start, ok := h.lookup(p)
	if !ok {
		return errors.Wrapf(ErrHullWalk, "r2delaunay: no live hull node for point %d", i)
	}

	// Find an edge e -> next(e) visible from p.
	start = h.nodes[start].prev
	e := start
	for {
		q := h.nodes[e].next
		if orient(p, tr.points[e], tr.points[q]) < 0 {
			break
		}
		e = q
		if e == start {
			return errors.Wrapf(ErrHullWalk, "r2delaunay: no visible hull edge for point %d %v", i, p)
		}
	}

	t := tr.addTriangle(e, i, h.nodes[e].next, noEdge, noEdge, h.nodes[e].edge)
	h.nodes[i].edge = tr.legalize(t + 2)
	h.nodes[e].edge = t

	// Fold forward.
	n := h.nodes[e].next
	for {
		q := h.nodes[n].next
		if orient(p, tr.points[n], tr.points[q]) >= 0 {
			break
		}
		t = tr.addTriangle(n, i, q, h.nodes[i].edge, noEdge, h.nodes[n].edge)
		h.nodes[i].edge = tr.legalize(t + 2)
		h.remove(n)
		n = q
	}

	// Fold backward.
	if e == start {
		for {
			q := h.nodes[e].prev
			if orient(p, tr.points[q], tr.points[e]) >= 0 {
				break
			}
			t = tr.addTriangle(q, i, e, noEdge, h.nodes[e].edge, h.nodes[q].edge)
			tr.legalize(t + 2)
			h.nodes[q].edge = t
			h.remove(e)
			e = q
		}
	}

	h.insert(i, e, n)
	h.rehash(i, p)
	h.rehash(e, tr.points[e])
	return nil
}

// legalize restores the Delaunay condition around half-edge a, flipping
// edges until every pair of adjacent triangles it touched is legal. It
// returns the half-edge that ends up opposite the apex of a's triangle.
//
//	      pl                    pl
//	     /||\                  /  \
//	  al/ || \bl            al/    \a
//	   /  ||  \              /      \
//	  /  a||b  \    flip    /___ar___\
//	p0\   ||   /p1   =>   p0\---bl---/p1
//	   \  ||  /              \      /
//	  ar\ || /br             b\    /br
//	     \||/                  \  /
//	      pr                    pr
func (tr *triangulator) legalize(a int) int {
	stack := tr.edgeStack[:0]
	var ar int
	for {
		b := tr.halfedges[a]
		a0 := a - a%3
		ar = a0 + (a+2)%3

		if b == noEdge {
			if len(stack) == 0 {
				break
			}
			a = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		b0 := b - b%3
		al := a0 + (a+1)%3
		bl := b0 + (b+2)%3

		p0 := tr.triangles[ar]
		pr := tr.triangles[a]
		pl := tr.triangles[al]
		p1 := tr.triangles[bl]

		if !inCircle(tr.points[p0], tr.points[pr], tr.points[pl], tr.points[p1]) {
			if len(stack) == 0 {
				break
			}
			a = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		tr.triangles[a] = p1
		tr.triangles[b] = p0

		hbl := tr.halfedges[bl]
		if hbl == noEdge {
			// The flipped pair sat on the boundary; keep the hull owner in sync.
			tr.hull.replaceEdge(bl, a)
		}
		tr.link(a, hbl)
		tr.link(b, tr.halfedges[ar])
		tr.link(ar, bl)

		stack = append(stack, b0+(b+1)%3)
	}
	tr.edgeStack = stack
	return ar
}

func (tr *triangulator) link(a, b int) {
	tr.halfedges[a] = b
	if b != noEdge {
		tr.halfedges[b] = a
	}
}

// addTriangle appends triangle i0, i1, i2 and links its half-edges to a, b, c.
func (tr *triangulator) addTriangle(i0, i1, i2, a, b, c int) int {
	t := tr.trisLen
	tr.triangles[t] = i0
	tr.triangles[t+1] = i1
	tr.triangles[t+2] = i2
	tr.link(t, a)
	tr.link(t+1, b)
	tr.link(t+2, c)
	tr.trisLen += 3
	return t
}
