// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"math"

	"github.com/golang/geo/r2"
)

// orient returns twice the signed area of the triangle abc.
// Positive when a, b, c are in counter-clockwise order.
func orient(a, b, c r2.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func squaredDistance(a, b r2.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// circumOffset returns the circumcenter of abc relative to a.
// ok is false when abc is collinear.
func circumOffset(a, b, c r2.Point) (r2.Point, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ex := c.X - a.X
	ey := c.Y - a.Y

	den := dx*ey - dy*ex
	if den == 0 {
		return r2.Point{}, false
	}

	bl := dx*dx + dy*dy
	cl := ex*ex + ey*ey
	d := 0.5 / den

	off := r2.Point{X: (ey*bl - dy*cl) * d, Y: (dx*cl - ex*bl) * d}
	if math.IsNaN(off.X) || math.IsNaN(off.Y) || math.IsInf(off.X, 0) || math.IsInf(off.Y, 0) {
		return r2.Point{}, false
	}
	return off, true
}

// circumradius returns the squared circumradius of abc, or +Inf when abc has
// no finite circumcircle.
func circumradius(a, b, c r2.Point) float64 {
	off, ok := circumOffset(a, b, c)
	if !ok {
		return math.Inf(1)
	}
	return off.X*off.X + off.Y*off.Y
}

func circumcenter(a, b, c r2.Point) (r2.Point, bool) {
	off, ok := circumOffset(a, b, c)
	if !ok {
		return r2.Point{}, false
	}
	return a.Add(off), true
}

// inCircle reports whether p lies strictly inside the circumcircle of the
// counter-clockwise triangle abc.
func inCircle(a, b, c, p r2.Point) bool {
	dx := a.X - p.X
	dy := a.Y - p.Y
	ex := b.X - p.X
	ey := b.Y - p.Y
	fx := c.X - p.X
	fy := c.Y - p.Y

	ap := dx*dx + dy*dy
	bp := ex*ex + ey*ey
	cp := fx*fx + fy*fy

	return dx*(ey*cp-bp*fy)-dy*(ex*cp-bp*fx)+ap*(ex*fy-ey*fx) > 0
}

// pseudoAngle maps a direction to [0, 4), monotonically increasing with the
// counter-clockwise angle measured from the positive x axis.
func pseudoAngle(dx, dy float64) float64 {
	s := math.Abs(dx) + math.Abs(dy)
	if s == 0 {
		return 0
	}
	p := 1 - dx/s
	if dy < 0 {
		return 4 - p
	}
	return p
}

// Triangle is a geometric view of a triangulation face.
type Triangle struct {
	A, B, C r2.Point
}

// Area returns the signed area; positive for counter-clockwise triangles.
func (t Triangle) Area() float64 {
	return orient(t.A, t.B, t.C) / 2
}

// Circumcenter returns the center of the circumscribed circle.
// ok is false for degenerate triangles.
func (t Triangle) Circumcenter() (center r2.Point, ok bool) {
	return circumcenter(t.A, t.B, t.C)
}

// Sides returns the sides AB, BC and CA.
func (t Triangle) Sides() [3]Side {
	return [3]Side{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
}

// ContainsPoint reports whether p lies inside or on the boundary of a
// counter-clockwise triangle.
func (t Triangle) ContainsPoint(p r2.Point) bool {
	return orient(t.A, t.B, p) >= 0 && orient(t.B, t.C, p) >= 0 && orient(t.C, t.A, p) >= 0
}

// InCircumcircle reports whether p lies strictly inside the circumcircle of a
// counter-clockwise triangle.
func (t Triangle) InCircumcircle(p r2.Point) bool {
	return inCircle(t.A, t.B, t.C, p)
}

// Side is a segment between two triangle vertices.
type Side struct {
	A, B r2.Point
}

func (s Side) Length() float64 {
	return s.B.Sub(s.A).Norm()
}

func (s Side) Midpoint() r2.Point {
	return s.A.Add(s.B).Mul(0.5)
}
