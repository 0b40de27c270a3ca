// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2delaunay computes Delaunay triangulations of planar point sets
// with an incremental sweep-hull algorithm.
package r2delaunay

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const (
	defaultEps = 1e-12
)

var (
	// ErrNoTriangulation is returned when the input has fewer than three
	// distinct, non-collinear points.
	ErrNoTriangulation = errors.New("no triangulation exists")
	// ErrHullWalk is returned when no hull edge is visible from a point
	// being inserted.
	ErrHullWalk = errors.New("hull walk did not find a visible edge")
)

// Triangulation is a Delaunay triangulation of Vertices.
type Triangulation struct {
	Vertices []r2.Point
	// NOTE: Counter-clockwise vertex order.
	Triangles [][3]int
	// Halfedges[3*t+i] is the half-edge opposite to the edge that starts at
	// Triangles[t][i], or -1 on the hull.
	Halfedges []int
	// NOTE: Counter-clockwise.
	Hull []int
	// NOTE: Sort in CCW per vertex.
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

func (dt *Triangulation) NumTriangles() int {
	return len(dt.Triangles)
}

func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

// Triangle returns the geometric view of triangle tIdx.
func (dt *Triangulation) Triangle(tIdx int) Triangle {
	a, b, c := dt.TriangleVertices(tIdx)
	return Triangle{A: a, B: b, C: c}
}

// Geometry returns every triangle as a geometric view, in triangle order.
func (dt *Triangulation) Geometry() []Triangle {
	tris := make([]Triangle, len(dt.Triangles))
	for i := range dt.Triangles {
		tris[i] = dt.Triangle(i)
	}
	return tris
}

// Edges returns each undirected edge once as a pair of vertex indices,
// ordered by the lower of its two half-edges.
func (dt *Triangulation) Edges() [][2]int {
	edges := make([][2]int, 0, (len(dt.Halfedges)+len(dt.Hull))/2)
	for e, opp := range dt.Halfedges {
		if opp != noEdge && opp < e {
			continue
		}
		t := dt.Triangles[e/3]
		edges = append(edges, [2]int{t[e%3], t[NextHalfedge(e)%3]})
	}
	return edges
}

type TriangulationOptions struct {
	Eps float64
}

type TriangulationOption func(*TriangulationOptions) error

// WithEps sets the per-axis distance below which a point is treated as a
// duplicate of the point before it in distance order, or of a seed vertex.
func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 {
			return errors.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// NewTriangulation triangulates points. A point within Eps of its
// predecessor in distance order, or of a seed vertex, is skipped and has no
// incident triangles; the returned triangles reference indices into points.
func NewTriangulation(points []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(points)
	if numVertices < 3 {
		return nil, errors.Wrapf(ErrNoTriangulation,
			"r2delaunay: insufficient vertices for triangulation (minimum 3 required, got %d)", numVertices)
	}

	vertices := make([]r2.Point, numVertices)
	copy(vertices, points)

	tr := newTriangulator(vertices, opts.Eps)
	if err := tr.run(); err != nil {
		return nil, err
	}

	numTriangles := tr.trisLen / 3
	dt := &Triangulation{
		Vertices:                vertices,
		Triangles:               make([][3]int, numTriangles),
		Halfedges:               tr.halfedges,
		Hull:                    tr.hull.ids(),
		IncidentTriangleIndices: make([]int, 0, numTriangles*3),
		IncidentTriangleOffsets: make([]int, numVertices+1),
	}
	for i := range numTriangles {
		copy(dt.Triangles[i][:], tr.triangles[3*i:3*i+3])
	}
	dt.buildIncidence()

	return dt, nil
}

// buildIncidence fills the per-vertex triangle fans. Each fan is walked
// counter-clockwise, starting after the hull for boundary vertices.
func (dt *Triangulation) buildIncidence() {
	numVertices := len(dt.Vertices)
	inedge := make([]int, numVertices)
	for i := range inedge {
		inedge[i] = noEdge
	}
	// An incoming half-edge per vertex; for hull vertices the one whose
	// successor lies on the hull, so the fan starts at the clockwise end.
	for e := range dt.Halfedges {
		v := dt.Triangles[e/3][NextHalfedge(e)%3]
		if inedge[v] == noEdge || dt.Halfedges[NextHalfedge(e)] == noEdge {
			inedge[v] = e
		}
	}

	for v := range numVertices {
		dt.IncidentTriangleOffsets[v] = len(dt.IncidentTriangleIndices)
		start := inedge[v]
		if start == noEdge {
			continue
		}
		e := start
		for {
			dt.IncidentTriangleIndices = append(dt.IncidentTriangleIndices, e/3)
			opp := dt.Halfedges[e]
			if opp == noEdge {
				break
			}
			e = PrevHalfedge(opp)
			if e == start {
				break
			}
		}
	}
	dt.IncidentTriangleOffsets[numVertices] = len(dt.IncidentTriangleIndices)
}

func NextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

func PrevHalfedge(e int) int {
	if e%3 == 0 {
		return e + 2
	}
	return e - 1
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}
