// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2corridors

import (
	"slices"

	"github.com/2dChan/r2corridors/r2delaunay"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	defaultEps = 1e-12

	// Corridors running along a wall do not count as crossing the room.
	wallMargin = 1e-9
)

// ErrInvalidRoom is returned for rooms with empty bounds, no doors, or doors
// outside their bounds.
var ErrInvalidRoom = errors.New("invalid room")

// Room is a rectangular room with door candidates on or inside its walls.
type Room struct {
	Bounds r2.Rect
	Doors  []r2.Point
}

// Corridor is a straight connection between doors of two different rooms.
type Corridor struct {
	// Indices into Layout.Doors.
	From, To int
	// Indices into Layout.Rooms.
	FromRoom, ToRoom int
	Length           float64
}

type Layout struct {
	Rooms []Room
	// Doors of all rooms, room by room; the triangulation input.
	Doors       []r2.Point
	DoorRooms   []int
	DoorOffsets []int

	Triangulation *r2delaunay.Triangulation

	// NOTE: Triangulation edge order.
	Candidates []Corridor
	// NOTE: Subset of Candidates, same order.
	Corridors []Corridor

	// NOTE: Indices into Corridors, grouped per room.
	RoomCorridors []int
	RoomOffsets   []int
}

func (l *Layout) NumRooms() int {
	return len(l.Rooms)
}

func (l *Layout) Room(i int) (RoomView, error) {
	if i < 0 || i >= len(l.Rooms) {
		return RoomView{}, errors.Errorf("Room: index %d out of range [0 %d)", i, len(l.Rooms))
	}
	return RoomView{idx: i, l: l}, nil
}

// Connected reports whether the selected corridors link every room.
func (l *Layout) Connected() bool {
	uf := newUnionFind(len(l.Rooms))
	for _, c := range l.Corridors {
		uf.union(c.FromRoom, c.ToRoom)
	}
	return uf.count == 1
}

type LayoutOptions struct {
	Eps        float64
	Logger     *zap.SugaredLogger
	ConnectAll bool
}

type LayoutOption func(*LayoutOptions) error

// WithEps sets the distance below which doors are treated as the same point.
func WithEps(eps float64) LayoutOption {
	return func(o *LayoutOptions) error {
		if eps <= 0 {
			return errors.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

func WithLogger(logger *zap.SugaredLogger) LayoutOption {
	return func(o *LayoutOptions) error {
		if logger == nil {
			return errors.New("WithLogger: logger must not be nil")
		}
		o.Logger = logger
		return nil
	}
}

// WithConnectAll adds the shortest candidates needed to join rooms that the
// per-room selection leaves disconnected.
func WithConnectAll() LayoutOption {
	return func(o *LayoutOptions) error {
		o.ConnectAll = true
		return nil
	}
}

// NewLayout triangulates the doors of rooms and selects corridors: for each
// room, the longest triangulation edge that joins one of its doors to a door
// of another room without crossing any room.
func NewLayout(rooms []Room, setters ...LayoutOption) (*Layout, error) {
	opts := LayoutOptions{
		Eps:    defaultEps,
		Logger: zap.NewNop().Sugar(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	logger := opts.Logger

	l := &Layout{
		Rooms:       rooms,
		DoorOffsets: make([]int, len(rooms)+1),
	}
	for i, room := range rooms {
		if err := validateRoom(room, opts.Eps); err != nil {
			return nil, errors.Wrapf(err, "room %d", i)
		}
		l.DoorOffsets[i] = len(l.Doors)
		for _, d := range room.Doors {
			l.Doors = append(l.Doors, d)
			l.DoorRooms = append(l.DoorRooms, i)
		}
	}
	l.DoorOffsets[len(rooms)] = len(l.Doors)

	dt, err := r2delaunay.NewTriangulation(l.Doors, r2delaunay.WithEps(opts.Eps))
	if err != nil {
		return nil, errors.Wrap(err, "r2corridors: triangulate doors")
	}
	l.Triangulation = dt
	logger.Debugw("triangulated doors", "rooms", len(rooms), "doors", len(l.Doors), "triangles", dt.NumTriangles())

	l.Candidates = l.candidates()
	logger.Debugw("found corridor candidates", "candidates", len(l.Candidates))

	picked := l.pickLongest(logger)
	if opts.ConnectAll {
		l.connect(picked)
	}
	for i, c := range l.Candidates {
		if picked[i] {
			l.Corridors = append(l.Corridors, c)
		}
	}
	l.buildRoomCorridors()
	logger.Debugw("selected corridors", "corridors", len(l.Corridors), "connected", l.Connected())

	return l, nil
}

func validateRoom(room Room, eps float64) error {
	if room.Bounds.IsEmpty() {
		return errors.Wrap(ErrInvalidRoom, "empty bounds")
	}
	if len(room.Doors) == 0 {
		return errors.Wrap(ErrInvalidRoom, "no doors")
	}
	bounds := room.Bounds.ExpandedByMargin(eps)
	for j, d := range room.Doors {
		if !bounds.ContainsPoint(d) {
			return errors.Wrapf(ErrInvalidRoom, "door %d %v outside %v", j, d, room.Bounds)
		}
	}
	return nil
}

// candidates returns every triangulation edge that joins doors of two
// different rooms and does not cross the interior of any room.
func (l *Layout) candidates() []Corridor {
	var cands []Corridor
	for _, e := range l.Triangulation.Edges() {
		from, to := e[0], e[1]
		fromRoom, toRoom := l.DoorRooms[from], l.DoorRooms[to]
		if fromRoom == toRoom {
			continue
		}
		a, b := l.Doors[from], l.Doors[to]
		if slices.ContainsFunc(l.Rooms, func(r Room) bool { return segmentCrossesRoom(a, b, r.Bounds) }) {
			continue
		}
		cands = append(cands, Corridor{
			From:     from,
			To:       to,
			FromRoom: fromRoom,
			ToRoom:   toRoom,
			Length:   b.Sub(a).Norm(),
		})
	}
	return cands
}

// pickLongest marks, per room, the longest candidate touching the room.
func (l *Layout) pickLongest(logger *zap.SugaredLogger) []bool {
	byRoom := make([][]int, len(l.Rooms))
	for i, c := range l.Candidates {
		byRoom[c.FromRoom] = append(byRoom[c.FromRoom], i)
		byRoom[c.ToRoom] = append(byRoom[c.ToRoom], i)
	}

	picked := make([]bool, len(l.Candidates))
	for room, idxs := range byRoom {
		if len(idxs) == 0 {
			logger.Debugw("room has no corridor candidates", "room", room)
			continue
		}
		best := lo.MaxBy(idxs, func(a, b int) bool {
			return l.Candidates[a].Length > l.Candidates[b].Length
		})
		picked[best] = true
	}
	return picked
}

// connect adds the shortest candidates that join disconnected components,
// keeping the already picked corridors.
func (l *Layout) connect(picked []bool) {
	uf := newUnionFind(len(l.Rooms))
	for i, c := range l.Candidates {
		if picked[i] {
			uf.union(c.FromRoom, c.ToRoom)
		}
	}

	order := make([]int, len(l.Candidates))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch la, lb := l.Candidates[a].Length, l.Candidates[b].Length; {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})

	for _, i := range order {
		if uf.count == 1 {
			return
		}
		c := l.Candidates[i]
		if uf.union(c.FromRoom, c.ToRoom) {
			picked[i] = true
		}
	}
}

func (l *Layout) buildRoomCorridors() {
	l.RoomOffsets = make([]int, len(l.Rooms)+1)
	for _, c := range l.Corridors {
		l.RoomOffsets[c.FromRoom+1]++
		l.RoomOffsets[c.ToRoom+1]++
	}
	for i := range len(l.Rooms) {
		l.RoomOffsets[i+1] += l.RoomOffsets[i]
	}

	l.RoomCorridors = make([]int, l.RoomOffsets[len(l.Rooms)])
	nxt := make([]int, len(l.Rooms))
	copy(nxt, l.RoomOffsets[:len(l.Rooms)])
	for i, c := range l.Corridors {
		for _, room := range [2]int{c.FromRoom, c.ToRoom} {
			l.RoomCorridors[nxt[room]] = i
			nxt[room]++
		}
	}
}

// segmentCrossesRoom reports whether segment ab passes through the interior
// of rect. Touching or running along a wall does not count.
func segmentCrossesRoom(a, b r2.Point, rect r2.Rect) bool {
	t0, t1, ok := clipSegment(a, b, rect)
	if !ok {
		return false
	}
	inner := rect.ExpandedByMargin(-wallMargin)
	if inner.IsEmpty() {
		return false
	}
	mid := a.Add(b.Sub(a).Mul((t0 + t1) / 2))
	return inner.InteriorContainsPoint(mid)
}

// clipSegment clips segment ab to the closed rect (Liang-Barsky) and returns
// the parameter range of the part inside.
func clipSegment(a, b r2.Point, rect r2.Rect) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	d := b.Sub(a)
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = min(t1, t)
		}
		return true
	}
	if clip(-d.X, a.X-rect.X.Lo) && clip(d.X, rect.X.Hi-a.X) &&
		clip(-d.Y, a.Y-rect.Y.Lo) && clip(d.Y, rect.Y.Hi-a.Y) {
		return t0, t1, true
	}
	return 0, 0, false
}

type unionFind struct {
	parent []int
	count  int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), count: n}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}

	for x != root {
		parent := uf.parent[x]
		uf.parent[x] = root
		x = parent
	}

	return root
}

func (uf *unionFind) union(x, y int) bool {
	rootX := uf.find(x)
	rootY := uf.find(y)
	if rootX == rootY {
		return false
	}
	uf.parent[rootX] = rootY
	uf.count--
	return true
}
