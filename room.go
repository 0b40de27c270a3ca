// Package r2corridors connects rectangular rooms with straight corridors
// chosen from the Delaunay triangulation of their doors.

package r2corridors

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// RoomView is a view structure for accessing a room in a Layout.
// Its index corresponds to the index of the room in the Layout's Rooms.
type RoomView struct {
	idx int
	l   *Layout
}

// Index returns the index of the room in the Layout's Rooms.
func (r RoomView) Index() int {
	return r.idx
}

func (r RoomView) Bounds() r2.Rect {
	return r.l.Rooms[r.idx].Bounds
}

// DoorIndices returns the indices of the room's doors in the Layout's Doors.
func (r RoomView) DoorIndices() []int {
	return lo.RangeFrom(r.l.DoorOffsets[r.idx], r.l.DoorOffsets[r.idx+1]-r.l.DoorOffsets[r.idx])
}

// NumCorridors returns the number of selected corridors touching the room.
func (r RoomView) NumCorridors() int {
	return r.l.RoomOffsets[r.idx+1] - r.l.RoomOffsets[r.idx]
}

// CorridorIndices returns the indices of the room's corridors in the
// Layout's Corridors, in ascending order.
func (r RoomView) CorridorIndices() []int {
	return r.l.RoomCorridors[r.l.RoomOffsets[r.idx]:r.l.RoomOffsets[r.idx+1]]
}

// Corridor returns the corridor at the specified index.
// It returns an error if the index is out of range.
func (r RoomView) Corridor(i int) (Corridor, error) {
	start := r.l.RoomOffsets[r.idx]
	end := r.l.RoomOffsets[r.idx+1]
	if i < 0 || i >= end-start {
		return Corridor{}, errors.Errorf("Corridor: index %d out of range [0 %d)", i, end-start)
	}
	return r.l.Corridors[r.l.RoomCorridors[start+i]], nil
}

// NeighborIndices returns the indices of the rooms reachable through one
// corridor, without duplicates, in corridor order.
func (r RoomView) NeighborIndices() []int {
	neighbors := lo.Map(r.CorridorIndices(), func(ci int, _ int) int {
		c := r.l.Corridors[ci]
		if c.FromRoom == r.idx {
			return c.ToRoom
		}
		return c.FromRoom
	})
	return lo.Uniq(neighbors)
}

func (r RoomView) NumNeighbors() int {
	return len(r.NeighborIndices())
}

// Neighbor returns the neighboring room at the specified index.
// It returns an error if the index is out of range.
func (r RoomView) Neighbor(i int) (RoomView, error) {
	neighbors := r.NeighborIndices()
	if i < 0 || i >= len(neighbors) {
		return RoomView{}, errors.Errorf("Neighbor: index %d out of range [0 %d)", i, len(neighbors))
	}
	return r.l.Room(neighbors[i])
}
