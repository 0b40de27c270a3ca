// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides deterministic generators of planar points and room
// layouts for triangulation tests, benchmarks and examples.

package utils

import (
	"math/rand"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates cnt random points in the unit square.
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)

	for i := range cnt {
		points[i] = r2.Point{X: random.Float64(), Y: random.Float64()}
	}

	return points
}

const (
	// Room size as a fraction of its grid cell.
	minRoomFill = 0.3
	maxRoomFill = 0.7
	maxDoors    = 3
)

// GenerateRandomRooms places one room per cell of a cols x rows grid of unit
// cells, with a random size and offset inside its cell, so rooms never
// overlap. Each room gets between one and three doors on its walls.
// The seed parameter ensures reproducibility.
func GenerateRandomRooms(cols, rows int, seed int64) ([]r2.Rect, [][]r2.Point) {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	bounds := make([]r2.Rect, 0, cols*rows)
	doors := make([][]r2.Point, 0, cols*rows)

	for row := range rows {
		for col := range cols {
			w := minRoomFill + random.Float64()*(maxRoomFill-minRoomFill)
			h := minRoomFill + random.Float64()*(maxRoomFill-minRoomFill)
			x := float64(col) + random.Float64()*(1-w)
			y := float64(row) + random.Float64()*(1-h)
			rect := r2.Rect{
				X: r1.Interval{Lo: x, Hi: x + w},
				Y: r1.Interval{Lo: y, Hi: y + h},
			}

			n := 1 + random.Intn(maxDoors)
			roomDoors := make([]r2.Point, n)
			for i := range n {
				roomDoors[i] = pointOnWall(rect, random.Intn(4), random.Float64())
			}

			bounds = append(bounds, rect)
			doors = append(doors, roomDoors)
		}
	}

	return bounds, doors
}

// pointOnWall returns the point at fraction t along wall (0 bottom, 1 right,
// 2 top, 3 left) of rect.
func pointOnWall(rect r2.Rect, wall int, t float64) r2.Point {
	switch wall {
	case 0:
		return r2.Point{X: rect.X.Lo + t*rect.X.Length(), Y: rect.Y.Lo}
	case 1:
		return r2.Point{X: rect.X.Hi, Y: rect.Y.Lo + t*rect.Y.Length()}
	case 2:
		return r2.Point{X: rect.X.Lo + t*rect.X.Length(), Y: rect.Y.Hi}
	default:
		return r2.Point{X: rect.X.Lo, Y: rect.Y.Lo + t*rect.Y.Length()}
	}
}
