// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"context"
	"runtime"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// NewTriangulations triangulates independent point sets concurrently. Each
// set is built by its own single-threaded construction; the result at index
// i belongs to pointSets[i]. The first failure cancels the remaining work.
func NewTriangulations(
	ctx context.Context, pointSets [][]r2.Point, setters ...TriangulationOption,
) ([]*Triangulation, error) {
	results := make([]*Triangulation, len(pointSets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, points := range pointSets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dt, err := NewTriangulation(points, setters...)
			if err != nil {
				return errors.Wrapf(err, "point set %d", i)
			}
			results[i] = dt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
