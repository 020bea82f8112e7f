// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package hullcheck cross-checks convex-hull membership using an
// algorithm (quickhull-go) wholly independent of the DCEL packages'
// own hull-adjacency bookkeeping, per SPEC_FULL's supplemented
// ConvexHullIndices feature and §8 property 4.
package hullcheck

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	quickhull "github.com/markus-wa/quickhull-go/v2"
)

const defaultEps = 1e-12

// Indices2D returns the indices, deduplicated, of points lying on the
// convex hull of a 2D point set. The points are embedded in the z=0
// plane; since the resulting hull is then a degenerate (coplanar) set
// of triangles entirely within that plane, the deduplicated index set
// across every triangle corner is exactly the 2D hull's vertex set.
func Indices2D(points []r2.Point, eps float64) ([]int, error) {
	if len(points) < 3 {
		return nil, errors.New("hullcheck: Indices2D: at least 3 points required")
	}
	if eps <= 0 {
		eps = defaultEps
	}

	lifted := make([]r3.Vector, len(points))
	for i, p := range points {
		lifted[i] = r3.Vector{X: p.X, Y: p.Y, Z: 0}
	}

	qh := new(quickhull.QuickHull)
	hull := qh.ConvexHull(lifted, true, true, eps)
	if len(hull.Indices) == 0 {
		return nil, fmt.Errorf("hullcheck: Indices2D: empty hull for %d points", len(points))
	}

	return dedup(hull.Indices), nil
}

// Indices3D returns the indices, deduplicated, of points lying on the
// convex hull of a 3D point set.
func Indices3D(points []r3.Vector, eps float64) ([]int, error) {
	if len(points) < 4 {
		return nil, errors.New("hullcheck: Indices3D: at least 4 points required")
	}
	if eps <= 0 {
		eps = defaultEps
	}

	qh := new(quickhull.QuickHull)
	hull := qh.ConvexHull(points, true, true, eps)
	if len(hull.Indices) == 0 {
		return nil, fmt.Errorf("hullcheck: Indices3D: empty hull for %d points", len(points))
	}

	return dedup(hull.Indices), nil
}

func dedup(indices []int) []int {
	seen := make(map[int]struct{}, len(indices))
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}
