// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating random point
// and weight sets for exercising the 2D/3D triangulation engines.
package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// GenerateRandomPoints2D generates a slice of random points within
// [-extent, extent] on both axes. The seed parameter ensures
// reproducibility.
func GenerateRandomPoints2D(cnt int, seed int64, extent float64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)

	for i := range cnt {
		points[i] = r2.Point{
			X: (random.Float64()*2 - 1) * extent,
			Y: (random.Float64()*2 - 1) * extent,
		}
	}

	return points
}

// GenerateRandomPoints3D generates a slice of random points within
// [-extent, extent] on all three axes. The seed parameter ensures
// reproducibility.
func GenerateRandomPoints3D(cnt int, seed int64, extent float64) []r3.Vector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r3.Vector, cnt)

	for i := range cnt {
		points[i] = r3.Vector{
			X: (random.Float64()*2 - 1) * extent,
			Y: (random.Float64()*2 - 1) * extent,
			Z: (random.Float64()*2 - 1) * extent,
		}
	}

	return points
}

// GenerateRandomWeights generates a slice of random weights in
// [min, max]. The seed parameter ensures reproducibility.
func GenerateRandomWeights(cnt int, seed int64, min, max float64) []float64 {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	weights := make([]float64, cnt)

	for i := range cnt {
		weights[i] = min + random.Float64()*(max-min)
	}

	return weights
}
