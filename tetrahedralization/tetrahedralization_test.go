// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetrahedralization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang/geo/r3"
)

func TestInsertVertices_TooFewVertices(t *testing.T) {
	tet := New()
	err := tet.InsertVertices([]r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}, nil, false)
	assert.ErrorIs(t, err, ErrTooFewVertices)
}

func TestInsertVertex_EmptyStructure(t *testing.T) {
	tet := New()
	err := tet.InsertVertex(r3.Vector{X: 0, Y: 0, Z: 0}, 0, nil)
	assert.ErrorIs(t, err, ErrEmptyStructure)
}

func cubeVertices() []r3.Vector {
	return []r3.Vector{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
		{X: 0.5, Y: 0.5, Z: 0.5},
	}
}

func TestInsertVertices_Cube(t *testing.T) {
	tet := New()
	require.NoError(t, tet.InsertVertices(cubeVertices(), nil, false))

	assert.True(t, tet.IsSound())
	assert.Len(t, tet.UsedIndices(), 9)
	assert.Greater(t, tet.NumCasualTets(), 0)

	regular, frac, err := tet.IsRegular()
	require.NoError(t, err)
	assert.True(t, regular)
	assert.Equal(t, 1.0, frac)
}

func TestInsertVertices_SpatialSortAgreesWithUnsorted(t *testing.T) {
	points := cubeVertices()

	unsorted := New()
	require.NoError(t, unsorted.InsertVertices(points, nil, false))
	sorted := New()
	require.NoError(t, sorted.InsertVertices(points, nil, true))

	assert.True(t, unsorted.IsSound())
	assert.True(t, sorted.IsSound())
	assert.Equal(t, unsorted.NumCasualTets(), sorted.NumCasualTets())
}

// TestWeightedRedundancy_FoldedIntoIgnored inserts a point deeply
// inside the cube with a dominating weight: its lift never pierces the
// surrounding power tetrahedra, so it must be skipped. Unlike the 2D
// engine, this engine reports the skip through IgnoredIndices rather
// than a separate RedundantIndices set.
func TestWeightedRedundancy_FoldedIntoIgnored(t *testing.T) {
	vertices := cubeVertices()
	weights := make([]float64, len(vertices))
	weights[8] = 1000.0

	tet := New()
	require.NoError(t, tet.InsertVertices(vertices, weights, false))

	assert.True(t, tet.IsSound())
	assert.Nil(t, tet.RedundantIndices())
	assert.Contains(t, tet.IgnoredIndices(), 8)
}

func TestConvexHullIndices_Cube(t *testing.T) {
	tet := New()
	require.NoError(t, tet.InsertVertices(cubeVertices(), nil, false))

	hull, err := tet.ConvexHullIndices()
	require.NoError(t, err)
	assert.Len(t, hull, 8)
	assert.NotContains(t, hull, 8)
}

func TestInsertVertex_Incremental(t *testing.T) {
	tet := New()
	seed := []r3.Vector{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1},
	}
	require.NoError(t, tet.InsertVertices(seed, nil, false))
	require.NoError(t, tet.InsertVertex(r3.Vector{X: 0.2, Y: 0.2, Z: 0.2}, 0, nil))

	assert.True(t, tet.IsSound())
	assert.Equal(t, 4, tet.NumCasualTets())
}
