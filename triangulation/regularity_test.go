// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package triangulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang/geo/r2"
)

func squareTriangulation(t *testing.T) (*Triangulation, []r2.Point) {
	t.Helper()
	points := []r2.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0.5, Y: 0.5},
	}
	tri := New()
	require.NoError(t, tri.InsertVertices(points, nil, false))
	return tri, points
}

func TestIsRegularParallel_AgreesWithIsRegular(t *testing.T) {
	tri, _ := squareTriangulation(t)

	regular, fracSeq, err := tri.IsRegular()
	require.NoError(t, err)
	assert.True(t, regular)

	fracPar, err := tri.IsRegularParallel(false)
	require.NoError(t, err)
	assert.Equal(t, fracSeq, fracPar)
}

func TestIsRegularForPointSet_MatchesOwnVertices(t *testing.T) {
	tri, points := squareTriangulation(t)

	regular, frac, err := tri.IsRegularForPointSet(points, nil)
	require.NoError(t, err)
	assert.True(t, regular)
	assert.Equal(t, 1.0, frac)
}

// TestIsRegular_VisitsTailAppendedTriangles exercises a 3-to-1 collapse
// (which tombstones two triangle slots in place, per trids.Flip3To1)
// followed by a further insertion (whose new triangles are appended
// past those tombstoned slots, at indices beyond the live-triangle
// count as it stood before the collapse). IsRegular must iterate up to
// NumTris()+NumDeletedTris(), not NumTris() alone, or it silently never
// visits those tail-appended triangles.
func TestIsRegular_VisitsTailAppendedTriangles(t *testing.T) {
	tri := New()
	tri.vertices = []r2.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0.2, Y: 0.2}, {X: 0.3, Y: 0.3}, {X: 0.31, Y: 0.31},
	}
	tri.weights = make([]float64, len(tri.vertices))

	_, err := tri.tds.AddInitTri([3]int{0, 1, 2})
	require.NoError(t, err)

	// Insert vertex 3, then immediately undo it via a 3-to-1 collapse:
	// the two triangles the insertion appended end up tombstoned at
	// indices 4 and 5, without shrinking the underlying arrays.
	split, err := tri.tds.Flip1To3(0, 3)
	require.NoError(t, err)
	idxs := [3]int{split[0].Idx(), split[1].Idx(), split[2].Idx()}
	_, err = tri.tds.Flip3To1(idxs, 3, tri.vertices)
	require.NoError(t, err)
	require.Equal(t, 4, tri.tds.NumTris())
	require.Equal(t, 2, tri.tds.NumDeletedTris())

	// Insert vertex 4: its new real triangles land at the array's
	// tail (indices 6 and 7), past the tombstoned slots 4 and 5.
	tail, err := tri.tds.Flip1To3(0, 4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 6, 7}, []int{tail[0].Idx(), tail[1].Idx(), tail[2].Idx()})

	// Vertex 5 carries a dominating weight, so its lift lies below the
	// power plane of every casual triangle regardless of where those
	// triangles sit in the array, including the tail-appended ones.
	tri.usedVertices = []int{0, 1, 2, 4, 5}
	tri.weights[5] = 1e12

	regular, frac, err := tri.IsRegular()
	require.NoError(t, err)
	assert.False(t, regular)
	assert.Less(t, frac, 1.0)
}
