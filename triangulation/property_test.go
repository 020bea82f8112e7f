// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package triangulation

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang/geo/r2"

	"github.com/glennDittmann/rita/utils"
)

// TestScenarioS1_UnweightedTenPoints is the §8 scenario S1 fixture.
func TestScenarioS1_UnweightedTenPoints(t *testing.T) {
	points := []r2.Point{
		{X: 4.9, Y: 31.9}, {X: 44.2, Y: -0.05}, {X: -49.31, Y: 2.4}, {X: 98.5, Y: -6.9},
		{X: 7.7, Y: 9.1}, {X: 3.5, Y: 6.1}, {X: 6.0, Y: -3.46}, {X: 4.7, Y: 91.5},
		{X: 6.7, Y: 3.6}, {X: -3.7, Y: -40.3},
	}

	tri := New()
	require.NoError(t, tri.InsertVertices(points, nil, false))

	assert.True(t, tri.IsSound())
	assert.Equal(t, 14, tri.NumCasualTris())

	regular, frac, err := tri.IsRegular()
	require.NoError(t, err)
	assert.True(t, regular)
	assert.Equal(t, 1.0, frac)
}

// TestScenarioS5_CollinearSeedFallback exercises §8 scenario S5: the
// first three inserted points are collinear, so insertInitTri must
// keep scanning past them instead of seeding a degenerate triangle.
func TestScenarioS5_CollinearSeedFallback(t *testing.T) {
	points := []r2.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1},
	}

	tri := New()
	require.NoError(t, tri.InsertVertices(points, nil, false))

	assert.True(t, tri.IsSound())
	assert.Len(t, tri.UsedIndices(), 4)
	assert.Greater(t, tri.NumCasualTris(), 0)
}

// casualTriangleCoordKeys returns a canonical, order-independent
// representation of a triangulation's casual triangles: one string key
// per triangle, built from its three corner coordinates sorted
// lexicographically, so two triangulations of the same point set can be
// compared as sets regardless of insertion order or array layout.
func casualTriangleCoordKeys(t *testing.T, tri *Triangulation) map[string]bool {
	t.Helper()
	keys := make(map[string]bool)

	for triIdx := 0; triIdx < tri.NumAllTris(); triIdx++ {
		node, err := tri.tds.GetTri(triIdx)
		require.NoError(t, err)
		if containsDeleted(node.Nodes()) {
			continue
		}

		ext, err := tri.triType(triIdx)
		require.NoError(t, err)
		if ext.kind != triCasual {
			continue
		}

		corners := []r2.Point{ext.a, ext.b, ext.c}
		sort.Slice(corners, func(i, j int) bool {
			if corners[i].X != corners[j].X {
				return corners[i].X < corners[j].X
			}
			return corners[i].Y < corners[j].Y
		})
		keys[fmt.Sprintf("%.9f,%.9f|%.9f,%.9f|%.9f,%.9f",
			corners[0].X, corners[0].Y, corners[1].X, corners[1].Y, corners[2].X, corners[2].Y)] = true
	}

	return keys
}

// TestOrderIndependence_UnweightedPermutations is §8 Testable Property
// 6: random permutations of the same unweighted point set must produce
// the identical set of casual triangles.
func TestOrderIndependence_UnweightedPermutations(t *testing.T) {
	for _, n := range []int{5, 10, 25, 50} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			points := utils.GenerateRandomPoints2D(n, int64(n), 10)

			base := New()
			require.NoError(t, base.InsertVertices(points, nil, false))
			baseKeys := casualTriangleCoordKeys(t, base)

			for _, seed := range []int64{1, 2, 3} {
				permuted := make([]r2.Point, len(points))
				copy(permuted, points)
				//nolint:gosec
				r := rand.New(rand.NewSource(seed))
				r.Shuffle(len(permuted), func(i, j int) { permuted[i], permuted[j] = permuted[j], permuted[i] })

				other := New()
				require.NoError(t, other.InsertVertices(permuted, nil, false))
				assert.Equal(t, baseKeys, casualTriangleCoordKeys(t, other))
			}
		})
	}
}

// TestHilbertInvariance_AgreesAsSets is §8 Testable Property 7:
// results with and without spatialSort must agree as sets of casual
// triangles.
func TestHilbertInvariance_AgreesAsSets(t *testing.T) {
	for _, n := range []int{5, 10, 25, 50} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			points := utils.GenerateRandomPoints2D(n, int64(n)+100, 10)

			unsorted := New()
			require.NoError(t, unsorted.InsertVertices(points, nil, false))
			sorted := New()
			require.NoError(t, sorted.InsertVertices(points, nil, true))

			assert.Equal(t, casualTriangleCoordKeys(t, unsorted), casualTriangleCoordKeys(t, sorted))
		})
	}
}

// TestEpsFilter_PartitionsAllPoints is §8 scenario S4: with eps = 1/n
// on n uniformly sampled points, every index lands in exactly one of
// used/redundant/ignored, and the triangulation is regular over used.
func TestEpsFilter_PartitionsAllPoints(t *testing.T) {
	for _, n := range []int{10, 50, 100} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			points := utils.GenerateRandomPoints2D(n, int64(n)+7, 0.5)

			tri := New(WithEps(1.0 / float64(n)))
			require.NoError(t, tri.InsertVertices(points, nil, false))

			partitioned := len(tri.UsedIndices()) + len(tri.RedundantIndices()) + len(tri.IgnoredIndices())
			assert.Equal(t, n, partitioned)

			regular, frac, err := tri.IsRegular()
			require.NoError(t, err)
			assert.True(t, regular)
			assert.Equal(t, 1.0, frac)
		})
	}
}

// TestEpsMonotonicity_IncreasesIgnoredCount is §8 Testable Property 5:
// increasing eps monotonically (weakly) increases the ignored count on
// the same input.
func TestEpsMonotonicity_IncreasesIgnoredCount(t *testing.T) {
	const n = 80
	points := utils.GenerateRandomPoints2D(n, 11, 5)
	weights := utils.GenerateRandomWeights(n, 11, 0.1, 3.0)

	epsValues := []float64{0.0, 1e-4, 1e-3, 1e-2, 1e-1}
	prevIgnored := -1
	for _, eps := range epsValues {
		tri := New(WithEps(eps))
		require.NoError(t, tri.InsertVertices(points, weights, false))

		ignored := len(tri.IgnoredIndices())
		assert.GreaterOrEqual(t, ignored, prevIgnored, "eps=%v", eps)
		prevIgnored = ignored
	}
}

// TestRegularityParallelAgreesWithSequential is §8 scenario S6, swept
// across several random input sizes.
func TestRegularityParallelAgreesWithSequential(t *testing.T) {
	for _, n := range []int{5, 20, 60} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			points := utils.GenerateRandomPoints2D(n, int64(n)+500, 10)
			weights := utils.GenerateRandomWeights(n, int64(n)+500, 0.1, 2.0)

			tri := New()
			require.NoError(t, tri.InsertVertices(points, weights, false))

			regular, _, err := tri.IsRegular()
			require.NoError(t, err)

			fracPar, err := tri.IsRegularParallel(false)
			require.NoError(t, err)

			assert.Equal(t, regular, fracPar == 1.0)
		})
	}
}
