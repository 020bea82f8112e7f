// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetrahedralization

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/golang/geo/r3"
)

func seededTetrahedralization(t *testing.T) *Tetrahedralization {
	t.Helper()
	tet := New()
	tet.vertices = []r3.Vector{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1},
	}
	_, err := tet.tds.InsertFirstTet([4]int{0, 1, 2, 3})
	require.NoError(t, err)
	return tet
}

func TestLocateVisWalk_PointInStartingTet(t *testing.T) {
	tet := seededTetrahedralization(t)
	tet.vertices = append(tet.vertices, r3.Vector{X: 0.1, Y: 0.1, Z: 0.1})

	found, err := tet.locateVisWalk(4, 0)
	require.NoError(t, err)
	if found != 0 {
		t.Fatalf("expected the point to resolve to the seeded real tet 0, got %d", found)
	}
}

func TestLocateVisWalk_WalksFromConceptualStart(t *testing.T) {
	tet := seededTetrahedralization(t)
	tet.vertices = append(tet.vertices, r3.Vector{X: 0.1, Y: 0.1, Z: 0.1})

	found, err := tet.locateVisWalk(4, 1)
	require.NoError(t, err)
	if found != 0 {
		t.Fatalf("expected the walk starting from a conceptual tet to reach the real tet 0, got %d", found)
	}
}
