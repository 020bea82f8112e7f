// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package trids

import (
	"testing"

	"github.com/golang/geo/r2"
)

func newSeeded(t *testing.T) *TriDataStructure {
	t.Helper()
	tds := New()
	if _, err := tds.AddInitTri([3]int{0, 1, 2}); err != nil {
		t.Fatalf("AddInitTri: %v", err)
	}
	return tds
}

func TestAddInitTri(t *testing.T) {
	tds := New()
	tris, err := tds.AddInitTri([3]int{0, 1, 2})
	if err != nil {
		t.Fatalf("AddInitTri: %v", err)
	}
	if tds.NumTris() != 4 {
		t.Fatalf("NumTris() = %d, want 4", tds.NumTris())
	}
	if tds.NumCasualTris() != 1 {
		t.Fatalf("NumCasualTris() = %d, want 1", tds.NumCasualTris())
	}
	if !tris[0].IsCasual() {
		t.Errorf("tris[0].IsCasual() = false, want true")
	}
	for i := 1; i < 4; i++ {
		if !tris[i].IsConceptual() {
			t.Errorf("tris[%d].IsConceptual() = false, want true", i)
		}
	}
	if !tds.IsSound() {
		t.Fatalf("IsSound() = false after AddInitTri")
	}
}

func TestAddInitTri_RejectsNonEmpty(t *testing.T) {
	tds := newSeeded(t)
	if _, err := tds.AddInitTri([3]int{3, 4, 5}); err == nil {
		t.Fatalf("AddInitTri on non-empty DCEL returned nil error, want error")
	}
}

func TestFlip1To3(t *testing.T) {
	tds := newSeeded(t)

	newTris, err := tds.Flip1To3(0, 3)
	if err != nil {
		t.Fatalf("Flip1To3: %v", err)
	}
	if tds.NumTris() != 6 {
		t.Fatalf("NumTris() after Flip1To3 = %d, want 6", tds.NumTris())
	}
	for _, tri := range newTris {
		if !tri.IsCasual() {
			t.Errorf("tri %d not casual after Flip1To3", tri.Idx())
		}
		nodes := tri.Nodes()
		found := false
		for _, n := range nodes {
			if idx, ok := n.Index(); ok && idx == 3 {
				found = true
			}
		}
		if !found {
			t.Errorf("tri %d does not contain the inserted vertex", tri.Idx())
		}
	}
	if !tds.IsSound() {
		t.Fatalf("IsSound() = false after Flip1To3")
	}
}

func TestFlip1To3_OutOfBounds(t *testing.T) {
	tds := newSeeded(t)
	if _, err := tds.Flip1To3(1000, 3); err == nil {
		t.Fatalf("Flip1To3 with out-of-bounds index returned nil error, want error")
	}
}

func TestFlip3To1_UndoesFlip1To3(t *testing.T) {
	tds := newSeeded(t)
	newTris, err := tds.Flip1To3(0, 3)
	if err != nil {
		t.Fatalf("Flip1To3: %v", err)
	}

	vertices := []r2.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0.2, Y: 0.2},
	}
	idxs := [3]int{newTris[0].Idx(), newTris[1].Idx(), newTris[2].Idx()}
	merged, err := tds.Flip3To1(idxs, 3, vertices)
	if err != nil {
		t.Fatalf("Flip3To1: %v", err)
	}

	if tds.NumTris() != 4 {
		t.Fatalf("NumTris() after Flip3To1 = %d, want 4", tds.NumTris())
	}
	if tds.NumDeletedTris() != 2 {
		t.Fatalf("NumDeletedTris() after Flip3To1 = %d, want 2", tds.NumDeletedTris())
	}
	if !merged.IsCasual() {
		t.Errorf("merged triangle is not casual")
	}
	for _, n := range merged.Nodes() {
		if idx, ok := n.Index(); ok && idx == 3 {
			t.Errorf("merged triangle still references the removed vertex 3")
		}
	}
	if !tds.IsSound() {
		t.Fatalf("IsSound() = false after Flip3To1")
	}
}

func TestHedgeIterator_NextPrevTwin(t *testing.T) {
	tds := newSeeded(t)
	tri, err := tds.GetTri(0)
	if err != nil {
		t.Fatalf("GetTri: %v", err)
	}
	hedges := tri.Hedges()

	for i, h := range hedges {
		next := h.Next()
		if next.StartingNode() != h.EndNode() {
			t.Errorf("hedge %d: Next().StartingNode() != EndNode()", i)
		}
		prev := h.Prev()
		if prev.EndNode() != h.StartingNode() {
			t.Errorf("hedge %d: Prev().EndNode() != StartingNode()", i)
		}
		twin := h.Twin()
		if twin.StartingNode() != h.EndNode() || twin.EndNode() != h.StartingNode() {
			t.Errorf("hedge %d: Twin() endpoints do not mirror the original", i)
		}
		if h.Tri().Idx() != tri.Idx() {
			t.Errorf("hedge %d: Tri().Idx() = %d, want %d", i, h.Tri().Idx(), tri.Idx())
		}
	}
}

func TestGetTri_OutOfBounds(t *testing.T) {
	tds := newSeeded(t)
	if _, err := tds.GetTri(1000); err == nil {
		t.Fatalf("GetTri with out-of-bounds index returned nil error, want error")
	}
}

func TestGetHedge_OutOfBounds(t *testing.T) {
	tds := newSeeded(t)
	if _, err := tds.GetHedge(1000); err == nil {
		t.Fatalf("GetHedge with out-of-bounds index returned nil error, want error")
	}
}
