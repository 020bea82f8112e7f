// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetds

import "testing"

func TestHalfTriIterator_OppositeIsInvolution(t *testing.T) {
	tds := newSeededTet(t)
	tet, err := tds.GetTet(0)
	if err != nil {
		t.Fatalf("GetTet: %v", err)
	}
	for _, tri := range tet.HalfTriangles() {
		opp := tri.Opposite()
		if opp.Opposite().Idx() != tri.Idx() {
			t.Errorf("tri %d: Opposite().Opposite() = %d, want %d", tri.Idx(), opp.Opposite().Idx(), tri.Idx())
		}
		if !tri.IsSound() {
			t.Errorf("tri %d is not sound", tri.Idx())
		}
	}
}

func TestHalfTriIterator_OppositeNode(t *testing.T) {
	tds := newSeededTet(t)
	tet, err := tds.GetTet(0)
	if err != nil {
		t.Fatalf("GetTet: %v", err)
	}
	nodes := tet.Nodes()
	for i, tri := range tet.HalfTriangles() {
		if tri.OppositeNode() != nodes[i] {
			t.Errorf("tri %d: OppositeNode() = %s, want %s", tri.Idx(), tri.OppositeNode(), nodes[i])
		}
		faceNodes := tri.Nodes()
		for _, fn := range faceNodes {
			if fn == nodes[i] {
				t.Errorf("face %d unexpectedly contains its own opposite apex", tri.Idx())
			}
		}
	}
}

func TestHedgeIterator_NeighborIsInvolution(t *testing.T) {
	tds := newSeededTet(t)
	tet, err := tds.GetTet(0)
	if err != nil {
		t.Fatalf("GetTet: %v", err)
	}
	for _, tri := range tet.HalfTriangles() {
		for _, he := range tri.Hedges() {
			nb := he.Neighbor()
			back := nb.Neighbor()
			if back.Idx() != he.Idx() || back.Tri().Idx() != he.Tri().Idx() {
				t.Errorf("hedge (%d,%d): Neighbor().Neighbor() != self", he.Tri().Idx(), he.Idx())
			}
			if !he.IsSound() {
				t.Errorf("hedge (%d,%d) is not sound", he.Tri().Idx(), he.Idx())
			}
		}
	}
}
