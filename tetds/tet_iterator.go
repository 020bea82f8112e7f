// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetds

import (
	"fmt"

	"github.com/glennDittmann/rita/node"
)

// TetIterator is a read-only view over a single tetrahedron.
type TetIterator struct {
	tds    *TetDataStructure
	tetIdx int
}

// Idx returns the tetrahedron's flat index.
func (t TetIterator) Idx() int {
	return t.tetIdx
}

// HalfTriangles returns the tetrahedron's four faces.
func (t TetIterator) HalfTriangles() [4]HalfTriIterator {
	idxFirst := t.Idx() << 2
	return [4]HalfTriIterator{
		{tds: t.tds, halfTriIdx: idxFirst},
		{tds: t.tds, halfTriIdx: idxFirst + 1},
		{tds: t.tds, halfTriIdx: idxFirst + 2},
		{tds: t.tds, halfTriIdx: idxFirst + 3},
	}
}

// IsCasual reports whether all four corners are Casual.
func (t TetIterator) IsCasual() bool {
	return !t.IsConceptual()
}

// IsConceptual reports whether any corner is the point at infinity.
func (t TetIterator) IsConceptual() bool {
	for _, n := range t.Nodes() {
		if n.IsConceptual() {
			return true
		}
	}
	return false
}

// IsSound checks that the tet carries no leftover Bowyer-Watson scratch
// state and has no duplicate corners.
func (t TetIterator) IsSound() bool {
	if t.ShouldDel() || t.ShouldKeep() {
		return false
	}

	n := t.Nodes()
	if n[0] == n[1] || n[0] == n[2] || n[0] == n[3] || n[1] == n[2] || n[1] == n[3] || n[2] == n[3] {
		return false
	}
	return true
}

// Nodes returns the tetrahedron's four corner labels.
func (t TetIterator) Nodes() [4]node.VertexNode {
	idxFirst := t.Idx() << 2
	return [4]node.VertexNode{
		t.tds.tetNodes[idxFirst],
		t.tds.tetNodes[idxFirst+1],
		t.tds.tetNodes[idxFirst+2],
		t.tds.tetNodes[idxFirst+3],
	}
}

// ShouldDel reports the tet's Bowyer-Watson "marked for deletion" flag.
func (t TetIterator) ShouldDel() bool {
	return t.tds.shouldDelTet[t.Idx()]
}

// ShouldKeep reports the tet's Bowyer-Watson "cavity boundary" flag.
func (t TetIterator) ShouldKeep() bool {
	return t.tds.shouldKeepTet[t.Idx()]
}

func (t TetIterator) String() string {
	n := t.Nodes()
	return fmt.Sprintf("Tetrahedron %d: %s -> %s -> %s -> %s", t.Idx(), n[0], n[1], n[2], n[3])
}
