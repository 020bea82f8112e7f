// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package trids

import (
	"fmt"

	"github.com/glennDittmann/rita/node"
)

// TriIterator is a read-only view over a single triangle of a
// TriDataStructure.
type TriIterator struct {
	tds *TriDataStructure
	idx int
}

// Idx returns the triangle's flat index.
func (t TriIterator) Idx() int {
	return t.idx
}

// Hedges returns the triangle's three half-edges.
func (t TriIterator) Hedges() [3]HedgeIterator {
	base := t.idx * 3
	return [3]HedgeIterator{
		{tds: t.tds, idx: base},
		{tds: t.tds, idx: base + 1},
		{tds: t.tds, idx: base + 2},
	}
}

// Nodes returns the triangle's three corner labels.
func (t TriIterator) Nodes() [3]node.VertexNode {
	base := t.idx * 3
	return [3]node.VertexNode{
		t.tds.hedgeStartingNodes[base],
		t.tds.hedgeStartingNodes[base+1],
		t.tds.hedgeStartingNodes[base+2],
	}
}

// IsCasual reports whether all three corners are Casual.
func (t TriIterator) IsCasual() bool {
	return !t.IsConceptual() && !t.IsDeleted()
}

// IsConceptual reports whether any corner is the point at infinity.
func (t TriIterator) IsConceptual() bool {
	for _, n := range t.Nodes() {
		if n.IsConceptual() {
			return true
		}
	}
	return false
}

// IsDeleted reports whether any corner is a tombstone.
func (t TriIterator) IsDeleted() bool {
	for _, n := range t.Nodes() {
		if n.IsDeleted() {
			return true
		}
	}
	return false
}

func (t TriIterator) String() string {
	nodes := t.Nodes()
	return fmt.Sprintf("Triangle %d: %s -> %s -> %s", t.idx, nodes[0], nodes[1], nodes[2])
}
