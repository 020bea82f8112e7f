// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetds

import (
	"fmt"

	"github.com/glennDittmann/rita/node"
)

// HalfTriIterator is a read-only view over a single face of a
// tetrahedron.
type HalfTriIterator struct {
	tds        *TetDataStructure
	halfTriIdx int
}

// Idx returns the half-triangle's flat index.
func (h HalfTriIterator) Idx() int {
	return h.halfTriIdx
}

// Hedges returns the face's three half-edges.
func (h HalfTriIterator) Hedges() [3]HedgeIterator {
	return [3]HedgeIterator{
		{tds: h.tds, halfTriIdx: h.halfTriIdx, hedgeIdx: 0},
		{tds: h.tds, halfTriIdx: h.halfTriIdx, hedgeIdx: 1},
		{tds: h.tds, halfTriIdx: h.halfTriIdx, hedgeIdx: 2},
	}
}

// IsSound checks that this face's nodes and its opposite face's nodes
// form the same unordered triple in reversed cyclic order.
func (h HalfTriIterator) IsSound() bool {
	n := h.Nodes()
	o := h.Opposite().Nodes()

	return (n[0] == o[0] && n[1] == o[2] && n[2] == o[1]) ||
		(n[0] == o[2] && n[1] == o[1] && n[2] == o[0]) ||
		(n[0] == o[1] && n[1] == o[0] && n[2] == o[2])
}

// IsConceptual reports whether any corner of the face is the point at
// infinity.
func (h HalfTriIterator) IsConceptual() bool {
	for _, n := range h.Nodes() {
		if n.IsConceptual() {
			return true
		}
	}
	return false
}

// Nodes returns the face's three corner labels.
func (h HalfTriIterator) Nodes() [3]node.VertexNode {
	mod4 := h.halfTriIdx % 4
	sub := TriangleSubindices[mod4]
	base := h.halfTriIdx - mod4
	return [3]node.VertexNode{
		h.tds.tetNodes[base+sub[0]],
		h.tds.tetNodes[base+sub[1]],
		h.tds.tetNodes[base+sub[2]],
	}
}

// OppositeNode returns the corner of this tet not part of the face,
// i.e. the apex opposite it.
func (h HalfTriIterator) OppositeNode() node.VertexNode {
	return h.tds.tetNodes[h.Idx()]
}

// Opposite returns the matching face on the neighboring tetrahedron.
func (h HalfTriIterator) Opposite() HalfTriIterator {
	return HalfTriIterator{tds: h.tds, halfTriIdx: h.tds.halfTriOpposite[h.Idx()]}
}

// Tet returns the tetrahedron this face belongs to.
func (h HalfTriIterator) Tet() TetIterator {
	return TetIterator{tds: h.tds, tetIdx: h.halfTriIdx >> 2}
}

func (h HalfTriIterator) String() string {
	n := h.Nodes()
	return fmt.Sprintf("Triangle %d: %s -> %s -> %s", h.halfTriIdx, n[0], n[1], n[2])
}
