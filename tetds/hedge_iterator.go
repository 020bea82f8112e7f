// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetds

import (
	"fmt"

	"github.com/glennDittmann/rita/node"
)

// HedgeIterator is a read-only view over a single half-edge of a face.
type HedgeIterator struct {
	tds        *TetDataStructure
	halfTriIdx int
	hedgeIdx   int
}

// Idx returns the half-edge's index within its face (0, 1, or 2).
func (h HedgeIterator) Idx() int {
	return h.hedgeIdx
}

// FirstNode returns the node this half-edge originates from.
func (h HedgeIterator) FirstNode() node.VertexNode {
	mod4 := h.halfTriIdx % 4
	sub := TriangleSubindices[mod4]
	base := h.halfTriIdx - mod4
	return h.tds.tetNodes[base+sub[h.hedgeIdx]]
}

// LastNode returns the node this half-edge terminates at.
func (h HedgeIterator) LastNode() node.VertexNode {
	mod4 := h.halfTriIdx % 4
	sub := TriangleSubindices[mod4]
	base := h.halfTriIdx - mod4
	return h.tds.tetNodes[base+sub[(h.hedgeIdx+1)%3]]
}

// Neighbor returns the within-tet adjacent half-edge sharing the same
// two corners, on a different face of the same tetrahedron.
func (h HedgeIterator) Neighbor() HedgeIterator {
	mod4 := h.halfTriIdx % 4
	base := h.halfTriIdx - mod4
	nb := NeighborHalfedge[mod4][h.hedgeIdx]
	return HedgeIterator{tds: h.tds, halfTriIdx: base + nb[0], hedgeIdx: nb[1]}
}

// Next returns the next half-edge within the same face.
func (h HedgeIterator) Next() HedgeIterator {
	return HedgeIterator{tds: h.tds, halfTriIdx: h.halfTriIdx, hedgeIdx: (h.hedgeIdx + 1) % 3}
}

// Prev returns the previous half-edge within the same face.
func (h HedgeIterator) Prev() HedgeIterator {
	return HedgeIterator{tds: h.tds, halfTriIdx: h.halfTriIdx, hedgeIdx: (h.hedgeIdx + 2) % 3}
}

// Opposite returns the half-edge on the neighboring tetrahedron's
// matching face that shares this half-edge's two corners in reverse.
func (h HedgeIterator) Opposite() HedgeIterator {
	oppTri := HalfTriIterator{tds: h.tds, halfTriIdx: h.tds.halfTriOpposite[h.halfTriIdx]}
	last := h.LastNode()
	for _, oh := range oppTri.Hedges() {
		if oh.FirstNode() == last {
			return oh
		}
	}
	panic("tetds: Opposite: no matching half-edge found on opposite face")
}

// Tri returns the face this half-edge belongs to.
func (h HedgeIterator) Tri() HalfTriIterator {
	return HalfTriIterator{tds: h.tds, halfTriIdx: h.halfTriIdx}
}

// IsSound checks that next/prev/opposite/neighbor all connect
// first/last node consistently.
func (h HedgeIterator) IsSound() bool {
	first := h.FirstNode()
	last := h.LastNode()

	if h.Next().FirstNode() != last {
		return false
	}
	if h.Prev().LastNode() != first {
		return false
	}
	opp := h.Opposite()
	if opp.FirstNode() != last || opp.LastNode() != first {
		return false
	}
	nb := h.Neighbor()
	if nb.FirstNode() != last || nb.LastNode() != first {
		return false
	}
	return true
}

func (h HedgeIterator) String() string {
	return fmt.Sprintf("Hedge (%d,%d): %s -> %s", h.halfTriIdx, h.hedgeIdx, h.FirstNode(), h.LastNode())
}
