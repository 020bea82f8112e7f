// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package trids

import (
	"fmt"

	"github.com/glennDittmann/rita/node"
)

// HedgeIterator is a read-only view over a single half-edge of a
// TriDataStructure.
type HedgeIterator struct {
	tds *TriDataStructure
	idx int
}

// Idx returns the half-edge's flat index.
func (h HedgeIterator) Idx() int {
	return h.idx
}

// StartingNode returns the node this half-edge originates from.
func (h HedgeIterator) StartingNode() node.VertexNode {
	return h.tds.hedgeStartingNodes[h.idx]
}

// EndNode returns the node this half-edge terminates at: the next
// hedge's starting node within the same triangle.
func (h HedgeIterator) EndNode() node.VertexNode {
	if h.idx%3 == 2 {
		return h.tds.hedgeStartingNodes[h.idx-2]
	}
	return h.tds.hedgeStartingNodes[h.idx+1]
}

// IsConceptual reports whether either endpoint is the point at
// infinity.
func (h HedgeIterator) IsConceptual() bool {
	return h.StartingNode().IsConceptual() || h.EndNode().IsConceptual()
}

// Next returns the next half-edge within the same triangle.
func (h HedgeIterator) Next() HedgeIterator {
	if h.idx%3 == 2 {
		return HedgeIterator{tds: h.tds, idx: h.idx - 2}
	}
	return HedgeIterator{tds: h.tds, idx: h.idx + 1}
}

// Prev returns the previous half-edge within the same triangle.
func (h HedgeIterator) Prev() HedgeIterator {
	if h.idx%3 == 0 {
		return HedgeIterator{tds: h.tds, idx: h.idx + 2}
	}
	return HedgeIterator{tds: h.tds, idx: h.idx - 1}
}

// Twin returns the opposite half-edge across the shared edge.
func (h HedgeIterator) Twin() HedgeIterator {
	return HedgeIterator{tds: h.tds, idx: h.tds.hedgeTwins[h.idx]}
}

// Tri returns the triangle this half-edge belongs to.
func (h HedgeIterator) Tri() TriIterator {
	return TriIterator{tds: h.tds, idx: h.idx / 3}
}

// IsSound checks that next/prev/twin point at mutually consistent
// nodes.
func (h HedgeIterator) IsSound() bool {
	startingNode := h.StartingNode()
	endNode := h.EndNode()

	if h.Next().StartingNode() != endNode {
		return false
	}
	if h.Prev().EndNode() != startingNode {
		return false
	}
	twin := h.Twin()
	if twin.StartingNode() != endNode || twin.EndNode() != startingNode {
		return false
	}
	return true
}

func (h HedgeIterator) String() string {
	return fmt.Sprintf("Edge %d: %s -> %s", h.idx, h.StartingNode(), h.EndNode())
}
