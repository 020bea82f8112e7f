// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package trids implements the 2D simplicial DCEL: a flat, index-based
// triangle/half-edge data structure with the three incremental flip
// operations (1->3, 2->2, 3->1) that the 2D incremental engine drives.
// Triangles are stored as three half-edges contiguous at base 3*t, with
// external/internal twin rewiring driving each flip.
package trids

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/glennDittmann/rita/node"
	"github.com/glennDittmann/rita/predicates"
)

// inactive is the sentinel twin index for a tombstoned half-edge.
const inactive = -1

// TriDataStructure is the 2D DCEL: triangles stored as three
// contiguous half-edges, each carrying a starting node and a twin
// half-edge index.
type TriDataStructure struct {
	hedgeStartingNodes []node.VertexNode
	hedgeTwins         []int
	numTris            int
	numDeletedTris     int
}

// New returns an empty 2D DCEL.
func New() *TriDataStructure {
	return &TriDataStructure{}
}

// NumTris returns the number of live triangles.
func (t *TriDataStructure) NumTris() int {
	return t.numTris
}

// NumDeletedTris returns the number of tombstoned triangle slots.
func (t *TriDataStructure) NumDeletedTris() int {
	return t.numDeletedTris
}

// NumCasualTris returns the number of live triangles with three Casual
// corners (i.e. not touching the Conceptual point).
func (t *TriDataStructure) NumCasualTris() int {
	count := 0
	for i := 0; i < t.numTris+t.numDeletedTris; i++ {
		tri, err := t.GetTri(i)
		if err != nil {
			continue
		}
		if tri.IsDeleted() {
			continue
		}
		if !tri.IsConceptual() {
			count++
		}
	}
	return count
}

// addTri appends a new triangle's three nodes and returns its three
// half-edge indices.
func (t *TriDataStructure) addTri(nodes [3]node.VertexNode) (int, int, int) {
	idx0 := len(t.hedgeStartingNodes)
	t.hedgeStartingNodes = append(t.hedgeStartingNodes, nodes[0], nodes[1], nodes[2])
	t.numTris++
	return idx0, idx0 + 1, idx0 + 2
}

// AddInitTri seeds the DCEL with the initial fan: one real triangle
// (a,b,c) plus three conceptual triangles closing the hull, wired per
// §4.3's seedFirstTriangle contract. Fails if the DCEL is non-empty.
func (t *TriDataStructure) AddInitTri(vIdxs [3]int) ([4]TriIterator, error) {
	if t.NumTris() > 0 {
		return [4]TriIterator{}, errors.New("trids: AddInitTri: triangulation already contains triangles")
	}

	a := node.Casual(vIdxs[0])
	b := node.Casual(vIdxs[1])
	c := node.Casual(vIdxs[2])
	inf := node.Conceptual

	hedge01, hedge12, hedge20 := t.addTri([3]node.VertexNode{a, b, c})
	hedgeI2, hedge21, hedge1I := t.addTri([3]node.VertexNode{inf, c, b})
	hedge2I, hedgeI0, hedge02 := t.addTri([3]node.VertexNode{c, inf, a})
	hedge10, hedge0I, hedgeI1 := t.addTri([3]node.VertexNode{b, a, inf})

	t.hedgeTwins = append(t.hedgeTwins,
		hedge10, hedge21, hedge02, hedge2I, hedge12, hedgeI1,
		hedgeI2, hedge0I, hedge20, hedge01, hedgeI0, hedge1I,
	)

	return [4]TriIterator{
		{tds: t, idx: 0}, {tds: t, idx: 1}, {tds: t, idx: 2}, {tds: t, idx: 3},
	}, nil
}

// Flip1To3 replaces the triangle at idxToRemove with three triangles
// sharing the newly inserted vertex vIdx, as in §4.3's flip1to3.
func (t *TriDataStructure) Flip1To3(idxToRemove, vIdx int) ([3]TriIterator, error) {
	if idxToRemove >= t.numTris+t.numDeletedTris {
		return [3]TriIterator{}, errors.New("trids: Flip1To3: triangle index out of bounds")
	}

	hedgeAB := idxToRemove * 3
	hedgeBC := hedgeAB + 1
	hedgeCA := hedgeAB + 2

	a := t.hedgeStartingNodes[hedgeAB]
	b := t.hedgeStartingNodes[hedgeBC]
	c := t.hedgeStartingNodes[hedgeCA]
	d := node.Casual(vIdx)

	hedgeBA := t.hedgeTwins[hedgeAB]
	hedgeCB := t.hedgeTwins[hedgeBC]
	hedgeAC := t.hedgeTwins[hedgeCA]

	hedgeAB, hedgeBD, hedgeDA := t.replaceTri(idxToRemove, a, b, d)
	hedgeBC, hedgeCD, hedgeDB := t.addTri([3]node.VertexNode{b, c, d})
	hedgeCA, hedgeAD, hedgeDC := t.addTri([3]node.VertexNode{c, a, d})

	t.hedgeTwins[hedgeBA] = hedgeAB
	t.hedgeTwins[hedgeCB] = hedgeBC
	t.hedgeTwins[hedgeAC] = hedgeCA
	t.hedgeTwins[hedgeAB] = hedgeBA
	t.hedgeTwins[hedgeBD] = hedgeDB
	t.hedgeTwins[hedgeDA] = hedgeAD
	t.hedgeTwins = append(t.hedgeTwins, hedgeCB, hedgeDC, hedgeBD, hedgeAC, hedgeDA, hedgeCD)

	return [3]TriIterator{
		{tds: t, idx: idxToRemove},
		{tds: t, idx: t.numTris + t.numDeletedTris - 2},
		{tds: t, idx: t.numTris + t.numDeletedTris - 1},
	}, nil
}

// Flip2To2 flips the edge at hedgeIdx, replacing the two triangles that
// share it with the two triangles formed by the opposite diagonal.
func (t *TriDataStructure) Flip2To2(hedgeIdx int) ([2]TriIterator, error) {
	hedgeTwinIdx := t.hedgeTwins[hedgeIdx]

	tri1Idx := hedgeIdx / 3
	tri2Idx := hedgeTwinIdx / 3

	hedge01 := tri1Idx * 3
	hedge12 := hedge01 + 1
	hedge20 := hedge01 + 2

	hedge01Twin := tri2Idx * 3
	hedge12Twin := hedge01Twin + 1
	hedge20Twin := hedge01Twin + 2

	var hedgeAB, hedgeBC int
	switch hedgeIdx {
	case hedge01:
		hedgeAB, hedgeBC = hedge12, hedge20
	case hedge12:
		hedgeAB, hedgeBC = hedge20, hedge01
	default:
		hedgeAB, hedgeBC = hedge01, hedge12
	}

	var hedgeCD, hedgeDA int
	switch hedgeTwinIdx {
	case hedge01Twin:
		hedgeCD, hedgeDA = hedge12Twin, hedge20Twin
	case hedge12Twin:
		hedgeCD, hedgeDA = hedge20Twin, hedge01Twin
	default:
		hedgeCD, hedgeDA = hedge01Twin, hedge12Twin
	}

	na := t.hedgeStartingNodes[hedgeAB]
	nb := t.hedgeStartingNodes[hedgeBC]
	nc := t.hedgeStartingNodes[hedgeCD]
	nd := t.hedgeStartingNodes[hedgeDA]

	hedgeBA := t.hedgeTwins[hedgeAB]
	hedgeCB := t.hedgeTwins[hedgeBC]
	hedgeDC := t.hedgeTwins[hedgeCD]
	hedgeAD := t.hedgeTwins[hedgeDA]

	hedgeBC, hedgeCD, hedgeDB := t.replaceTri(tri1Idx, nb, nc, nd)
	hedgeDA, hedgeAB, hedgeBD := t.replaceTri(tri2Idx, nd, na, nb)

	t.hedgeTwins[hedgeAB] = hedgeBA
	t.hedgeTwins[hedgeDA] = hedgeAD
	t.hedgeTwins[hedgeBC] = hedgeCB
	t.hedgeTwins[hedgeCD] = hedgeDC

	t.hedgeTwins[hedgeBD] = hedgeDB
	t.hedgeTwins[hedgeDB] = hedgeBD

	t.hedgeTwins[hedgeBA] = hedgeAB
	t.hedgeTwins[hedgeAD] = hedgeDA
	t.hedgeTwins[hedgeCB] = hedgeBC
	t.hedgeTwins[hedgeDC] = hedgeCD

	return [2]TriIterator{
		{tds: t, idx: tri1Idx},
		{tds: t, idx: tri2Idx},
	}, nil
}

// Flip3To1 collapses the three triangles sharing reflexNodeIdx into a
// single triangle, as in §4.3's flip3to1. vertices supplies 2D
// coordinates for the orientation check that picks the new triangle's
// winding.
func (t *TriDataStructure) Flip3To1(idxsToFlip [3]int, reflexNodeIdx int, vertices []r2.Point) (TriIterator, error) {
	tri0, err := t.GetTri(idxsToFlip[0])
	if err != nil {
		return TriIterator{}, err
	}
	hedges0 := tri0.Hedges()

	hIdx0 := hedges0[0].idx
	hIdx1 := hedges0[1].idx
	hIdx2 := hedges0[2].idx

	startingNode0, twinIdx0 := t.outerEdge(hedges0, reflexNodeIdx)

	tri1, err := t.GetTri(idxsToFlip[1])
	if err != nil {
		return TriIterator{}, err
	}
	startingNode1, twinIdx1 := t.outerEdge(tri1.Hedges(), reflexNodeIdx)

	tri2, err := t.GetTri(idxsToFlip[2])
	if err != nil {
		return TriIterator{}, err
	}
	startingNode2, twinIdx2 := t.outerEdge(tri2.Hedges(), reflexNodeIdx)

	idx0, ok0 := startingNode0.Index()
	idx1, ok1 := startingNode1.Index()
	idx2, ok2 := startingNode2.Index()
	if !ok0 || !ok1 || !ok2 {
		return TriIterator{}, errors.New("trids: Flip3To1: outer edge endpoint is not casual")
	}

	if predicates.Orient2D(vertices[idx0], vertices[idx1], vertices[idx2]) < predicates.Zero {
		startingNode1, startingNode2 = startingNode2, startingNode1
		twinIdx1, twinIdx2 = twinIdx2, twinIdx1
	}

	t.hedgeStartingNodes[hIdx0] = startingNode0
	t.hedgeTwins[hIdx0] = twinIdx0
	t.hedgeTwins[twinIdx0] = hIdx0

	t.hedgeStartingNodes[hIdx1] = startingNode1
	t.hedgeTwins[hIdx1] = twinIdx1
	t.hedgeTwins[twinIdx1] = hIdx1

	t.hedgeStartingNodes[hIdx2] = startingNode2
	t.hedgeTwins[hIdx2] = twinIdx2
	t.hedgeTwins[twinIdx2] = hIdx2

	t.setTriInactive(idxsToFlip[1])
	t.setTriInactive(idxsToFlip[2])

	t.numTris -= 2
	t.numDeletedTris += 2

	return TriIterator{tds: t, idx: tri0.idx}, nil
}

// outerEdge finds, among a triangle's three half-edges, the one whose
// endpoints do not include reflexNodeIdx -- the edge that survives a
// 3-to-1 flip.
func (t *TriDataStructure) outerEdge(hedges [3]HedgeIterator, reflexNodeIdx int) (node.VertexNode, int) {
	reflex := node.Casual(reflexNodeIdx)
	startingNode := node.Deleted
	twinIdx := inactive
	for _, h := range hedges {
		if h.StartingNode() != reflex && h.EndNode() != reflex {
			startingNode = h.StartingNode()
			twinIdx = h.Twin().idx
		}
	}
	return startingNode, twinIdx
}

func (t *TriDataStructure) setTriInactive(triIdx int) {
	tri := TriIterator{tds: t, idx: triIdx}
	hedges := tri.Hedges()
	for _, h := range hedges {
		t.hedgeStartingNodes[h.idx] = node.Deleted
		t.hedgeTwins[h.idx] = inactive
	}
}

// replaceTri overwrites the triangle at idxToRemove's three nodes in
// place and returns its (unchanged) three half-edge indices.
func (t *TriDataStructure) replaceTri(idxToRemove int, v0, v1, v2 node.VertexNode) (int, int, int) {
	idx0 := idxToRemove * 3
	t.hedgeStartingNodes[idx0] = v0
	t.hedgeStartingNodes[idx0+1] = v1
	t.hedgeStartingNodes[idx0+2] = v2
	return idx0, idx0 + 1, idx0 + 2
}

// GetHedge returns a half-edge iterator, bounds-checked.
func (t *TriDataStructure) GetHedge(idx int) (HedgeIterator, error) {
	if idx < 0 || idx >= len(t.hedgeStartingNodes) {
		return HedgeIterator{}, fmt.Errorf("trids: GetHedge: index %d out of bounds [0,%d)", idx, len(t.hedgeStartingNodes))
	}
	return HedgeIterator{tds: t, idx: idx}, nil
}

// GetTri returns a triangle iterator, bounds-checked against every
// slot ever allocated (live or tombstoned).
func (t *TriDataStructure) GetTri(idx int) (TriIterator, error) {
	if idx < 0 || idx >= t.numTris+t.numDeletedTris {
		return TriIterator{}, fmt.Errorf("trids: GetTri: index %d out of bounds [0,%d)", idx, t.numTris+t.numDeletedTris)
	}
	return TriIterator{tds: t, idx: idx}, nil
}

// IsSound checks the DCEL's combinatorial invariants: every live
// half-edge's next/prev/twin point at mutually consistent nodes.
func (t *TriDataStructure) IsSound() bool {
	sound := true
	for idx := 0; idx < len(t.hedgeStartingNodes); idx++ {
		if t.hedgeStartingNodes[idx].IsDeleted() {
			continue
		}
		h, err := t.GetHedge(idx)
		if err != nil {
			return false
		}
		sound = sound && h.IsSound()
	}
	return sound
}
