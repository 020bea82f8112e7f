// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package tetds implements the 3D simplicial DCEL: a flat, index-based
// tetrahedron/half-triangle/half-edge data structure together with the
// Bowyer-Watson scratch state (shouldDelete/shouldKeep bitmaps and
// worklists) the 3D incremental engine drives. Four corners per
// tetrahedron are stored contiguously at base 4*t, alongside the fixed
// TriangleSubindices/NeighborHalfedge adjacency tables that drive
// cavity retriangulation.
package tetds

import (
	"errors"
	"fmt"
	"sort"

	"github.com/glennDittmann/rita/node"
)

// TriangleSubindices maps each of a tetrahedron's 4 faces to the 3
// corner sub-indices (within the tet) that make up that face.
var TriangleSubindices = [4][3]int{
	{1, 3, 2},
	{0, 2, 3},
	{0, 3, 1},
	{0, 1, 2},
}

// NeighborHalfedge maps (face, halfedge) within a tetrahedron to the
// (face, halfedge) of the within-tet neighboring half-edge sharing the
// same two corners.
var NeighborHalfedge = [4][3][2]int{
	{{2, 1}, {1, 1}, {3, 1}},
	{{3, 2}, {0, 1}, {2, 0}},
	{{1, 2}, {0, 0}, {3, 0}},
	{{2, 2}, {0, 2}, {1, 0}},
}

// TetDataStructure is the 3D DCEL.
type TetDataStructure struct {
	tetNodes       []node.VertexNode
	halfTriOpposite []int

	numTets int

	shouldDelTet []bool
	shouldKeepTet []bool
	tetsToDel    []int
	tetsToKeep   []int
	tetsToCheck  []int
}

// New returns an empty 3D DCEL.
func New() *TetDataStructure {
	return &TetDataStructure{}
}

func (t *TetDataStructure) hedge(halfTriIdx, hedgeIdx int) HedgeIterator {
	return HedgeIterator{tds: t, halfTriIdx: halfTriIdx, hedgeIdx: hedgeIdx}
}

func (t *TetDataStructure) halfTriangle(halfTriIdx int) HalfTriIterator {
	return HalfTriIterator{tds: t, halfTriIdx: halfTriIdx}
}

func (t *TetDataStructure) tet(tetIdx int) TetIterator {
	return TetIterator{tds: t, tetIdx: tetIdx}
}

// GetHalfTri returns a half-triangle iterator, bounds-checked.
func (t *TetDataStructure) GetHalfTri(halfTriIdx int) (HalfTriIterator, error) {
	if halfTriIdx < 0 || halfTriIdx >= len(t.halfTriOpposite) {
		return HalfTriIterator{}, errors.New("tetds: GetHalfTri: half-triangle index out of bounds")
	}
	return t.halfTriangle(halfTriIdx), nil
}

// NumCasualTets returns the number of live tets with all four corners
// Casual (no Conceptual corner).
func (t *TetDataStructure) NumCasualTets() int {
	count := 0
	for i := 0; i < t.numTets; i++ {
		tet, err := t.GetTet(i)
		if err != nil {
			continue
		}
		if !tet.IsConceptual() {
			count++
		}
	}
	return count
}

// GetTet returns a tetrahedron iterator, bounds-checked.
func (t *TetDataStructure) GetTet(tetIdx int) (TetIterator, error) {
	if tetIdx < 0 || tetIdx >= t.numTets {
		return TetIterator{}, errors.New("tetds: GetTet: tetrahedron index out of bounds")
	}
	return t.tet(tetIdx), nil
}

// NumTets returns the number of live tetrahedra.
func (t *TetDataStructure) NumTets() int {
	return t.numTets
}

// GetHedgeContaining returns the half-edges, across every live tet,
// whose (first,last) nodes match (n0,n1).
func (t *TetDataStructure) GetHedgeContaining(n0, n1 node.VertexNode) []HedgeIterator {
	var hedges []HedgeIterator

	for i := 0; i < t.numTets; i++ {
		firstNode := i << 2
		subV0, subV1 := 4, 4

		for j := 0; j < 4; j++ {
			switch t.tetNodes[firstNode+j] {
			case n0:
				subV0 = j
			case n1:
				subV1 = j
			}
		}

		if subV0 == 4 || subV1 == 4 {
			continue
		}

		for j, subIdxs := range TriangleSubindices {
			if j == subV0 || j == subV1 {
				continue
			}
			for k, subIdx := range subIdxs {
				if subIdx == subV0 && subIdxs[(k+1)%3] == subV1 {
					hedges = append(hedges, t.hedge(firstNode+j, k))
					break
				}
			}
		}
	}

	return hedges
}

// GetHalfTriContaining returns the half-triangle, if any, across every
// live tet, whose corners are exactly (n1,n2,n3) in cyclic order.
func (t *TetDataStructure) GetHalfTriContaining(n1, n2, n3 node.VertexNode) (HalfTriIterator, bool) {
	for i := 0; i < t.numTets; i++ {
		firstNode := i << 2
		subV0, subV1, subV2 := 4, 4, 4

		for j := 0; j < 4; j++ {
			switch t.tetNodes[firstNode+j] {
			case n1:
				subV0 = j
			case n2:
				subV1 = j
			case n3:
				subV2 = j
			}
		}

		if subV0 == 4 || subV1 == 4 || subV2 == 4 {
			continue
		}

		for j, subIdxs := range TriangleSubindices {
			if j == subV0 || j == subV1 || j == subV2 {
				continue
			}
			for k, subIdx := range subIdxs {
				if subIdx == subV0 && subIdxs[(k+1)%3] == subV1 && subIdxs[(k+2)%3] == subV2 {
					return t.halfTriangle(firstNode + j), true
				}
			}
			return t.halfTriangle(firstNode + j).Opposite(), true
		}
	}

	return HalfTriIterator{}, false
}

// GetTetContaining returns every live tet with a corner equal to n.
func (t *TetDataStructure) GetTetContaining(n node.VertexNode) []TetIterator {
	var tets []TetIterator
	for i := 0; i < t.numTets; i++ {
		firstNode := i << 2
		for j := 0; j < 4; j++ {
			if t.tetNodes[firstNode+j] == n {
				tets = append(tets, t.tet(i))
				break
			}
		}
	}
	return tets
}

// BwStart initializes Bowyer-Watson cavity carving, marking the seed
// tet for deletion.
func (t *TetDataStructure) BwStart(firstTetIdx int) error {
	if len(t.tetsToCheck) != 0 || len(t.tetsToKeep) != 0 {
		return errors.New("tetds: BwStart: Bowyer-Watson algorithm already started")
	}
	t.BwRemTet(firstTetIdx)
	return nil
}

// BwTetsToCheck pops the next undecided tet from the check worklist,
// skipping ones already marked delete/keep.
func (t *TetDataStructure) BwTetsToCheck() (int, bool) {
	for len(t.tetsToCheck) > 0 {
		tetIdx := t.tetsToCheck[len(t.tetsToCheck)-1]
		t.tetsToCheck = t.tetsToCheck[:len(t.tetsToCheck)-1]
		if !t.shouldDelTet[tetIdx] && !t.shouldKeepTet[tetIdx] {
			return tetIdx, true
		}
	}
	return 0, false
}

// BwRemTet marks tetIdx for deletion and enqueues its four
// face-neighbors for checking.
func (t *TetDataStructure) BwRemTet(tetIdx int) {
	tri0 := tetIdx << 2
	tri1, tri2, tri3 := tri0+1, tri0+2, tri0+3

	t.tetsToCheck = append(t.tetsToCheck,
		t.halfTriOpposite[tri0]>>2,
		t.halfTriOpposite[tri1]>>2,
		t.halfTriOpposite[tri2]>>2,
		t.halfTriOpposite[tri3]>>2,
	)

	t.shouldDelTet[tetIdx] = true
	t.tetsToDel = append(t.tetsToDel, tetIdx)
}

// BwKeepTetra marks tetIdx as a cavity-boundary tet to keep.
func (t *TetDataStructure) BwKeepTetra(tetIdx int) error {
	t.shouldKeepTet[tetIdx] = true
	t.tetsToKeep = append(t.tetsToKeep, tetIdx)
	return nil
}

// BwInsertNode retriangulates the carved cavity, connecting every
// boundary face to the new node nod. Returns the indices of the newly
// created (or reused) tets.
func (t *TetDataStructure) BwInsertNode(nod node.VertexNode) ([]int, error) {
	if len(t.tetsToCheck) != 0 {
		return nil, errors.New("tetds: BwInsertNode: cannot insert node if all tetrahedra are not checked")
	}

	if len(t.tetsToKeep) == 0 {
		return nil, errors.New("tetds: BwInsertNode: no kept tetrahedron")
	}
	indTetraKeep := t.tetsToKeep[len(t.tetsToKeep)-1]
	tetra := t.tet(indTetraKeep)
	tris := tetra.HalfTriangles()

	indTriFirst := -1
	for _, tri := range tris {
		if tri.Opposite().Tet().ShouldDel() {
			indTriFirst = tri.Idx()
			break
		}
	}
	if indTriFirst == -1 {
		return nil, errors.New("tetds: BwInsertNode: isolated kept tetrahedron")
	}

	// 2 - build boundary triangles graph
	vecTri := []int{indTriFirst}
	vecNei := [][3]int{{-1, -1, -1}}
	indCur := 0
	for {
		curTri := HalfTriIterator{tds: t, halfTriIdx: vecTri[indCur]}
		hedges := curTri.Hedges()

		for j, hedge := range hedges {
			if vecNei[indCur][j] != -1 {
				continue
			}

			heCur := hedge.Opposite().Neighbor().Opposite()

			var indCur2, j2 int
			for {
				if !heCur.Tri().Tet().ShouldDel() {
					indTri2 := heCur.Tri().Idx()
					j2 = heCur.Idx()

					found := -1
					for i2, ind := range vecTri {
						if ind == indTri2 {
							found = i2
							break
						}
					}
					if found == -1 {
						vecTri = append(vecTri, indTri2)
						vecNei = append(vecNei, [3]int{-1, -1, -1})
						found = len(vecTri) - 1
					}
					indCur2 = found
					break
				}
				heCur = heCur.Neighbor().Opposite()
			}

			vecNei[indCur][j] = indCur2
			vecNei[indCur2][j2] = indCur
		}

		indCur++
		if indCur >= len(vecTri) {
			break
		}
	}

	addedTets := make([]int, 0, len(vecTri))
	// 3 - create tetrahedra
	for _, i := range vecTri {
		curTri := HalfTriIterator{tds: t, halfTriIdx: i}
		nodes := curTri.Nodes()

		if len(t.tetsToDel) > 0 {
			indAdd := t.tetsToDel[len(t.tetsToDel)-1]
			t.tetsToDel = t.tetsToDel[:len(t.tetsToDel)-1]
			addedTets = append(addedTets, indAdd)
			t.replaceTet(indAdd, nodes[0], nodes[2], nodes[1], nod)
		} else {
			addedTets = append(addedTets, t.NumTets())
			t.halfTriOpposite = append(t.halfTriOpposite, 0, 0, 0, 0)
			t.insertTet(nodes[0], nodes[2], nodes[1], nod)
		}
	}

	// 4 - create links
	for i := range vecTri {
		tri0 := addedTets[i] * 4
		tri1 := tri0 + 1
		tri2 := tri0 + 2
		tri3 := tri0 + 3

		indTriNei := vecTri[i]

		indNei0 := vecNei[i][1]
		indNei1 := vecNei[i][0]
		indNei2 := vecNei[i][2]

		indTetNei0 := addedTets[indNei0]
		indTetNei1 := addedTets[indNei1]
		indTetNei2 := addedTets[indNei2]

		pick := func(neiSlot [3]int, i, tetNei int) int {
			switch i {
			case neiSlot[0]:
				return tetNei*4 + 1
			case neiSlot[1]:
				return tetNei * 4
			default:
				return tetNei*4 + 2
			}
		}

		indTri0Nei := pick(vecNei[indNei0], i, indTetNei0)
		indTri1Nei := pick(vecNei[indNei1], i, indTetNei1)
		indTri2Nei := pick(vecNei[indNei2], i, indTetNei2)

		t.halfTriOpposite[tri0] = indTri0Nei
		t.halfTriOpposite[tri1] = indTri1Nei
		t.halfTriOpposite[tri2] = indTri2Nei
		t.halfTriOpposite[tri3] = indTriNei
		t.halfTriOpposite[indTriNei] = tri3
	}

	for len(t.tetsToKeep) > 0 {
		indTetraKeep := t.tetsToKeep[len(t.tetsToKeep)-1]
		t.tetsToKeep = t.tetsToKeep[:len(t.tetsToKeep)-1]
		t.shouldKeepTet[indTetraKeep] = false
	}

	return addedTets, nil
}

// CleanToDel compacts the tombstoned tets built up by BwRemTet,
// swapping the last live tet into each freed slot.
func (t *TetDataStructure) CleanToDel() error {
	sort.Ints(t.tetsToDel)

	for len(t.tetsToDel) > 0 {
		tetToDelIdx := t.tetsToDel[len(t.tetsToDel)-1]
		t.tetsToDel = t.tetsToDel[:len(t.tetsToDel)-1]
		t.shouldDelTet[tetToDelIdx] = false
		if err := t.movEndTet(tetToDelIdx); err != nil {
			return err
		}
	}

	return nil
}

func (t *TetDataStructure) insertTet(n0, n1, n2, n3 node.VertexNode) (int, int, int, int) {
	idx0 := len(t.tetNodes)
	t.tetNodes = append(t.tetNodes, n0, n1, n2, n3)
	t.shouldDelTet = append(t.shouldDelTet, false)
	t.shouldKeepTet = append(t.shouldKeepTet, false)
	t.numTets++
	return idx0, idx0 + 1, idx0 + 2, idx0 + 3
}

func (t *TetDataStructure) replaceTet(tetIdx int, n0, n1, n2, n3 node.VertexNode) (int, int, int, int) {
	idx0 := tetIdx * 4
	t.tetNodes[idx0] = n0
	t.tetNodes[idx0+1] = n1
	t.tetNodes[idx0+2] = n2
	t.tetNodes[idx0+3] = n3
	t.shouldDelTet[tetIdx] = false
	t.shouldKeepTet[tetIdx] = false
	return idx0, idx0 + 1, idx0 + 2, idx0 + 3
}

func (t *TetDataStructure) movEndTet(tetIdx int) error {
	if tetIdx != t.numTets-1 {
		n := len(t.halfTriOpposite)
		oppTriIdx0 := t.halfTriOpposite[n-4]
		oppTriIdx1 := t.halfTriOpposite[n-3]
		oppTriIdx2 := t.halfTriOpposite[n-2]
		oppTriIdx3 := t.halfTriOpposite[n-1]

		nodes := t.tet(t.numTets - 1).Nodes()

		triIdx0, triIdx1, triIdx2, triIdx3 := t.replaceTet(tetIdx, nodes[0], nodes[1], nodes[2], nodes[3])

		t.halfTriOpposite[triIdx0] = oppTriIdx0
		t.halfTriOpposite[triIdx1] = oppTriIdx1
		t.halfTriOpposite[triIdx2] = oppTriIdx2
		t.halfTriOpposite[triIdx3] = oppTriIdx3

		t.halfTriOpposite[oppTriIdx0] = triIdx0
		t.halfTriOpposite[oppTriIdx1] = triIdx1
		t.halfTriOpposite[oppTriIdx2] = triIdx2
		t.halfTriOpposite[oppTriIdx3] = triIdx3
	}

	t.tetNodes = t.tetNodes[:len(t.tetNodes)-4]
	t.halfTriOpposite = t.halfTriOpposite[:len(t.halfTriOpposite)-4]
	t.shouldDelTet = t.shouldDelTet[:len(t.shouldDelTet)-1]
	t.shouldKeepTet = t.shouldKeepTet[:len(t.shouldKeepTet)-1]
	t.numTets--

	return nil
}

// InsertFirstTet seeds the DCEL with one real tet (nodes) plus four
// conceptual tets closing the hull, wiring all 20 opposite-face
// pointers per the fixed topology, as in §4.4's seedFirstTet.
func (t *TetDataStructure) InsertFirstTet(nodes [4]int) ([4]TetIterator, error) {
	if t.numTets != 0 {
		return [4]TetIterator{}, errors.New("tetds: InsertFirstTet: already tetrahedra in simplicial")
	}

	n0 := node.Casual(nodes[0])
	n1 := node.Casual(nodes[1])
	n2 := node.Casual(nodes[2])
	n3 := node.Casual(nodes[3])
	inf := node.Conceptual

	firstTetra := t.numTets

	t132, t023, t031, t012 := t.insertTet(n0, n1, n2, n3)
	t2i3, t13i, t1i2, t123 := t.insertTet(n1, n2, n3, inf)
	t3i2, t02i, t0i3, t032 := t.insertTet(n0, n3, n2, inf)
	t1i3, t03i, t0i1, t013 := t.insertTet(n0, n1, n3, inf)
	t2i1, t01i, t0i2, t021 := t.insertTet(n0, n2, n1, inf)

	t.halfTriOpposite = append(t.halfTriOpposite,
		t123, t032, t013, t021, // t132, t023, t031, t012
		t3i2, t1i3, t2i1, t132, // t2i3, t13i, t1i2, t123
		t2i3, t0i2, t03i, t023, // t3i2, t02i, t0i3, t032
		t13i, t0i3, t01i, t031, // t1i3, t03i, t0i1, t013
		t1i2, t0i1, t02i, t012, // t2i1, t01i, t0i2, t021
	)

	return [4]TetIterator{
		{tds: t, tetIdx: firstTetra},
		{tds: t, tetIdx: firstTetra + 1},
		{tds: t, tetIdx: firstTetra + 2},
		{tds: t, tetIdx: firstTetra + 3},
	}, nil
}

// IsSound checks the DCEL's combinatorial invariants across every live
// tet: tet, half-triangle, and half-edge soundness.
func (t *TetDataStructure) IsSound() (bool, error) {
	sound := true
	for tetIdx := 0; tetIdx < t.numTets; tetIdx++ {
		tet, err := t.GetTet(tetIdx)
		if err != nil {
			return false, err
		}
		sound = sound && tet.IsSound()

		for _, tri := range tet.HalfTriangles() {
			sound = sound && tri.IsSound()
			for _, he := range tri.Hedges() {
				sound = sound && he.IsSound()
			}
		}
	}
	return sound, nil
}

func (t *TetDataStructure) String() string {
	s := ""
	for idx := 0; idx < t.numTets; idx++ {
		s += fmt.Sprintf("Tet %d: %s", idx, t.tet(idx))
	}
	return s + "TetDataStructure"
}
