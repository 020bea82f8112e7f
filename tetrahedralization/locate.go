// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetrahedralization

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/glennDittmann/rita/predicates"
	"github.com/glennDittmann/rita/tetds"
)

// chooseTri scans faces for one that v lies on the far side of: for a
// casual tetrahedron strictly outside, for a conceptual one on or
// outside the casual hull face. Faces with a conceptual corner cannot
// be tested directly and are skipped.
func (t *Tetrahedralization) chooseTri(tris []tetds.HalfTriIterator, v r3.Vector) (tetds.HalfTriIterator, bool) {
	for _, tri := range tris {
		nodes := tri.Nodes()

		idx0, ok0 := nodes[0].Index()
		idx1, ok1 := nodes[1].Index()
		idx2, ok2 := nodes[2].Index()
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		v0 := t.vertices[idx0]
		v1 := t.vertices[idx1]
		v2 := t.vertices[idx2]
		orientation := predicates.Orient3D(v0, v1, v2, v)

		if tri.Tet().IsConceptual() {
			if orientation != predicates.Positive {
				return tri, true
			}
		} else if orientation == predicates.Negative {
			return tri, true
		}
	}
	return tetds.HalfTriIterator{}, false
}

// walkCheckAll is the linear-scan fallback used when the visibility
// walk fails to converge: it inspects every live tetrahedron in turn
// and returns the first whose power sphere contains vIdx, per §4.5
// step 1's fallback clause.
func (t *Tetrahedralization) walkCheckAll(vIdx int) (int, error) {
	numTets := t.tds.NumTets()
	for tetIdx := 0; tetIdx < numTets; tetIdx++ {
		flat, err := t.isTetFlat(tetIdx)
		if err != nil {
			return 0, err
		}
		if flat {
			continue
		}

		in, err := t.isVInPowerSphere(vIdx, tetIdx, false)
		if err != nil {
			return 0, err
		}
		if in {
			return tetIdx, nil
		}
	}
	return 0, ErrNoContainingSphere
}

// locateVisWalk finds the tetrahedron containing vIdx by visibility
// walk starting at startingTetIdx, per §4.5 step 1. Crossing a face
// lands on its opposite face on the neighboring tetrahedron; the three
// other faces of that tetrahedron are reached via each crossed face's
// three half-edges' within-tet Neighbor, per tetds's fixed adjacency
// tables. There is no conceptual-pair bisector special case in 3D.
func (t *Tetrahedralization) locateVisWalk(vIdx, startingTetIdx int) (int, error) {
	v := t.vertices[vIdx]

	tetIdx := startingTetIdx
	tet, err := t.tds.GetTet(tetIdx)
	if err != nil {
		return 0, err
	}
	halfTris := tet.HalfTriangles()
	candidates := []tetds.HalfTriIterator{halfTris[0], halfTris[1], halfTris[2], halfTris[3]}

	tetsVisitable := t.tds.NumTets() >> 2
	side := 0

	for visited := 0; ; visited++ {
		if visited > tetsVisitable {
			in, err := t.isVInSphere(vIdx, tetIdx, false)
			if err != nil {
				return 0, err
			}
			if in {
				return tetIdx, nil
			}
			return 0, fmt.Errorf("tetrahedralization: locateVisWalk: exceeded visitable tet budget without convergence")
		}

		tri, ok := t.chooseTri(candidates, v)
		if !ok {
			return tetIdx, nil
		}

		oppTri := tri.Opposite()
		tetIdx = oppTri.Tet().Idx()

		hedges := oppTri.Hedges()
		candidates = candidates[:0]
		for i := 0; i < 3; i++ {
			candidates = append(candidates, hedges[(side+i)%3].Neighbor().Tri())
		}
		side = (side + 1) % 3
	}
}
