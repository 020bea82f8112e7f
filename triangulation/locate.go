// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package triangulation

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/glennDittmann/rita/predicates"
	"github.com/glennDittmann/rita/trids"
)

// chooseHedge scans hedges for one that v lies on the far side of: for
// a casual triangle strictly outside, for a conceptual one on or
// outside the casual hull edge.
func (t *Triangulation) chooseHedge(hedges []trids.HedgeIterator, v r2.Point) (trids.HedgeIterator, bool) {
	for _, hedge := range hedges {
		idx0, ok0 := hedge.StartingNode().Index()
		idx1, ok1 := hedge.EndNode().Index()
		if !ok0 || !ok1 {
			continue
		}

		v0 := t.vertices[idx0]
		v1 := t.vertices[idx1]
		orientation := predicates.Orient2D(v0, v1, v)

		if hedge.Tri().IsConceptual() {
			if orientation != predicates.Positive {
				return hedge, true
			}
		} else if orientation == predicates.Negative {
			return hedge, true
		}
	}
	return trids.HedgeIterator{}, false
}

// locateVisWalk finds the triangle containing vIdx by visibility walk
// starting at triIdxStart, per §4.5 step 1.
func (t *Triangulation) locateVisWalk(vIdx, triIdxStart int) (int, error) {
	v := t.vertices[vIdx]

	triIdx := triIdxStart
	tri, err := t.tds.GetTri(triIdx)
	if err != nil {
		return 0, err
	}
	hedges := tri.Hedges()
	vHedges := []trids.HedgeIterator{hedges[0], hedges[1], hedges[2]}

	side := true

	for {
		hedge, ok := t.chooseHedge(vHedges, v)
		if !ok {
			return triIdx, nil
		}

		hedgeTwin := hedge.Twin()
		triIdx = hedgeTwin.Tri().Idx()
		vHedges = vHedges[:0]

		if hedgeTwin.Prev().StartingNode() != hedgeTwin.Next().EndNode() {
			return 0, fmt.Errorf("triangulation: locateVisWalk: broken half-edge cycle at triangle %d", triIdx)
		}

		// Stepping across a conceptual boundary into a pair of
		// conceptual triangles sharing a non-conceptual hull vertex: pick
		// between them via the angle bisector from that shared vertex,
		// per §4.5 step 1.
		if t.weighted &&
			hedgeTwin.Prev().Twin().Tri().IsConceptual() &&
			hedgeTwin.Next().Twin().Tri().IsConceptual() &&
			!hedgeTwin.Prev().StartingNode().IsConceptual() {

			o := t.vertices[hedgeTwin.Prev().StartingNode().MustIndex()]
			a := t.vertices[hedgeTwin.Prev().EndNode().MustIndex()]
			aTriIdx := hedgeTwin.Prev().Twin().Tri().Idx()
			b := t.vertices[hedgeTwin.Next().StartingNode().MustIndex()]
			bTriIdx := hedgeTwin.Next().Twin().Tri().Idx()

			aHelp := t.vertices[hedge.StartingNode().MustIndex()]
			bHelp := t.vertices[hedge.EndNode().MustIndex()]
			pHelp := r2.Point{X: (aHelp.X + bHelp.X) / 2, Y: (aHelp.Y + bHelp.Y) / 2}

			sidePHelpA := predicates.Orient2D(o, a, pHelp)
			sidePHelpB := predicates.Orient2D(o, b, pHelp)
			sideVA := predicates.Orient2D(o, a, v)
			sideVB := predicates.Orient2D(o, b, v)

			if sidePHelpA == sideVA && sidePHelpB == sideVB {
				return hedgeTwin.Tri().Idx(), nil
			}

			ao := normalize2D(r2.Point{X: a.X - o.X, Y: a.Y - o.Y})
			bo := normalize2D(r2.Point{X: b.X - o.X, Y: b.Y - o.Y})
			c := r2.Point{X: o.X + ao.X + bo.X, Y: o.Y + ao.Y + bo.Y}

			sideCA := predicates.Orient2D(o, c, a)
			sideCB := predicates.Orient2D(o, c, b)
			sideCV := predicates.Orient2D(o, c, v)

			switch {
			case sideCV == sideCA:
				return aTriIdx, nil
			case sideCV == sideCB:
				return bTriIdx, nil
			default:
				panic("triangulation: locateVisWalk: vertex is not on either side of the bisector")
			}
		}

		if side {
			vHedges = append(vHedges, hedgeTwin.Next(), hedgeTwin.Prev())
		} else {
			vHedges = append(vHedges, hedgeTwin.Prev(), hedgeTwin.Next())
		}
		side = !side
	}
}

func normalize2D(p r2.Point) r2.Point {
	n := math.Hypot(p.X, p.Y)
	if n == 0 {
		return p
	}
	return r2.Point{X: p.X / n, Y: p.Y / n}
}
