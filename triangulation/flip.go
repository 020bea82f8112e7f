// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package triangulation

import (
	"errors"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/glennDittmann/rita/node"
	"github.com/glennDittmann/rita/predicates"
	"github.com/glennDittmann/rita/trids"
)

type flipKind int

const (
	flipTwoToTwo flipKind = iota
	flipThreeToOne
)

// flipDecision is either a plain diagonal swap, or a 3-to-1 collapse
// naming the third triangle and the reflex corner driving it.
type flipDecision struct {
	kind          flipKind
	thirdTriIdx   int
	reflexNodeIdx int
}

// shouldFlipHedge decides, per §4.5.1, whether the face pair sharing
// hedgeIdx violates regularity and if so how to repair it.
func (t *Triangulation) shouldFlipHedge(hedgeIdx int) (flipDecision, bool, error) {
	hedge, err := t.tds.GetHedge(hedgeIdx)
	if err != nil {
		return flipDecision{}, false, err
	}

	if hedge.StartingNode().IsDeleted() || hedge.EndNode().IsDeleted() {
		return flipDecision{}, false, nil
	}

	triIdxAbd := hedge.Tri().Idx()
	nodeA := hedge.Prev().StartingNode()
	nodeB := hedge.StartingNode()

	triIdxBcd := hedge.Twin().Tri().Idx()
	nodeC := hedge.Twin().Prev().StartingNode()
	nodeD := hedge.Twin().StartingNode()

	if nodeA.IsDeleted() || nodeB.IsDeleted() || nodeC.IsDeleted() || nodeD.IsDeleted() {
		return flipDecision{}, false, nil
	}

	switch {
	case nodeA.IsCasual() && nodeB.IsCasual() && nodeC.IsCasual() && nodeD.IsCasual():
		idxA, idxB, idxC, idxD := nodeA.MustIndex(), nodeB.MustIndex(), nodeC.MustIndex(), nodeD.MustIndex()

		flip := flipDecision{kind: flipTwoToTwo}
		if t.weighted {
			decided, ok := t.isFlippable([2]int{idxB, idxD}, [2]int{idxA, idxC}, hedgeIdx)
			if !ok {
				return flipDecision{}, false, nil
			}
			flip = decided
		}

		inC, err := t.isVInPowerCircle(idxC, triIdxAbd)
		if err != nil {
			return flipDecision{}, false, err
		}
		inA, err := t.isVInPowerCircle(idxA, triIdxBcd)
		if err != nil {
			return flipDecision{}, false, err
		}
		if inC || inA {
			return flip, true, nil
		}
		return flipDecision{}, false, nil

	case nodeA.IsConceptual() && nodeB.IsCasual() && nodeC.IsCasual() && nodeD.IsCasual():
		return flipDecision{}, false, nil

	case nodeA.IsCasual() && nodeB.IsConceptual() && nodeC.IsCasual() && nodeD.IsCasual():
		if isConvexAngle(t.vertices[nodeC.MustIndex()], t.vertices[nodeD.MustIndex()], t.vertices[nodeA.MustIndex()]) {
			return flipDecision{kind: flipTwoToTwo}, true, nil
		}
		return flipDecision{}, false, nil

	case nodeA.IsCasual() && nodeB.IsCasual() && nodeC.IsConceptual() && nodeD.IsCasual():
		inA, err := t.isVInPowerCircle(nodeA.MustIndex(), triIdxBcd)
		if err != nil {
			return flipDecision{}, false, err
		}
		flat, err := t.isTriFlat(triIdxAbd)
		if err != nil {
			return flipDecision{}, false, err
		}
		if inA || flat {
			return flipDecision{kind: flipTwoToTwo}, true, nil
		}
		return flipDecision{}, false, nil

	case nodeA.IsCasual() && nodeB.IsCasual() && nodeC.IsCasual() && nodeD.IsConceptual():
		if isConvexAngle(t.vertices[nodeA.MustIndex()], t.vertices[nodeB.MustIndex()], t.vertices[nodeC.MustIndex()]) {
			return flipDecision{kind: flipTwoToTwo}, true, nil
		}
		return flipDecision{}, false, nil

	default:
		return flipDecision{}, false, errors.New("triangulation: shouldFlipHedge: unexpected node configuration")
	}
}

// isFlippable applies the §4.5.1 reflex-point test: a 2-to-2 flip is
// only valid across a convex quadrilateral. When exactly one of the
// shared edge's endpoints is reflex, a 3-to-1 collapse against the
// triangle beyond it is attempted instead.
func (t *Triangulation) isFlippable(verticesFromEdge, verticesFromIncidentTris [2]int, hedgeIdx int) (flipDecision, bool) {
	a := verticesFromIncidentTris[0]
	b := verticesFromIncidentTris[1]
	c := verticesFromEdge[0]
	d := verticesFromEdge[1]

	numReflex := 0
	dReflex := false

	sideD := predicates.Orient2D(t.vertices[c], t.vertices[a], t.vertices[d])
	sideB := predicates.Orient2D(t.vertices[c], t.vertices[a], t.vertices[b])
	if sideD != sideB {
		numReflex++
	}

	sideC := predicates.Orient2D(t.vertices[d], t.vertices[a], t.vertices[c])
	sideB2 := predicates.Orient2D(t.vertices[d], t.vertices[a], t.vertices[b])
	if sideC != sideB2 {
		numReflex++
		dReflex = true
	}

	if numReflex == 0 {
		return flipDecision{kind: flipTwoToTwo}, true
	}
	if numReflex > 1 {
		panic("triangulation: isFlippable: more than one reflex point detected")
	}

	reflexIdx := c
	if dReflex {
		reflexIdx = d
	}

	hedge, err := t.tds.GetHedge(hedgeIdx)
	if err != nil {
		panic(err)
	}

	var thirdTri trids.TriIterator
	if hedge.StartingNode() == node.Casual(reflexIdx) {
		thirdTri = hedge.Prev().Twin().Tri()
	} else {
		thirdTri = hedge.Next().Twin().Tri()
	}

	if thirdTri.IsConceptual() {
		return flipDecision{}, false
	}

	want := []int{a, b, reflexIdx}
	triNodes := thirdTri.Nodes()
	got := []int{triNodes[0].MustIndex(), triNodes[1].MustIndex(), triNodes[2].MustIndex()}
	sort.Ints(want)
	sort.Ints(got)

	if want[0] == got[0] && want[1] == got[1] && want[2] == got[2] {
		return flipDecision{kind: flipThreeToOne, thirdTriIdx: thirdTri.Idx(), reflexNodeIdx: reflexIdx}, true
	}
	return flipDecision{}, false
}

// isConvexAngle reports whether the angle at v1 formed by v0-v1-v2 is
// convex (non-reflex), breaking an exactly-collinear tie by checking
// whether v1 lies between v0 and v2 rather than beyond either.
func isConvexAngle(v0, v1, v2 r2.Point) bool {
	switch predicates.Orient2D(v0, v1, v2) {
	case predicates.Positive:
		return true
	case predicates.Negative:
		return false
	default:
		v1v0 := r2.Point{X: v1.X - v0.X, Y: v1.Y - v0.Y}
		v1v2 := r2.Point{X: v1.X - v2.X, Y: v1.Y - v2.Y}
		dot := v1v0.X*v1v2.X + v1v0.Y*v1v2.Y
		return dot > 0
	}
}
