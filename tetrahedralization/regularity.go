// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package tetrahedralization

import (
	"context"
	"runtime"

	"github.com/golang/geo/r3"
	"golang.org/x/sync/errgroup"

	"github.com/glennDittmann/rita/node"
	"github.com/glennDittmann/rita/predicates"
	"github.com/glennDittmann/rita/tetds"
)

// IsSound delegates to the DCEL's own structural consistency check.
// Unlike the 2D DCEL, tetds surfaces a structural error distinctly from
// a plain unsound result; both are reported as "not sound" here, with
// the error logged for diagnosis.
func (t *Tetrahedralization) IsSound() bool {
	sound, err := t.tds.IsSound()
	if err != nil {
		t.logger.Error("tetrahedralization soundness check failed", "error", err)
		return false
	}
	if !sound {
		t.logger.Error("tetrahedralization is not sound")
	}
	return sound
}

// IsRegular checks the empty-power-sphere property of every live
// tetrahedron against the used vertex set, per §8 property 2. It
// returns whether the tetrahedralization is fully regular and the
// fraction of tetrahedra that were not in violation.
func (t *Tetrahedralization) IsRegular() (bool, float64, error) {
	regular := true
	numViolated := 0
	numTets := t.tds.NumTets()

	for tetIdx := 0; tetIdx < numTets; tetIdx++ {
		tet, err := t.tds.GetTet(tetIdx)
		if err != nil {
			return false, 0, err
		}
		if containsDeleted(tet.Nodes()) {
			continue
		}

		violated, err := t.tetViolatesRegularity(tetIdx, tet, t.usedVertices)
		if err != nil {
			return false, 0, err
		}
		if violated {
			regular = false
			numViolated++
		}
	}

	return regular, 1.0 - float64(numViolated)/float64(numTets), nil
}

// IsRegularParallel is IsRegular computed across goroutines, one per
// GOMAXPROCS chunk of tetrahedron indices, with no shared mutable
// state between workers. When includeIgnored is true, eps-ignored (and
// weighted-redundant, which the 3D engine folds into the same set)
// vertices are checked too.
func (t *Tetrahedralization) IsRegularParallel(includeIgnored bool) (float64, error) {
	numTets := t.tds.NumTets()
	if numTets == 0 {
		return 1.0, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > numTets {
		workers = numTets
	}
	chunk := (numTets + workers - 1) / workers

	violations := make([]int64, workers)

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > numTets {
			end = numTets
		}
		if start >= end {
			continue
		}

		g.Go(func() error {
			var ignored []int
			if includeIgnored {
				ignored = t.ignoredVertices
			}

			var count int64
			for tetIdx := start; tetIdx < end; tetIdx++ {
				tet, err := t.tds.GetTet(tetIdx)
				if err != nil {
					return err
				}
				if containsDeleted(tet.Nodes()) {
					continue
				}

				violated, err := t.tetViolatesRegularity(tetIdx, tet, t.usedVertices, ignored)
				if err != nil {
					return err
				}
				if violated {
					count++
				}
			}
			violations[w] = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total int64
	for _, v := range violations {
		total += v
	}

	return 1.0 - float64(total)/float64(numTets), nil
}

func (t *Tetrahedralization) tetViolatesRegularity(tetIdx int, tet tetds.TetIterator, candidateSets ...[]int) (bool, error) {
	flat, err := t.isTetFlat(tetIdx)
	if err != nil {
		return false, err
	}
	if flat {
		return true, nil
	}

	nodes := tet.Nodes()
	for _, candidates := range candidateSets {
		for _, vIdx := range candidates {
			if containsCasual(nodes, vIdx) {
				continue
			}
			in, err := t.isVInPowerSphere(vIdx, tetIdx, true)
			if err != nil {
				return false, err
			}
			if in {
				return true, nil
			}
		}
	}
	return false, nil
}

// IsRegularForPointSet checks regularity of this tetrahedralization's
// live tetrahedra against a separately supplied point set, rather than
// this tetrahedralization's own vertex history. weights may be nil for
// an unweighted check. A supplied point equal to one of a tetrahedron's
// own corners is not tested against that tetrahedron.
func (t *Tetrahedralization) IsRegularForPointSet(vertices []r3.Vector, weights []float64) (bool, float64, error) {
	if weights == nil {
		weights = make([]float64, len(vertices))
	}

	regular := true
	numViolated := 0
	numTets := t.tds.NumTets()

	for tetIdx := 0; tetIdx < numTets; tetIdx++ {
		tet, err := t.tds.GetTet(tetIdx)
		if err != nil {
			return false, 0, err
		}
		if containsDeleted(tet.Nodes()) {
			continue
		}

		flat, err := t.isTetFlat(tetIdx)
		if err != nil {
			return false, 0, err
		}
		if flat {
			regular = false
			numViolated++
			continue
		}

		tetExt, err := t.tetAsExtended(tetIdx)
		if err != nil {
			return false, 0, err
		}

		var hA, hB, hC, hD float64
		if tetExt.kind == tetCasual {
			nodes := tet.Nodes()
			hA = t.height(nodes[0].MustIndex())
			hB = t.height(nodes[1].MustIndex())
			hC = t.height(nodes[2].MustIndex())
			hD = t.height(nodes[3].MustIndex())
		}

		violated := false
		for idx, v := range vertices {
			if tetExt.kind == tetCasual && (v == tetExt.a || v == tetExt.b || v == tetExt.c || v == tetExt.d) {
				continue
			}
			hV := v.X*v.X + v.Y*v.Y + v.Z*v.Z - weights[idx]

			var in bool
			if tetExt.kind == tetConceptual {
				in = predicates.Orient3D(tetExt.fa, tetExt.fb, tetExt.fc, v) == predicates.Positive
			} else {
				in = predicates.Orient3DLiftedSoS(tetExt.a, tetExt.b, tetExt.c, tetExt.d, v, hA, hB, hC, hD, hV) == predicates.Positive
			}

			if in {
				violated = true
				break
			}
		}
		if violated {
			regular = false
			numViolated++
		}
	}

	return regular, 1.0 - float64(numViolated)/float64(numTets), nil
}

func containsDeleted(nodes [4]node.VertexNode) bool {
	for _, n := range nodes {
		if n.IsDeleted() {
			return true
		}
	}
	return false
}

func containsCasual(nodes [4]node.VertexNode, vIdx int) bool {
	for _, n := range nodes {
		if idx, ok := n.Index(); ok && idx == vIdx {
			return true
		}
	}
	return false
}
