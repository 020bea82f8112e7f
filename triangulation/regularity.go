// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package triangulation

import (
	"context"
	"runtime"

	"github.com/golang/geo/r2"
	"golang.org/x/sync/errgroup"

	"github.com/glennDittmann/rita/node"
	"github.com/glennDittmann/rita/predicates"
	"github.com/glennDittmann/rita/trids"
)

// IsSound delegates to the DCEL's own structural consistency check.
func (t *Triangulation) IsSound() bool {
	sound := t.tds.IsSound()
	if !sound {
		t.logger.Error("triangulation is not sound")
	}
	return sound
}

// IsRegular checks the empty-power-circle property of every live
// triangle against the used and redundant vertex sets, per §8
// property 2. It returns whether the triangulation is fully regular
// and the fraction of triangles that were not in violation.
func (t *Triangulation) IsRegular() (bool, float64, error) {
	regular := true
	numViolated := 0
	numTris := t.tds.NumTris()
	numAllTris := numTris + t.tds.NumDeletedTris()

	for triIdx := 0; triIdx < numAllTris; triIdx++ {
		tri, err := t.tds.GetTri(triIdx)
		if err != nil {
			return false, 0, err
		}
		if containsDeleted(tri.Nodes()) {
			continue
		}

		violated, err := t.triViolatesRegularity(triIdx, tri, t.usedVertices, t.redundantVertices, nil)
		if err != nil {
			return false, 0, err
		}
		if violated {
			regular = false
			numViolated++
		}
	}

	return regular, 1.0 - float64(numViolated)/float64(numTris), nil
}

// IsRegularParallel is IsRegular computed across goroutines, one per
// GOMAXPROCS chunk of triangle indices, with no shared mutable state
// between workers. When includeIgnored is true, eps-ignored vertices
// are checked too.
func (t *Triangulation) IsRegularParallel(includeIgnored bool) (float64, error) {
	numTris := t.tds.NumTris()
	if numTris == 0 {
		return 1.0, nil
	}
	numAllTris := numTris + t.tds.NumDeletedTris()

	workers := runtime.GOMAXPROCS(0)
	if workers > numAllTris {
		workers = numAllTris
	}
	chunk := (numAllTris + workers - 1) / workers

	violations := make([]int64, workers)

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > numAllTris {
			end = numAllTris
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
			for triIdx := start; triIdx < end; triIdx++ {
				tri, err := t.tds.GetTri(triIdx)
				if err != nil {
					return err
				}
				if containsDeleted(tri.Nodes()) {
					continue
				}

				violated, err := t.triViolatesRegularity(triIdx, tri, t.usedVertices, t.redundantVertices, ignored)
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

	return 1.0 - float64(total)/float64(numTris), nil
}

func (t *Triangulation) triViolatesRegularity(triIdx int, tri trids.TriIterator, candidateSets ...[]int) (bool, error) {
	flat, err := t.isTriFlat(triIdx)
	if err != nil {
		return false, err
	}
	if flat {
		return true, nil
	}

	nodes := tri.Nodes()
	for _, candidates := range candidateSets {
		for _, vIdx := range candidates {
			if containsCasual(nodes, vIdx) {
				continue
			}
			in, err := t.isVInPowerCircle(vIdx, triIdx)
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

// IsRegularForPointSet checks regularity of this triangulation's live
// triangles against a separately supplied point set, rather than this
// triangulation's own vertex history. weights may be nil for an
// unweighted check. A supplied point equal to one of a triangle's own
// corners is not tested against that triangle.
func (t *Triangulation) IsRegularForPointSet(vertices []r2.Point, weights []float64) (bool, float64, error) {
	if weights == nil {
		weights = make([]float64, len(vertices))
	}

	regular := true
	numViolated := 0
	numTris := t.tds.NumTris()
	numAllTris := numTris + t.tds.NumDeletedTris()

	for triIdx := 0; triIdx < numAllTris; triIdx++ {
		tri, err := t.tds.GetTri(triIdx)
		if err != nil {
			return false, 0, err
		}
		if containsDeleted(tri.Nodes()) {
			continue
		}

		flat, err := t.isTriFlat(triIdx)
		if err != nil {
			return false, 0, err
		}
		if flat {
			regular = false
			numViolated++
			continue
		}

		triExt, err := t.triType(triIdx)
		if err != nil {
			return false, 0, err
		}

		var hA, hB, hC float64
		if triExt.kind == triCasual {
			nodes := tri.Nodes()
			hA = t.height(nodes[0].MustIndex())
			hB = t.height(nodes[1].MustIndex())
			hC = t.height(nodes[2].MustIndex())
		}

		violated := false
		for idx, v := range vertices {
			if triExt.kind == triCasual && (v == triExt.a || v == triExt.b || v == triExt.c) {
				continue
			}
			hV := v.X*v.X + v.Y*v.Y - weights[idx]

			var in bool
			if triExt.kind == triConceptual {
				in = predicates.Orient2D(triExt.edge0, triExt.edge1, v) == predicates.Positive
			} else {
				in = predicates.Orient2DLiftedSoS(triExt.a, triExt.b, triExt.c, v, hA, hB, hC, hV) == predicates.Positive
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

	return regular, 1.0 - float64(numViolated)/float64(numTris), nil
}

func containsDeleted(nodes [3]node.VertexNode) bool {
	for _, n := range nodes {
		if n.IsDeleted() {
			return true
		}
	}
	return false
}

func containsCasual(nodes [3]node.VertexNode, vIdx int) bool {
	for _, n := range nodes {
		if idx, ok := n.Index(); ok && idx == vIdx {
			return true
		}
	}
	return false
}
