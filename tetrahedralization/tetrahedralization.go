// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package tetrahedralization implements the 3D incremental engine: the
// locate (with linear-scan fallback) / eps-filter / redundancy /
// Bowyer-Watson cavity insertion state machine driving a weighted
// Delaunay (regular) tetrahedralization on top of the tetds DCEL.
package tetrahedralization

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/golang/geo/r3"

	"github.com/glennDittmann/rita/hilbert"
	"github.com/glennDittmann/rita/hullcheck"
	"github.com/glennDittmann/rita/node"
	"github.com/glennDittmann/rita/predicates"
	"github.com/glennDittmann/rita/tetds"
)

// ErrTooFewVertices is returned when fewer than 4 vertices are supplied
// to InsertVertices.
var ErrTooFewVertices = errors.New("tetrahedralization: at least 4 vertices required to compute a tetrahedralization")

// ErrEmptyStructure is returned by InsertVertex when no tetrahedron
// exists yet to locate against.
var ErrEmptyStructure = errors.New("tetrahedralization: at least 1 tetrahedron required to insert a vertex")

// ErrAllPointsCoplanar is returned when every candidate point for the
// initial tetrahedron is coplanar.
var ErrAllPointsCoplanar = errors.New("tetrahedralization: all points are coplanar, could not find 4 non-coplanar points")

// ErrNoContainingSphere is returned when neither the visibility walk
// nor the linear-scan fallback can locate a cell whose power sphere
// contains the point being inserted.
var ErrNoContainingSphere = errors.New("tetrahedralization: could not find a power sphere containing the point")

// Options holds configuration gathered from a set of Option values.
type Options struct {
	Eps    float64
	HasEps bool
	Logger *slog.Logger
}

// Option is a functional option type for tetrahedralization
// configuration.
type Option func(*Options)

// WithEps sets the epsilon-regularity filter margin.
func WithEps(eps float64) Option {
	return func(o *Options) {
		o.Eps = eps
		o.HasEps = true
	}
}

// WithLogger sets the logger used for timing and diagnostic output.
// Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// Tetrahedralization is a weighted 3D Delaunay (regular)
// tetrahedralization built by incremental insertion via the
// Bowyer-Watson cavity method.
type Tetrahedralization struct {
	tds      *tetds.TetDataStructure
	vertices []r3.Vector
	weights  []float64

	weighted bool

	eps    float64
	hasEps bool

	// usedVertices and ignoredVertices partition every inserted index;
	// unlike the 2D engine, weighted-redundant points are folded into
	// ignoredVertices rather than tracked separately (see §8 property 3).
	usedVertices    []int
	ignoredVertices []int

	timeHilbert   time.Duration
	timeWalking   time.Duration
	timeInserting time.Duration

	logger *slog.Logger
}

// New returns an empty tetrahedralization configured by opts.
func New(opts ...Option) *Tetrahedralization {
	o := Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	return &Tetrahedralization{
		tds:    tetds.New(),
		eps:    o.Eps,
		hasEps: o.HasEps,
		logger: o.Logger,
	}
}

// TDS returns the underlying DCEL.
func (t *Tetrahedralization) TDS() *tetds.TetDataStructure {
	return t.tds
}

// Vertices returns the full input vertex array (append-only).
func (t *Tetrahedralization) Vertices() []r3.Vector {
	return t.vertices
}

// Weights returns the full input weight array, parallel to Vertices.
func (t *Tetrahedralization) Weights() []float64 {
	return t.weights
}

// UsedIndices returns the indices successfully inserted.
func (t *Tetrahedralization) UsedIndices() []int {
	return t.usedVertices
}

// IgnoredIndices returns the indices skipped, either by the eps filter
// or as weighted-redundant.
func (t *Tetrahedralization) IgnoredIndices() []int {
	return t.ignoredVertices
}

// RedundantIndices always returns nil: the 3D engine folds
// weighted-redundant points into IgnoredIndices rather than tracking
// them separately, unlike the 2D engine.
func (t *Tetrahedralization) RedundantIndices() []int {
	return nil
}

// NumTets returns the number of live tetrahedra.
func (t *Tetrahedralization) NumTets() int {
	return t.tds.NumTets()
}

// NumCasualTets returns the number of live tetrahedra with no corner
// touching the point at infinity.
func (t *Tetrahedralization) NumCasualTets() int {
	return t.tds.NumCasualTets()
}

// TimeHilbert returns the cumulative time spent spatially presorting.
func (t *Tetrahedralization) TimeHilbert() time.Duration {
	return t.timeHilbert
}

// TimeWalking returns the cumulative time spent locating containing
// cells.
func (t *Tetrahedralization) TimeWalking() time.Duration {
	return t.timeWalking
}

// TimeInserting returns the cumulative time spent in Bowyer-Watson
// cavity insertion.
func (t *Tetrahedralization) TimeInserting() time.Duration {
	return t.timeInserting
}

func (t *Tetrahedralization) height(vIdx int) float64 {
	v := t.vertices[vIdx]
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z - t.weights[vIdx]
}

type tetKind int

const (
	tetCasual tetKind = iota
	tetConceptual
)

// tetExtended carries the coordinates needed for a predicate call
// against a tetrahedron: a casual tetrahedron carries four
// coordinates, a conceptual one (one corner at infinity) carries only
// its casual hull face, wound so the face's outward normal faces away
// from the tetrahedron's interior.
type tetExtended struct {
	kind    tetKind
	a, b, c, d r3.Vector
	fa, fb, fc r3.Vector
}

func (t *Tetrahedralization) tetAsExtended(tetIdx int) (tetExtended, error) {
	tet, err := t.tds.GetTet(tetIdx)
	if err != nil {
		return tetExtended{}, err
	}
	nodes := tet.Nodes()

	switch {
	case nodes[0].IsConceptual():
		return tetExtended{kind: tetConceptual,
			fa: t.vertices[nodes[1].MustIndex()], fb: t.vertices[nodes[3].MustIndex()], fc: t.vertices[nodes[2].MustIndex()]}, nil
	case nodes[1].IsConceptual():
		return tetExtended{kind: tetConceptual,
			fa: t.vertices[nodes[0].MustIndex()], fb: t.vertices[nodes[2].MustIndex()], fc: t.vertices[nodes[3].MustIndex()]}, nil
	case nodes[2].IsConceptual():
		return tetExtended{kind: tetConceptual,
			fa: t.vertices[nodes[0].MustIndex()], fb: t.vertices[nodes[3].MustIndex()], fc: t.vertices[nodes[1].MustIndex()]}, nil
	case nodes[3].IsConceptual():
		return tetExtended{kind: tetConceptual,
			fa: t.vertices[nodes[0].MustIndex()], fb: t.vertices[nodes[1].MustIndex()], fc: t.vertices[nodes[2].MustIndex()]}, nil
	default:
		return tetExtended{
			kind: tetCasual,
			a:    t.vertices[nodes[0].MustIndex()],
			b:    t.vertices[nodes[1].MustIndex()],
			c:    t.vertices[nodes[2].MustIndex()],
			d:    t.vertices[nodes[3].MustIndex()],
		}, nil
	}
}

// isTetFlat reports whether a casual tetrahedron's four corners are
// coplanar. Conceptual tetrahedra are never flat.
func (t *Tetrahedralization) isTetFlat(tetIdx int) (bool, error) {
	tet, err := t.tetAsExtended(tetIdx)
	if err != nil {
		return false, err
	}
	if tet.kind == tetConceptual {
		return false, nil
	}
	return predicates.Orient3D(tet.a, tet.b, tet.c, tet.d) == predicates.Zero, nil
}

// isVInSphere is the unweighted in-circumsphere test, used by the
// linear-scan fallback which never runs under weighting.
func (t *Tetrahedralization) isVInSphere(vIdx, tetIdx int, strict bool) (bool, error) {
	p := t.vertices[vIdx]

	tet, err := t.tetAsExtended(tetIdx)
	if err != nil {
		return false, err
	}

	var sign predicates.Sign
	if tet.kind == tetConceptual {
		sign = predicates.Orient3D(tet.fa, tet.fb, tet.fc, p)
	} else {
		sign = predicates.InSphere3D(tet.a, tet.b, tet.c, tet.d, p)
	}

	if strict {
		return sign == predicates.Positive, nil
	}
	return sign != predicates.Negative, nil
}

// isVInPowerSphere reports whether vIdx's lift lies strictly below the
// power hyperplane through tetIdx's corners.
func (t *Tetrahedralization) isVInPowerSphere(vIdx, tetIdx int, strict bool) (bool, error) {
	p := t.vertices[vIdx]
	hP := t.height(vIdx)

	tet, err := t.tetAsExtended(tetIdx)
	if err != nil {
		return false, err
	}

	var sign predicates.Sign
	if tet.kind == tetConceptual {
		sign = predicates.Orient3D(tet.fa, tet.fb, tet.fc, p)
	} else {
		tetIter, err := t.tds.GetTet(tetIdx)
		if err != nil {
			return false, err
		}
		nodes := tetIter.Nodes()
		hA := t.height(nodes[0].MustIndex())
		hB := t.height(nodes[1].MustIndex())
		hC := t.height(nodes[2].MustIndex())
		hD := t.height(nodes[3].MustIndex())
		sign = predicates.Orient3DLiftedSoS(tet.a, tet.b, tet.c, tet.d, p, hA, hB, hC, hD, hP)
	}

	if strict {
		return sign == predicates.Positive, nil
	}
	return sign != predicates.Negative, nil
}

// isVInEpsPowerSphere is isVInPowerSphere with vIdx's lift relaxed by
// the configured eps margin, per §4.6. Only meaningful for casual
// tetrahedra; callers gate the conceptual case themselves.
func (t *Tetrahedralization) isVInEpsPowerSphere(vIdx, tetIdx int) (bool, error) {
	p := t.vertices[vIdx]
	hP := t.height(vIdx) + t.eps

	tet, err := t.tetAsExtended(tetIdx)
	if err != nil {
		return false, err
	}
	if tet.kind == tetConceptual {
		return false, errors.New("tetrahedralization: isVInEpsPowerSphere: not defined for a conceptual tetrahedron")
	}

	tetIter, err := t.tds.GetTet(tetIdx)
	if err != nil {
		return false, err
	}
	nodes := tetIter.Nodes()
	hA := t.height(nodes[0].MustIndex())
	hB := t.height(nodes[1].MustIndex())
	hC := t.height(nodes[2].MustIndex())
	hD := t.height(nodes[3].MustIndex())

	sign := predicates.Orient3DLiftedSoS(tet.a, tet.b, tet.c, tet.d, p, hA, hB, hC, hD, hP)
	return sign == predicates.Positive, nil
}

// insertFirstTet seeds the DCEL's first real tetrahedron. The third
// point is chosen among all remaining candidates as the one maximizing
// the cross-product magnitude |((v-v0) x v01)|, i.e. the farthest
// perpendicular distance from the line through v0,v1 — the 3D
// analogue of ranking by |orient2d|. The fourth point is then chosen,
// among everything left, as the one maximizing |orient3d(v0,v1,v2,·)|,
// the farthest from coplanar with v0,v1,v2, rather than the first
// coplanar-passing match.
func (t *Tetrahedralization) insertFirstTet(idxsToInsert []int) ([]int, error) {
	if len(idxsToInsert) < 4 {
		return nil, ErrAllPointsCoplanar
	}

	idx0 := idxsToInsert[len(idxsToInsert)-1]
	idxsToInsert = idxsToInsert[:len(idxsToInsert)-1]
	idx1 := idxsToInsert[len(idxsToInsert)-1]
	idxsToInsert = idxsToInsert[:len(idxsToInsert)-1]

	v0 := t.vertices[idx0]
	v1 := t.vertices[idx1]
	v01 := r3.Vector{X: v1.X - v0.X, Y: v1.Y - v0.Y, Z: v1.Z - v0.Z}

	bestPos := -1
	bestMag := 0.0
	for i, idx := range idxsToInsert {
		v := t.vertices[idx]
		vec := r3.Vector{X: v.X - v0.X, Y: v.Y - v0.Y, Z: v.Z - v0.Z}
		mag := vec.Cross(v01).Norm()
		if mag > bestMag {
			bestMag = mag
			bestPos = i
		}
	}
	if bestPos == -1 {
		return nil, ErrAllPointsCoplanar
	}
	idx2 := idxsToInsert[bestPos]
	idxsToInsert = append(idxsToInsert[:bestPos], idxsToInsert[bestPos+1:]...)
	v2 := t.vertices[idx2]

	bestPos = -1
	bestMag = 0.0
	for i, idx := range idxsToInsert {
		mag := predicates.Orient3DMagnitude(v0, v1, v2, t.vertices[idx])
		if mag > bestMag {
			bestMag = mag
			bestPos = i
		}
	}
	if bestPos == -1 {
		return nil, ErrAllPointsCoplanar
	}
	idx3 := idxsToInsert[bestPos]
	idxsToInsert = append(idxsToInsert[:bestPos], idxsToInsert[bestPos+1:]...)
	v3 := t.vertices[idx3]

	if predicates.Orient3D(v0, v1, v2, v3) == predicates.Positive {
		if _, err := t.tds.InsertFirstTet([4]int{idx0, idx1, idx2, idx3}); err != nil {
			return nil, err
		}
	} else {
		if _, err := t.tds.InsertFirstTet([4]int{idx0, idx2, idx1, idx3}); err != nil {
			return nil, err
		}
	}
	t.usedVertices = append(t.usedVertices, idx0, idx1, idx2, idx3)

	return idxsToInsert, nil
}

// insertBW carves the cavity of points whose power sphere is violated
// by v_idx, starting from firstTetIdx, and retriangulates it by
// fanning from the new vertex (tetds.BwInsertNode).
func (t *Tetrahedralization) insertBW(vIdx, firstTetIdx int) ([]int, error) {
	if err := t.tds.BwStart(firstTetIdx); err != nil {
		return nil, err
	}

	for {
		tetIdx, ok := t.tds.BwTetsToCheck()
		if !ok {
			break
		}

		inSphere, err := t.isVInPowerSphere(vIdx, tetIdx, false)
		if err != nil {
			return nil, err
		}
		if inSphere {
			t.tds.BwRemTet(tetIdx)
		} else if err := t.tds.BwKeepTetra(tetIdx); err != nil {
			return nil, err
		}
	}

	return t.tds.BwInsertNode(node.Casual(vIdx))
}

func (t *Tetrahedralization) insertVertexHelper(vIdx, nearTo int) (int, error) {
	start := time.Now()
	containingTetIdx, err := t.locateVisWalk(vIdx, nearTo)
	if err != nil {
		if err := t.tds.CleanToDel(); err != nil {
			return 0, err
		}
		containingTetIdx, err = t.walkCheckAll(vIdx)
		if err != nil {
			return 0, err
		}
	}
	t.timeWalking += time.Since(start)

	containingTet, err := t.tds.GetTet(containingTetIdx)
	if err != nil {
		return 0, err
	}

	if t.hasEps && containingTet.IsCasual() {
		inEps, err := t.isVInEpsPowerSphere(vIdx, containingTetIdx)
		if err != nil {
			return 0, err
		}
		if !inEps {
			t.ignoredVertices = append(t.ignoredVertices, vIdx)
			return nearTo, nil
		}
	} else if t.weighted && containingTet.IsCasual() {
		inSphere, err := t.isVInPowerSphere(vIdx, containingTetIdx, false)
		if err != nil {
			return 0, err
		}
		if !inSphere {
			t.ignoredVertices = append(t.ignoredVertices, vIdx)
			return nearTo, nil
		}
	}

	t.usedVertices = append(t.usedVertices, vIdx)

	start = time.Now()
	newTets, err := t.insertBW(vIdx, containingTetIdx)
	if err != nil {
		return 0, err
	}
	t.timeInserting += time.Since(start)

	return newTets[0], nil
}

// InsertVertex inserts a single weighted vertex, locating near the
// supplied hint (or the tail of the tetrahedron array if none is
// given).
func (t *Tetrahedralization) InsertVertex(p r3.Vector, weight float64, nearTo *int) error {
	if t.tds.NumTets() == 0 {
		return ErrEmptyStructure
	}

	idxToInsert := len(t.vertices)
	t.vertices = append(t.vertices, p)
	t.weights = append(t.weights, weight)

	nearToIdx := t.tds.NumTets() - 1
	if nearTo != nil {
		nearToIdx = *nearTo
	}

	if _, err := t.insertVertexHelper(idxToInsert, nearToIdx); err != nil {
		return err
	}

	if err := t.tds.CleanToDel(); err != nil {
		return err
	}

	t.logTimes()
	return nil
}

// InsertVertices inserts a batch of vertices. weights may be nil for
// an unweighted (classical) Delaunay tetrahedralization. spatialSort
// toggles the Hilbert-curve presort of §4.2.
func (t *Tetrahedralization) InsertVertices(vertices []r3.Vector, weights []float64, spatialSort bool) error {
	if weights != nil {
		t.weighted = true
	}

	idxsToInsert := make([]int, 0, len(vertices))
	for _, v := range vertices {
		idxsToInsert = append(idxsToInsert, len(t.vertices))
		t.vertices = append(t.vertices, v)
	}

	if weights != nil {
		t.weights = append(t.weights, weights...)
	} else {
		t.weights = append(t.weights, make([]float64, len(vertices))...)
	}

	if len(t.vertices) < 4 {
		return ErrTooFewVertices
	}

	if spatialSort {
		start := time.Now()
		idxsToInsert = hilbert.Sort3D(t.vertices, idxsToInsert)
		t.timeHilbert += time.Since(start)
		t.logger.Debug("spatial sort computed", "elapsed", t.timeHilbert)
	}

	if t.tds.NumTets() == 0 {
		sorted, err := t.insertFirstTet(idxsToInsert)
		if err != nil {
			return err
		}
		idxsToInsert = sorted
	}

	t.logger.Debug("inserting vertices", "count", len(idxsToInsert))

	lastAddedIdx := t.tds.NumTets() - 1
	for len(idxsToInsert) > 0 {
		vIdx := idxsToInsert[len(idxsToInsert)-1]
		idxsToInsert = idxsToInsert[:len(idxsToInsert)-1]

		newLast, err := t.insertVertexHelper(vIdx, lastAddedIdx)
		if err != nil {
			return err
		}
		lastAddedIdx = newLast
	}

	if err := t.tds.CleanToDel(); err != nil {
		return err
	}

	t.logTimes()
	return nil
}

func (t *Tetrahedralization) logTimes() {
	t.logger.Debug("time elapsed",
		"inserting", t.timeInserting,
		"walking", t.timeWalking)
}

// ConvexHullIndices returns the indices, into Vertices, of points
// lying on the tetrahedralization's convex hull, computed by an
// independent cross-check algorithm (hullcheck).
func (t *Tetrahedralization) ConvexHullIndices() ([]int, error) {
	used := t.UsedIndices()
	points := make([]r3.Vector, len(used))
	for i, idx := range used {
		points[i] = t.vertices[idx]
	}

	localHull, err := hullcheck.Indices3D(points, t.eps)
	if err != nil {
		return nil, err
	}

	hull := make([]int, len(localHull))
	for i, localIdx := range localHull {
		hull[i] = used[localIdx]
	}
	return hull, nil
}
