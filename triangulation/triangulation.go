// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package triangulation implements the 2D incremental engine: the
// locate / eps-filter / redundancy / insert / propagate-flips state
// machine driving a weighted Delaunay (regular) triangulation on top
// of the trids DCEL.
package triangulation

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/golang/geo/r2"

	"github.com/glennDittmann/rita/hilbert"
	"github.com/glennDittmann/rita/hullcheck"
	"github.com/glennDittmann/rita/predicates"
	"github.com/glennDittmann/rita/trids"
)

// ErrTooFewVertices is returned when fewer than 3 vertices are supplied
// to InsertVertices.
var ErrTooFewVertices = errors.New("triangulation: at least 3 vertices required to compute a triangulation")

// ErrEmptyStructure is returned by InsertVertex when no triangle exists
// yet to locate against.
var ErrEmptyStructure = errors.New("triangulation: at least 1 triangle required to insert a vertex")

// ErrAllPointsAligned is returned when every candidate point for the
// initial triangle is collinear.
var ErrAllPointsAligned = errors.New("triangulation: all points are aligned, could not find 3 non-aligned points")

// Options holds configuration gathered from a set of Option values.
type Options struct {
	Eps    float64
	HasEps bool
	Logger *slog.Logger
}

// Option is a functional option type for triangulation configuration.
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

// Triangulation is a weighted 2D Delaunay (regular) triangulation built
// by incremental insertion.
type Triangulation struct {
	tds      *trids.TriDataStructure
	vertices []r2.Point
	weights  []float64

	weighted bool

	lastInsertedTriangle    int
	hasLastInsertedTriangle bool

	eps    float64
	hasEps bool

	usedVertices      []int
	redundantVertices []int
	ignoredVertices   []int

	timeHilbert   time.Duration
	timeWalking   time.Duration
	timeInserting time.Duration
	timeFlipping  time.Duration

	logger *slog.Logger
}

// New returns an empty triangulation configured by opts.
func New(opts ...Option) *Triangulation {
	o := Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	return &Triangulation{
		tds:    trids.New(),
		eps:    o.Eps,
		hasEps: o.HasEps,
		logger: o.Logger,
	}
}

// TDS returns the underlying DCEL.
func (t *Triangulation) TDS() *trids.TriDataStructure {
	return t.tds
}

// Vertices returns the full input vertex array (append-only).
func (t *Triangulation) Vertices() []r2.Point {
	return t.vertices
}

// Weights returns the full input weight array, parallel to Vertices.
func (t *Triangulation) Weights() []float64 {
	return t.weights
}

// UsedIndices returns the indices successfully inserted.
func (t *Triangulation) UsedIndices() []int {
	return t.usedVertices
}

// RedundantIndices returns the indices skipped because their lift did
// not exceed their containing triangle's power plane, even without eps.
func (t *Triangulation) RedundantIndices() []int {
	return t.redundantVertices
}

// IgnoredIndices returns the indices skipped by the eps-regularity
// filter.
func (t *Triangulation) IgnoredIndices() []int {
	return t.ignoredVertices
}

// NumTris returns the number of live triangles, casual and conceptual.
func (t *Triangulation) NumTris() int {
	return t.tds.NumTris()
}

// NumCasualTris returns the number of live triangles with no corner
// touching the point at infinity.
func (t *Triangulation) NumCasualTris() int {
	return t.tds.NumCasualTris()
}

// NumAllTris returns the number of triangle slots ever allocated, live
// or tombstoned.
func (t *Triangulation) NumAllTris() int {
	return t.tds.NumTris() + t.tds.NumDeletedTris()
}

// TimeHilbert returns the cumulative time spent spatially presorting.
func (t *Triangulation) TimeHilbert() time.Duration {
	return t.timeHilbert
}

// TimeWalking returns the cumulative time spent in the visibility walk.
func (t *Triangulation) TimeWalking() time.Duration {
	return t.timeWalking
}

// TimeInserting returns the cumulative time spent in flip1to3.
func (t *Triangulation) TimeInserting() time.Duration {
	return t.timeInserting
}

// TimeFlipping returns the cumulative time spent propagating flips.
func (t *Triangulation) TimeFlipping() time.Duration {
	return t.timeFlipping
}

func (t *Triangulation) height(vIdx int) float64 {
	v := t.vertices[vIdx]
	return v.X*v.X + v.Y*v.Y - t.weights[vIdx]
}

type triKind int

const (
	triCasual triKind = iota
	triConceptual
)

// triExtended carries the coordinates needed for a predicate call
// against a triangle: a casual triangle carries three coordinates, a
// conceptual one (one corner at infinity) carries only the casual
// hull edge.
type triExtended struct {
	kind       triKind
	a, b, c    r2.Point
	edge0, edge1 r2.Point
}

func (t *Triangulation) triType(triIdx int) (triExtended, error) {
	tri, err := t.tds.GetTri(triIdx)
	if err != nil {
		return triExtended{}, err
	}
	nodes := tri.Nodes()

	switch {
	case nodes[0].IsConceptual():
		return triExtended{kind: triConceptual, edge0: t.vertices[nodes[1].MustIndex()], edge1: t.vertices[nodes[2].MustIndex()]}, nil
	case nodes[1].IsConceptual():
		return triExtended{kind: triConceptual, edge0: t.vertices[nodes[2].MustIndex()], edge1: t.vertices[nodes[0].MustIndex()]}, nil
	case nodes[2].IsConceptual():
		return triExtended{kind: triConceptual, edge0: t.vertices[nodes[0].MustIndex()], edge1: t.vertices[nodes[1].MustIndex()]}, nil
	default:
		return triExtended{
			kind: triCasual,
			a:    t.vertices[nodes[0].MustIndex()],
			b:    t.vertices[nodes[1].MustIndex()],
			c:    t.vertices[nodes[2].MustIndex()],
		}, nil
	}
}

// isTriFlat reports whether a casual triangle's three corners are
// collinear. Conceptual triangles are never flat.
func (t *Triangulation) isTriFlat(triIdx int) (bool, error) {
	tri, err := t.triType(triIdx)
	if err != nil {
		return false, err
	}
	if tri.kind == triConceptual {
		return false, nil
	}
	return predicates.Orient2D(tri.a, tri.b, tri.c) == predicates.Zero, nil
}

// isVInPowerCircle reports whether vIdx's lift lies strictly below the
// power plane through triIdx's corners, i.e. whether inserting vIdx
// would violate triIdx's regularity. For a conceptual triangle this
// degenerates to the half-plane test across its casual hull edge.
func (t *Triangulation) isVInPowerCircle(vIdx, triIdx int) (bool, error) {
	p := t.vertices[vIdx]
	hP := t.height(vIdx)

	tri, err := t.triType(triIdx)
	if err != nil {
		return false, err
	}

	if tri.kind == triConceptual {
		return predicates.Orient2D(tri.edge0, tri.edge1, p) == predicates.Positive, nil
	}

	triIter, err := t.tds.GetTri(triIdx)
	if err != nil {
		return false, err
	}
	nodes := triIter.Nodes()
	hA := t.height(nodes[0].MustIndex())
	hB := t.height(nodes[1].MustIndex())
	hC := t.height(nodes[2].MustIndex())

	sign := predicates.Orient2DLiftedSoS(tri.a, tri.b, tri.c, p, hA, hB, hC, hP)
	return sign == predicates.Positive, nil
}

// isVInEpsPowerCircle is isVInPowerCircle with vIdx's lift relaxed by
// the configured eps margin, per §4.5 step 2. Only meaningful for
// casual triangles; callers gate the conceptual case themselves.
func (t *Triangulation) isVInEpsPowerCircle(vIdx, triIdx int) (bool, error) {
	p := t.vertices[vIdx]
	hP := t.height(vIdx) + t.eps

	tri, err := t.triType(triIdx)
	if err != nil {
		return false, err
	}
	if tri.kind == triConceptual {
		return false, errors.New("triangulation: isVInEpsPowerCircle: not defined for a conceptual triangle")
	}

	triIter, err := t.tds.GetTri(triIdx)
	if err != nil {
		return false, err
	}
	nodes := triIter.Nodes()
	hA := t.height(nodes[0].MustIndex())
	hB := t.height(nodes[1].MustIndex())
	hC := t.height(nodes[2].MustIndex())

	sign := predicates.Orient2DLiftedSoS(tri.a, tri.b, tri.c, p, hA, hB, hC, hP)
	return sign == predicates.Positive, nil
}

// insertInitTri seeds the DCEL's first real triangle from the
// remaining-to-insert stack vIdxs (popped from the tail, as the caller
// continues to do for the rest of the batch). The third point is
// chosen among all remaining candidates as the one maximizing
// |orient2d(v0, v1, ·)|, i.e. the farthest from collinear with v0,v1,
// rather than the first non-collinear match, so the seed triangle is
// as well-conditioned as the point set allows.
func (t *Triangulation) insertInitTri(vIdxs []int) ([]int, error) {
	if len(vIdxs) < 3 {
		return nil, ErrAllPointsAligned
	}

	idx0 := vIdxs[len(vIdxs)-1]
	vIdxs = vIdxs[:len(vIdxs)-1]
	idx1 := vIdxs[len(vIdxs)-1]
	vIdxs = vIdxs[:len(vIdxs)-1]

	v0 := t.vertices[idx0]
	v1 := t.vertices[idx1]

	bestPos := -1
	bestMag := 0.0
	for i, idx2 := range vIdxs {
		mag := predicates.Orient2DMagnitude(v0, v1, t.vertices[idx2])
		if mag > bestMag {
			bestMag = mag
			bestPos = i
		}
	}
	if bestPos == -1 {
		return nil, ErrAllPointsAligned
	}

	idx2 := vIdxs[bestPos]
	vIdxs = append(vIdxs[:bestPos], vIdxs[bestPos+1:]...)
	v2 := t.vertices[idx2]

	if predicates.Orient2D(v0, v1, v2) == predicates.Positive {
		if _, err := t.tds.AddInitTri([3]int{idx0, idx1, idx2}); err != nil {
			return nil, err
		}
	} else {
		if _, err := t.tds.AddInitTri([3]int{idx0, idx2, idx1}); err != nil {
			return nil, err
		}
	}
	t.usedVertices = append(t.usedVertices, idx0, idx1, idx2)

	t.lastInsertedTriangle = 0
	t.hasLastInsertedTriangle = true

	return vIdxs, nil
}

// InsertVertex inserts a single weighted vertex, locating near the
// supplied hint (or the last-inserted triangle, or the tail of the
// triangle array if neither is available).
func (t *Triangulation) InsertVertex(p r2.Point, weight float64, nearTo *int) error {
	if t.tds.NumTris() == 0 {
		return ErrEmptyStructure
	}

	idxToInsert := len(t.vertices)
	t.vertices = append(t.vertices, p)
	t.weights = append(t.weights, weight)

	var nearToIdx int
	switch {
	case nearTo != nil:
		nearToIdx = *nearTo
	case t.hasLastInsertedTriangle:
		nearToIdx = t.lastInsertedTriangle
	default:
		nearToIdx = t.tds.NumTris() + t.tds.NumDeletedTris() - 1
	}

	if err := t.insertVertexHelper(idxToInsert, nearToIdx); err != nil {
		return err
	}

	t.logTimes()
	return nil
}

// InsertVertices inserts a batch of vertices. weights may be nil for
// an unweighted (classical) Delaunay triangulation. spatialSort toggles
// the Hilbert-curve presort of §4.2.
func (t *Triangulation) InsertVertices(vertices []r2.Point, weights []float64, spatialSort bool) error {
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

	if len(t.vertices) < 3 {
		return ErrTooFewVertices
	}

	if spatialSort {
		start := time.Now()
		idxsToInsert = hilbert.Sort2D(t.vertices, idxsToInsert)
		t.timeHilbert += time.Since(start)
		t.logger.Debug("spatial sort computed", "elapsed", t.timeHilbert)
	}

	if t.tds.NumTris() == 0 {
		sorted, err := t.insertInitTri(idxsToInsert)
		if err != nil {
			return err
		}
		idxsToInsert = sorted
	}

	t.logger.Debug("inserting vertices", "count", len(idxsToInsert))

	for len(idxsToInsert) > 0 {
		vIdx := idxsToInsert[len(idxsToInsert)-1]
		idxsToInsert = idxsToInsert[:len(idxsToInsert)-1]

		nearToIdx := t.tds.NumTris() + t.tds.NumDeletedTris() - 1
		if t.hasLastInsertedTriangle {
			nearToIdx = t.lastInsertedTriangle
		}

		if err := t.insertVertexHelper(vIdx, nearToIdx); err != nil {
			return err
		}
	}

	t.logTimes()
	return nil
}

func (t *Triangulation) insertVertexHelper(vIdx, nearTo int) error {
	start := time.Now()
	containingTriIdx, err := t.locateVisWalk(vIdx, nearTo)
	if err != nil {
		return err
	}
	t.timeWalking += time.Since(start)

	containingTri, err := t.tds.GetTri(containingTriIdx)
	if err != nil {
		return err
	}

	if t.hasEps && containingTri.IsCasual() {
		inEps, err := t.isVInEpsPowerCircle(vIdx, containingTriIdx)
		if err != nil {
			return err
		}
		if !inEps {
			t.ignoredVertices = append(t.ignoredVertices, vIdx)
			return nil
		}
	}

	if t.weighted {
		inCircle, err := t.isVInPowerCircle(vIdx, containingTriIdx)
		if err != nil {
			return err
		}
		if !inCircle {
			t.redundantVertices = append(t.redundantVertices, vIdx)
			return nil
		}
	}
	t.usedVertices = append(t.usedVertices, vIdx)

	start = time.Now()
	hedges := containingTri.Hedges()
	hedgesToVerify := []int{hedges[0].Twin().Idx(), hedges[1].Twin().Idx(), hedges[2].Twin().Idx()}

	newTris, err := t.tds.Flip1To3(containingTriIdx, vIdx)
	if err != nil {
		return err
	}
	t.lastInsertedTriangle = newTris[0].Idx()
	t.hasLastInsertedTriangle = true
	t.timeInserting += time.Since(start)

	start = time.Now()
	for len(hedgesToVerify) > 0 {
		hedgeIdx := hedgesToVerify[len(hedgesToVerify)-1]
		hedgesToVerify = hedgesToVerify[:len(hedgesToVerify)-1]

		flip, ok, err := t.shouldFlipHedge(hedgeIdx)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		switch flip.kind {
		case flipTwoToTwo:
			hedge, err := t.tds.GetHedge(hedgeIdx)
			if err != nil {
				return err
			}

			// Push the hedges before performing the flip, since the flip
			// may shift indices. Only two new hedges need verification:
			// the ones not connected to the inserted vertex (see
			// flip_2_to_2's contract).
			hedgesToVerify = append(hedgesToVerify, hedge.Prev().Twin().Idx(), hedge.Next().Twin().Idx())

			flipped, err := t.tds.Flip2To2(hedgeIdx)
			if err != nil {
				return err
			}
			t.lastInsertedTriangle = flipped[0].Idx()
		case flipThreeToOne:
			hedge, err := t.tds.GetHedge(hedgeIdx)
			if err != nil {
				return err
			}
			triIdxAbd := hedge.Tri().Idx()
			triIdxBcd := hedge.Twin().Tri().Idx()

			result, err := t.tds.Flip3To1([3]int{triIdxAbd, triIdxBcd, flip.thirdTriIdx}, flip.reflexNodeIdx, t.vertices)
			if err != nil {
				return err
			}
			t.lastInsertedTriangle = result.Idx()

			newHedges := result.Hedges()
			hedgesToVerify = append(hedgesToVerify,
				newHedges[0].Twin().Idx(), newHedges[1].Twin().Idx(), newHedges[2].Twin().Idx())
		}
	}
	t.timeFlipping += time.Since(start)

	return nil
}

func (t *Triangulation) logTimes() {
	t.logger.Debug("time elapsed",
		"inserting", t.timeInserting,
		"walking", t.timeWalking,
		"flipping", t.timeFlipping)
}

// ConvexHullIndices returns the indices, into Vertices, of points lying
// on the triangulation's convex hull, computed by an independent
// cross-check algorithm (hullcheck), per SPEC_FULL's supplemented
// ConvexHullIndices feature.
func (t *Triangulation) ConvexHullIndices() ([]int, error) {
	used := t.UsedIndices()
	points := make([]r2.Point, len(used))
	for i, idx := range used {
		points[i] = t.vertices[idx]
	}

	localHull, err := hullcheck.Indices2D(points, t.eps)
	if err != nil {
		return nil, err
	}

	hull := make([]int, len(localHull))
	for i, localIdx := range localHull {
		hull[i] = used[localIdx]
	}
	return hull, nil
}
