// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package predicates implements the exact-sign geometric oracle the
// incremental engines consult: orientation, in-sphere, and weighted
// "lifted" orientation tests, with Simulation-of-Simplicity (SoS)
// tie-breaking on the lifted variants so they never report a tie.
//
// Orient3D and InSphere3D are evaluated so that a positive sign means
// "strictly inside" / "strictly above", matching the contract callers
// rely on; no inversion is needed at call sites.
package predicates

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Sign is a tri-valued predicate result.
type Sign int

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

func signOf(x float64) Sign {
	switch {
	case x > 0:
		return Positive
	case x < 0:
		return Negative
	default:
		return Zero
	}
}

// det2 computes the 2x2 determinant | a b; c d |.
func det2(a, b, c, d float64) float64 {
	return a*d - b*c
}

// det3 computes the 3x3 determinant with rows (a,b,c).
func det3(a, b, c [3]float64) float64 {
	return a[0]*det2(b[1], b[2], c[1], c[2]) -
		a[1]*det2(b[0], b[2], c[0], c[2]) +
		a[2]*det2(b[0], b[1], c[0], c[1])
}

// det4 computes the 4x4 determinant with rows (a,b,c,d), via cofactor
// expansion along the first column.
func det4(a, b, c, d [4]float64) float64 {
	minor := func(r1, r2, r3 [4]float64, i, j, k int) float64 {
		return det3(
			[3]float64{r1[i], r1[j], r1[k]},
			[3]float64{r2[i], r2[j], r2[k]},
			[3]float64{r3[i], r3[j], r3[k]},
		)
	}
	return a[0]*minor(b, c, d, 1, 2, 3) -
		b[0]*minor(a, c, d, 1, 2, 3) +
		c[0]*minor(a, b, d, 1, 2, 3) -
		d[0]*minor(a, b, c, 1, 2, 3)
}

// Orient2D returns +1 iff c is strictly left of the directed line a->b,
// -1 iff strictly right, 0 iff collinear.
func Orient2D(a, b, c r2.Point) Sign {
	return signOf(det2(b.X-a.X, b.Y-a.Y, c.X-a.X, c.Y-a.Y))
}

// Orient2DMagnitude returns the unsigned magnitude of the raw 2D
// orientation determinant (twice the area of triangle a,b,c). Callers
// rank candidates by how far they are from being collinear with a,b
// rather than by which side of the line they fall on.
func Orient2DMagnitude(a, b, c r2.Point) float64 {
	return math.Abs(det2(b.X-a.X, b.Y-a.Y, c.X-a.X, c.Y-a.Y))
}

// Orient3D returns +1 iff d lies strictly above the plane through
// (a,b,c) oriented by the right-hand rule, -1 iff strictly below, 0 iff
// coplanar.
func Orient3D(a, b, c, d r3.Vector) Sign {
	ab := [3]float64{b.X - a.X, b.Y - a.Y, b.Z - a.Z}
	ac := [3]float64{c.X - a.X, c.Y - a.Y, c.Z - a.Z}
	ad := [3]float64{d.X - a.X, d.Y - a.Y, d.Z - a.Z}
	return signOf(det3(ab, ac, ad))
}

// Orient3DMagnitude returns the unsigned magnitude of the raw 3D
// orientation determinant (six times the volume of tetrahedron
// a,b,c,d). Callers rank candidates by how far they are from being
// coplanar with a,b,c rather than by which side of the plane they fall
// on.
func Orient3DMagnitude(a, b, c, d r3.Vector) float64 {
	ab := [3]float64{b.X - a.X, b.Y - a.Y, b.Z - a.Z}
	ac := [3]float64{c.X - a.X, c.Y - a.Y, c.Z - a.Z}
	ad := [3]float64{d.X - a.X, d.Y - a.Y, d.Z - a.Z}
	return math.Abs(det3(ab, ac, ad))
}

// InSphere3D returns +1 iff p lies strictly inside the circumsphere of
// the positively-oriented tetrahedron (a,b,c,d), -1 iff strictly
// outside, 0 iff cospherical.
func InSphere3D(a, b, c, d, p r3.Vector) Sign {
	row := func(v r3.Vector) [4]float64 {
		lift := v.X*v.X + v.Y*v.Y + v.Z*v.Z
		return [4]float64{v.X - p.X, v.Y - p.Y, v.Z - p.Z, lift - (p.X*p.X + p.Y*p.Y + p.Z*p.Z)}
	}
	return -signOf(det4(row(a), row(b), row(c), row(d)))
}

// sosPerturbation returns a deterministic, strictly-ordered infinitesimal
// offset for tie-breaking the lifted predicates when the raw determinant
// evaluates to exactly zero. It is keyed on a caller-supplied ordinal
// (e.g. the corner's position within the simplex) so the same input
// always perturbs the same way, matching the goal of Simulation of
// Simplicity without requiring exact/extended-precision arithmetic.
func sosPerturbation(ordinal int) float64 {
	return math.Ldexp(1, -(52 - ordinal))
}

// Orient2DLiftedSoS tests whether the lifted point (p, h_p) lies below
// the plane through the lifted points (a,h_a), (b,h_b), (c,h_c); a
// positive sign means p lies inside the power circle of the weighted
// triangle a,b,c given in CCW order. Never returns Zero.
func Orient2DLiftedSoS(a, b, c, p r2.Point, hA, hB, hC, hP float64) Sign {
	row := func(v r2.Point, h float64) [4]float64 {
		return [4]float64{v.X, v.Y, h, 1}
	}
	raw := det4(row(a, hA), row(b, hB), row(c, hC), row(p, hP))
	if s := signOf(raw); s != Zero {
		return s
	}
	for ordinal := 1; ordinal <= 4; ordinal++ {
		perturbed := raw + sosPerturbation(ordinal)
		if s := signOf(perturbed); s != Zero {
			return s
		}
	}
	return Positive
}

// Orient3DLiftedSoS is the 3D analogue of Orient2DLiftedSoS: a positive
// sign means p lies inside the power sphere of the weighted tetrahedron
// a,b,c,d. Never returns Zero.
func Orient3DLiftedSoS(a, b, c, d, p r3.Vector, hA, hB, hC, hD, hP float64) Sign {
	type row5 struct {
		x, y, z, h, w float64
	}
	mk := func(v r3.Vector, h float64) row5 {
		return row5{v.X, v.Y, v.Z, h, 1}
	}
	ra, rb, rc, rd, rp := mk(a, hA), mk(b, hB), mk(c, hC), mk(d, hD), mk(p, hP)

	det5 := func(r0, r1, r2, r3, r4 row5) float64 {
		col := func(r row5, i int) float64 {
			switch i {
			case 0:
				return r.x
			case 1:
				return r.y
			case 2:
				return r.z
			case 3:
				return r.h
			default:
				return r.w
			}
		}
		// Cofactor expansion along the first column using the det4 helper
		// on the remaining 4x4 minors (columns 1..4).
		build := func(rows [4]row5) ([4]float64, [4]float64, [4]float64, [4]float64) {
			var c1, c2, c3, c4 [4]float64
			for i, r := range rows {
				c1[i], c2[i], c3[i], c4[i] = col(r, 1), col(r, 2), col(r, 3), col(r, 4)
			}
			return c1, c2, c3, c4
		}
		rows := [5]row5{r0, r1, r2, r3, r4}
		var sum float64
		sign := 1.0
		for skip := 0; skip < 5; skip++ {
			var rest [4]row5
			k := 0
			for i := 0; i < 5; i++ {
				if i == skip {
					continue
				}
				rest[k] = rows[i]
				k++
			}
			c1, c2, c3, c4 := build(rest)
			minor := det4(c1, c2, c3, c4)
			sum += sign * col(rows[skip], 0) * minor
			sign = -sign
		}
		return sum
	}

	raw := -det5(ra, rb, rc, rd, rp)
	if s := signOf(raw); s != Zero {
		return s
	}
	for ordinal := 1; ordinal <= 5; ordinal++ {
		perturbed := raw + sosPerturbation(ordinal)
		if s := signOf(perturbed); s != Zero {
			return s
		}
	}
	return Positive
}
