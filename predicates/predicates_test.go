// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package predicates

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

func TestOrient2D(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r2.Point
		want    Sign
	}{
		{"ccw left turn", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 1}, Positive},
		{"cw right turn", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: -1}, Negative},
		{"collinear", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 2, Y: 0}, Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Orient2D(tt.a, tt.b, tt.c); got != tt.want {
				t.Errorf("Orient2D(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
			}
		})
	}
}

func TestOrient3D(t *testing.T) {
	a := r3.Vector{X: 0, Y: 0, Z: 0}
	b := r3.Vector{X: 1, Y: 0, Z: 0}
	c := r3.Vector{X: 0, Y: 1, Z: 0}

	tests := []struct {
		name string
		d    r3.Vector
		want Sign
	}{
		{"above", r3.Vector{X: 0, Y: 0, Z: 1}, Positive},
		{"below", r3.Vector{X: 0, Y: 0, Z: -1}, Negative},
		{"coplanar", r3.Vector{X: 1, Y: 1, Z: 0}, Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Orient3D(a, b, c, tt.d); got != tt.want {
				t.Errorf("Orient3D(..., %v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestInSphere3D(t *testing.T) {
	// Positively-oriented unit tetrahedron; circumcenter (0.5,0.5,0.5),
	// circumradius sqrt(0.75) =~ 0.866.
	a := r3.Vector{X: 0, Y: 0, Z: 0}
	b := r3.Vector{X: 1, Y: 0, Z: 0}
	c := r3.Vector{X: 0, Y: 1, Z: 0}
	d := r3.Vector{X: 0, Y: 0, Z: 1}

	tests := []struct {
		name string
		p    r3.Vector
		want Sign
	}{
		{"near centroid, inside", r3.Vector{X: 0.1, Y: 0.1, Z: 0.1}, Positive},
		{"far away, outside", r3.Vector{X: 10, Y: 10, Z: 10}, Negative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InSphere3D(a, b, c, d, tt.p); got != tt.want {
				t.Errorf("InSphere3D(..., %v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestOrient2DLiftedSoS_Unweighted(t *testing.T) {
	// Zero weights reduce the lifted test to a plain in-circle test.
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 1, Y: 0}
	c := r2.Point{X: 0, Y: 1}

	inside := r2.Point{X: 0.1, Y: 0.1}
	if got := Orient2DLiftedSoS(a, b, c, inside, 0, 1, 1, 0.02); got != Positive {
		t.Errorf("Orient2DLiftedSoS(..., inside) = %v, want Positive", got)
	}

	outside := r2.Point{X: 10, Y: 10}
	if got := Orient2DLiftedSoS(a, b, c, outside, 0, 1, 1, 200); got != Negative {
		t.Errorf("Orient2DLiftedSoS(..., outside) = %v, want Negative", got)
	}
}

func TestOrient2DLiftedSoS_NeverZero(t *testing.T) {
	// Corners of a unit square are exactly cocircular, so the raw
	// determinant is zero and the SoS tie-break must resolve it.
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 1, Y: 0}
	c := r2.Point{X: 1, Y: 1}
	d := r2.Point{X: 0, Y: 1}

	if got := Orient2DLiftedSoS(a, b, c, d, 0, 0, 0, 0); got == Zero {
		t.Errorf("Orient2DLiftedSoS on cocircular points returned Zero, want a tie-broken sign")
	}
}

func TestOrient3DLiftedSoS_Unweighted(t *testing.T) {
	a := r3.Vector{X: 0, Y: 0, Z: 0}
	b := r3.Vector{X: 1, Y: 0, Z: 0}
	c := r3.Vector{X: 0, Y: 1, Z: 0}
	d := r3.Vector{X: 0, Y: 0, Z: 1}

	inside := r3.Vector{X: 0.1, Y: 0.1, Z: 0.1}
	if got := Orient3DLiftedSoS(a, b, c, d, inside, 0, 1, 1, 1, 0.03); got != Positive {
		t.Errorf("Orient3DLiftedSoS(..., inside) = %v, want Positive", got)
	}

	outside := r3.Vector{X: 10, Y: 10, Z: 10}
	if got := Orient3DLiftedSoS(a, b, c, d, outside, 0, 1, 1, 1, 300); got != Negative {
		t.Errorf("Orient3DLiftedSoS(..., outside) = %v, want Negative", got)
	}
}

func TestOrient3DLiftedSoS_NeverZero(t *testing.T) {
	// Five points of a regular octahedron are exactly cospherical on the
	// unit sphere, so the raw determinant is zero and SoS must resolve it.
	a := r3.Vector{X: 1, Y: 0, Z: 0}
	b := r3.Vector{X: -1, Y: 0, Z: 0}
	c := r3.Vector{X: 0, Y: 1, Z: 0}
	d := r3.Vector{X: 0, Y: -1, Z: 0}
	p := r3.Vector{X: 0, Y: 0, Z: 1}

	if got := Orient3DLiftedSoS(a, b, c, d, p, 0, 0, 0, 0, 0); got == Zero {
		t.Errorf("Orient3DLiftedSoS on cospherical points returned Zero, want a tie-broken sign")
	}
}
