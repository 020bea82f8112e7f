// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package triangulation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golang/geo/r2"
)

func TestIsConvexAngle(t *testing.T) {
	tests := []struct {
		name       string
		v0, v1, v2 r2.Point
		want       bool
	}{
		{
			name: "left turn is convex",
			v0:   r2.Point{X: 0, Y: 0}, v1: r2.Point{X: 1, Y: 0}, v2: r2.Point{X: 1, Y: 1},
			want: true,
		},
		{
			name: "right turn is not convex",
			v0:   r2.Point{X: 1, Y: 1}, v1: r2.Point{X: 1, Y: 0}, v2: r2.Point{X: 0, Y: 0},
			want: false,
		},
		{
			name: "collinear with v1 strictly between v0 and v2 is not convex",
			v0:   r2.Point{X: 0, Y: 0}, v1: r2.Point{X: 1, Y: 0}, v2: r2.Point{X: 2, Y: 0},
			want: false,
		},
		{
			name: "collinear with v1 beyond v2 is convex",
			v0:   r2.Point{X: 0, Y: 0}, v1: r2.Point{X: 2, Y: 0}, v2: r2.Point{X: 1, Y: 0},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isConvexAngle(tt.v0, tt.v1, tt.v2))
		})
	}
}
