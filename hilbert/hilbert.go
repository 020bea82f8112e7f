// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package hilbert computes an insertion order over a batch of point
// indices that follows a Hilbert space-filling curve over the batch's
// axis-aligned bounding box. Spatially coherent insertion order
// dramatically shortens the visibility walk performed by the
// incremental engines; it is not required for correctness. Subdivision
// is iterative and stack-based rather than recursive.
package hilbert

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Sort2D returns a permutation of indices (a subset of range
// [0,len(points))) following a 2D Hilbert curve over their bounding box.
// 8 rotation states, quadrant split per level; recursion terminates when
// a cell holds at most one point.
func Sort2D(points []r2.Point, indices []int) []int {
	if len(indices) == 0 {
		return nil
	}

	min, max := boundingBox2D(points, indices)

	type cell struct {
		rot        int
		min, max   r2.Point
		indices    []int
	}

	order := make([]int, 0, len(indices))
	stack := []cell{{rot: 0, min: min, max: max, indices: append([]int(nil), indices...)}}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(c.indices) == 1 {
			order = append(order, c.indices[0])
			continue
		}
		if len(c.indices) == 0 {
			continue
		}

		sepX := (c.min.X + c.max.X) / 2
		sepY := (c.min.Y + c.max.Y) / 2

		var a, b, cc, d []int
		for _, idx := range c.indices {
			v := points[idx]
			switch {
			case v.X < sepX && v.Y < sepY:
				a = append(a, idx)
			case v.X < sepX:
				b = append(b, idx)
			case v.Y < sepY:
				d = append(d, idx)
			default:
				cc = append(cc, idx)
			}
		}

		aMin, aMax := c.min, r2.Point{X: sepX, Y: sepY}
		bMin, bMax := r2.Point{X: c.min.X, Y: sepY}, r2.Point{X: sepX, Y: c.max.Y}
		ccMin, ccMax := r2.Point{X: sepX, Y: sepY}, c.max
		dMin, dMax := r2.Point{X: sepX, Y: c.min.Y}, r2.Point{X: c.max.X, Y: sepY}

		push := func(rot int, min, max r2.Point, idxs []int) {
			stack = append(stack, cell{rot: rot, min: min, max: max, indices: idxs})
		}

		switch c.rot {
		case 0:
			push(3, aMin, aMax, a)
			push(0, bMin, bMax, b)
			push(0, ccMin, ccMax, cc)
			push(7, dMin, dMax, d)
		case 1:
			push(6, dMin, dMax, d)
			push(1, ccMin, ccMax, cc)
			push(1, bMin, bMax, b)
			push(2, aMin, aMax, a)
		case 2:
			push(5, bMin, bMax, b)
			push(2, ccMin, ccMax, cc)
			push(2, dMin, dMax, d)
			push(1, aMin, aMax, a)
		case 3:
			push(0, aMin, aMax, a)
			push(3, dMin, dMax, d)
			push(3, ccMin, ccMax, cc)
			push(4, bMin, bMax, b)
		case 4:
			push(7, ccMin, ccMax, cc)
			push(4, dMin, dMax, d)
			push(4, aMin, aMax, a)
			push(3, bMin, bMax, b)
		case 5:
			push(2, bMin, bMax, b)
			push(5, aMin, aMax, a)
			push(5, dMin, dMax, d)
			push(6, ccMin, ccMax, cc)
		case 6:
			push(1, dMin, dMax, d)
			push(6, aMin, aMax, a)
			push(6, bMin, bMax, b)
			push(5, ccMin, ccMax, cc)
		case 7:
			push(4, ccMin, ccMax, cc)
			push(7, bMin, bMax, b)
			push(7, aMin, aMax, a)
			push(0, dMin, dMax, d)
		}
	}

	return order
}

// Sort3D returns a permutation of indices following a 3D Hilbert curve
// over their bounding box, via the Butz state-transition table for the
// 3D curve's 6 orientation states (3 axes x 2 start-bit values).
func Sort3D(points []r3.Vector, indices []int) []int {
	if len(indices) == 0 {
		return nil
	}

	min, max := boundingBox3D(points, indices)

	type cell struct {
		start    [3]int
		dir      int
		min, max r3.Vector
		indices  []int
	}

	order := make([]int, 0, len(indices))
	stack := []cell{{start: [3]int{0, 0, 0}, dir: 0, min: min, max: max, indices: append([]int(nil), indices...)}}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(c.indices) == 1 {
			order = append(order, c.indices[0])
			continue
		}
		if len(c.indices) == 0 {
			continue
		}

		sepX := (c.min.X + c.max.X) / 2
		sepY := (c.min.Y + c.max.Y) / 2
		sepZ := (c.min.Z + c.max.Z) / 2

		var sepInd [2][2][2][]int
		for _, idx := range c.indices {
			v := points[idx]
			xi, yi, zi := 0, 0, 0
			if v.X >= sepX {
				xi = 1
			}
			if v.Y >= sepY {
				yi = 1
			}
			if v.Z >= sepZ {
				zi = 1
			}
			sepInd[xi][yi][zi] = append(sepInd[xi][yi][zi], idx)
		}

		ptX := [3]float64{c.min.X, sepX, c.max.X}
		ptY := [3]float64{c.min.Y, sepY, c.max.Y}
		ptZ := [3]float64{c.min.Z, sepZ, c.max.Z}

		nextModif, dirs := hilbert3DTransition(c.dir, c.start[c.dir])

		sepSubind := c.start
		startInd := c.start
		for i := 0; i < 8; i++ {
			vecInds := sepInd[sepSubind[0]][sepSubind[1]][sepSubind[2]]
			sepInd[sepSubind[0]][sepSubind[1]][sepSubind[2]] = nil

			childMin := r3.Vector{X: ptX[sepSubind[0]], Y: ptY[sepSubind[1]], Z: ptZ[sepSubind[2]]}
			childMax := r3.Vector{X: ptX[sepSubind[0]+1], Y: ptY[sepSubind[1]+1], Z: ptZ[sepSubind[2]+1]}

			stack = append(stack, cell{start: startInd, dir: dirs[i], min: childMin, max: childMax, indices: vecInds})

			sepSubind[nextModif[i]] = 1 - sepSubind[nextModif[i]]
			startInd[nextModif[i]] = 1 - startInd[nextModif[i]]
			startInd[dirs[i]] = 1 - startInd[dirs[i]]
		}
	}

	return order
}

func hilbert3DTransition(dir, startBit int) ([8]int, [8]int) {
	switch {
	case dir == 0 && startBit == 0:
		return [8]int{1, 2, 1, 0, 1, 2, 1, 0}, [8]int{1, 2, 2, 0, 0, 2, 2, 1}
	case dir == 0 && startBit == 1:
		return [8]int{2, 1, 2, 0, 2, 1, 2, 0}, [8]int{2, 1, 1, 0, 0, 1, 1, 2}
	case dir == 1 && startBit == 0:
		return [8]int{2, 0, 2, 1, 2, 0, 2, 1}, [8]int{2, 0, 0, 1, 1, 0, 0, 2}
	case dir == 1 && startBit == 1:
		return [8]int{0, 2, 0, 1, 0, 2, 0, 1}, [8]int{0, 2, 2, 1, 1, 2, 2, 0}
	case dir == 2 && startBit == 0:
		return [8]int{0, 1, 0, 2, 0, 1, 0, 2}, [8]int{0, 1, 1, 2, 2, 1, 1, 0}
	default:
		return [8]int{1, 0, 1, 2, 1, 0, 1, 2}, [8]int{1, 0, 0, 2, 2, 0, 0, 1}
	}
}

func boundingBox3D(points []r3.Vector, indices []int) (min, max r3.Vector) {
	min = points[indices[0]]
	max = points[indices[0]]
	for _, idx := range indices {
		v := points[idx]
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max
}

func boundingBox2D(points []r2.Point, indices []int) (min, max r2.Point) {
	min = points[indices[0]]
	max = points[indices[0]]
	for _, idx := range indices {
		v := points[idx]
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
	}
	return min, max
}
