// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package rita re-exports the 2D and 3D weighted Delaunay (regular)
// triangulation engines as a single importable package.
package rita

import (
	"github.com/glennDittmann/rita/node"
	"github.com/glennDittmann/rita/tetrahedralization"
	"github.com/glennDittmann/rita/triangulation"
)

// VertexNode is the per-corner DCEL label shared by both engines.
type VertexNode = node.VertexNode

// Triangulation is a weighted 2D Delaunay (regular) triangulation.
type Triangulation = triangulation.Triangulation

// Tetrahedralization is a weighted 3D Delaunay (regular)
// tetrahedralization.
type Tetrahedralization = tetrahedralization.Tetrahedralization

// NewTriangulation returns an empty 2D triangulation configured by
// opts.
func NewTriangulation(opts ...triangulation.Option) *Triangulation {
	return triangulation.New(opts...)
}

// NewTetrahedralization returns an empty 3D tetrahedralization
// configured by opts.
func NewTetrahedralization(opts ...tetrahedralization.Option) *Tetrahedralization {
	return tetrahedralization.New(opts...)
}
