// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package node defines the tagged vertex label carried at each corner of a
// triangle or tetrahedron.
package node

import "fmt"

// Kind distinguishes the three label variants a VertexNode can take.
type Kind uint8

const (
	// KindCasual marks a corner that references a real input vertex.
	KindCasual Kind = iota
	// KindConceptual marks the single point at infinity closing the hull.
	KindConceptual
	// KindDeleted marks a tombstoned corner, retired by a 3-to-1 flip.
	KindDeleted
)

// VertexNode is the per-corner label of the DCEL. It is either a Casual
// index into the vertex array, the unique Conceptual sentinel, or a
// Deleted tombstone.
type VertexNode struct {
	kind Kind
	idx  int
}

// Casual builds a VertexNode referencing the real vertex at idx.
func Casual(idx int) VertexNode {
	return VertexNode{kind: KindCasual, idx: idx}
}

// Conceptual is the sentinel point-at-infinity node.
var Conceptual = VertexNode{kind: KindConceptual}

// Deleted is the tombstone node.
var Deleted = VertexNode{kind: KindDeleted}

// Kind reports the node's variant.
func (n VertexNode) Kind() Kind {
	return n.kind
}

// IsCasual reports whether n references a real vertex.
func (n VertexNode) IsCasual() bool {
	return n.kind == KindCasual
}

// IsConceptual reports whether n is the point at infinity.
func (n VertexNode) IsConceptual() bool {
	return n.kind == KindConceptual
}

// IsDeleted reports whether n is a tombstone.
func (n VertexNode) IsDeleted() bool {
	return n.kind == KindDeleted
}

// Index returns the referenced vertex index and true if n is Casual;
// otherwise it returns (-1, false).
func (n VertexNode) Index() (int, bool) {
	if n.kind != KindCasual {
		return -1, false
	}
	return n.idx, true
}

// MustIndex returns the referenced vertex index, panicking if n is not
// Casual. Used at call sites that have already established the node is
// casual (e.g. after filtering out Conceptual corners).
func (n VertexNode) MustIndex() int {
	if n.kind != KindCasual {
		panic(fmt.Sprintf("node: MustIndex called on non-casual node %v", n))
	}
	return n.idx
}

func (n VertexNode) String() string {
	switch n.kind {
	case KindCasual:
		return fmt.Sprintf("Casual(%d)", n.idx)
	case KindConceptual:
		return "Conceptual"
	case KindDeleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}
