package voxeldag

import (
	"github.com/naomijub/voxeldag/internal/core"
	"github.com/naomijub/voxeldag/internal/edit"
)

// Operation selects whether an edit links (fills) or unlinks (clears)
// the voxels its shape covers.
type Operation = edit.Operation

const (
	Link   = edit.Link
	Unlink = edit.Unlink
)

// Shape is any region an edit can be projected against: an AABB, a
// Sphere, or a caller-defined predicate satisfying the same interface.
type Shape = edit.Shape

// AABB is an axis-aligned box edit region.
type AABB = edit.AABB

// Sphere is a spherical edit region.
type Sphere = edit.Sphere

// NewAABB builds a box centered on centroid with the given half-extent,
// in voxel units at the finest level.
func NewAABB(centroid [3]uint32, extent uint32) AABB {
	return edit.NewAABB(centroid, extent)
}

// NewSphere builds a sphere centered on centroid with the given
// radius, in voxel units at the finest level.
func NewSphere(centroid [3]uint32, radius uint32) Sphere {
	return edit.NewSphere(centroid, radius)
}

// Edit links or unlinks shape's footprint into the subtree rooted at
// vptr, returning the new root. The tracker is notified of every
// touched node via the same FindOrAdd path Import uses, so staging
// sees exactly the pages an edit actually wrote.
func (t *Table) Edit(vptr core.VPtr, op Operation, shape Shape) (core.VPtr, error) {
	return edit.NewEditor(t.Core).Edit(vptr, op, shape)
}
