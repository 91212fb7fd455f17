package edit

import (
	"github.com/naomijub/voxeldag/internal/core"
)

// Operation selects whether a Shape's footprint is being linked
// (voxels set) or unlinked (voxels cleared).
type Operation int

const (
	Link Operation = iota
	Unlink
)

// Shape is a spatial predicate over octree regions. EditProjection
// converts an OctVox (an octree-aligned cubic region) into whatever
// representation Collides/WillBeFull/WillBeEmpty operate on — an AABB
// projects to itself, a Sphere projects to its bounding AABB. Callers
// pass the result back unchanged; each shape's methods assert it to the
// concrete type its own EditProjection returned, so the interface needs
// no type parameter per shape.
type Shape interface {
	Collides(edit any) bool
	WillBeFull(after Operation, edit any) bool
	WillBeEmpty(after Operation, edit any) bool
	EditProjection(v core.OctVox) any
}

// AABB is an axis-aligned bounding box in signed 64-bit voxel space.
type AABB struct {
	Min, Max [3]int64
}

// NewAABB builds a box centered on centroid with the given half-extent
// on every axis.
func NewAABB(centroid [3]uint32, extent uint32) AABB {
	var min, max [3]int64
	for axis := 0; axis < 3; axis++ {
		c := int64(centroid[axis])
		min[axis] = c - int64(extent)
		max[axis] = c + int64(extent)
	}
	return AABB{Min: min, Max: max}
}

// EditProjection of an OctVox under an AABB shape is the region's own
// bounding box: min = path shifted up to unit-voxel resolution, max =
// min + side length.
func (a AABB) EditProjection(v core.OctVox) any {
	min := v.MinCorner()
	side := v.Side()
	return AABB{
		Min: min,
		Max: [3]int64{min[0] + side, min[1] + side, min[2] + side},
	}
}

// Collides reports strict overlap between a and edit (inequalities are
// strict on the touching-faces side, so abutting boxes don't collide).
func (a AABB) Collides(edit any) bool {
	e := edit.(AABB)
	return !(e.Max[0] <= a.Min[0] || a.Max[0] <= e.Min[0] ||
		e.Max[1] <= a.Min[1] || a.Max[1] <= e.Min[1] ||
		e.Max[2] <= a.Min[2] || a.Max[2] <= e.Min[2])
}

func (a AABB) encloses(e AABB) bool {
	return a.Min[0] <= e.Min[0] && a.Max[0] >= e.Max[0] &&
		a.Min[1] <= e.Min[1] && a.Max[1] >= e.Max[1] &&
		a.Min[2] <= e.Min[2] && a.Max[2] >= e.Max[2]
}

// WillBeFull reports whether linking a's footprint fully encloses edit.
func (a AABB) WillBeFull(after Operation, edit any) bool {
	return after == Link && a.encloses(edit.(AABB))
}

// WillBeEmpty reports whether unlinking a's footprint fully encloses edit.
func (a AABB) WillBeEmpty(after Operation, edit any) bool {
	return after == Unlink && a.encloses(edit.(AABB))
}

// Sphere is a ball in signed 64-bit voxel space, described by its
// centroid and squared radius to avoid a square root on the hot path.
type Sphere struct {
	Centroid [3]int64
	RadiusSq int64
}

// NewSphere builds a sphere centered on centroid with the given radius.
func NewSphere(centroid [3]uint32, radius uint32) Sphere {
	var c [3]int64
	for axis := 0; axis < 3; axis++ {
		c[axis] = int64(centroid[axis])
	}
	r := int64(radius)
	return Sphere{Centroid: c, RadiusSq: r * r}
}

// EditProjection of an OctVox under a Sphere shape is the region's
// bounding AABB — the sphere's geometric tests operate against boxes,
// never against another sphere.
func (s Sphere) EditProjection(v core.OctVox) any {
	min := v.MinCorner()
	side := v.Side()
	return AABB{
		Min: min,
		Max: [3]int64{min[0] + side, min[1] + side, min[2] + side},
	}
}

// clampedAxisDistance returns how far c lies outside [min, max] on one
// axis, or 0 if c falls within it.
func clampedAxisDistance(c, min, max int64) int64 {
	switch {
	case c < min:
		return min - c
	case max < c:
		return c - max
	default:
		return 0
	}
}

// Collides applies the standard axis-clamped squared-distance test:
// the sphere touches the box iff the squared distance from its centre
// to the nearest point of the box is strictly less than r^2.
func (s Sphere) Collides(edit any) bool {
	e := edit.(AABB)
	x := clampedAxisDistance(s.Centroid[0], e.Min[0], e.Max[0])
	y := clampedAxisDistance(s.Centroid[1], e.Min[1], e.Max[1])
	z := clampedAxisDistance(s.Centroid[2], e.Min[2], e.Max[2])
	return x*x+y*y+z*z < s.RadiusSq
}

// farthestCornerDistSq returns the squared distance from the sphere's
// centre to the farthest corner of e — every point of e lies inside the
// sphere iff this is strictly less than r^2.
func (s Sphere) farthestCornerDistSq(e AABB) int64 {
	var sum int64
	for axis := 0; axis < 3; axis++ {
		dMin := e.Min[axis] - s.Centroid[axis]
		dMax := e.Max[axis] - s.Centroid[axis]
		d := dMin * dMin
		if m := dMax * dMax; m > d {
			d = m
		}
		sum += d
	}
	return sum
}

// WillBeFull reports whether linking s's footprint fully encloses edit.
func (s Sphere) WillBeFull(after Operation, edit any) bool {
	return after == Link && s.farthestCornerDistSq(edit.(AABB)) < s.RadiusSq
}

// WillBeEmpty reports whether unlinking s's footprint fully encloses edit.
func (s Sphere) WillBeEmpty(after Operation, edit any) bool {
	return after == Unlink && s.farthestCornerDistSq(edit.(AABB)) < s.RadiusSq
}
