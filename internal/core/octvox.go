package core

// OctVox identifies an octree-aligned cubic region by its depth
// (SupportedLevels - level: the log2 of its side in unit voxels, so it
// drops by one per level of descent) and the integer coordinates of its
// minimum corner at that depth's resolution. All arithmetic is signed
// 64-bit to stay overflow-safe at depth = SupportedLevels.
type OctVox struct {
	Depth int64
	Path  [3]int64
}

// LevelOctVox builds the OctVox that covers the entire subtree rooted
// at the given level, at the path's current resolution.
func LevelOctVox(level Level, path [3]int64) OctVox {
	return OctVox{Depth: int64(SupportedLevels) - int64(level), Path: path}
}

// Descend shifts into child c (0..7): bit 2 selects x, bit 1 selects y,
// bit 0 selects z.
func (o OctVox) Descend(child int) OctVox {
	return OctVox{
		Depth: o.Depth - 1,
		Path: [3]int64{
			o.Path[0]<<1 | int64((child>>2)&1),
			o.Path[1]<<1 | int64((child>>1)&1),
			o.Path[2]<<1 | int64(child&1),
		},
	}
}

// IsChild reports whether o is a strict descendant of ancestor: o must
// lie further down the tree (a smaller Depth), and ancestor's path must
// equal o's path right-shifted to ancestor's depth.
func (o OctVox) IsChild(ancestor OctVox) bool {
	if o.Depth >= ancestor.Depth {
		return false
	}
	shift := uint(ancestor.Depth - o.Depth)
	for axis := 0; axis < 3; axis++ {
		if o.Path[axis]>>shift != ancestor.Path[axis] {
			return false
		}
	}
	return true
}

// MinCorner returns the voxel-space minimum corner of the region,
// i.e. path scaled up to unit-voxel resolution (2^depth per axis).
func (o OctVox) MinCorner() [3]int64 {
	return [3]int64{
		o.Path[0] << uint(o.Depth),
		o.Path[1] << uint(o.Depth),
		o.Path[2] << uint(o.Depth),
	}
}

// Side returns the side length of the region in unit voxels.
func (o OctVox) Side() int64 {
	return int64(1) << uint(o.Depth)
}
