package edit

import (
	"math/bits"

	"github.com/naomijub/voxeldag/internal/core"
)

// nodeState names one node in the recursion: its level, its vptr (the
// zero value core.NullVPtr stands in for "no such child"), and the
// integer path to its minimum corner at that level's resolution.
type nodeState struct {
	level Level
	vptr  core.VPtr
	path  [3]int64
}

// Level is an alias kept local to this package so edit.go reads
// naturally without a core. prefix on every occurrence; it is always
// core.Level underneath.
type Level = core.Level

// octVox builds the OctVox this node covers, for shape projection.
func (n nodeState) octVox() core.OctVox {
	return core.LevelOctVox(n.level, n.path)
}

// descend builds the child NodeState for the given child index (0..7),
// with vptr left as core.NullVPtr — the caller fills it in once it
// knows whether the bitmask marks that child present.
func (n nodeState) descend(child int) nodeState {
	v := n.octVox().Descend(child)
	return nodeState{level: n.level + 1, path: v.Path}
}

// countLeaves returns the population count of a 2-word leaf mask.
func countLeaves(leaf [2]uint32) uint64 {
	return uint64(bits.OnesCount32(leaf[0]) + bits.OnesCount32(leaf[1]))
}
