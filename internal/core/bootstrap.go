package core

import "github.com/naomijub/voxeldag/internal/utils"

// Bootstrap populates the full-node cache bottom-up: first the fully
// solid leaf, then the fully solid interior at every level from
// LeafLevel-1 down to 0. It returns the root vptr (FullNodePtr(0)).
func (t *Table) Bootstrap() (VPtr, error) {
	fullLeaf := [2]uint32{0xFFFFFFFF, 0xFFFFFFFF}
	leafVPtr, err := t.FindOrAddLeaf(Strict, fullLeaf)
	if err != nil {
		return NullVPtr, err
	}
	t.fullNode[LeafLevel] = leafVPtr

	for level := int(LeafLevel) - 1; level >= 0; level-- {
		lvl := Level(level)

		children := t.fullNode[lvl+1]
		node := make([]uint32, 9)
		for i := 1; i <= 8; i++ {
			node[i] = uint32(children)
		}

		header := uint32(0xff) // all 8 children present
		if lvl >= ColorTreeLevels {
			count, err := utils.Pow8(uint(SupportedLevels - int(lvl)))
			if err != nil {
				return NullVPtr, err
			}
			header |= uint32(count) << 8
		}
		node[0] = header

		vptr, err := t.FindOrAddInterior(Strict, lvl, node)
		if err != nil {
			return NullVPtr, err
		}
		t.fullNode[lvl] = vptr
	}

	return t.fullNode[0], nil
}
