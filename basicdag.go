// Package voxeldag is a hashed, deduplicated sparse voxel octree DAG:
// a single-writer, append-only store where identical subtrees always
// collapse to the same node, plus an editing layer and a staging
// protocol for mirroring changed pages to a secondary device.
package voxeldag

import (
	"encoding/binary"
	"fmt"

	"github.com/naomijub/voxeldag/internal/core"
	"github.com/naomijub/voxeldag/internal/utils"
)

// basicDAGHeaderSkip is the opaque leading header every on-disk
// BasicDAG file carries: six 8-byte words whose content this reader
// never interprets.
const basicDAGHeaderSkip = 48

// basicDAGPostHeaderSkip is 24 further bytes skipped after levels and
// num_nodes, before the node pool begins.
const basicDAGPostHeaderSkip = 24

// LoadBasicDAG decodes the on-disk BasicDAG format from r: 48 bytes of
// opaque header, a little-endian level count, a little-endian node
// count, 24 further skipped bytes, then that many little-endian 32-bit
// pool words (root is always index 0).
func LoadBasicDAG(r utils.ReaderAt) (*core.BasicDAG, error) {
	levels, err := utils.ReadUint32(r, basicDAGHeaderSkip, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("reading level count: %w", err)
	}

	numNodes, err := utils.ReadUint32(r, basicDAGHeaderSkip+4, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("reading node count: %w", err)
	}

	poolOffset := int64(basicDAGHeaderSkip + 8 + basicDAGPostHeaderSkip)
	pool, err := utils.ReadUint32Slice(r, poolOffset, int(numNodes), binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("reading node pool: %w", err)
	}

	return &core.BasicDAG{Pool: pool, Levels: int(levels)}, nil
}
