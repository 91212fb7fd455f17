package voxeldag

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable_EditUnlinkAndRelink(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "vol.")

	table, err := WithCapacity(root, 128, "test-class")
	require.NoError(t, err)
	defer table.Close()

	box := NewAABB([3]uint32{4, 4, 4}, 2)
	rootVPtr := table.Core.FullNodePtr(0)

	afterUnlink, err := table.Edit(rootVPtr, Unlink, box)
	require.NoError(t, err)
	require.NotEqual(t, rootVPtr, afterUnlink)

	afterLink, err := table.Edit(afterUnlink, Link, box)
	require.NoError(t, err)
	require.Equal(t, rootVPtr, afterLink)
}
