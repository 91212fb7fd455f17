package voxeldag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/naomijub/voxeldag/internal/core"
	"github.com/stretchr/testify/require"
)

func TestWithCapacity_BootstrapsRootAndWritesManifest(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "vol.")

	table, err := WithCapacity(root, 128, "test-class")
	require.NoError(t, err)

	_, err = os.Stat(root + "manifest.json")
	require.NoError(t, err)

	result, err := table.Core.Validate(table.Core.FullNodePtr(0))
	require.NoError(t, err)
	require.True(t, result.Valid)

	require.NoError(t, table.Close())
	_, err = os.Stat(root + "manifest.json")
	require.True(t, os.IsNotExist(err))
}

func TestBlank_DoesNotPopulateFullNodeCache(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "vol.")

	table, err := Blank(root, 128, "test-class")
	require.NoError(t, err)
	defer table.Close()

	require.Equal(t, core.NullVPtr, table.Core.FullNodePtr(0))
}

func TestTable_BootstrapAllocatesPagesThenCloses(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "vol.")

	table, err := WithCapacity(root, 128, "test-class")
	require.NoError(t, err)

	before := table.Report().AllocatedPages
	require.Greater(t, before, uint32(0), "bootstrap should have allocated at least one page")
	require.NoError(t, table.Close())
}
