package voxeldag

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable_Report(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "vol.")

	table, err := WithCapacity(root, 128, "test-class")
	require.NoError(t, err)
	defer table.Close()

	report := table.Report()
	require.Equal(t, uint32(128), report.TotalPages)
	require.Greater(t, report.AllocatedPages, uint32(0))
	require.Greater(t, report.PoolInMB, float32(0))
	require.Greater(t, report.PageTableInMB, float32(0))
	require.Greater(t, report.AllocatedPagesInMB, float32(0))
}
