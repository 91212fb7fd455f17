package core

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// syntheticBasicDAG procedurally builds a small, deterministic
// BasicDAG: a single interior node one level above LeafLevel with two
// leaf children, each leaf holding a distinct fixed bitmask. There is
// no lantern.comp.bin fixture in this repository (see
// TestImportLanternAsset below), so this stands in for the "import
// and validate structural equality" scenario.
func syntheticBasicDAG() *BasicDAG {
	return &BasicDAG{
		Levels: 2,
		Pool: []uint32{
			0b11, 3, 5, // 0,1,2: root interior, mask=2 children
			0b1010, 0, // 3,4: leaf A
			0b0101, 0, // 5,6: leaf B
		},
	}
}

func TestImportSyntheticAsset(t *testing.T) {
	table := newTestTable(t, 16*PageLen)
	src := syntheticBasicDAG()

	root, err := table.Import(Strict, src, LeafLevel-1, -1)
	require.NoError(t, err)

	result, err := table.Validate(root)
	require.NoError(t, err)
	require.True(t, result.Valid, result.Reason)

	header, err := table.store.ReadWord(root)
	require.NoError(t, err)
	require.Equal(t, uint8(0b11), uint8(header&0xff), "child bitmask must survive import unchanged")
}

func TestImportSyntheticAsset_Idempotent(t *testing.T) {
	table := newTestTable(t, 16*PageLen)
	src := syntheticBasicDAG()

	root1, err := table.Import(Strict, src, LeafLevel-1, -1)
	require.NoError(t, err)
	root2, err := table.Import(Strict, src, LeafLevel-1, -1)
	require.NoError(t, err)

	require.Equal(t, root1, root2)
}

func TestImport_StopLevelCollapsesToFullNode(t *testing.T) {
	table := newTestTable(t, SupportedLevels*PageLen)
	_, err := table.Bootstrap()
	require.NoError(t, err)

	src := syntheticBasicDAG()
	root, err := table.Import(Strict, src, LeafLevel-1, int(LeafLevel)-1)
	require.NoError(t, err)

	require.Equal(t, table.FullNodePtr(LeafLevel-1), root)
}

func TestImport_InvalidStopLevel(t *testing.T) {
	table := newTestTable(t, 16*PageLen)
	src := syntheticBasicDAG()

	_, err := table.Import(Strict, src, LeafLevel-1, int(LeafLevel))
	require.Error(t, err)
}

// TestImportLanternAsset is skipped when testdata/lantern.comp.bin is
// absent, which it is since no such binary ships in this repository.
// It does not load the fixture: when the file is present the test
// fails with a message saying so.
func TestImportLanternAsset(t *testing.T) {
	const path = "testdata/lantern.comp.bin"
	if _, err := os.Stat(path); err != nil {
		t.Skip("no lantern.comp.bin fixture available")
	}
	t.Fatal("fixture present but loader not wired up in this test")
}
