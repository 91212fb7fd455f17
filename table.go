package voxeldag

import (
	"github.com/naomijub/voxeldag/internal/core"
	"github.com/naomijub/voxeldag/internal/tracking"
)

// Table is the top-level handle combining the canonicalizing hash
// table, its change tracker, and — when opened against a root
// file-link prefix — the shared-memory regions backing its storage.
// It must not implement any mutating method directly; all mutation
// goes through Editor or Import, so every write passes through the
// tracker.
type Table struct {
	Core    *core.Table
	Tracker *tracking.BasicTracker
	Config  Config

	regions *Regions
}

// Blank opens (creating if absent) a table's storage at root, sized
// for capacityPages physical pages, without populating the full-node
// cache. Use this before loading an existing BasicDAG import; use
// WithCapacity to start from the bootstrapped, fully solid volume
// instead.
func Blank(root string, capacityPages uint64, class string) (*Table, error) {
	regions, err := OpenRegions(root, capacityPages)
	if err != nil {
		return nil, err
	}

	store, err := core.NewPagedStoreFromRegions(regions.LUT[:core.TotalPages], regions.Pool, regions.Hi())
	if err != nil {
		_ = regions.Close()
		return nil, err
	}

	tracker, err := tracking.NewBasicTracker(uint32(core.TotalPages))
	if err != nil {
		_ = regions.Close()
		return nil, err
	}

	coreTable, err := core.NewTableFromRegions(store, regions.Lens, tracker)
	if err != nil {
		_ = regions.Close()
		return nil, err
	}

	cfg := NewConfig(root+"manifest.json", class)
	if err := cfg.Write(); err != nil {
		_ = regions.Close()
		return nil, err
	}

	return &Table{
		Core:    coreTable,
		Tracker: tracker,
		Config:  cfg,
		regions: regions,
	}, nil
}

// WithCapacity opens a table exactly like Blank, then bootstraps its
// full-node cache so it is immediately ready for edits, starting from
// the fully solid root FullNodePtr(0).
func WithCapacity(root string, capacityPages uint64, class string) (*Table, error) {
	t, err := Blank(root, capacityPages, class)
	if err != nil {
		return nil, err
	}
	if _, err := t.Core.Bootstrap(); err != nil {
		_ = t.Close()
		return nil, err
	}
	return t, nil
}

// Close persists the allocator cursor back into the shared-memory
// page table's trailing word, then unmaps every region and removes
// the configuration manifest. Safe to call on a table with no
// file-linked regions (e.g. one backed purely by the generic
// heap-backed fallback on unsupported platforms).
func (t *Table) Close() error {
	if t.regions != nil {
		t.regions.SetHi(uint64(t.Core.HiPages()))
	}

	var firstErr error
	if t.regions != nil {
		if err := t.regions.Close(); err != nil {
			firstErr = err
		}
	}
	if err := t.Config.Delete(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
