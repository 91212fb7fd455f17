package voxeldag

import (
	"encoding/json"
	"os"

	"github.com/naomijub/voxeldag/internal/core"
)

// configVersion is bumped whenever the manifest's shape changes.
const configVersion = 0

// Config is the JSON sibling file written alongside a table's
// shared-memory regions, enumerating every layout constant a second
// process needs to interpret those regions without linking this
// module.
type Config struct {
	Version           int    `json:"VERSION"`
	Class             string `json:"CLASS"`
	PageLen           uint32 `json:"PAGE_LEN"`
	SupportedLevels   uint32 `json:"SUPPORTED_LEVELS"`
	ColorTreeLevels   uint32 `json:"COLOR_TREE_LEVELS"`
	LeafLevels        uint32 `json:"LEAF_LEVELS"`
	LeafLevel         uint32 `json:"LEAF_LEVEL"`
	HiBucketLen       uint32 `json:"HI_BUCKET_LEN"`
	LoBucketLen       uint32 `json:"LO_BUCKET_LEN"`
	BucketsPerHiLevel uint32 `json:"BUCKETS_PER_HI_LEVEL"`
	BucketsPerLoLevel uint32 `json:"BUCKETS_PER_LO_LEVEL"`
	HiLevels          uint32 `json:"HI_LEVELS"`
	LoLevels          uint32 `json:"LO_LEVELS"`
	TotalBuckets      uint64 `json:"TOTAL_BUCKETS"`
	TotalPages        uint64 `json:"TOTAL_PAGES"`
	TotalVirtSpace    uint64 `json:"TOTAL_VIRT_SPACE"`

	path string
}

// NewConfig builds the manifest for a table tagged with the given
// class name (an arbitrary label identifying the consumer, e.g. a
// rendering backend).
func NewConfig(path, class string) Config {
	return Config{
		Version:           configVersion,
		Class:             class,
		PageLen:           core.PageLen,
		SupportedLevels:   core.SupportedLevels,
		ColorTreeLevels:   core.ColorTreeLevels,
		LeafLevels:        core.LeafLevels,
		LeafLevel:         uint32(core.LeafLevel),
		HiBucketLen:       core.HiBucketLen,
		LoBucketLen:       core.LoBucketLen,
		BucketsPerHiLevel: core.BucketsPerHiLevel,
		BucketsPerLoLevel: core.BucketsPerLoLevel,
		HiLevels:          core.HiLevels,
		LoLevels:          core.LoLevels,
		TotalBuckets:      core.TotalBuckets,
		TotalPages:        core.TotalPages,
		TotalVirtSpace:    core.TotalVirtSpace,
		path:              path,
	}
}

// Write serializes the manifest to its path, creating or truncating
// the file.
func (c Config) Write() error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// Delete removes the manifest file. A missing file is not an error —
// teardown is idempotent.
func (c Config) Delete() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
