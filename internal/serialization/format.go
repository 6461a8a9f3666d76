package serialization

import (
	"time"
)

// Format constants.
const (
	MagicBytes      = "FFNN"
	FormatVersion   = 1    // v1: fixed header with SHA-256 checksum
	HeaderAlignment = 64   // Align neuron data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
	valueSize       = 8    // float64
)

// Flags for the .ffnn format.
const (
	FlagHasMetadata   uint32 = 1 << 0 // bit 0: custom metadata included
	FlagHasCheckpoint uint32 = 1 << 1 // bit 1: training checkpoint included
)

// Header represents the JSON header in a .ffnn file.
type Header struct {
	FormatVersion  int               `json:"format_version"`       // Version of the .ffnn format
	Version        string            `json:"version"`              // Version of the library that wrote the file
	CreatedAt      time.Time         `json:"created_at"`           // When the file was created
	LayerSizes     []int             `json:"layer_sizes"`          // Neurons per layer, input first
	Initialized    bool              `json:"initialized"`          // Whether weights are stored
	Metadata       map[string]string `json:"metadata"`             // Custom metadata
	CheckpointMeta *CheckpointMeta   `json:"checkpoint,omitempty"` // Checkpoint metadata (optional)
}

// CheckpointMeta contains training state information for checkpoints.
type CheckpointMeta struct {
	Epoch        int     `json:"epoch"`         // Training epoch number
	Step         int64   `json:"step"`          // Training step number
	Loss         float64 `json:"loss"`          // Mean cost at checkpoint
	LearningRate float64 `json:"learning_rate"` // Learning rate in use
	RunID        string  `json:"run_id"`        // Identifier of the training run
}

// dataSize returns the byte length of the neuron data section for a topology.
//
// Layout: for every layer, for every neuron: activation, bias, then one weight per
// neuron of the next layer when initialized (none for the output layer).
func dataSize(sizes []int, initialized bool) int64 {
	var values int64
	for l, n := range sizes {
		values += 2 * int64(n)
		if initialized && l < len(sizes)-1 {
			values += int64(n) * int64(sizes[l+1])
		}
	}
	return values * valueSize
}

// padding returns the number of zero bytes after a header ending at pos.
func padding(pos int64) int64 {
	return (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
}
