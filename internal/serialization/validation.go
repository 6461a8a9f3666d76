package serialization

import (
	"github.com/born-ml/feedforward/internal/nn"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize   = 16 * 1024 * 1024 // 16MB - maximum JSON header size
	MaxLayers       = 4096             // Maximum number of layers in a file
	MaxLayerSize    = 1 << 24          // Maximum neurons in one layer
	MaxMetadataSize = 1024 * 1024      // 1MB - maximum total metadata size
)

// ValidateHeader checks a decoded header against the format limits and the size of
// the data section that follows it.
//
// A topology that cannot describe a network yields a *nn.ShapeError; a data section
// whose length disagrees with the topology yields a *nn.ShapeError as well, since the
// stored weights no longer line up with the next layer sizes. Everything else is a
// *DecodeError.
func ValidateHeader(h *Header, size int64) error {
	if h.FormatVersion != FormatVersion {
		return decodeErr("header", ErrUnsupportedVersion, "format_version %d", h.FormatVersion)
	}

	if len(h.LayerSizes) > MaxLayers {
		return decodeErr("header", ErrTooManyLayers, "got %d, max %d", len(h.LayerSizes), MaxLayers)
	}
	if len(h.LayerSizes) < 2 {
		return &nn.ShapeError{Op: "decode", Layer: "layers", Want: 2, Got: len(h.LayerSizes)}
	}
	for l, n := range h.LayerSizes {
		if n <= 0 || n > MaxLayerSize {
			return &nn.ShapeError{Op: "decode", Layer: nn.LayerName(l, len(h.LayerSizes)), Want: 1, Got: n}
		}
	}

	metadataSize := 0
	for k, v := range h.Metadata {
		metadataSize += len(k) + len(v)
	}
	if metadataSize > MaxMetadataSize {
		return decodeErr("metadata", nil, "size %d > max %d", metadataSize, MaxMetadataSize)
	}

	if want := dataSize(h.LayerSizes, h.Initialized); want != size {
		return &nn.ShapeError{Op: "decode", Layer: "data", Want: int(want / valueSize), Got: int(size / valueSize)}
	}

	return nil
}
