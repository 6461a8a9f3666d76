package serialization

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/nn"
)

// ReaderOptions configures reader behavior.
type ReaderOptions struct {
	// SkipChecksumValidation disables SHA-256 checksum validation.
	SkipChecksumValidation bool
}

// Unmarshal decodes a network from a complete .ffnn blob.
//
// The returned network is bit-identical to the one that was encoded.
func Unmarshal(data []byte) (*nn.Network, Header, error) {
	header, body, err := parse(data, true)
	if err != nil {
		return nil, Header{}, err
	}
	net, err := restore(&header, body)
	if err != nil {
		return nil, Header{}, err
	}
	return net, header, nil
}

// Decode reads a single .ffnn blob from r until EOF.
func Decode(r io.Reader) (*nn.Network, Header, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Header{}, &IoError{Op: "read", Err: err}
	}
	return Unmarshal(data)
}

// Load reads the .ffnn file at path.
//
// A missing file yields a *NotFoundError, which matches ErrNotFound.
func Load(path string) (*nn.Network, Header, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, Header{}, err
	}
	net, header, err := Unmarshal(data)
	if err != nil {
		return nil, Header{}, errors.Wrapf(err, "load %s", path)
	}
	return net, header, nil
}

func readFile(path string) ([]byte, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	if err != nil {
		return nil, &IoError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// parse validates the fixed and JSON headers and returns the neuron data section.
//
//nolint:gocyclo,cyclop // Sequential format checks
func parse(data []byte, verifyChecksum bool) (Header, []byte, error) {
	if len(data) < FixedHeaderSize {
		return Header{}, nil, decodeErr("header", ErrTruncated, "got %d bytes, need %d", len(data), FixedHeaderSize)
	}
	if magic := string(data[0x00:0x04]); magic != MagicBytes {
		return Header{}, nil, decodeErr("magic", ErrInvalidMagic, "got %q, want %q", magic, MagicBytes)
	}
	if version := binary.LittleEndian.Uint32(data[0x04:0x08]); version != FormatVersion {
		return Header{}, nil, decodeErr("version", ErrUnsupportedVersion, "got %d, want %d", version, FormatVersion)
	}
	flags := binary.LittleEndian.Uint32(data[0x08:0x0C])
	headerSize := binary.LittleEndian.Uint64(data[0x10:0x18])
	if headerSize > MaxHeaderSize {
		return Header{}, nil, decodeErr("header", ErrHeaderTooLarge, "got %d, max %d", headerSize, MaxHeaderSize)
	}
	declared := binary.LittleEndian.Uint64(data[0x18:0x20])
	var stored [ChecksumSize]byte
	copy(stored[:], data[ChecksumOffset:ChecksumOffset+ChecksumSize])

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	headerEnd := int64(FixedHeaderSize) + int64(headerSize)
	if headerEnd > int64(len(data)) {
		return Header{}, nil, decodeErr("header", ErrTruncated, "header needs %d bytes, file has %d", headerEnd, len(data))
	}

	var header Header
	if err := json.Unmarshal(data[FixedHeaderSize:headerEnd], &header); err != nil {
		return Header{}, nil, decodeErr("header", err, "invalid JSON")
	}
	if flags&FlagHasCheckpoint != 0 && header.CheckpointMeta == nil {
		return Header{}, nil, decodeErr("header", nil, "checkpoint flag set without checkpoint metadata")
	}

	dataStart := headerEnd + padding(headerEnd)
	if dataStart > int64(len(data)) {
		return Header{}, nil, decodeErr("data", ErrTruncated, "missing header padding")
	}
	body := data[dataStart:]
	if uint64(len(body)) < declared {
		return Header{}, nil, decodeErr("data", ErrTruncated, "got %d bytes, header declares %d", len(body), declared)
	}
	if uint64(len(body)) > declared {
		return Header{}, nil, decodeErr("data", nil, "%d trailing bytes", uint64(len(body))-declared)
	}

	if verifyChecksum {
		if err := ValidateChecksum(ComputeChecksum(body), stored); err != nil {
			return Header{}, nil, err
		}
	}
	if err := ValidateHeader(&header, int64(len(body))); err != nil {
		return Header{}, nil, err
	}
	return header, body, nil
}

// restore builds a network from a validated header and its data section.
func restore(h *Header, body []byte) (*nn.Network, error) {
	net, err := nn.FromSizes(h.LayerSizes)
	if err != nil {
		return nil, err
	}
	if h.Initialized {
		nn.Initialize(net, nn.Constant(0))
	}

	a := net.Arena()
	last := len(a.Sizes) - 1
	pos := 0
	next := func() float64 {
		v := math.Float64frombits(binary.LittleEndian.Uint64(body[pos:]))
		pos += valueSize
		return v
	}

	for l, n := range a.Sizes {
		for i := 0; i < n; i++ {
			idx := a.Offsets[l] + i
			a.Activations[idx] = next()
			a.Biases[idx] = next()
			if h.Initialized && l < last {
				row := a.WeightOffsets[l] + i*a.Sizes[l+1]
				for j := 0; j < a.Sizes[l+1]; j++ {
					a.Weights[row+j] = next()
				}
			}
		}
	}
	return net, nil
}

// Reader reads networks from .ffnn files.
type Reader struct {
	path   string
	header Header
	body   []byte
	closed bool
}

// NewReader opens a .ffnn file and validates its headers and checksum.
func NewReader(path string) (*Reader, error) {
	return NewReaderWithOptions(path, ReaderOptions{})
}

// NewReaderWithOptions opens a .ffnn file with custom options.
func NewReaderWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	header, body, err := parse(data, !opts.SkipChecksumValidation)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return &Reader{path: path, header: header, body: body}, nil
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Metadata returns the custom metadata from the header.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// Checkpoint returns the training state stored in the file, or nil.
func (r *Reader) Checkpoint() *CheckpointMeta {
	return r.header.CheckpointMeta
}

// ReadNetwork rebuilds the stored network.
func (r *Reader) ReadNetwork() (*nn.Network, error) {
	if r.closed {
		return nil, errors.New("reader is closed")
	}
	net, err := restore(&r.header, r.body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", r.path)
	}
	return net, nil
}

// Close releases the buffered file contents.
func (r *Reader) Close() error {
	r.closed = true
	r.body = nil
	return nil
}
