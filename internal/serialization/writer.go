package serialization

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/nn"
)

// LibraryVersion is recorded in the header of every file written by this package.
const LibraryVersion = "0.1.0"

// Options holds the optional header fields written alongside a network.
type Options struct {
	Metadata   map[string]string // Custom key/value pairs
	Checkpoint *CheckpointMeta   // Training state, nil for a plain model file
}

// Marshal encodes net as a complete .ffnn blob.
//
// Uninitialized networks are accepted; their blob carries activations and biases only.
func Marshal(net *nn.Network, opts Options) ([]byte, error) {
	initialized := net.Initialized()
	if initialized {
		if err := net.Validate(); err != nil {
			return nil, err
		}
	}

	header := Header{
		FormatVersion:  FormatVersion,
		Version:        LibraryVersion,
		CreatedAt:      time.Now().UTC(),
		LayerSizes:     net.Sizes(),
		Initialized:    initialized,
		Metadata:       opts.Metadata,
		CheckpointMeta: opts.Checkpoint,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal header")
	}
	if len(headerJSON) > MaxHeaderSize {
		return nil, errors.Wrapf(ErrHeaderTooLarge, "header is %d bytes, max %d", len(headerJSON), MaxHeaderSize)
	}

	data := encodeNeurons(net.Arena(), initialized)

	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if header.CheckpointMeta != nil {
		flags |= FlagHasCheckpoint
	}

	headerEnd := int64(FixedHeaderSize + len(headerJSON))
	pad := padding(headerEnd)

	buf := make([]byte, FixedHeaderSize, headerEnd+pad+int64(len(data)))
	copy(buf[0x00:0x04], MagicBytes)
	binary.LittleEndian.PutUint32(buf[0x04:0x08], FormatVersion)
	binary.LittleEndian.PutUint32(buf[0x08:0x0C], flags)
	binary.LittleEndian.PutUint64(buf[0x10:0x18], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(buf[0x18:0x20], uint64(len(data)))
	checksum := ComputeChecksum(data)
	copy(buf[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	buf = append(buf, headerJSON...)
	buf = append(buf, make([]byte, pad)...)
	buf = append(buf, data...)
	return buf, nil
}

// Encode writes net to w as a single .ffnn blob.
func Encode(w io.Writer, net *nn.Network, opts Options) error {
	data, err := Marshal(net, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return &IoError{Op: "write", Err: err}
	}
	return nil
}

// Save writes net to path. The file at path is either replaced as a whole or left
// untouched.
func Save(path string, net *nn.Network, opts Options) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteNetwork(net, opts); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func encodeNeurons(a nn.Arena, initialized bool) []byte {
	last := len(a.Sizes) - 1
	out := make([]byte, 0, dataSize(a.Sizes, initialized))

	put := func(v float64) {
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
	}

	for l, n := range a.Sizes {
		for i := 0; i < n; i++ {
			idx := a.Offsets[l] + i
			put(a.Activations[idx])
			put(a.Biases[idx])
			if initialized && l < last {
				row := a.WeightOffsets[l] + i*a.Sizes[l+1]
				for _, w := range a.Weights[row : row+a.Sizes[l+1]] {
					put(w)
				}
			}
		}
	}
	return out
}

// Writer writes a network to a temporary file next to the destination and moves it
// into place on Close.
type Writer struct {
	path    string
	file    *os.File
	written bool
	closed  bool
}

// NewWriter creates a writer for the .ffnn file at path.
func NewWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, &IoError{Op: "create", Path: path, Err: err}
	}
	return &Writer{path: path, file: file}, nil
}

// WriteNetwork encodes net into the pending file. A writer accepts a single network.
func (w *Writer) WriteNetwork(net *nn.Network, opts Options) error {
	if w.closed {
		return errors.New("writer is closed")
	}
	if w.written {
		return errors.New("network already written")
	}
	if err := Encode(w.file, net, opts); err != nil {
		var ioErr *IoError
		if errors.As(err, &ioErr) {
			ioErr.Path = w.path
		}
		return err
	}
	w.written = true
	return nil
}

// Close commits the file. When no network was written successfully the temporary file
// is removed and the destination is not modified.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	tmp := w.file.Name()

	if !w.written {
		_ = w.file.Close()
		_ = os.Remove(tmp)
		return nil
	}

	if err := w.file.Chmod(0o644); err != nil {
		return w.abort(tmp, "chmod", err)
	}
	if err := w.file.Sync(); err != nil {
		return w.abort(tmp, "sync", err)
	}
	if err := w.file.Close(); err != nil {
		_ = os.Remove(tmp)
		return &IoError{Op: "close", Path: w.path, Err: err}
	}
	if err := os.Rename(tmp, w.path); err != nil {
		_ = os.Remove(tmp)
		return &IoError{Op: "rename", Path: w.path, Err: err}
	}
	return nil
}

func (w *Writer) abort(tmp, op string, err error) error {
	_ = w.file.Close()
	_ = os.Remove(tmp)
	return &IoError{Op: op, Path: w.path, Err: err}
}
