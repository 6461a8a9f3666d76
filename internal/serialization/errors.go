package serialization

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrNotFound           = errors.New("network file not found")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrTooManyLayers      = errors.New("too many layers in file")
	ErrTruncated          = errors.New("file is truncated")
)

// DecodeError reports a blob that is corrupt or does not match the format.
type DecodeError struct {
	Type    string // Type of error (e.g., "magic", "checksum", "header")
	Details string // Additional details
	Err     error  // Underlying cause, if any
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := "decode " + e.Type
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IoError reports a failure of the underlying reader, writer or file system.
type IoError struct {
	Op   string // Operation (e.g., "read", "write", "rename")
	Path string // File path, empty for plain streams
	Err  error
}

// Error implements the error interface.
func (e *IoError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IoError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that no blob exists at Path. It matches ErrNotFound and unwraps
// to the file system error, so errors.Is(err, fs.ErrNotExist) also holds.
type NotFoundError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Path)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Unwrap returns the underlying file system error.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func decodeErr(typ string, err error, format string, args ...any) *DecodeError {
	return &DecodeError{Type: typ, Details: fmt.Sprintf(format, args...), Err: err}
}
