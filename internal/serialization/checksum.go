package serialization

import (
	"crypto/sha256"
)

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns a *DecodeError wrapping ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [32]byte) error {
	if computed != stored {
		return &DecodeError{Type: "checksum", Err: ErrChecksumMismatch}
	}
	return nil
}
