package nn

import (
	"errors"
	"fmt"
)

// ErrShape is matched by every *ShapeError via errors.Is.
var ErrShape = errors.New("shape mismatch")

// ShapeError reports a vector or weight count that disagrees with the network topology.
//
// Operations that return a ShapeError never mutate the network.
type ShapeError struct {
	Op    string // Operation that failed (e.g., "propagate", "cost", "train")
	Layer string // Layer involved (e.g., "input", "output", "hidden[0]")
	Want  int    // Length required by the topology
	Got   int    // Length actually supplied
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Layer == "" {
		return fmt.Sprintf("%s: %s: want %d, got %d", e.Op, ErrShape, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %s layer: %s: want %d, got %d", e.Op, e.Layer, ErrShape, e.Want, e.Got)
}

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// LayerName returns a human readable name for layer index l of a network with count layers.
func LayerName(l, count int) string {
	switch l {
	case 0:
		return "input"
	case count - 1:
		return "output"
	default:
		return fmt.Sprintf("hidden[%d]", l-1)
	}
}
