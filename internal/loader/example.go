package loader

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/nn"
)

// ErrEmpty is returned when a data source decodes to zero examples.
var ErrEmpty = errors.New("no training examples")

// Example is one (input, target) training pair.
type Example struct {
	Input  []float64
	Target []float64
}

// Format represents a training data file format.
type Format int

// Supported formats.
const (
	FormatUnknown Format = iota
	FormatJSON
	FormatCSV
	FormatIDX
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatCSV:
		return "CSV"
	case FormatIDX:
		return "IDX"
	default:
		return "Unknown"
	}
}

// DetectFormat guesses the format from the file extension.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".json":
		return FormatJSON
	case ext == ".csv":
		return FormatCSV
	case strings.HasSuffix(strings.ToLower(path), "-ubyte") || ext == ".idx":
		return FormatIDX
	default:
		return FormatUnknown
	}
}

// Options configures Load.
type Options struct {
	InputWidth int    // CSV: number of leading input columns (required for CSV)
	LabelsPath string // IDX: label file paired with the image file
	MaxSamples int    // Upper bound on examples read (0 = all)
	Scale      float64
}

// Load reads examples from path, dispatching on DetectFormat.
//
// Scale, when non-zero, multiplies every input value after decoding.
func Load(path string, opts Options) ([]Example, error) {
	var (
		examples []Example
		err      error
	)
	switch format := DetectFormat(path); format {
	case FormatJSON:
		examples, err = LoadJSON(path)
	case FormatCSV:
		examples, err = LoadCSV(path, opts.InputWidth)
	case FormatIDX:
		examples, err = LoadIDX(path, opts.LabelsPath, opts.MaxSamples)
	default:
		return nil, errors.Errorf("unsupported data format for %q", path)
	}
	if err != nil {
		return nil, err
	}

	if opts.MaxSamples > 0 && len(examples) > opts.MaxSamples {
		examples = examples[:opts.MaxSamples]
	}
	if opts.Scale != 0 {
		for _, ex := range examples {
			for i := range ex.Input {
				ex.Input[i] *= opts.Scale
			}
		}
	}
	return examples, nil
}

// Check verifies that every example fits a network with the given input and output
// sizes. The first offending example is reported as a wrapped *nn.ShapeError.
func Check(examples []Example, inputSize, outputSize int) error {
	for k, ex := range examples {
		if len(ex.Input) != inputSize {
			return errors.Wrapf(&nn.ShapeError{Op: "load", Layer: "input", Want: inputSize, Got: len(ex.Input)},
				"example %d", k)
		}
		if len(ex.Target) != outputSize {
			return errors.Wrapf(&nn.ShapeError{Op: "load", Layer: "output", Want: outputSize, Got: len(ex.Target)},
				"example %d", k)
		}
	}
	return nil
}
