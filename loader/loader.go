// Package loader provides training data loading for feedforward networks.
//
// This package wraps internal loader implementations and exports a clean public API
// for reading (input, target) examples from various formats (JSON, CSV, IDX).
//
// Example usage:
//
//	import (
//	    "github.com/born-ml/feedforward/loader"
//	)
//
//	// Load with auto-detection
//	examples, err := loader.Load("data/xor.json", loader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Check the examples against the network before training
//	if err := loader.Check(examples, net.InputSize(), net.OutputSize()); err != nil {
//	    log.Fatal(err)
//	}
package loader

import (
	"github.com/born-ml/feedforward/internal/loader"
)

// Example is one (input, target) training pair.
type Example = loader.Example

// Format represents a training data file format.
type Format = loader.Format

// Supported formats.
const (
	FormatUnknown = loader.FormatUnknown
	FormatJSON    = loader.FormatJSON
	FormatCSV     = loader.FormatCSV
	FormatIDX     = loader.FormatIDX
)

// Options configures Load.
type Options = loader.Options

// ErrEmpty is returned when a data source decodes to zero examples.
var ErrEmpty = loader.ErrEmpty

// DetectFormat guesses the format from the file extension.
func DetectFormat(path string) Format {
	return loader.DetectFormat(path)
}

// Load reads examples from path, dispatching on the detected format.
func Load(path string, opts Options) ([]Example, error) {
	return loader.Load(path, opts)
}

// LoadJSON reads a {"items": [[[input...], [target...]], ...]} file.
func LoadJSON(path string) ([]Example, error) {
	return loader.LoadJSON(path)
}

// LoadCSV reads rows of inputWidth input values followed by target values.
func LoadCSV(path string, inputWidth int) ([]Example, error) {
	return loader.LoadCSV(path, inputWidth)
}

// LoadIDX reads an MNIST image/label file pair.
func LoadIDX(imagesPath, labelsPath string, maxSamples int) ([]Example, error) {
	return loader.LoadIDX(imagesPath, labelsPath, maxSamples)
}

// Check returns a shape error for the first example that does not fit a network with
// the given input and output sizes.
func Check(examples []Example, inputSize, outputSize int) error {
	return loader.Check(examples, inputSize, outputSize)
}
