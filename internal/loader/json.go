package loader

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// jsonData mirrors the on-disk layout: each item is an [inputs, targets] pair.
type jsonData struct {
	Items [][][]int `json:"items"`
}

// LoadJSON reads examples from a JSON file.
//
// Format:
//
//	{"items": [[[0, 1], [1]], [[1, 1], [0]]]}
func LoadJSON(path string) ([]Example, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for data loading
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return ReadJSON(file)
}

// ReadJSON decodes examples from r. Values must fit in an unsigned byte.
func ReadJSON(r io.Reader) ([]Example, error) {
	var data jsonData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}
	if len(data.Items) == 0 {
		return nil, ErrEmpty
	}

	examples := make([]Example, len(data.Items))
	for k, item := range data.Items {
		if len(item) != 2 {
			return nil, errors.Errorf("item %d: want [inputs, targets], got %d elements", k, len(item))
		}
		input, err := toFloats(item[0])
		if err != nil {
			return nil, errors.Wrapf(err, "item %d input", k)
		}
		target, err := toFloats(item[1])
		if err != nil {
			return nil, errors.Wrapf(err, "item %d target", k)
		}
		examples[k] = Example{Input: input, Target: target}
	}
	return examples, nil
}

func toFloats(values []int) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, errors.Errorf("value %d at index %d out of range [0, 255]", v, i)
		}
		out[i] = float64(v)
	}
	return out, nil
}
