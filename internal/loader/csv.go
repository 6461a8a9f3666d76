package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// LoadCSV reads examples from a CSV file.
//
// CSV Format:
//
//	in_1,...,in_n,out_1,...,out_m
//	0,1,1
//	1,1,0
//
// The first inputWidth columns are inputs and the rest are targets. A first row that does
// not parse as numbers is treated as a header and skipped.
func LoadCSV(path string, inputWidth int) ([]Example, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for data loading
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return ReadCSV(file, inputWidth)
}

// ReadCSV decodes examples from r. See LoadCSV for the format.
func ReadCSV(r io.Reader, inputWidth int) ([]Example, error) {
	if inputWidth <= 0 {
		return nil, errors.Errorf("input width must be positive, got %d", inputWidth)
	}

	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV")
	}

	examples := make([]Example, 0, len(records))
	for i, record := range records {
		if len(record) <= inputWidth {
			return nil, errors.Errorf("invalid record length at row %d: got %d, want more than %d",
				i+1, len(record), inputWidth)
		}

		values := make([]float64, len(record))
		var parseErr error
		for j, field := range record {
			values[j], parseErr = strconv.ParseFloat(field, 64)
			if parseErr != nil {
				break
			}
		}
		if parseErr != nil {
			if i == 0 {
				continue // header
			}
			return nil, errors.Wrapf(parseErr, "invalid value at row %d", i+1)
		}

		examples = append(examples, Example{
			Input:  values[:inputWidth:inputWidth],
			Target: values[inputWidth:],
		})
	}

	if len(examples) == 0 {
		return nil, ErrEmpty
	}
	return examples, nil
}
