package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/internal/nn"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestReadJSON(t *testing.T) {
	examples, err := ReadJSON(strings.NewReader(`{"items": [[[0, 1], [1]], [[255, 3], [0]]]}`))
	require.NoError(t, err)
	require.Len(t, examples, 2)

	assert.Equal(t, []float64{0, 1}, examples[0].Input)
	assert.Equal(t, []float64{1}, examples[0].Target)
	assert.Equal(t, []float64{255, 3}, examples[1].Input)
	assert.Equal(t, []float64{0}, examples[1].Target)
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"items": [`},
		{"missing target", `{"items": [[[0, 1]]]}`},
		{"out of range", `{"items": [[[256], [1]]]}`},
		{"negative", `{"items": [[[1], [-1]]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := ReadJSON(strings.NewReader(`{"items": []}`))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadJSON_NotFound(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadCSV(t *testing.T) {
	data := "a,b,out\n0,1,1\n1,0.5,0\n"
	examples, err := ReadCSV(strings.NewReader(data), 2)
	require.NoError(t, err)
	require.Len(t, examples, 2)

	assert.Equal(t, []float64{0, 1}, examples[0].Input)
	assert.Equal(t, []float64{1}, examples[0].Target)
	assert.Equal(t, []float64{1, 0.5}, examples[1].Input)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,2,3\n"), 0)
	assert.Error(t, err, "input width must be positive")

	_, err = ReadCSV(strings.NewReader("1,2\n"), 2)
	assert.Error(t, err, "no target columns")

	_, err = ReadCSV(strings.NewReader("1,2,3\n4,x,6\n"), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")

	_, err = ReadCSV(strings.NewReader("a,b,c\n"), 2)
	assert.ErrorIs(t, err, ErrEmpty)
}

func idxBytes(t *testing.T, magic uint32, dims []uint32, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, magic))
	for _, d := range dims {
		require.NoError(t, binary.Write(&buf, binary.BigEndian, d))
	}
	buf.Write(payload)
	return buf.Bytes()
}

func TestLoadIDX(t *testing.T) {
	images := writeFile(t, "train-images-idx3-ubyte",
		idxBytes(t, idxImagesMagic, []uint32{3, 1, 2}, []byte{0, 255, 51, 102, 255, 0}))
	labels := writeFile(t, "train-labels-idx1-ubyte",
		idxBytes(t, idxLabelsMagic, []uint32{3}, []byte{7, 0, 9}))

	examples, err := LoadIDX(images, labels, 0)
	require.NoError(t, err)
	require.Len(t, examples, 3)

	assert.Equal(t, []float64{0, 1}, examples[0].Input)
	assert.InDelta(t, 0.2, examples[1].Input[0], 1e-12)
	assert.Equal(t, 1.0, examples[0].Target[7])
	assert.Equal(t, 1.0, examples[1].Target[0])
	assert.Equal(t, 1.0, examples[2].Target[9])
	assert.Len(t, examples[2].Target, 10)

	limited, err := LoadIDX(images, labels, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestLoadIDX_Errors(t *testing.T) {
	images := writeFile(t, "images-ubyte", idxBytes(t, idxImagesMagic, []uint32{1, 1, 1}, []byte{1}))
	badMagic := writeFile(t, "labels-ubyte", idxBytes(t, 1234, []uint32{1}, []byte{1}))
	badLabel := writeFile(t, "labels2-ubyte", idxBytes(t, idxLabelsMagic, []uint32{1}, []byte{12}))
	mismatch := writeFile(t, "labels3-ubyte", idxBytes(t, idxLabelsMagic, []uint32{2}, []byte{1, 2}))
	truncated := writeFile(t, "images2-ubyte", idxBytes(t, idxImagesMagic, []uint32{2, 2, 2}, []byte{1, 2}))

	_, err := LoadIDX(images, "", 0)
	assert.Error(t, err)
	_, err = LoadIDX(images, badMagic, 0)
	assert.Error(t, err)
	_, err = LoadIDX(images, badLabel, 0)
	assert.Error(t, err)
	_, err = LoadIDX(images, mismatch, 0)
	assert.Error(t, err)
	_, err = LoadIDX(truncated, mismatch, 0)
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("data/xor.JSON"))
	assert.Equal(t, FormatCSV, DetectFormat("a.csv"))
	assert.Equal(t, FormatIDX, DetectFormat("mnist/train-images-idx3-ubyte"))
	assert.Equal(t, FormatUnknown, DetectFormat("model.ffnn"))
	assert.Equal(t, "IDX", FormatIDX.String())
	assert.Equal(t, "Unknown", Format(99).String())
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "d.json", []byte(`{"items": [[[2, 4], [1]], [[6, 8], [0]], [[1, 1], [1]]]}`))

	examples, err := Load(path, Options{MaxSamples: 2, Scale: 0.5})
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, []float64{1, 2}, examples[0].Input)
	assert.Equal(t, []float64{3, 4}, examples[1].Input)
	assert.Equal(t, []float64{0}, examples[1].Target, "targets are not scaled")

	csvPath := writeFile(t, "d.csv", []byte("1,2,1\n"))
	examples, err = Load(csvPath, Options{InputWidth: 2})
	require.NoError(t, err)
	assert.Len(t, examples, 1)

	_, err = Load("weights.bin", Options{})
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	examples := []Example{
		{Input: []float64{0, 1}, Target: []float64{1}},
		{Input: []float64{0, 1}, Target: []float64{1, 0}},
	}

	require.NoError(t, Check(examples[:1], 2, 1))

	err := Check(examples, 2, 1)
	require.ErrorIs(t, err, nn.ErrShape)
	assert.Contains(t, err.Error(), "example 1")

	var shapeErr *nn.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "output", shapeErr.Layer)

	err = Check(examples, 3, 1)
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "input", shapeErr.Layer)
}
