package loader

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// IDX magic numbers.
const (
	idxImagesMagic = 2051
	idxLabelsMagic = 2049
	idxClasses     = 10
)

// LoadIDX loads an MNIST image/label file pair in IDX format.
//
// Pixels are normalized from 0-255 to [0, 1] and labels become one-hot targets of
// length 10. maxSamples limits the number of examples (0 = load all).
//
// Expected files:
//   - train-images-idx3-ubyte / t10k-images-idx3-ubyte
//   - train-labels-idx1-ubyte / t10k-labels-idx1-ubyte
func LoadIDX(imagesPath, labelsPath string, maxSamples int) ([]Example, error) {
	if labelsPath == "" {
		return nil, errors.New("IDX images need a labels file")
	}

	images, err := readIDXFile(imagesPath, ReadIDXImages)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load images")
	}
	labels, err := readIDXFile(labelsPath, ReadIDXLabels)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load labels")
	}
	return pairIDX(images, labels, maxSamples)
}

func readIDXFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for data loading
	file, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer file.Close()
	return read(file)
}

func pairIDX(images [][]byte, labels []byte, maxSamples int) ([]Example, error) {
	if len(images) != len(labels) {
		return nil, errors.Errorf("image count (%d) != label count (%d)", len(images), len(labels))
	}

	numSamples := len(images)
	if maxSamples > 0 && numSamples > maxSamples {
		numSamples = maxSamples
	}
	if numSamples == 0 {
		return nil, ErrEmpty
	}

	examples := make([]Example, numSamples)
	for i := 0; i < numSamples; i++ {
		if int(labels[i]) >= idxClasses {
			return nil, errors.Errorf("label out of range [0, 9] at sample %d: %d", i, labels[i])
		}
		input := make([]float64, len(images[i]))
		for j, px := range images[i] {
			input[j] = float64(px) / 255.0
		}
		target := make([]float64, idxClasses)
		target[labels[i]] = 1
		examples[i] = Example{Input: input, Target: target}
	}
	return examples, nil
}

// ReadIDXImages reads image data in IDX format.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes
//	number of cols: 4 bytes
//	pixel data: unsigned bytes (0-255)
func ReadIDXImages(r io.Reader) ([][]byte, error) {
	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}
	if header[0] != idxImagesMagic {
		return nil, errors.Errorf("invalid magic number: got %d, want %d", header[0], idxImagesMagic)
	}

	numImages, numRows, numCols := header[1], header[2], header[3]
	imageSize := int(numRows * numCols)
	images := make([][]byte, numImages)

	for i := range images {
		images[i] = make([]byte, imageSize)
		if _, err := io.ReadFull(r, images[i]); err != nil {
			return nil, errors.Wrapf(err, "failed to read image %d", i)
		}
	}
	return images, nil
}

// ReadIDXLabels reads label data in IDX format.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func ReadIDXLabels(r io.Reader) ([]byte, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}
	if header[0] != idxLabelsMagic {
		return nil, errors.Errorf("invalid magic number: got %d, want %d", header[0], idxLabelsMagic)
	}

	labels := make([]byte, header[1])
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, errors.Wrap(err, "failed to read labels")
	}
	return labels, nil
}
