package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/internal/serialization"
)

const xorJSON = `{"items": [
	[[0, 0], [0]],
	[[0, 1], [1]],
	[[1, 0], [1]],
	[[1, 1], [0]]
]}`

func setup(t *testing.T) (data, model string) {
	t.Helper()
	progressOutput = io.Discard
	dir := t.TempDir()
	data = filepath.Join(dir, "xor.json")
	require.NoError(t, os.WriteFile(data, []byte(xorJSON), 0o600))
	return data, filepath.Join(dir, "xor.ffnn")
}

func TestTrainInferInspect(t *testing.T) {
	data, model := setup(t)

	err := runTrain([]string{"-data", data, "-model", model, "-arch", "2 4 1",
		"-epochs", "30", "-lr", "0.5", "-checkpoint-every", "10"})
	require.NoError(t, err)

	_, header, err := serialization.Load(model)
	require.NoError(t, err)
	require.NotNil(t, header.CheckpointMeta)
	assert.Equal(t, 29, header.CheckpointMeta.Epoch)
	assert.Equal(t, int64(120), header.CheckpointMeta.Step)
	assert.Equal(t, "2-4-1", header.Metadata["architecture"])
	assert.NotEmpty(t, header.CheckpointMeta.RunID)

	var out bytes.Buffer
	require.NoError(t, runInfer([]string{"-model", model, "-input", "1,0"}, &out))
	assert.Contains(t, out.String(), "output[0] = ")

	out.Reset()
	require.NoError(t, runInspect([]string{"-model", model}, &out))
	assert.Contains(t, out.String(), "Layers:      2-4-1")
	assert.Contains(t, out.String(), "Parameters:  19")
	assert.Contains(t, out.String(), "Epoch:         29")

	// Resuming continues the same run.
	runID := header.CheckpointMeta.RunID
	require.NoError(t, runTrain([]string{"-data", data, "-model", model, "-resume", "-epochs", "5"}))
	_, header, err = serialization.Load(model)
	require.NoError(t, err)
	assert.Equal(t, 34, header.CheckpointMeta.Epoch)
	assert.Equal(t, int64(140), header.CheckpointMeta.Step)
	assert.Equal(t, runID, header.CheckpointMeta.RunID)
}

func TestTrain_ResumeWithoutFile(t *testing.T) {
	data, model := setup(t)
	require.NoError(t, runTrain([]string{"-data", data, "-model", model, "-resume", "-epochs", "2"}))

	_, header, err := serialization.Load(model)
	require.NoError(t, err)
	assert.Equal(t, 1, header.CheckpointMeta.Epoch)
}

func TestTrain_Errors(t *testing.T) {
	data, model := setup(t)

	assert.Error(t, runTrain([]string{"-model", model}), "missing -data")
	assert.Error(t, runTrain([]string{"-data", data, "-arch", "2 x 1"}))
	assert.Error(t, runTrain([]string{"-data", data, "-epochs", "0"}))

	err := runTrain([]string{"-data", data, "-model", model, "-arch", "3 1", "-epochs", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skip-invalid")

	err = runTrain([]string{"-data", data, "-model", model, "-arch", "3 1", "-epochs", "1", "-skip-invalid"})
	assert.Error(t, err, "every example rejected")
}

func TestInfer_Errors(t *testing.T) {
	data, model := setup(t)
	require.NoError(t, runTrain([]string{"-data", data, "-model", model, "-epochs", "1"}))

	var out bytes.Buffer
	assert.Error(t, runInfer([]string{"-model", model}, &out), "missing -input")
	assert.Error(t, runInfer([]string{"-model", model, "-input", "1,0,1"}, &out))
	assert.ErrorIs(t, runInfer([]string{"-model", model + ".missing", "-input", "1,0"}, &out),
		serialization.ErrNotFound)
}
