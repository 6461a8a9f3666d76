package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/internal/loader"
	"github.com/born-ml/feedforward/internal/nn"
)

func TestEvaluate(t *testing.T) {
	net, err := nn.New(2, []int{3}, 1)
	require.NoError(t, err)
	nn.Initialize(net, nn.Constant(0.5))
	before := net.Clone()

	examples := []loader.Example{
		{Input: []float64{1, 0}, Target: []float64{1}},
		{Input: []float64{1, 0}, Target: []float64{0}},
	}
	cost, err := Evaluate(net, examples)
	require.NoError(t, err)

	out, err := nn.Predict(net, []float64{1, 0})
	require.NoError(t, err)
	a := out[0]
	assert.InDelta(t, ((1-a)*(1-a)+a*a)/2, cost, 1e-12)

	// Only activations differ from the snapshot.
	assert.Equal(t, before.Arena().Weights, net.Arena().Weights)
	assert.Equal(t, before.Arena().Biases, net.Arena().Biases)
}

func TestEvaluate_Errors(t *testing.T) {
	net, err := nn.New(2, nil, 1)
	require.NoError(t, err)

	_, err = Evaluate(net, []loader.Example{{Input: []float64{1, 0}, Target: []float64{1}}})
	assert.ErrorIs(t, err, nn.ErrShape, "uninitialized network")

	nn.Initialize(net, nn.Constant(0.1))
	_, err = Evaluate(net, nil)
	assert.ErrorIs(t, err, ErrNoExamples)

	_, err = Evaluate(net, []loader.Example{{Input: []float64{1, 0}, Target: []float64{1, 1}}})
	assert.ErrorIs(t, err, nn.ErrShape)
}

func TestAccuracy(t *testing.T) {
	net, err := nn.New(2, nil, 2)
	require.NoError(t, err)
	nn.Initialize(net, nn.Constant(0))
	// Output neuron 0 follows input 0, output neuron 1 follows input 1.
	require.NoError(t, net.SetWeights(0, 0, []float64{4, -4}))
	require.NoError(t, net.SetWeights(0, 1, []float64{-4, 4}))

	examples := []loader.Example{
		{Input: []float64{1, 0}, Target: []float64{1, 0}},
		{Input: []float64{0, 1}, Target: []float64{0, 1}},
		{Input: []float64{0, 1}, Target: []float64{1, 0}},
		{Input: []float64{1, 0}, Target: []float64{1, 0}},
	}
	acc, err := Accuracy(net, examples)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-12)

	_, err = Accuracy(net, []loader.Example{{Input: []float64{1, 0}, Target: []float64{1}}})
	assert.ErrorIs(t, err, nn.ErrShape)

	_, err = Accuracy(net, nil)
	assert.ErrorIs(t, err, ErrNoExamples)
}
