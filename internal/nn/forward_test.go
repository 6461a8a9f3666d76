package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/feedforward/internal/nn"
)

// TestPropagateScenario checks the hand-computed 2 -> 3 -> 1 example.
func TestPropagateScenario(t *testing.T) {
	net := newScenarioNet(t)

	require.NoError(t, nn.Propagate(net, []float64{1.0, 0.0}))

	// Hidden: raw = 1*0.5 + 0*0.5 = 0.5, LeakyReLU(0.5) = 0.5.
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, net.Layer(1).Activations())

	// Output: raw = 3 * 0.5 * 0.5 = 0.75, σ(0.75) ≈ 0.6792.
	out := net.Output()
	require.Len(t, out, 1)
	assert.InDelta(t, 0.6792, out[0], 1e-4)
	assert.InDelta(t, nn.Sigmoid(0.75), out[0], 1e-15)
}

// TestPropagateNegativeHidden checks the leaky branch on hidden layers.
func TestPropagateNegativeHidden(t *testing.T) {
	net := newScenarioNet(t)
	net.SetBias(1, 0, -2) // raw = 0.5 - 2 = -1.5

	require.NoError(t, nn.Propagate(net, []float64{1.0, 0.0}))

	hidden := net.Layer(1).Activations()
	assert.InDelta(t, -0.015, hidden[0], 1e-15)
	assert.Equal(t, 0.5, hidden[1])

	raw := -0.015*0.5 + 0.5*0.5 + 0.5*0.5
	assert.InDelta(t, nn.Sigmoid(raw), net.Output()[0], 1e-15)
}

// TestPropagateDeep checks a two hidden layer network against a direct computation.
func TestPropagateDeep(t *testing.T) {
	net, err := nn.New(3, []int{4, 2}, 2)
	require.NoError(t, err)
	nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, 3))
	for l := 1; l < net.LayerCount(); l++ {
		for i := 0; i < net.Layer(l).Len(); i++ {
			net.SetBias(l, i, 0.1*float64(i+l))
		}
	}
	input := []float64{0.2, -0.7, 1.3}

	// Reference forward pass built from the public snapshots.
	prev := input
	for l := 1; l < net.LayerCount(); l++ {
		src := net.Layer(l - 1).Neurons()
		cur := make([]float64, net.Layer(l).Len())
		for j := range cur {
			raw := net.Layer(l).Neuron(j).Bias
			for i, n := range src {
				raw += prev[i] * n.Weights[j]
			}
			if l == net.LayerCount()-1 {
				cur[j] = 1 / (1 + math.Exp(-raw))
			} else if raw > 0 {
				cur[j] = raw
			} else {
				cur[j] = 0.01 * raw
			}
		}
		prev = cur
	}

	got, err := nn.Predict(net, input)
	require.NoError(t, err)
	assert.True(t, floats.EqualApprox(prev, got, 1e-12), "got %v, want %v", got, prev)
	assert.Equal(t, input, net.InputLayer().Activations())
}

// TestPropagateDeterministic checks that repeated passes are bit-identical.
func TestPropagateDeterministic(t *testing.T) {
	net, err := nn.New(5, []int{8, 6}, 3)
	require.NoError(t, err)
	nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, 11))
	input := []float64{1, 0, 3, 2, 1}

	require.NoError(t, nn.Propagate(net, input))
	first := net.Clone()
	require.NoError(t, nn.Propagate(net, input))

	assert.True(t, first.Equal(net))
}

// TestPropagateLeavesParameters checks that only activations change.
func TestPropagateLeavesParameters(t *testing.T) {
	net, err := nn.New(2, []int{3}, 2)
	require.NoError(t, err)
	nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, 5))
	before := net.Clone()

	require.NoError(t, nn.Propagate(net, []float64{0.3, 0.9}))

	for l := 0; l < net.LayerCount(); l++ {
		assert.Equal(t, before.Layer(l).Biases(), net.Layer(l).Biases())
		for i := 0; i < net.Layer(l).Len(); i++ {
			assert.Equal(t, before.Layer(l).Neuron(i).Weights, net.Layer(l).Neuron(i).Weights)
		}
	}
}

// TestPropagateShapeError checks that bad inputs are rejected without side effects.
func TestPropagateShapeError(t *testing.T) {
	net := newScenarioNet(t)
	require.NoError(t, nn.Propagate(net, []float64{1, 0}))
	before := net.Clone()

	err := nn.Propagate(net, []float64{1, 0, 1})
	require.ErrorIs(t, err, nn.ErrShape)

	var shapeErr *nn.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "input", shapeErr.Layer)
	assert.Equal(t, 2, shapeErr.Want)
	assert.Equal(t, 3, shapeErr.Got)
	assert.True(t, before.Equal(net), "failed propagate must not write activations")

	_, err = nn.Predict(net, []float64{1})
	assert.ErrorIs(t, err, nn.ErrShape)
}

// TestPropagateUninitialized checks that a network without weights is rejected.
func TestPropagateUninitialized(t *testing.T) {
	net, err := nn.New(2, []int{3}, 1)
	require.NoError(t, err)

	err = nn.Propagate(net, []float64{1, 0})
	assert.ErrorIs(t, err, nn.ErrShape)
	assert.Equal(t, []float64{0, 0}, net.InputLayer().Activations())
}
