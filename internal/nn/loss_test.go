package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/internal/nn"
)

// TestMeanSquaredErrorScenario checks the cost of the 2 -> 3 -> 1 example.
func TestMeanSquaredErrorScenario(t *testing.T) {
	net := newScenarioNet(t)
	require.NoError(t, nn.Propagate(net, []float64{1.0, 0.0}))

	cost, err := nn.MeanSquaredError([]float64{1.0}, net)
	require.NoError(t, err)

	// (0.6792 - 1.0)² / 1 ≈ 0.1030
	assert.InDelta(t, 0.1030, cost, 1e-3)
	diff := nn.Sigmoid(0.75) - 1.0
	assert.InDelta(t, diff*diff, cost, 1e-15)
}

// TestMeanSquaredErrorAverages checks the division by output size.
func TestMeanSquaredErrorAverages(t *testing.T) {
	net, err := nn.New(1, nil, 4)
	require.NoError(t, err)
	for j, a := range []float64{0.1, 0.2, 0.3, 0.4} {
		net.SetActivation(1, j, a)
	}

	cost, err := nn.MeanSquaredError([]float64{0.1, 0.0, 0.5, 1.4}, net)
	require.NoError(t, err)

	// (0 + 0.04 + 0.04 + 1) / 4
	assert.InDelta(t, 0.27, cost, 1e-12)
}

// TestMeanSquaredErrorZero checks that cost is zero iff outputs match exactly.
func TestMeanSquaredErrorZero(t *testing.T) {
	net := newScenarioNet(t)
	require.NoError(t, nn.Propagate(net, []float64{1.0, 0.0}))
	out := net.Output()

	cost, err := nn.MeanSquaredError(out, net)
	require.NoError(t, err)
	assert.Zero(t, cost)

	cost, err = nn.MeanSquaredError([]float64{out[0] + 1e-9}, net)
	require.NoError(t, err)
	assert.Greater(t, cost, 0.0)
}

// TestMeanSquaredErrorNonNegative checks non-negativity across random networks.
func TestMeanSquaredErrorNonNegative(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		net, err := nn.New(3, []int{4}, 2)
		require.NoError(t, err)
		nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, seed))
		require.NoError(t, nn.Propagate(net, []float64{float64(seed), 1, -2}))

		cost, err := nn.MeanSquaredError([]float64{0, 1}, net)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cost, 0.0)
	}
}

// TestMeanSquaredErrorShape checks the target length validation.
func TestMeanSquaredErrorShape(t *testing.T) {
	net := newScenarioNet(t)

	_, err := nn.MeanSquaredError([]float64{1, 0}, net)
	require.ErrorIs(t, err, nn.ErrShape)

	var shapeErr *nn.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "output", shapeErr.Layer)
}
