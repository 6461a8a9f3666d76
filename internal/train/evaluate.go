package train

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/feedforward/internal/loader"
	"github.com/born-ml/feedforward/internal/nn"
)

// Evaluate returns the mean cost of net over examples.
//
// Each example is propagated, so activations change; weights and biases do not.
func Evaluate(net *nn.Network, examples []loader.Example) (float64, error) {
	return evaluate(net, examples, false)
}

func evaluate(net *nn.Network, examples []loader.Example, skipInvalid bool) (float64, error) {
	costs := make([]float64, 0, len(examples))
	for i, ex := range examples {
		cost, err := exampleCost(net, ex)
		if err != nil {
			if skipInvalid && errors.Is(err, nn.ErrShape) {
				continue
			}
			return 0, errors.WithMessagef(err, "example %d", i)
		}
		costs = append(costs, cost)
	}
	if len(costs) == 0 {
		return 0, ErrNoExamples
	}
	return stat.Mean(costs, nil), nil
}

func exampleCost(net *nn.Network, ex loader.Example) (float64, error) {
	if err := nn.CheckExample(net, ex.Input, ex.Target, "evaluate"); err != nil {
		return 0, err
	}
	if err := nn.Propagate(net, ex.Input); err != nil {
		return 0, err
	}
	return nn.MeanSquaredError(ex.Target, net)
}

// Accuracy returns the fraction of examples whose largest output activation sits at the
// same index as the largest target value.
func Accuracy(net *nn.Network, examples []loader.Example) (float64, error) {
	if len(examples) == 0 {
		return 0, ErrNoExamples
	}
	correct := 0
	for i, ex := range examples {
		out, err := nn.Predict(net, ex.Input)
		if err != nil {
			return 0, errors.WithMessagef(err, "example %d", i)
		}
		if len(ex.Target) != len(out) {
			return 0, errors.WithMessagef(
				&nn.ShapeError{Op: "accuracy", Layer: "output", Want: len(out), Got: len(ex.Target)},
				"example %d", i)
		}
		if floats.MaxIdx(out) == floats.MaxIdx(ex.Target) {
			correct++
		}
	}
	return float64(correct) / float64(len(examples)), nil
}
