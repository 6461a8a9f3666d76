package optim

import (
	"github.com/born-ml/feedforward/internal/nn"
)

// SGD trains a network one example at a time with plain gradient descent and
// backpropagated error signals.
//
// For each example:
//
//	output delta:  δ_j = (a_j - t_j) * a_j * (1 - a_j)
//	hidden delta:  δ_i = (Σ_j δ_j * w_ij) * LeakyReLU'(a_i)
//	update:        w_ij -= lr * δ_j * a_i
//	               b_j  -= lr * δ_j
//
// Every delta is computed from pre-update weights; updates are applied only after the
// whole backward sweep. The input layer has no delta and its biases are never touched.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//	for epoch := range epochs {
//	    for _, ex := range examples {
//	        if err := sgd.Step(net, ex.Input, ex.Target); err != nil {
//	            return err
//	        }
//	    }
//	}
type SGD struct {
	lr     float64
	deltas []float64 // scratch, same layout as the neuron arena
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{lr: config.LR}
}

// Step performs a single training step on one example.
//
// Shape errors are detected before any state changes, so on error the network is left
// exactly as it was.
func (s *SGD) Step(net *nn.Network, input, target []float64) error {
	if err := nn.CheckExample(net, input, target, "train"); err != nil {
		return err
	}
	if err := nn.Propagate(net, input); err != nil {
		return err
	}

	a := net.Arena()
	s.backward(a, target)
	s.update(a)
	return nil
}

// backward fills s.deltas for every non-input layer, output first.
func (s *SGD) backward(a nn.Arena, target []float64) {
	total := len(a.Activations)
	if len(s.deltas) != total {
		s.deltas = make([]float64, total)
	}

	last := len(a.Sizes) - 1
	outStart := a.Offsets[last]
	for j, t := range target {
		act := a.Activations[outStart+j]
		s.deltas[outStart+j] = (act - t) * nn.SigmoidDerivative(act)
	}

	for l := last - 1; l >= 1; l-- {
		size, next := a.Sizes[l], a.Sizes[l+1]
		start, nextStart := a.Offsets[l], a.Offsets[l+1]
		w := a.Weights[a.WeightOffsets[l]:a.WeightOffsets[l+1]]

		for i := 0; i < size; i++ {
			var sum float64
			row := w[i*next : (i+1)*next]
			for j, wij := range row {
				sum += s.deltas[nextStart+j] * wij
			}
			s.deltas[start+i] = sum * nn.LeakyReLUDerivative(a.Activations[start+i])
		}
	}
}

// update applies the gradient step using the deltas of each connection's target layer.
func (s *SGD) update(a nn.Arena) {
	for l := 0; l < len(a.Sizes)-1; l++ {
		size, next := a.Sizes[l], a.Sizes[l+1]
		start, nextStart := a.Offsets[l], a.Offsets[l+1]
		w := a.Weights[a.WeightOffsets[l]:a.WeightOffsets[l+1]]
		nextDeltas := s.deltas[nextStart : nextStart+next]

		for i := 0; i < size; i++ {
			act := a.Activations[start+i]
			row := w[i*next : (i+1)*next]
			for j, d := range nextDeltas {
				row[j] -= s.lr * d * act
			}
		}
		for j, d := range nextDeltas {
			a.Biases[nextStart+j] -= s.lr * d
		}
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// TrainStep runs one backpropagation step with the given learning rate.
//
// It is equivalent to NewSGD(SGDConfig{LR: learningRate}).Step, except that a zero
// learning rate is honoured and leaves weights and biases unchanged.
func TrainStep(net *nn.Network, input, target []float64, learningRate float64) error {
	s := &SGD{lr: learningRate}
	return s.Step(net, input, target)
}
