// Package optim implements the backpropagation training rule for feedforward networks.
package optim

import (
	"github.com/born-ml/feedforward/internal/nn"
)

// Optimizer is the interface shared by training rules.
//
// Step runs one full forward pass plus weight and bias update for a single example.
// A Step that returns an error must leave the network unmodified.
type Optimizer interface {
	// Step trains net on one (input, target) pair.
	Step(net *nn.Network, input, target []float64) error

	// GetLR returns the current learning rate.
	//
	// Useful for monitoring and checkpoint metadata.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}
