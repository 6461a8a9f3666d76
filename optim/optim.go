// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// SGD (Stochastic Gradient Descent)

// SGD represents the per-example backpropagation optimizer.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	net, _ := nn.New(2, []int{3}, 1)
//	nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, 1))
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//	err := optimizer.Step(net, []float64{1, 0}, []float64{1})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// TrainStep applies one backpropagation update to net with learning rate lr.
func TrainStep(net *nn.Network, input, target []float64, lr float64) error {
	return optim.TrainStep(net, input, target, lr)
}
