// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the training rule for feedforward networks.
//
// # Overview
//
// This package contains:
//   - SGD: per-example gradient descent with backpropagated error signals
//   - TrainStep: a single update with an explicit learning rate
//   - Optimizer interface for custom training rules
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/feedforward/nn"
//	    "github.com/born-ml/feedforward/optim"
//	)
//
//	func main() {
//	    net, _ := nn.New(2, []int{4}, 1)
//	    nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, 7))
//
//	    optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.5})
//
//	    for epoch := range 1000 {
//	        for _, ex := range examples {
//	            if err := optimizer.Step(net, ex.Input, ex.Target); err != nil {
//	                log.Fatalf("epoch %d: %v", epoch, err)
//	            }
//	        }
//	    }
//	}
//
// # Update Rule
//
// One Step runs a forward pass and then, from the output layer back to the first hidden
// layer, computes an error signal for every neuron from the pre-update weights. Weights
// and biases are changed only once all signals are known:
//
//	w_ij -= lr * δ_j * a_i
//	b_j  -= lr * δ_j
//
// A Step that fails with a shape error leaves the network unmodified.
package optim
