// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fully connected feedforward networks.
//
// # Overview
//
// This package contains:
//   - Network: topology, activations, biases and weights in flat arrays
//   - Initialization: deterministic uniform or constant weight sources
//   - Inference: Propagate, Predict
//   - Cost: MeanSquaredError
//   - Persistence: Save and Load in the .ffnn format
//
// Hidden layers use LeakyReLU (slope 0.01 below zero); the output layer uses Sigmoid.
// Input activations are the input vector itself.
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
//	    nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, 1))
//
//	    sgd := optim.NewSGD(optim.SGDConfig{LR: 0.5})
//	    for range 1000 {
//	        _ = sgd.Step(net, []float64{1, 0}, []float64{1})
//	    }
//
//	    out, _ := nn.Predict(net, []float64{1, 0})
//	}
//
// # Inspecting a Network
//
//	for _, layer := range net.HiddenLayers() {
//	    for _, neuron := range layer.Neurons() {
//	        fmt.Println(neuron.Activation, neuron.Bias, neuron.Weights)
//	    }
//	}
//
// # Errors
//
// Every operation that receives a vector of the wrong length, or runs on a network
// whose weights have not been initialized, returns a *ShapeError and leaves the network
// unmodified:
//
//	if errors.Is(err, nn.ErrShape) {
//	    // wrong input or target length
//	}
package nn
