// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/serialization"
)

// Network is a fully connected feedforward network stored in flat per-network arrays.
type Network = nn.Network

// Layer is a read-only view of one layer of a Network.
type Layer = nn.Layer

// Neuron is a snapshot of one neuron: activation, bias and outgoing weights.
type Neuron = nn.Neuron

// ShapeError reports a vector or weight count that disagrees with the topology.
type ShapeError = nn.ShapeError

// WeightSource yields initial weights.
type WeightSource = nn.WeightSource

// ErrShape is matched by every *ShapeError via errors.Is.
var ErrShape = nn.ErrShape

// DefaultWeightRange bounds the default uniform weight initialization to [-0.6, 0.6].
const DefaultWeightRange = nn.DefaultWeightRange

// New creates an uninitialized network with the given layer sizes.
//
// Example:
//
//	net, err := nn.New(2, []int{3}, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, 42))
func New(inputSize int, hiddenSizes []int, outputSize int) (*Network, error) {
	return nn.New(inputSize, hiddenSizes, outputSize)
}

// FromSizes creates an uninitialized network from a full list of layer sizes, input first.
func FromSizes(sizes []int) (*Network, error) {
	return nn.FromSizes(sizes)
}

// Initialization

// Uniform returns a deterministic source of weights uniform in [-bound, bound].
func Uniform(bound float64, seed uint64) WeightSource {
	return nn.Uniform(bound, seed)
}

// Constant returns a source that yields v for every weight.
func Constant(v float64) WeightSource {
	return nn.Constant(v)
}

// Initialize allocates every weight of net from src.
func Initialize(net *Network, src WeightSource) {
	nn.Initialize(net, src)
}

// Inference

// Propagate runs a forward pass, leaving the result in the output layer activations.
func Propagate(net *Network, input []float64) error {
	return nn.Propagate(net, input)
}

// Predict runs a forward pass and returns a copy of the output activations.
//
// Example:
//
//	out, err := nn.Predict(net, []float64{1, 0})
func Predict(net *Network, input []float64) ([]float64, error) {
	return nn.Predict(net, input)
}

// MeanSquaredError returns the mean squared difference between target and the output
// activations left by the last forward pass.
func MeanSquaredError(target []float64, net *Network) (float64, error) {
	return nn.MeanSquaredError(target, net)
}

// Activations

// Sigmoid is the output layer activation.
func Sigmoid(x float64) float64 {
	return nn.Sigmoid(x)
}

// LeakyReLU is the hidden layer activation with slope 0.01 for negative inputs.
func LeakyReLU(x float64) float64 {
	return nn.LeakyReLU(x)
}

// Persistence

// Header describes a saved network file.
type Header = serialization.Header

// Save writes net to a .ffnn file, replacing any existing file at path as a whole.
//
// Parameters:
//   - net: The network to save (initialized or not)
//   - path: File path to write to
//   - metadata: Optional metadata (can be nil)
//
// Example:
//
//	err := nn.Save(net, "xor.ffnn", map[string]string{"task": "xor"})
func Save(net *Network, path string, metadata map[string]string) error {
	return serialization.Save(path, net, serialization.Options{Metadata: metadata})
}

// Load reads a network from a .ffnn file.
//
// A missing file yields an error matching serialization.ErrNotFound.
//
// Example:
//
//	net, header, err := nn.Load("xor.ffnn")
func Load(path string) (*Network, Header, error) {
	return serialization.Load(path)
}
