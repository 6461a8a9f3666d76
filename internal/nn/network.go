package nn

import (
	"fmt"
	"math"
)

// Network is a fully connected feedforward network of scalar neurons.
//
// Neuron state lives in flat arenas indexed by (layer, neuron) pairs:
//
//	activations[offsets[l]+i]                       activation of neuron i in layer l
//	biases[offsets[l]+i]                            bias of neuron i in layer l
//	weights[weightOffsets[l]+i*sizes[l+1]+j]        weight from (l, i) to (l+1, j)
//
// Layer 0 is the input layer and the last layer is the output layer. Weights live on the
// source side of each connection, so output neurons own none. The topology is fixed by New
// and never changes; only element values are mutated.
//
// A Network is not safe for concurrent use.
type Network struct {
	sizes         []int
	offsets       []int
	weightOffsets []int

	activations []float64
	biases      []float64
	weights     []float64 // nil until Initialize
}

// New creates a network with the given input size, hidden layer sizes and output size.
//
// All activations and biases start at zero and no weights are allocated; call Initialize
// before propagating.
//
// Example:
//
//	net, err := nn.New(2, []int{3}, 1) // 2 -> 3 -> 1
func New(inputSize int, hiddenSizes []int, outputSize int) (*Network, error) {
	sizes := make([]int, 0, len(hiddenSizes)+2)
	sizes = append(sizes, inputSize)
	sizes = append(sizes, hiddenSizes...)
	sizes = append(sizes, outputSize)
	return FromSizes(sizes)
}

// FromSizes creates a network from the full list of layer sizes, input first.
func FromSizes(sizes []int) (*Network, error) {
	if len(sizes) < 2 {
		return nil, &ShapeError{Op: "new", Want: 2, Got: len(sizes)}
	}
	for l, n := range sizes {
		if n <= 0 {
			return nil, &ShapeError{Op: "new", Layer: LayerName(l, len(sizes)), Want: 1, Got: n}
		}
	}

	net := &Network{
		sizes:         append([]int(nil), sizes...),
		offsets:       make([]int, len(sizes)+1),
		weightOffsets: make([]int, len(sizes)),
	}
	for l, n := range sizes {
		net.offsets[l+1] = net.offsets[l] + n
	}
	for l := 0; l < len(sizes)-1; l++ {
		net.weightOffsets[l+1] = net.weightOffsets[l] + sizes[l]*sizes[l+1]
	}

	total := net.offsets[len(sizes)]
	net.activations = make([]float64, total)
	net.biases = make([]float64, total)
	return net, nil
}

// LayerCount returns the number of layers including input and output.
func (n *Network) LayerCount() int {
	return len(n.sizes)
}

// Sizes returns a copy of the per-layer neuron counts.
func (n *Network) Sizes() []int {
	return append([]int(nil), n.sizes...)
}

// InputSize returns the number of input neurons.
func (n *Network) InputSize() int {
	return n.sizes[0]
}

// OutputSize returns the number of output neurons.
func (n *Network) OutputSize() int {
	return n.sizes[len(n.sizes)-1]
}

// Layer resolves index 0 to the input layer, the last index to the output layer and
// anything in between to hidden layer i-1. It panics if i is out of range.
func (n *Network) Layer(i int) Layer {
	if i < 0 || i >= len(n.sizes) {
		panic(fmt.Sprintf("nn: layer index %d out of range [0, %d)", i, len(n.sizes)))
	}
	return Layer{net: n, index: i}
}

// InputLayer returns layer 0.
func (n *Network) InputLayer() Layer {
	return n.Layer(0)
}

// OutputLayer returns the last layer.
func (n *Network) OutputLayer() Layer {
	return n.Layer(len(n.sizes) - 1)
}

// HiddenLayers returns the hidden layers in input-to-output order.
func (n *Network) HiddenLayers() []Layer {
	hidden := make([]Layer, 0, len(n.sizes)-2)
	for l := 1; l < len(n.sizes)-1; l++ {
		hidden = append(hidden, n.Layer(l))
	}
	return hidden
}

// Initialized reports whether the outgoing weights have been allocated.
func (n *Network) Initialized() bool {
	return n.weights != nil
}

// NumParameters returns the number of trainable values (weights plus biases).
func (n *Network) NumParameters() int {
	return n.weightOffsets[len(n.sizes)-1] + len(n.biases)
}

// Output returns a copy of the output layer activations.
func (n *Network) Output() []float64 {
	return n.OutputLayer().Activations()
}

// SetActivation overwrites the activation of neuron i in layer l.
func (n *Network) SetActivation(l, i int, v float64) {
	n.activations[n.index(l, i)] = v
}

// SetBias overwrites the bias of neuron i in layer l.
func (n *Network) SetBias(l, i int, v float64) {
	n.biases[n.index(l, i)] = v
}

// SetWeight overwrites the weight from neuron i in layer l to neuron j in layer l+1.
func (n *Network) SetWeight(l, i, j int, v float64) error {
	base, err := n.weightRow(l, i, "set weight")
	if err != nil {
		return err
	}
	next := n.sizes[l+1]
	if j < 0 || j >= next {
		return &ShapeError{Op: "set weight", Layer: LayerName(l+1, len(n.sizes)), Want: next, Got: j}
	}
	n.weights[base+j] = v
	return nil
}

// SetWeights overwrites every outgoing weight of neuron i in layer l.
// len(weights) must equal the size of layer l+1.
func (n *Network) SetWeights(l, i int, weights []float64) error {
	base, err := n.weightRow(l, i, "set weights")
	if err != nil {
		return err
	}
	next := n.sizes[l+1]
	if len(weights) != next {
		return &ShapeError{Op: "set weights", Layer: LayerName(l+1, len(n.sizes)), Want: next, Got: len(weights)}
	}
	copy(n.weights[base:base+next], weights)
	return nil
}

// Validate checks that every non-output neuron owns exactly one weight per neuron of the
// next layer.
func (n *Network) Validate() error {
	last := len(n.sizes) - 1
	want := n.weightOffsets[last]
	if n.weights == nil {
		return &ShapeError{Op: "validate", Layer: "weights", Want: want, Got: 0}
	}
	if len(n.weights) != want {
		return &ShapeError{Op: "validate", Layer: "weights", Want: want, Got: len(n.weights)}
	}
	for l := 0; l < last; l++ {
		rows := n.weightOffsets[l+1] - n.weightOffsets[l]
		if rows != n.sizes[l]*n.sizes[l+1] {
			return &ShapeError{Op: "validate", Layer: LayerName(l, len(n.sizes)), Want: n.sizes[l] * n.sizes[l+1], Got: rows}
		}
	}
	if len(n.activations) != n.offsets[len(n.sizes)] || len(n.biases) != len(n.activations) {
		return &ShapeError{Op: "validate", Layer: "neurons", Want: n.offsets[len(n.sizes)], Got: len(n.biases)}
	}
	return nil
}

// Clone returns a deep copy sharing no storage with n.
func (n *Network) Clone() *Network {
	c := &Network{
		sizes:         append([]int(nil), n.sizes...),
		offsets:       append([]int(nil), n.offsets...),
		weightOffsets: append([]int(nil), n.weightOffsets...),
		activations:   append([]float64(nil), n.activations...),
		biases:        append([]float64(nil), n.biases...),
	}
	if n.weights != nil {
		c.weights = append(make([]float64, 0, len(n.weights)), n.weights...)
	}
	return c
}

// Equal reports whether both networks have the same topology and bit-identical
// activations, biases and weights.
func (n *Network) Equal(other *Network) bool {
	if n == nil || other == nil {
		return n == other
	}
	if len(n.sizes) != len(other.sizes) || n.Initialized() != other.Initialized() {
		return false
	}
	for l := range n.sizes {
		if n.sizes[l] != other.sizes[l] {
			return false
		}
	}
	return bitsEqual(n.activations, other.activations) &&
		bitsEqual(n.biases, other.biases) &&
		bitsEqual(n.weights, other.weights)
}

// index returns the arena slot of neuron i in layer l.
func (n *Network) index(l, i int) int {
	if i < 0 || i >= n.Layer(l).Len() {
		panic(fmt.Sprintf("nn: neuron index %d out of range for %s layer of size %d",
			i, LayerName(l, len(n.sizes)), n.sizes[l]))
	}
	return n.offsets[l] + i
}

// weightRow returns the start of the outgoing weight row of neuron i in layer l.
func (n *Network) weightRow(l, i int, op string) (int, error) {
	slot := n.index(l, i) - n.offsets[l]
	if l == len(n.sizes)-1 {
		return 0, &ShapeError{Op: op, Layer: "output", Want: 0, Got: 1}
	}
	if n.weights == nil {
		return 0, &ShapeError{Op: op, Layer: "weights", Want: n.weightOffsets[len(n.sizes)-1], Got: 0}
	}
	return n.weightOffsets[l] + slot*n.sizes[l+1], nil
}

func bitsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}

// Arena exposes a network's flat storage. The slices alias the network, so writes through
// them are visible to it; the layout is the one documented on Network.
//
// Optimizers use it to update weights and biases in place.
type Arena struct {
	Sizes         []int
	Offsets       []int
	WeightOffsets []int
	Activations   []float64
	Biases        []float64
	Weights       []float64
}

// Arena returns views of the network storage. Callers must not resize the slices.
func (n *Network) Arena() Arena {
	return Arena{
		Sizes:         n.sizes,
		Offsets:       n.offsets,
		WeightOffsets: n.weightOffsets,
		Activations:   n.activations,
		Biases:        n.biases,
		Weights:       n.weights,
	}
}

// CheckExample validates an (input, target) pair and the weight allocation without
// touching the network. op names the caller in the returned *ShapeError.
func CheckExample(net *Network, input, target []float64, op string) error {
	if err := net.checkForward(op, input); err != nil {
		return err
	}
	if out := net.OutputSize(); len(target) != out {
		return &ShapeError{Op: op, Layer: "output", Want: out, Got: len(target)}
	}
	return nil
}
