package nn

// Layer is a read-only view of one layer of a Network.
//
// Neuron order is significant: weight j of a neuron pairs with neuron j of the next
// layer, and input neuron i receives element i of the input vector.
type Layer struct {
	net   *Network
	index int
}

// Neuron is a snapshot of a single unit. Weights holds one value per neuron of the next
// layer, in that layer's order, and is empty for output neurons.
type Neuron struct {
	Activation float64
	Bias       float64
	Weights    []float64
}

// Index returns the position of the layer in the network.
func (l Layer) Index() int {
	return l.index
}

// Len returns the number of neurons in the layer.
func (l Layer) Len() int {
	return l.net.sizes[l.index]
}

// IsOutput reports whether this is the last layer.
func (l Layer) IsOutput() bool {
	return l.index == len(l.net.sizes)-1
}

// Neuron returns a copy of neuron i.
func (l Layer) Neuron(i int) Neuron {
	slot := l.net.index(l.index, i)
	neuron := Neuron{
		Activation: l.net.activations[slot],
		Bias:       l.net.biases[slot],
		Weights:    []float64{},
	}
	if !l.IsOutput() && l.net.weights != nil {
		next := l.net.sizes[l.index+1]
		base := l.net.weightOffsets[l.index] + i*next
		neuron.Weights = append(make([]float64, 0, next), l.net.weights[base:base+next]...)
	}
	return neuron
}

// Neurons returns copies of every neuron in the layer.
func (l Layer) Neurons() []Neuron {
	neurons := make([]Neuron, l.Len())
	for i := range neurons {
		neurons[i] = l.Neuron(i)
	}
	return neurons
}

// Activations returns a copy of the layer's activations.
func (l Layer) Activations() []float64 {
	start := l.net.offsets[l.index]
	return append([]float64(nil), l.net.activations[start:start+l.Len()]...)
}

// Biases returns a copy of the layer's biases.
func (l Layer) Biases() []float64 {
	start := l.net.offsets[l.index]
	return append([]float64(nil), l.net.biases[start:start+l.Len()]...)
}
