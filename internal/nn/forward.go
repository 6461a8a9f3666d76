package nn

// Propagate runs a forward pass: input is copied into the input layer and every later
// layer is computed from the finalized activations of the layer before it.
//
//	raw_j = bias_j + Σ_i a_i * w_ij
//	a_j   = Sigmoid(raw_j)    on the output layer
//	a_j   = LeakyReLU(raw_j)  on hidden layers
//
// Only activations are written. A length mismatch or a network without weights returns a
// *ShapeError and leaves the network unmodified.
func Propagate(net *Network, input []float64) error {
	if err := net.checkForward("propagate", input); err != nil {
		return err
	}
	net.forward(input)
	return nil
}

// Predict runs Propagate and returns a copy of the output activations.
func Predict(net *Network, input []float64) ([]float64, error) {
	if err := Propagate(net, input); err != nil {
		return nil, err
	}
	return net.Output(), nil
}

// checkForward validates everything forward reads before anything is written.
func (n *Network) checkForward(op string, input []float64) error {
	if len(input) != n.sizes[0] {
		return &ShapeError{Op: op, Layer: "input", Want: n.sizes[0], Got: len(input)}
	}
	if n.weights == nil {
		return &ShapeError{Op: op, Layer: "weights", Want: n.weightOffsets[len(n.sizes)-1], Got: 0}
	}
	return nil
}

// forward assumes checkForward passed.
func (n *Network) forward(input []float64) {
	copy(n.activations[:n.sizes[0]], input)

	last := len(n.sizes) - 1
	for l := 1; l <= last; l++ {
		prevSize, size := n.sizes[l-1], n.sizes[l]
		prev := n.activations[n.offsets[l-1] : n.offsets[l-1]+prevSize]
		w := n.weights[n.weightOffsets[l-1]:n.weightOffsets[l]]
		start := n.offsets[l]

		for j := 0; j < size; j++ {
			raw := n.biases[start+j]
			for i, a := range prev {
				raw += a * w[i*size+j]
			}
			if l == last {
				n.activations[start+j] = Sigmoid(raw)
			} else {
				n.activations[start+j] = LeakyReLU(raw)
			}
		}
	}
}
