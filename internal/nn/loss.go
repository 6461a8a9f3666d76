package nn

// MeanSquaredError scores the current output activations against target:
//
//	Loss = Σ (a_j - t_j)² / len(output)
//
// It reads the activations left by the last Propagate and does not modify the network.
// The result is never negative and is zero only when every output matches its target.
func MeanSquaredError(target []float64, net *Network) (float64, error) {
	out := net.sizes[len(net.sizes)-1]
	if len(target) != out {
		return 0, &ShapeError{Op: "cost", Layer: "output", Want: out, Got: len(target)}
	}

	start := net.offsets[len(net.sizes)-1]
	var sum float64
	for j, t := range target {
		diff := net.activations[start+j] - t
		sum += diff * diff
	}
	return sum / float64(out), nil
}
