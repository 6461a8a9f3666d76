package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultWeightRange bounds the symmetric interval initial weights are drawn from.
const DefaultWeightRange = 0.6

// WeightSource produces one initial weight per call.
//
// gonum distributions such as distuv.Uniform and distuv.Normal satisfy it.
type WeightSource interface {
	Rand() float64
}

// Uniform returns a source drawing uniformly from [-bound, bound].
//
// The same seed always yields the same sequence of weights.
func Uniform(bound float64, seed uint64) WeightSource {
	return distuv.Uniform{
		Min: -bound,
		Max: bound,
		Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

// Constant returns a source that always yields v.
func Constant(v float64) WeightSource {
	return constant(v)
}

type constant float64

func (c constant) Rand() float64 { return float64(c) }

// Initialize assigns fresh outgoing weights to every non-output neuron.
//
// Weights are drawn in layer order, then neuron order, then next-layer neuron order, so a
// deterministic source yields a deterministic network. Calling Initialize again replaces
// all weights. Biases and activations are left untouched.
//
// Example:
//
//	net, _ := nn.New(2, []int{3}, 1)
//	nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, 42))
func Initialize(net *Network, src WeightSource) {
	weights := make([]float64, net.weightOffsets[len(net.sizes)-1])
	for i := range weights {
		weights[i] = src.Rand()
	}
	net.weights = weights
}
