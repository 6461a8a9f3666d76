package nn

import "math"

// LeakySlope is the gradient of LeakyReLU for non-positive inputs.
const LeakySlope = 0.01

// Sigmoid computes 1 / (1 + e^-x). Used on the output layer.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// SigmoidDerivative returns σ'(x) given a = σ(x).
func SigmoidDerivative(a float64) float64 {
	return a * (1.0 - a)
}

// LeakyReLU returns x for positive inputs and LeakySlope*x otherwise. Used on every
// hidden layer.
func LeakyReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return LeakySlope * x
}

// LeakyReLUDerivative returns 1 for positive inputs and LeakySlope otherwise.
//
// LeakyReLU preserves sign, so passing the activation instead of the pre-activation
// gives the same result.
func LeakyReLUDerivative(x float64) float64 {
	if x > 0 {
		return 1.0
	}
	return LeakySlope
}
