// Package loader reads training examples for feedforward networks.
//
// Supported formats:
//   - JSON: {"items": [[[inputs...], [targets...]], ...]} with small unsigned integer values
//   - CSV: one example per row, inputs first, then targets
//   - IDX: the MNIST image/label file pair, pixels scaled to [0, 1] and one-hot targets
//
// Example:
//
//	// Auto-detect format from the file extension
//	examples, err := loader.Load("xor.json", loader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Reject examples that do not fit the network
//	if err := loader.Check(examples, net.InputSize(), net.OutputSize()); err != nil {
//	    log.Fatal(err)
//	}
//
// Loaders only decode; they never touch a network.
package loader
