// Package serialization provides the .ffnn format for saving and loading feedforward networks.
//
// The .ffnn format stores the complete state of a network: topology, every activation,
// every bias and, once initialized, every weight. Values are float64 bit patterns, so a
// decoded network is bit-identical to the encoded one.
//
//	Format Structure:
//	  [Fixed Header: 64 bytes]
//	    0x00: Magic "FFNN" (4 bytes)
//	    0x04: Version (uint32 LE)
//	    0x08: Flags (uint32 LE)
//	    0x0C: Reserved (4 bytes)
//	    0x10: Header Size (uint64 LE)
//	    0x18: Data Size (uint64 LE)
//	    0x20: SHA-256 of neuron data (32 bytes)
//	  [Header: JSON, layer sizes and metadata]
//	  [Padding to 64-byte alignment]
//	  [Neuron data: per layer, per neuron: activation, bias, weights (float64 LE)]
//
// Example usage:
//
//	// Save a network
//	if err := serialization.Save("model.ffnn", net, serialization.Options{}); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load it back
//	net, header, err := serialization.Load("model.ffnn")
//	if errors.Is(err, serialization.ErrNotFound) {
//	    // start fresh
//	}
package serialization
