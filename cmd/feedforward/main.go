// Package main provides the feedforward CLI.
//
// Usage:
//
//	feedforward [-v=N] <command> [flags]
//
// Commands:
//
//	train    Train a network on a JSON, CSV or IDX dataset
//	infer    Run a saved network on one input vector
//	inspect  Describe a saved network file
//	version  Show version
package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/born-ml/feedforward/internal/serialization"
)

func printUsage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "feedforward %s - feedforward neural networks for Go\n\n", serialization.LibraryVersion)
	fmt.Fprintln(out, "Usage: feedforward [global flags] <command> [flags]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  train      Train a network on a JSON, CSV or IDX dataset")
	fmt.Fprintln(out, "  infer      Run a saved network on one input vector")
	fmt.Fprintln(out, "  inspect    Describe a saved network file")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Global flags:")
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = printUsage
	flag.Parse()
	defer klog.Flush()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "train":
		err = runTrain(rest)
	case "infer":
		err = runInfer(rest, os.Stdout)
	case "inspect":
		err = runInspect(rest, os.Stdout)
	case "version":
		fmt.Printf("feedforward %s (format v%d)\n", serialization.LibraryVersion, serialization.FormatVersion)
	default:
		printUsage()
		klog.Exitf("unknown command %q", cmd)
	}
	if err != nil {
		klog.Exitf("%s: %v", args[0], err)
	}
}
