package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/config"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/serialization"
)

func runInfer(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("infer", flag.ContinueOnError)
	model := fs.String("model", "model.ffnn", "Network file to run")
	input := fs.String("input", "", "Input vector, comma separated (e.g. \"1,0\")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return errors.New("-input is required")
	}

	vec, err := config.ParseVector(*input)
	if err != nil {
		return err
	}
	net, _, err := serialization.Load(*model)
	if err != nil {
		return err
	}
	out, err := nn.Predict(net, vec)
	if err != nil {
		return err
	}
	for i, v := range out {
		fmt.Fprintf(w, "output[%d] = %.6f\n", i, v)
	}
	return nil
}
