package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/born-ml/feedforward/internal/serialization"
)

func runInspect(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	model := fs.String("model", "model.ffnn", "Network file to describe")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := serialization.NewReader(*model)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Close()
	}()

	net, err := r.ReadNetwork()
	if err != nil {
		return err
	}
	info, err := os.Stat(*model)
	if err != nil {
		return err
	}

	h := r.Header()
	fmt.Fprintf(w, "File:        %s (%s)\n", *model, humanize.Bytes(uint64(info.Size())))
	fmt.Fprintf(w, "Format:      v%d, written by %s %s\n", h.FormatVersion, h.Version, humanize.Time(h.CreatedAt))
	fmt.Fprintf(w, "Layers:      %s\n", formatSizes(net.Sizes()))
	fmt.Fprintf(w, "Parameters:  %s\n", humanize.Comma(int64(net.NumParameters())))
	fmt.Fprintf(w, "Initialized: %t\n", net.Initialized())

	if len(h.Metadata) > 0 {
		keys := make([]string, 0, len(h.Metadata))
		for k := range h.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(w, "Metadata:")
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, h.Metadata[k])
		}
	}

	if ckpt := r.Checkpoint(); ckpt != nil {
		fmt.Fprintln(w, "Checkpoint:")
		fmt.Fprintf(w, "  Run:           %s\n", ckpt.RunID)
		fmt.Fprintf(w, "  Epoch:         %d\n", ckpt.Epoch)
		fmt.Fprintf(w, "  Step:          %s\n", humanize.Comma(ckpt.Step))
		fmt.Fprintf(w, "  Loss:          %.6f\n", ckpt.Loss)
		fmt.Fprintf(w, "  Learning rate: %g\n", ckpt.LearningRate)
	}
	return nil
}
