// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs training epochs over a dataset.
//
// Example:
//
//	loop := train.NewLoop(optim.NewSGD(optim.SGDConfig{LR: 0.5}),
//	    train.WithEpochs(2000),
//	    train.WithOnEpoch(train.EveryNEpochs(500, func(s train.EpochStats) error {
//	        fmt.Printf("epoch %d: cost %.4f\n", s.Epoch, s.MeanCost)
//	        return nil
//	    })),
//	)
//	result, err := loop.Run(net, examples)
package train

import (
	"github.com/born-ml/feedforward/internal/loader"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/train"
)

// Trainer applies one training step to a network.
type Trainer = train.Trainer

// Loop trains a network for a fixed number of epochs.
type Loop = train.Loop

// Option configures a Loop.
type Option = train.Option

// Result is the outcome of Loop.Run.
type Result = train.Result

// EpochStats summarizes one epoch.
type EpochStats = train.EpochStats

// StepStats describes a finished training step.
type StepStats = train.StepStats

// Sentinel errors.
var (
	ErrStop       = train.ErrStop
	ErrNoExamples = train.ErrNoExamples
)

// NewLoop creates a training loop driving trainer.
func NewLoop(trainer Trainer, opts ...Option) *Loop {
	return train.NewLoop(trainer, opts...)
}

// WithEpochs sets the number of passes over the dataset.
func WithEpochs(n int) Option { return train.WithEpochs(n) }

// WithStartEpoch numbers epochs from n.
func WithStartEpoch(n int) Option { return train.WithStartEpoch(n) }

// WithSkipInvalid skips examples whose shape does not match the network.
func WithSkipInvalid(skip bool) Option { return train.WithSkipInvalid(skip) }

// WithOnEpoch registers a hook called after each epoch.
func WithOnEpoch(fn func(EpochStats) error) Option { return train.WithOnEpoch(fn) }

// WithOnStep registers a hook called after each successful step.
func WithOnStep(fn func(StepStats)) Option { return train.WithOnStep(fn) }

// EveryNEpochs wraps fn so it only runs on every n-th epoch.
func EveryNEpochs(n int, fn func(EpochStats) error) func(EpochStats) error {
	return train.EveryNEpochs(n, fn)
}

// Evaluate returns the mean cost of net over examples.
func Evaluate(net *nn.Network, examples []loader.Example) (float64, error) {
	return train.Evaluate(net, examples)
}

// Accuracy returns the fraction of examples classified correctly by arg-max.
func Accuracy(net *nn.Network, examples []loader.Example) (float64, error) {
	return train.Accuracy(net, examples)
}
