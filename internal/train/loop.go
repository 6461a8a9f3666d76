// Package train runs epochs of per-example training over a dataset and reports cost
// statistics after every epoch.
package train

import (
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/feedforward/internal/loader"
	"github.com/born-ml/feedforward/internal/nn"
)

// ErrStop may be returned by an OnEpoch hook to end the run early without error.
var ErrStop = errors.New("stop training")

// ErrNoExamples is returned when a run or an evaluation is given an empty dataset.
var ErrNoExamples = errors.New("no examples")

// Trainer applies one training step to a network. *optim.SGD implements it.
type Trainer interface {
	Step(net *nn.Network, input, target []float64) error
}

// StepStats describes a training step that just finished.
type StepStats struct {
	Epoch int   // Epoch being run, starting from the loop start epoch
	Step  int64 // Number of successful steps so far in this run
	Index int   // Index of the example in the dataset
}

// EpochStats summarizes one epoch.
type EpochStats struct {
	Epoch    int           // Epoch number, starting from the loop start epoch
	MeanCost float64       // Mean cost over the dataset after the epoch
	Steps    int64         // Successful steps in this epoch
	Rejected int           // Examples skipped in this epoch
	Duration time.Duration // Wall time of the epoch, evaluation included
}

// Result is the outcome of Loop.Run.
type Result struct {
	Epochs   int          // Epochs completed
	Steps    int64        // Successful steps over all epochs
	Rejected int          // Skipped examples over all epochs
	History  []EpochStats // One entry per completed epoch
}

// FinalCost returns the mean cost after the last completed epoch, or 0 when no epoch ran.
func (r *Result) FinalCost() float64 {
	if len(r.History) == 0 {
		return 0
	}
	return r.History[len(r.History)-1].MeanCost
}

// Option configures a Loop.
type Option func(*Loop)

// WithEpochs sets the number of passes over the dataset (default 1).
func WithEpochs(n int) Option {
	return func(l *Loop) { l.epochs = n }
}

// WithStartEpoch numbers epochs from n, used when resuming from a checkpoint.
func WithStartEpoch(n int) Option {
	return func(l *Loop) { l.startEpoch = n }
}

// WithSkipInvalid makes the loop count and skip examples whose shape does not match the
// network instead of aborting the run.
func WithSkipInvalid(skip bool) Option {
	return func(l *Loop) { l.skipInvalid = skip }
}

// WithOnEpoch registers a hook called after each epoch. A non-nil error ends the run;
// ErrStop ends it without error.
func WithOnEpoch(fn func(EpochStats) error) Option {
	return func(l *Loop) { l.onEpoch = append(l.onEpoch, fn) }
}

// WithOnStep registers a hook called after each successful step.
func WithOnStep(fn func(StepStats)) Option {
	return func(l *Loop) { l.onStep = append(l.onStep, fn) }
}

// EveryNEpochs wraps fn so it only runs on every n-th epoch counted from the start of
// the run.
func EveryNEpochs(n int, fn func(EpochStats) error) func(EpochStats) error {
	count := 0
	return func(stats EpochStats) error {
		count++
		if n <= 0 || count%n != 0 {
			return nil
		}
		return fn(stats)
	}
}

// Loop trains a network one example at a time, in dataset order, for a fixed number of
// epochs.
type Loop struct {
	trainer     Trainer
	epochs      int
	startEpoch  int
	skipInvalid bool
	onEpoch     []func(EpochStats) error
	onStep      []func(StepStats)
}

// NewLoop creates a training loop driving trainer.
func NewLoop(trainer Trainer, opts ...Option) *Loop {
	l := &Loop{
		trainer: trainer,
		epochs:  1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Epochs returns the configured number of epochs.
func (l *Loop) Epochs() int {
	return l.epochs
}

// Run trains net on examples.
//
// Examples are applied strictly in order, each step seeing the weights left by the
// previous one. On error the returned Result describes the work done before the failure.
//
//nolint:gocyclo,cyclop // Epoch/example loop with hooks
func (l *Loop) Run(net *nn.Network, examples []loader.Example) (*Result, error) {
	result := &Result{}
	if len(examples) == 0 {
		return result, ErrNoExamples
	}
	if l.epochs < 0 {
		return result, errors.Errorf("invalid number of epochs %d", l.epochs)
	}

	for e := 0; e < l.epochs; e++ {
		epoch := l.startEpoch + e
		start := time.Now()
		stats := EpochStats{Epoch: epoch}

		for i, ex := range examples {
			err := l.trainer.Step(net, ex.Input, ex.Target)
			if err != nil {
				if l.skipInvalid && errors.Is(err, nn.ErrShape) {
					stats.Rejected++
					klog.V(2).Infof("epoch %d: skipping example %d: %v", epoch, i, err)
					continue
				}
				result.Rejected += stats.Rejected
				return result, errors.WithMessagef(err, "epoch %d, example %d", epoch, i)
			}
			stats.Steps++
			result.Steps++
			for _, fn := range l.onStep {
				fn(StepStats{Epoch: epoch, Step: result.Steps, Index: i})
			}
		}

		cost, err := evaluate(net, examples, l.skipInvalid)
		if err != nil {
			result.Rejected += stats.Rejected
			return result, errors.WithMessagef(err, "epoch %d", epoch)
		}
		stats.MeanCost = cost
		stats.Duration = time.Since(start)

		result.Epochs++
		result.Rejected += stats.Rejected
		result.History = append(result.History, stats)
		klog.V(1).Infof("epoch %d: mean cost %.6f, %d steps, %d rejected, %s",
			epoch, stats.MeanCost, stats.Steps, stats.Rejected, stats.Duration)

		for _, fn := range l.onEpoch {
			if err := fn(stats); err != nil {
				if errors.Is(err, ErrStop) {
					klog.V(1).Infof("training stopped after epoch %d", epoch)
					return result, nil
				}
				return result, errors.WithMessagef(err, "OnEpoch(epoch %d)", epoch)
			}
		}
	}
	return result, nil
}
