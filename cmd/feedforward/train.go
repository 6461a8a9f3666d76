package main

import (
	"flag"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/born-ml/feedforward/internal/config"
	"github.com/born-ml/feedforward/internal/loader"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/serialization"
	"github.com/born-ml/feedforward/internal/train"
)

// progressOutput receives the training progress bar. Tests silence it.
var progressOutput io.Writer = os.Stderr

func parseTrainFlags(args []string) (config.Config, error) {
	cfg := config.Default()
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	arch := fs.String("arch", "2 3 1", "Layer sizes, input first (e.g. \"784 32 10\")")
	fs.StringVar(&cfg.DataPath, "data", "", "Training data: .json, .csv or an IDX images file")
	fs.StringVar(&cfg.LabelsPath, "labels", "", "IDX labels file paired with -data")
	fs.StringVar(&cfg.ModelPath, "model", cfg.ModelPath, "Network file to write")
	fs.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "Passes over the dataset")
	fs.Float64Var(&cfg.LR, "lr", cfg.LR, "Learning rate")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Weight initialization seed")
	fs.IntVar(&cfg.InputWidth, "input-width", 0, "CSV input columns (default: first layer size)")
	fs.IntVar(&cfg.MaxSamples, "max-samples", 0, "Maximum examples to load (0 = all)")
	fs.BoolVar(&cfg.SkipInvalid, "skip-invalid", false, "Skip examples that do not fit the network")
	fs.IntVar(&cfg.CheckpointEvery, "checkpoint-every", 0, "Save every N epochs (0 = only at the end)")
	fs.BoolVar(&cfg.Resume, "resume", false, "Continue training the network in -model if it exists")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	var err error
	if cfg.Architecture, err = config.ParseArchitecture(*arch); err != nil {
		return cfg, err
	}
	return cfg, config.Validate(&cfg)
}

// session is the network being trained and the run it belongs to.
type session struct {
	net        *nn.Network
	runID      string
	startEpoch int
	startStep  int64
}

// openSession loads the network to resume, or builds and initializes a new one.
func openSession(cfg *config.Config) (*session, error) {
	if cfg.Resume {
		net, header, err := serialization.Load(cfg.ModelPath)
		switch {
		case errors.Is(err, serialization.ErrNotFound):
			klog.Infof("no network at %s, starting a new run", cfg.ModelPath)
		case err != nil:
			return nil, err
		default:
			s := &session{net: net, runID: uuid.NewString()}
			if ckpt := header.CheckpointMeta; ckpt != nil {
				s.runID = ckpt.RunID
				s.startEpoch = ckpt.Epoch + 1
				s.startStep = ckpt.Step
			}
			if !slices.Equal(net.Sizes(), cfg.Architecture) {
				klog.Warningf("resuming %s with architecture %s, ignoring -arch %s",
					cfg.ModelPath, formatSizes(net.Sizes()), formatSizes(cfg.Architecture))
			}
			if !net.Initialized() {
				nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, cfg.Seed))
			}
			klog.Infof("resuming run %s from epoch %d", s.runID, s.startEpoch)
			return s, nil
		}
	}

	net, err := nn.FromSizes(cfg.Architecture)
	if err != nil {
		return nil, err
	}
	nn.Initialize(net, nn.Uniform(nn.DefaultWeightRange, cfg.Seed))
	return &session{net: net, runID: uuid.NewString()}, nil
}

func loadExamples(cfg *config.Config) ([]loader.Example, error) {
	width := cfg.InputWidth
	if width == 0 {
		width = cfg.Architecture[0]
	}
	return loader.Load(cfg.DataPath, loader.Options{
		InputWidth: width,
		LabelsPath: cfg.LabelsPath,
		MaxSamples: cfg.MaxSamples,
	})
}

//nolint:gocyclo,cyclop // Command driver
func runTrain(args []string) error {
	cfg, err := parseTrainFlags(args)
	if err != nil {
		return err
	}

	examples, err := loadExamples(&cfg)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", cfg.DataPath)
	}
	klog.Infof("loaded %s examples from %s", humanize.Comma(int64(len(examples))), cfg.DataPath)

	s, err := openSession(&cfg)
	if err != nil {
		return err
	}
	if !cfg.SkipInvalid {
		if err := loader.Check(examples, s.net.InputSize(), s.net.OutputSize()); err != nil {
			return errors.WithMessage(err, "dataset does not fit the network (use -skip-invalid to skip)")
		}
	}
	klog.Infof("network %s: %s parameters", formatSizes(s.net.Sizes()),
		humanize.Comma(int64(s.net.NumParameters())))

	metadata := map[string]string{
		"architecture": formatSizes(s.net.Sizes()),
		"data":         cfg.DataPath,
	}
	var steps int64
	save := func(stats train.EpochStats) error {
		err := serialization.Save(cfg.ModelPath, s.net, serialization.Options{
			Metadata: metadata,
			Checkpoint: &serialization.CheckpointMeta{
				Epoch:        stats.Epoch,
				Step:         s.startStep + steps,
				Loss:         stats.MeanCost,
				LearningRate: cfg.LR,
				RunID:        s.runID,
			},
		})
		if err != nil {
			return err
		}
		klog.V(1).Infof("saved %s at epoch %d", cfg.ModelPath, stats.Epoch)
		return nil
	}

	bar := progressbar.NewOptions64(int64(cfg.Epochs)*int64(len(examples)),
		progressbar.OptionSetDescription("Training: "),
		progressbar.OptionSetWriter(progressOutput),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("steps"),
		progressbar.OptionSetTheme(progressbar.ThemeUnicode),
	)

	opts := []train.Option{
		train.WithEpochs(cfg.Epochs),
		train.WithStartEpoch(s.startEpoch),
		train.WithSkipInvalid(cfg.SkipInvalid),
		train.WithOnStep(func(train.StepStats) {
			steps++
			_ = bar.Add(1)
		}),
	}
	if cfg.CheckpointEvery > 0 {
		opts = append(opts, train.WithOnEpoch(train.EveryNEpochs(cfg.CheckpointEvery, save)))
	}

	sgd := optim.NewSGD(optim.SGDConfig{LR: cfg.LR})
	result, err := train.NewLoop(sgd, opts...).Run(s.net, examples)
	_ = bar.Finish()
	if err != nil {
		return err
	}

	last := result.History[len(result.History)-1]
	if err := save(last); err != nil {
		return err
	}
	klog.Infof("trained %d epochs, %s steps, %s rejected: final cost %.6f, saved to %s",
		result.Epochs, humanize.Comma(result.Steps), humanize.Comma(int64(result.Rejected)),
		result.FinalCost(), cfg.ModelPath)
	return nil
}

func formatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}
