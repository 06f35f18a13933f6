// Package pipeline runs the full preparation: load the CSV, balance the
// classes, split train/test, encode the features and write the results.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/YuminosukeSato/cancelprep/config"
	"github.com/YuminosukeSato/cancelprep/core/model"
	"github.com/YuminosukeSato/cancelprep/dataset"
	"github.com/YuminosukeSato/cancelprep/metrics"
	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/YuminosukeSato/cancelprep/pkg/log"
	"github.com/YuminosukeSato/cancelprep/preprocessing"
)

// Output file names written by Run.
const (
	TrainFeaturesFile = "train_features.csv"
	TestFeaturesFile  = "test_features.csv"
	TrainLabelsFile   = "train_labels.csv"
	TestLabelsFile    = "test_labels.csv"
	EncodingFile      = "encoding.json"
)

// Result is the in-memory outcome of Prepare.
type Result struct {
	// RawBalance and Balanced describe the label distribution before and
	// after downsampling.
	RawBalance []metrics.ClassShare
	Balanced   []metrics.ClassShare

	Train       *dataset.Dataset
	Test        *dataset.Dataset
	TrainLabels []float64
	TestLabels  []float64
	Encoding    *preprocessing.FittedEncoding
}

// Profile is the outcome of Pipeline.Profile.
type Profile struct {
	Samples    int
	Features   int
	RawBalance []metrics.ClassShare
	Balanced   []metrics.ClassShare
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger replaces the "pipeline" component logger.
func WithLogger(logger log.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// Pipeline runs a preparation for one Config.
type Pipeline struct {
	cfg    *config.Config
	logger log.Logger
}

// New returns a Pipeline for cfg. cfg is assumed to be validated.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.GetLoggerWithName("pipeline")
	}
	return p
}

// Run prepares the data and writes every output file into cfg.OutputDir.
// It returns the paths written.
func (p *Pipeline) Run(ctx context.Context) (*Result, []string, error) {
	res, err := p.Prepare(ctx)
	if err != nil {
		return nil, nil, err
	}
	var paths []string
	err = p.stage(ctx, log.OperationWrite, func() error {
		var werr error
		paths, werr = Write(p.cfg.OutputDir, p.cfg.LabelColumn, res)
		return werr
	})
	if err != nil {
		return nil, nil, err
	}
	p.logger.Info("Preparation finished",
		log.PathKey, p.cfg.OutputDir,
		log.TrainSamplesKey, res.Train.Len(),
		log.TestSamplesKey, res.Test.Len(),
		log.FeaturesKey, len(res.Encoding.FeatureNames()),
	)
	return res, paths, nil
}

// Prepare runs load, balance, split and encode in memory.
func (p *Pipeline) Prepare(ctx context.Context) (*Result, error) {
	res := &Result{}

	raw, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	var balanced *dataset.Dataset
	err = p.stage(ctx, log.OperationBalance, func() error {
		var serr error
		if res.RawBalance, serr = metrics.ClassBalance(raw, p.cfg.LabelColumn); serr != nil {
			return serr
		}
		balancer := preprocessing.NewBalancer(p.cfg.LabelColumn, p.cfg.Seed)
		if balanced, serr = balancer.Resample(raw); serr != nil {
			return serr
		}
		res.Balanced, serr = metrics.ClassBalance(balanced, p.cfg.LabelColumn)
		return serr
	})
	if err != nil {
		return nil, err
	}

	var trainX, testX *dataset.Dataset
	err = p.stage(ctx, log.OperationSplit, func() error {
		train, test, serr := preprocessing.TrainTestSplit(balanced, p.cfg.TestSize, p.cfg.Seed)
		if serr != nil {
			return serr
		}
		if trainX, res.TrainLabels, serr = preprocessing.SplitXY(train, p.cfg.LabelColumn); serr != nil {
			return serr
		}
		testX, res.TestLabels, serr = preprocessing.SplitXY(test, p.cfg.LabelColumn)
		return serr
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, log.OperationEncode, func() error {
		fe := preprocessing.NewFeatureEncoder(p.cfg.NumericColumns, p.cfg.CategoricalColumns)
		out, serr := fe.Encode(trainX, testX)
		if serr != nil {
			return serr
		}
		res.Train, res.Test, res.Encoding = out.Train, out.Test, out.Encoding
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Profile loads the input and reports the label distribution before and
// after downsampling.
func (p *Pipeline) Profile(ctx context.Context) (*Profile, error) {
	raw, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	prof := &Profile{Samples: raw.Len(), Features: raw.Schema().Len()}
	err = p.stage(ctx, log.OperationProfile, func() error {
		var serr error
		if prof.RawBalance, serr = metrics.ClassBalance(raw, p.cfg.LabelColumn); serr != nil {
			return serr
		}
		balanced, serr := preprocessing.Downsample(raw, p.cfg.LabelColumn, p.cfg.Seed)
		if serr != nil {
			return serr
		}
		prof.Balanced, serr = metrics.ClassBalance(balanced, p.cfg.LabelColumn)
		return serr
	})
	if err != nil {
		return nil, err
	}
	return prof, nil
}

func (p *Pipeline) load(ctx context.Context) (*dataset.Dataset, error) {
	var raw *dataset.Dataset
	err := p.stage(ctx, log.OperationLoad, func() error {
		opts := dataset.ReadOptions{
			Numeric:     append([]string{p.cfg.LabelColumn}, p.cfg.NumericColumns...),
			Categorical: p.cfg.CategoricalColumns,
			Delimiter:   p.cfg.DelimiterRune(),
		}
		var serr error
		raw, serr = dataset.ReadCSVFile(p.cfg.Input, opts)
		return serr
	})
	return raw, err
}

// stage runs fn with panic recovery, checking ctx first, and logs the
// outcome with its duration.
func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "pipeline: before %s", name)
	}
	start := time.Now()
	if err := errors.SafeExecute(name, fn); err != nil {
		p.logger.Error("Stage failed",
			log.OperationKey, name,
			log.ErrAttrKey, err,
		)
		return err
	}
	p.logger.Debug("Stage completed",
		log.OperationKey, name,
		log.PhaseKey, log.PhasePreprocessing,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Write stores the encoded partitions, their labels and the fitted encoding
// in dir, creating it if needed.
func Write(dir, label string, res *Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewModelError("pipeline.Write", "create output directory failed", err)
	}

	trainLabels, err := dataset.New(dataset.NumericSeries(label, res.TrainLabels))
	if err != nil {
		return nil, err
	}
	testLabels, err := dataset.New(dataset.NumericSeries(label, res.TestLabels))
	if err != nil {
		return nil, err
	}

	tables := []struct {
		name string
		ds   *dataset.Dataset
	}{
		{TrainFeaturesFile, res.Train},
		{TestFeaturesFile, res.Test},
		{TrainLabelsFile, trainLabels},
		{TestLabelsFile, testLabels},
	}
	paths := make([]string, 0, len(tables)+1)
	for _, t := range tables {
		path := filepath.Join(dir, t.name)
		if err := dataset.WriteCSVFile(path, t.ds); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	encPath := filepath.Join(dir, EncodingFile)
	if err := model.SaveJSONFile(res.Encoding, encPath); err != nil {
		return nil, err
	}
	paths = append(paths, encPath)

	logger := log.GetLoggerWithName("pipeline")
	for _, path := range paths {
		logger.Debug("Wrote output", log.OperationKey, log.OperationWrite, log.PhaseKey, log.PhaseIO, log.PathKey, path)
	}
	return paths, nil
}
