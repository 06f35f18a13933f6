package preprocessing

import (
	"fmt"
	"slices"

	"github.com/YuminosukeSato/cancelprep/dataset"
	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/YuminosukeSato/cancelprep/pkg/log"
)

// EncodedFeatures holds the aligned output of FeatureEncoder.Encode.
type EncodedFeatures struct {
	Train    *dataset.Dataset
	Test     *dataset.Dataset
	Encoding *FittedEncoding
}

// FeatureEncoder selects a fixed set of columns, fits a one-hot encoding on
// the train partition and applies it to both partitions. Train and test come
// out with identical columns in identical order.
type FeatureEncoder struct {
	NumericColumns     []string
	CategoricalColumns []string

	logger log.Logger
}

// NewFeatureEncoder は新しいFeatureEncoderを作成する
//
// 使用例:
//
//	fe := preprocessing.NewFeatureEncoder(
//	    []string{"lead_time", "adr"},
//	    []string{"hotel", "deposit_type"},
//	)
//	out, err := fe.Encode(trainX, testX)
func NewFeatureEncoder(numeric, categorical []string, opts ...Option) *FeatureEncoder {
	o := buildOptions("preprocessing.feature_encoder", opts)
	return &FeatureEncoder{
		NumericColumns:     append([]string(nil), numeric...),
		CategoricalColumns: append([]string(nil), categorical...),
		logger:             o.logger,
	}
}

// Encode runs select, fit (train only), transform and assemble. All
// preconditions are checked before any work is done.
func (f *FeatureEncoder) Encode(train, test *dataset.Dataset) (*EncodedFeatures, error) {
	const op = "FeatureEncoder.Encode"

	if err := f.validate(op, train, test); err != nil {
		return nil, err
	}

	selected := append(append([]string(nil), f.NumericColumns...), f.CategoricalColumns...)
	trainSel, err := train.Select(selected...)
	if err != nil {
		return nil, err
	}
	testSel, err := test.Select(selected...)
	if err != nil {
		return nil, err
	}

	enc := NewOneHotEncoder(f.NumericColumns, f.CategoricalColumns)
	trainOut, err := enc.FitTransform(trainSel)
	if err != nil {
		return nil, err
	}
	testOut, err := enc.Transform(testSel)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(trainOut.Names(), testOut.Names()) {
		return nil, errors.NewEncodingStateError(op, "", "train and test columns differ after encoding")
	}

	fitted, err := enc.Encoding()
	if err != nil {
		return nil, err
	}
	f.logFit(fitted, testSel, trainOut)

	return &EncodedFeatures{Train: trainOut, Test: testOut, Encoding: fitted}, nil
}

func (f *FeatureEncoder) validate(op string, train, test *dataset.Dataset) error {
	if len(f.NumericColumns)+len(f.CategoricalColumns) == 0 {
		return errors.NewEncodingStateError(op, "", "no feature columns selected")
	}

	seen := make(map[string]string, len(f.NumericColumns)+len(f.CategoricalColumns))
	check := func(name, list string) error {
		if prev, dup := seen[name]; dup {
			return errors.NewEncodingStateError(op, name,
				fmt.Sprintf("listed in %s columns and again in %s columns", prev, list))
		}
		seen[name] = list
		return nil
	}
	for _, name := range f.NumericColumns {
		if err := check(name, "numeric"); err != nil {
			return err
		}
	}
	for _, name := range f.CategoricalColumns {
		if err := check(name, "categorical"); err != nil {
			return err
		}
	}

	for _, ds := range []*dataset.Dataset{train, test} {
		for _, name := range f.NumericColumns {
			if _, _, err := ds.Schema().Lookup(op, name); err != nil {
				return err
			}
		}
		for _, name := range f.CategoricalColumns {
			if _, _, err := ds.Schema().Lookup(op, name); err != nil {
				return err
			}
		}
	}

	for _, ds := range []*dataset.Dataset{train, test} {
		if err := ds.Schema().Require(op, dataset.Numeric, f.NumericColumns...); err != nil {
			return err
		}
		if err := ds.Schema().Require(op, dataset.Categorical, f.CategoricalColumns...); err != nil {
			return err
		}
	}

	if train.Len() == 0 {
		return errors.NewEncodingStateError(op, "", "train partition is empty")
	}
	return nil
}

func (f *FeatureEncoder) logFit(enc *FittedEncoding, test, trainOut *dataset.Dataset) {
	if f.logger == nil {
		return
	}
	for _, v := range enc.Categorical {
		f.logger.Debug("Fitted column vocabulary",
			log.OperationKey, log.OperationFit,
			log.ColumnKey, v.Column,
			log.ReferenceKey, v.Reference,
			log.CategoriesKey, len(v.Categories),
		)
	}
	unseen, err := enc.Unseen(test)
	if err == nil {
		for _, v := range enc.Categorical {
			if n := unseen[v.Column]; n > 0 {
				f.logger.Warn("Test partition has unseen categories",
					log.ColumnKey, v.Column,
					log.UnseenKey, n,
				)
			}
		}
	}
	f.logger.Info("Encoded features",
		log.OperationKey, log.OperationEncode,
		log.TrainSamplesKey, trainOut.Len(),
		log.TestSamplesKey, test.Len(),
		log.FeaturesKey, len(enc.FeatureNames()),
	)
}
