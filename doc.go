// Package cancelprep prepares the hotel booking dataset for a reservation
// cancellation classifier.
//
// The is_canceled label is heavily imbalanced. cancelprep downsamples the
// majority class with an explicit seed, splits the balanced table into train
// and test partitions, and one-hot encodes a fixed selection of feature
// columns. The encoding is fitted on the train partition only, and both
// partitions come out with identical columns in identical order.
//
// # Installation
//
//	go install github.com/YuminosukeSato/cancelprep/cmd/cancelprep@latest
//
// # Quick Start
//
//	package main
//
//	import (
//	    "log"
//
//	    "github.com/YuminosukeSato/cancelprep/dataset"
//	    "github.com/YuminosukeSato/cancelprep/preprocessing"
//	)
//
//	func main() {
//	    ds, err := dataset.ReadCSVFile("hotels.csv", dataset.ReadOptions{
//	        Numeric:     []string{"is_canceled", "lead_time", "adr"},
//	        Categorical: []string{"hotel", "deposit_type"},
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    balanced, err := preprocessing.Downsample(ds, "is_canceled", 42)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    train, test, err := preprocessing.TrainTestSplit(balanced, 0.2, 42)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    trainX, trainY, _ := preprocessing.SplitXY(train, "is_canceled")
//	    testX, testY, _ := preprocessing.SplitXY(test, "is_canceled")
//
//	    fe := preprocessing.NewFeatureEncoder(
//	        []string{"lead_time", "adr"},
//	        []string{"hotel", "deposit_type"},
//	    )
//	    out, err := fe.Encode(trainX, testX)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    X, _ := out.Train.Matrix()
//	    _, _, _ = X, trainY, testY
//	}
//
// # Packages
//
//   - dataset: immutable typed tables and CSV I/O
//   - preprocessing: Balancer, TrainTestSplit, SplitXY, OneHotEncoder, FeatureEncoder
//   - metrics: label distribution (ClassBalance)
//   - config: layered configuration (defaults, YAML, CANCELPREP_ environment)
//   - pipeline: end-to-end run writing the encoded partitions
//   - core/model: transformer interfaces, BaseEstimator and JSON persistence
//   - pkg/errors, pkg/log: typed errors and structured logging
//
// # Command Line
//
//	cancelprep profile --input hotels.csv
//	cancelprep prepare --config cancelprep.yaml --out-dir out --seed 42
//
// prepare writes train_features.csv, test_features.csv, train_labels.csv,
// test_labels.csv and encoding.json.
package cancelprep
