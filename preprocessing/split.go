package preprocessing

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/cancelprep/dataset"
	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/YuminosukeSato/cancelprep/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// TrainTestSplit はデータセットを訓練用とテスト用に分割する
//
// テスト側の行数は ceil(testSize*n)。行はシードから生成した順列で
// 振り分けられ、2つのパーティションは重複しない。
//
// パラメータ:
//   - ds: 分割するデータセット
//   - testSize: テスト側の割合 (0 < testSize < 1)
//   - seed: 乱数シード
//
// 戻り値:
//   - train, test: 分割後のデータセット
//   - error: testSizeが範囲外、またはどちらかが空になる場合
//
// 使用例:
//
//	train, test, err := preprocessing.TrainTestSplit(balanced, 0.2, 42)
func TrainTestSplit(ds *dataset.Dataset, testSize float64, seed int64) (train, test *dataset.Dataset, err error) {
	if !(testSize > 0 && testSize < 1) {
		return nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}
	n := ds.Len()
	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest < 1 || nTrain < 1 {
		return nil, nil, errors.NewValidationError("test_size",
			"leaves an empty partition", map[string]int{"samples": n, "test": nTest, "train": nTrain})
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	perm := rng.Perm(n)

	test, err = ds.Take(perm[:nTest])
	if err != nil {
		return nil, nil, err
	}
	train, err = ds.Take(perm[nTest:])
	if err != nil {
		return nil, nil, err
	}

	log.GetLoggerWithName("preprocessing.split").Debug("Split dataset",
		log.OperationKey, log.OperationSplit,
		log.TrainSamplesKey, nTrain,
		log.TestSamplesKey, nTest,
		log.TestSizeKey, testSize,
		log.RandomSeedKey, seed,
	)
	return train, test, nil
}

// SplitXY separates the label column from the feature columns. The returned
// features keep every other column in order.
func SplitXY(ds *dataset.Dataset, label string) (*dataset.Dataset, []float64, error) {
	if err := ds.Schema().Require("SplitXY", dataset.Numeric, label); err != nil {
		return nil, nil, err
	}
	y, err := ds.Floats(label)
	if err != nil {
		return nil, nil, err
	}
	X, err := ds.Drop(label)
	if err != nil {
		return nil, nil, err
	}
	return X, y, nil
}

// LabelVector returns y as a gonum vector.
func LabelVector(y []float64) *mat.VecDense {
	if len(y) == 0 {
		return nil
	}
	return mat.NewVecDense(len(y), append([]float64(nil), y...))
}
