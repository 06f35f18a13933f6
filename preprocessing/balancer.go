// Package preprocessing turns a labeled booking table into balanced, aligned
// numeric feature tables.
//
// The steps are Balancer (seeded majority downsampling), TrainTestSplit,
// SplitXY and FeatureEncoder (one-hot encoding fitted on train only).
package preprocessing

import (
	"fmt"
	"math/rand/v2"

	"github.com/YuminosukeSato/cancelprep/core/model"
	"github.com/YuminosukeSato/cancelprep/dataset"
	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/YuminosukeSato/cancelprep/pkg/log"
)

// Balancer は多数派クラスをダウンサンプリングしてクラス比を1:1にする
//
// 少数派クラスの行はそのまま残り、多数派クラスからは少数派と同数の行が
// 非復元抽出される。乱数は Seed からのみ生成される。
type Balancer struct {
	// LabelColumn は0/1の値を持つラベル列の名前
	LabelColumn string

	// Seed はサンプリングに使う乱数シード
	Seed int64

	logger log.Logger
}

var (
	_ model.Resampler   = (*Balancer)(nil)
	_ model.ParamGetter = (*Balancer)(nil)
)

// NewBalancer は新しいBalancerを作成する
//
// パラメータ:
//   - labelColumn: ラベル列の名前 (例: "is_canceled")
//   - seed: 乱数シード
//   - opts: WithLogger などのオプション
//
// 使用例:
//
//	b := preprocessing.NewBalancer("is_canceled", 42)
//	balanced, err := b.Resample(ds)
func NewBalancer(labelColumn string, seed int64, opts ...Option) *Balancer {
	o := buildOptions("preprocessing.balancer", opts)
	return &Balancer{
		LabelColumn: labelColumn,
		Seed:        seed,
		logger:      o.logger,
	}
}

// Resample は均衡化されたデータセットを返す。入力は変更されない。
//
// 戻り値のデータセットは、抽出された多数派の行（抽出順）の後に
// 少数派の全行（入力順）が続く。行数は 2*n_min となる。
func (b *Balancer) Resample(ds *dataset.Dataset) (*dataset.Dataset, error) {
	const op = "Balancer.Resample"

	zeros, ones, err := splitByLabel(op, ds, b.LabelColumn)
	if err != nil {
		return nil, err
	}

	// 同数の場合はラベル0を多数派として扱う
	majority, minority := zeros, ones
	if len(ones) > len(zeros) {
		majority, minority = ones, zeros
	}
	nMin := len(minority)

	sampled := sampleWithoutReplacement(majority, nMin, b.Seed)

	indices := make([]int, 0, 2*nMin)
	indices = append(indices, sampled...)
	indices = append(indices, minority...)

	out, err := ds.Take(indices)
	if err != nil {
		return nil, err
	}

	if b.logger != nil {
		b.logger.Info("Downsampled majority class",
			log.OperationKey, log.OperationBalance,
			log.LabelKey, b.LabelColumn,
			log.MajorityKey, len(majority),
			log.MinorityKey, nMin,
			log.SamplesKey, out.Len(),
			log.RandomSeedKey, b.Seed,
		)
	}
	return out, nil
}

// GetParams はパラメータを取得する
func (b *Balancer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"label_column": b.LabelColumn,
		"seed":         b.Seed,
	}
}

// String は文字列表現を返す
func (b *Balancer) String() string {
	return fmt.Sprintf("Balancer(label_column=%q, seed=%d)", b.LabelColumn, b.Seed)
}

// Downsample は NewBalancer(labelColumn, seed).Resample(ds) の短縮形
func Downsample(ds *dataset.Dataset, labelColumn string, seed int64) (*dataset.Dataset, error) {
	return NewBalancer(labelColumn, seed).Resample(ds)
}

// splitByLabel returns the row positions holding label 0 and label 1.
func splitByLabel(op string, ds *dataset.Dataset, label string) (zeros, ones []int, err error) {
	if err := ds.Schema().Require(op, dataset.Numeric, label); err != nil {
		return nil, nil, err
	}
	values, err := ds.Floats(label)
	if err != nil {
		return nil, nil, err
	}
	for i, v := range values {
		switch v {
		case 0:
			zeros = append(zeros, i)
		case 1:
			ones = append(ones, i)
		default:
			return nil, nil, errors.NewEncodingStateError(op, label,
				fmt.Sprintf("row %d has label %g; labels must be 0 or 1", i, v))
		}
	}
	if len(zeros) == 0 {
		return nil, nil, errors.NewEmptyClassError(label, 0)
	}
	if len(ones) == 0 {
		return nil, nil, errors.NewEmptyClassError(label, 1)
	}
	return zeros, ones, nil
}

// sampleWithoutReplacement draws k of the given positions with a partial
// Fisher-Yates shuffle. When k == len(from) the positions are returned in
// their original order.
func sampleWithoutReplacement(from []int, k int, seed int64) []int {
	pool := append([]int(nil), from...)
	if k >= len(pool) {
		return pool
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
