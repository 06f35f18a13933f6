// Package metrics summarizes label distributions for imbalance checks.
package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/cancelprep/dataset"
	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ClassShare はラベル値ごとの件数と割合
type ClassShare struct {
	Label   float64 `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// String は "label=1 count=44224 (37.0%)" の形式で返す
func (c ClassShare) String() string {
	return fmt.Sprintf("label=%g count=%d (%.1f%%)", c.Label, c.Count, c.Percent)
}

// ClassBalance はラベル列の値ごとの件数と割合（小数第1位で丸め）を計算する
//
// パラメータ:
//   - ds: データセット
//   - label: ラベル列（数値列）の名前
//
// 戻り値:
//   - []ClassShare: ラベル値の昇順
//   - error: 列が存在しない、データが空、またはNaNを含む場合
//
// 使用例:
//
//	shares, err := metrics.ClassBalance(ds, "is_canceled")
//	for _, s := range shares {
//	    fmt.Println(s)
//	}
func ClassBalance(ds *dataset.Dataset, label string) ([]ClassShare, error) {
	if err := ds.Schema().Require("ClassBalance", dataset.Numeric, label); err != nil {
		return nil, err
	}
	values, err := ds.Floats(label)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "ClassBalance(%s)", label)
	}
	if floats.HasNaN(values) {
		return nil, errors.NewValidationError(label, "label column contains NaN", nil)
	}

	counts := make(map[float64]int)
	for _, v := range values {
		counts[v]++
	}
	labels := make([]float64, 0, len(counts))
	for v := range counts {
		labels = append(labels, v)
	}
	sort.Float64s(labels)

	weights := make([]float64, len(labels))
	for i, v := range labels {
		weights[i] = float64(counts[v])
	}
	total := floats.Sum(weights)

	shares := make([]ClassShare, len(labels))
	for i, v := range labels {
		shares[i] = ClassShare{
			Label:   v,
			Count:   counts[v],
			Percent: math.Round(weights[i]/total*1000) / 10,
		}
	}
	return shares, nil
}

// ImbalanceRatio は最多クラスと最少クラスの件数比を返す。
// クラスが1つ以下の場合は +Inf を返す。
func ImbalanceRatio(shares []ClassShare) float64 {
	if len(shares) < 2 {
		return math.Inf(1)
	}
	counts := make([]float64, len(shares))
	for i, s := range shares {
		counts[i] = float64(s.Count)
	}
	return floats.Max(counts) / floats.Min(counts)
}
