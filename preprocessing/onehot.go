package preprocessing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/YuminosukeSato/cancelprep/core/model"
	"github.com/YuminosukeSato/cancelprep/dataset"
	"github.com/YuminosukeSato/cancelprep/pkg/errors"
)

// CategoryVocabulary はカテゴリ列1つ分の学習結果
type CategoryVocabulary struct {
	// Column は元のカテゴリ列の名前
	Column string `json:"column"`

	// Reference は指標列を作らない基準カテゴリ
	Reference string `json:"reference"`

	// Categories は指標列を作るカテゴリ（昇順、Referenceを含まない）
	Categories []string `json:"categories"`
}

// IndicatorNames は指標列の名前を "<列名>_<カテゴリ>" の形式で返す
func (v CategoryVocabulary) IndicatorNames() []string {
	names := make([]string, len(v.Categories))
	for i, c := range v.Categories {
		names[i] = v.Column + "_" + c
	}
	return names
}

// FittedEncoding は訓練データから学習したエンコーディング
//
// 一度作られたら変更されず、Apply は任意のデータセットに対する純粋関数として働く。
// JSONとして保存・復元できる。
type FittedEncoding struct {
	// Numeric はそのまま出力される数値列（入力順）
	Numeric []string `json:"numeric"`

	// Categorical はカテゴリ列ごとの語彙（入力順）
	Categorical []CategoryVocabulary `json:"categorical"`
}

// FitEncoding learns the vocabulary of each categorical column from ds.
// Categories are sorted lexicographically and the first becomes the
// reference.
func FitEncoding(ds *dataset.Dataset, numeric, categorical []string) (*FittedEncoding, error) {
	const op = "FitEncoding"
	if err := ds.Schema().Require(op, dataset.Numeric, numeric...); err != nil {
		return nil, err
	}
	if err := ds.Schema().Require(op, dataset.Categorical, categorical...); err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, errors.NewEncodingStateError(op, "", "cannot fit on an empty dataset")
	}

	enc := &FittedEncoding{
		Numeric:     append([]string(nil), numeric...),
		Categorical: make([]CategoryVocabulary, len(categorical)),
	}
	for i, name := range categorical {
		values, err := ds.Strings(name)
		if err != nil {
			return nil, err
		}
		distinct := uniqueSorted(values)
		enc.Categorical[i] = CategoryVocabulary{
			Column:     name,
			Reference:  distinct[0],
			Categories: distinct[1:],
		}
	}
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	return enc, nil
}

// FeatureNames returns the output column names: numeric columns followed by
// the indicator columns of each categorical column.
func (e *FittedEncoding) FeatureNames() []string {
	names := append([]string(nil), e.Numeric...)
	for _, v := range e.Categorical {
		names = append(names, v.IndicatorNames()...)
	}
	return names
}

// Validate checks that the encoding is usable. It is called after fitting
// and after loading a persisted encoding.
func (e *FittedEncoding) Validate() error {
	const op = "FittedEncoding.Validate"

	sources := make(map[string]bool, len(e.Numeric)+len(e.Categorical))
	for _, name := range e.Numeric {
		if err := markUnique(op, sources, name, "listed more than once"); err != nil {
			return err
		}
	}
	for _, v := range e.Categorical {
		if err := markUnique(op, sources, v.Column, "listed more than once"); err != nil {
			return err
		}
		for _, c := range v.Categories {
			if c == v.Reference {
				return errors.NewEncodingStateError(op, v.Column,
					fmt.Sprintf("reference category %q also has an indicator column", c))
			}
		}
	}

	names := e.FeatureNames()
	if len(names) == 0 {
		return errors.NewEncodingStateError(op, "", "encoding yields no feature columns")
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if err := markUnique(op, seen, name, "indicator name collides with another output column"); err != nil {
			return err
		}
	}
	return nil
}

// Apply encodes ds. Categorical values absent from the vocabulary, including
// the reference, produce all-zero indicators.
func (e *FittedEncoding) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	const op = "FittedEncoding.Apply"
	if err := e.requireColumns(op, ds); err != nil {
		return nil, err
	}

	out := make([]dataset.Series, 0, len(e.Numeric)+len(e.Categorical))
	for _, name := range e.Numeric {
		s, err := ds.Series(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	for _, v := range e.Categorical {
		values, err := ds.Strings(v.Column)
		if err != nil {
			return nil, err
		}
		position := make(map[string]int, len(v.Categories))
		indicators := make([][]float64, len(v.Categories))
		for k, c := range v.Categories {
			position[c] = k
			indicators[k] = make([]float64, len(values))
		}
		for i, value := range values {
			if k, ok := position[value]; ok {
				indicators[k][i] = 1
			}
		}
		for k, name := range v.IndicatorNames() {
			out = append(out, dataset.NumericSeries(name, indicators[k]))
		}
	}
	return dataset.New(out...)
}

// Unseen counts, per categorical column, the rows of ds whose value is
// neither the reference nor one of the indicator categories.
func (e *FittedEncoding) Unseen(ds *dataset.Dataset) (map[string]int, error) {
	if err := e.requireColumns("FittedEncoding.Unseen", ds); err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(e.Categorical))
	for _, v := range e.Categorical {
		values, err := ds.Strings(v.Column)
		if err != nil {
			return nil, err
		}
		known := make(map[string]bool, len(v.Categories)+1)
		known[v.Reference] = true
		for _, c := range v.Categories {
			known[c] = true
		}
		for _, value := range values {
			if !known[value] {
				counts[v.Column]++
			}
		}
	}
	return counts, nil
}

// Clone returns a deep copy.
func (e *FittedEncoding) Clone() *FittedEncoding {
	c := &FittedEncoding{
		Numeric:     append([]string(nil), e.Numeric...),
		Categorical: make([]CategoryVocabulary, len(e.Categorical)),
	}
	for i, v := range e.Categorical {
		c.Categorical[i] = CategoryVocabulary{
			Column:     v.Column,
			Reference:  v.Reference,
			Categories: append([]string(nil), v.Categories...),
		}
	}
	return c
}

func (e *FittedEncoding) requireColumns(op string, ds *dataset.Dataset) error {
	if err := ds.Schema().Require(op, dataset.Numeric, e.Numeric...); err != nil {
		return err
	}
	for _, v := range e.Categorical {
		if err := ds.Schema().Require(op, dataset.Categorical, v.Column); err != nil {
			return err
		}
	}
	return nil
}

// OneHotEncoder はscikit-learn互換のワンホットエンコーダー
// 数値列はそのまま通し、カテゴリ列を基準カテゴリを除いた指標列に変換する
type OneHotEncoder struct {
	model.BaseEstimator

	// NumericColumns はそのまま出力する数値列
	NumericColumns []string

	// CategoricalColumns はエンコードするカテゴリ列
	CategoricalColumns []string

	encoding *FittedEncoding
}

var (
	_ model.Transformer = (*OneHotEncoder)(nil)
	_ model.ParamGetter = (*OneHotEncoder)(nil)
)

// NewOneHotEncoder は新しいOneHotEncoderを作成する
//
// パラメータ:
//   - numeric: 出力にそのまま含める数値列（順序を保持）
//   - categorical: ワンホットエンコードするカテゴリ列（順序を保持）
//
// 戻り値:
//   - *OneHotEncoder: 新しいOneHotEncoderインスタンス
//
// 使用例:
//
//	enc := preprocessing.NewOneHotEncoder([]string{"lead_time"}, []string{"hotel"})
//	err := enc.Fit(train)
//	trainX, err := enc.Transform(train)
//	testX, err := enc.Transform(test)
func NewOneHotEncoder(numeric, categorical []string) *OneHotEncoder {
	return &OneHotEncoder{
		NumericColumns:     append([]string(nil), numeric...),
		CategoricalColumns: append([]string(nil), categorical...),
	}
}

// Fit は訓練データからカテゴリの語彙を学習する
//
// パラメータ:
//   - ds: 訓練データ
//
// 戻り値:
//   - error: 列が存在しない、型が一致しない、またはデータが空の場合
func (o *OneHotEncoder) Fit(ds *dataset.Dataset) error {
	enc, err := FitEncoding(ds, o.NumericColumns, o.CategoricalColumns)
	if err != nil {
		return err
	}
	o.encoding = enc
	o.SetFitted()
	return nil
}

// Transform は学習済みの語彙を使ってデータを変換する
//
// パラメータ:
//   - ds: 変換するデータ
//
// 戻り値:
//   - *dataset.Dataset: 数値のみのデータセット
//   - error: 未学習、または列が一致しない場合
func (o *OneHotEncoder) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if err := o.RequireFitted("OneHotEncoder", "Transform"); err != nil {
		return nil, err
	}
	return o.encoding.Apply(ds)
}

// FitTransform は学習と変換を同時に実行する
func (o *OneHotEncoder) FitTransform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if err := o.Fit(ds); err != nil {
		return nil, err
	}
	return o.Transform(ds)
}

// Encoding は学習結果のコピーを返す。未学習の場合はEncodingStateError。
func (o *OneHotEncoder) Encoding() (*FittedEncoding, error) {
	if err := o.RequireFitted("OneHotEncoder", "Encoding"); err != nil {
		return nil, err
	}
	return o.encoding.Clone(), nil
}

// SetEncoding は保存済みの学習結果を読み込んで学習済み状態にする
func (o *OneHotEncoder) SetEncoding(enc *FittedEncoding) error {
	if enc == nil {
		return errors.NewEncodingStateError("OneHotEncoder.SetEncoding", "", "encoding is nil")
	}
	if err := enc.Validate(); err != nil {
		return err
	}
	o.encoding = enc.Clone()
	o.NumericColumns = append([]string(nil), enc.Numeric...)
	o.CategoricalColumns = make([]string, len(enc.Categorical))
	for i, v := range enc.Categorical {
		o.CategoricalColumns[i] = v.Column
	}
	o.SetFitted()
	return nil
}

// GetFeatureNamesOut は出力列の名前を返す
func (o *OneHotEncoder) GetFeatureNamesOut() ([]string, error) {
	if err := o.RequireFitted("OneHotEncoder", "GetFeatureNamesOut"); err != nil {
		return nil, err
	}
	return o.encoding.FeatureNames(), nil
}

// GetParams はパラメータを取得する
func (o *OneHotEncoder) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"numeric_columns":     append([]string(nil), o.NumericColumns...),
		"categorical_columns": append([]string(nil), o.CategoricalColumns...),
		"drop":                "first",
	}
}

// String は文字列表現を返す
func (o *OneHotEncoder) String() string {
	if !o.IsFitted() {
		return fmt.Sprintf("OneHotEncoder(numeric=[%s], categorical=[%s], fitted=false)",
			strings.Join(o.NumericColumns, ", "), strings.Join(o.CategoricalColumns, ", "))
	}
	return fmt.Sprintf("OneHotEncoder(numeric=[%s], categorical=[%s], n_features_out=%d)",
		strings.Join(o.NumericColumns, ", "), strings.Join(o.CategoricalColumns, ", "),
		len(o.encoding.FeatureNames()))
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func markUnique(op string, seen map[string]bool, name, reason string) error {
	if name == "" {
		return errors.NewEncodingStateError(op, name, "column name is empty")
	}
	if seen[name] {
		return errors.NewEncodingStateError(op, name, reason)
	}
	seen[name] = true
	return nil
}
