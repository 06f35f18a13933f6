package model

import "github.com/YuminosukeSato/cancelprep/dataset"

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(ds *dataset.Dataset) error

	// Transform はデータを変換する
	Transform(ds *dataset.Dataset) (*dataset.Dataset, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(ds *dataset.Dataset) (*dataset.Dataset, error)
}

// Resampler は行の集合を入れ替える（件数が変わりうる）変換のインターフェース
type Resampler interface {
	// Resample は入力を変更せずに新しいデータセットを返す
	Resample(ds *dataset.Dataset) (*dataset.Dataset, error)
}

// ParamGetter はパラメータを公開する変換器のインターフェース
type ParamGetter interface {
	GetParams() map[string]interface{}
}
