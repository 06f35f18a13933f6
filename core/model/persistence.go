package model

import (
	"io"
	"os"

	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/goccy/go-json"
)

// SaveJSON は学習済みの状態をJSONとしてio.Writerに書き出す
//
// パラメータ:
//   - v: 保存する値（JSONタグ付きの構造体）
//   - w: 保存先のWriter
//
// 戻り値:
//   - error: 保存に失敗した場合のエラー
func SaveJSON(v interface{}, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return errors.NewModelError("SaveJSON", "failed to encode", err)
	}
	return nil
}

// LoadJSON はio.ReaderからJSONを読み込む
//
// パラメータ:
//   - v: 読み込み先（ポインタ）
//   - r: 読み込み元のReader
//
// 戻り値:
//   - error: 読み込みに失敗した場合のエラー
func LoadJSON(v interface{}, r io.Reader) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return errors.NewModelError("LoadJSON", "failed to decode", err)
	}
	return nil
}

// SaveJSONFile は値をファイルに保存する
//
// 使用例:
//
//	err := model.SaveJSONFile(encoding, "out/encoding.json")
func SaveJSONFile(v interface{}, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.NewModelError("SaveJSONFile", "failed to create file", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.NewModelError("SaveJSONFile", "failed to close file", cerr)
		}
	}()
	return SaveJSON(v, file)
}

// LoadJSONFile はファイルから値を読み込む
func LoadJSONFile(v interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.NewModelError("LoadJSONFile", "failed to open file", err)
	}
	defer file.Close()
	return LoadJSON(v, file)
}
