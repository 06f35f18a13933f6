package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyClassError(t *testing.T) {
	err := NewEmptyClassError("is_canceled", 1)

	// 基本的なエラーメッセージの確認
	want := "cancelprep: label column 'is_canceled' has no rows with value 1; both classes must be present"
	assert.Equal(t, want, err.Error())

	var emptyErr *EmptyClassError
	require.True(t, As(err, &emptyErr), "Error should be castable to *EmptyClassError")
	assert.Equal(t, 1.0, emptyErr.Label)

	// スタックトレースの存在確認
	formatted := fmt.Sprintf("%+v", err)
	assert.Contains(t, formatted, "errors_test.go")
}

func TestNewMissingColumnError(t *testing.T) {
	err := NewMissingColumnError("FeatureEncoder.Encode", "Neighborhood")

	want := "cancelprep: FeatureEncoder.Encode: column 'Neighborhood' not found in schema"
	assert.Equal(t, want, err.Error())

	var missing *MissingColumnError
	require.True(t, As(err, &missing))
	assert.Equal(t, "Neighborhood", missing.Column)
}

func TestNewEncodingStateError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		column  string
		reason  string
		wantMsg string
	}{
		{
			name:    "with column",
			op:      "OneHotEncoder.Fit",
			column:  "hotel",
			reason:  "declared categorical but stored as numeric",
			wantMsg: "cancelprep: OneHotEncoder.Fit: column 'hotel': declared categorical but stored as numeric",
		},
		{
			name:    "without column",
			op:      "OneHotEncoder.Transform",
			reason:  "encoder is not fitted yet. Call Fit() first",
			wantMsg: "cancelprep: OneHotEncoder.Transform: encoder is not fitted yet. Call Fit() first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEncodingStateError(tt.op, tt.column, tt.reason)
			assert.Equal(t, tt.wantMsg, err.Error())

			var stateErr *EncodingStateError
			assert.True(t, As(err, &stateErr))
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("OneHotEncoder", "Transform")

	var stateErr *EncodingStateError
	require.True(t, As(err, &stateErr), "not-fitted must surface as *EncodingStateError")
	assert.Equal(t, "OneHotEncoder.Transform", stateErr.Op)
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("dataset.New", 10, 9, 0)

	want := "cancelprep: dataset.New: dimension mismatch on axis 0 (rows). Expected 10, got 9"
	assert.Equal(t, want, err.Error())

	var dimErr *DimensionError
	assert.True(t, As(err, &dimErr))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("test_size", "must be in (0, 1)", 1.5)

	assert.Equal(t, "cancelprep: validation failed for parameter 'test_size': must be in (0, 1) (got: 1.5)", err.Error())
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var missing *MissingColumnError
	require.True(t, As(NewMissingColumnError("Select", "adr"), &missing))
	logger.Error().EmbedObject(missing).Msg("failed")

	out := buf.String()
	assert.Contains(t, out, `"column":"adr"`)
	assert.Contains(t, out, `"type":"MissingColumnError"`)
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d rows", "ClassBalance", 1)

	assert.True(t, Is(wrapped, ErrEmptyData))
	assert.True(t, strings.Contains(wrapped.Error(), "in ClassBalance: expected 1 rows"))
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("SaveJSON", "encode failed", err2)

	assert.Contains(t, err3.Error(), "base error")
	assert.True(t, Is(err3, err1))

	// スタックトレースの確認（詳細表示）
	formatted := fmt.Sprintf("%+v", err3)
	assert.Contains(t, formatted, "errors_test.go")
}

func TestWarn(t *testing.T) {
	var got []error
	SetZerologWarnFunc(func(w error) { got = append(got, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewDataConversionWarning("arrival_date_year", "int", "string", "declared categorical"))

	require.Len(t, got, 1)
	assert.Equal(t, "column 'arrival_date_year' converted from int to string. Reason: declared categorical", got[0].Error())
}

func TestSetWarningHandler(t *testing.T) {
	var got []error
	prev := warningHandler
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(prev)

	Warn(NewDataConversionWarning("agent", "int", "string", "declared categorical"))
	require.Len(t, got, 1)

	var conv *DataConversionWarning
	require.True(t, As(got[0], &conv))
	assert.Equal(t, "agent", conv.Column)

	SetZerologWarnFunc(func(error) {})
	defer SetZerologWarnFunc(nil)
	Warn(NewDataConversionWarning("company", "int", "string", "declared categorical"))
	assert.Len(t, got, 1, "the zerolog hook takes precedence over the handler")
}
