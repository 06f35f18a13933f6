package preprocessing

import (
	"bytes"
	"testing"

	"github.com/YuminosukeSato/cancelprep/core/model"
	"github.com/YuminosukeSato/cancelprep/dataset"
	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neighborhoods(t *testing.T, area []float64, values ...string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.NumericSeries("LotArea", area),
		dataset.CategoricalSeries("Neighborhood", values),
	)
	require.NoError(t, err)
	return ds
}

func TestOneHotEncoderReferenceAndUnseen(t *testing.T) {
	train := neighborhoods(t, []float64{8450, 9600, 11250}, "A", "A", "B")
	test := neighborhoods(t, []float64{9550}, "C")

	enc := NewOneHotEncoder([]string{"LotArea"}, []string{"Neighborhood"})
	trainOut, err := enc.FitTransform(train)
	require.NoError(t, err)

	fitted, err := enc.Encoding()
	require.NoError(t, err)
	assert.Equal(t, "A", fitted.Categorical[0].Reference)
	assert.Equal(t, []string{"LotArea", "Neighborhood_B"}, trainOut.Names())

	indicator, _ := trainOut.Floats("Neighborhood_B")
	assert.Equal(t, []float64{0, 0, 1}, indicator)

	testOut, err := enc.Transform(test)
	require.NoError(t, err)
	assert.Equal(t, trainOut.Names(), testOut.Names())
	indicator, _ = testOut.Floats("Neighborhood_B")
	assert.Equal(t, []float64{0}, indicator)

	unseen, err := fitted.Unseen(test)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Neighborhood": 1}, unseen)
}

func TestOneHotEncoderNotFitted(t *testing.T) {
	enc := NewOneHotEncoder([]string{"LotArea"}, []string{"Neighborhood"})

	_, err := enc.Transform(neighborhoods(t, []float64{1}, "A"))
	var stateErr *errors.EncodingStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, "OneHotEncoder.Transform", stateErr.Op)

	_, err = enc.Encoding()
	assert.True(t, errors.As(err, &stateErr))

	_, err = enc.GetFeatureNamesOut()
	assert.True(t, errors.As(err, &stateErr))
	assert.Contains(t, enc.String(), "fitted=false")
}

func TestOneHotEncoderKindMismatch(t *testing.T) {
	train := neighborhoods(t, []float64{1, 2}, "A", "B")

	err := NewOneHotEncoder(nil, []string{"LotArea"}).Fit(train)
	var stateErr *errors.EncodingStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, "LotArea", stateErr.Column)

	err = NewOneHotEncoder([]string{"Neighborhood"}, nil).Fit(train)
	assert.True(t, errors.As(err, &stateErr))
}

func TestOneHotEncoderCategoryOrder(t *testing.T) {
	ds, err := dataset.New(
		dataset.CategoricalSeries("hotel", []string{"Resort Hotel", "City Hotel", "Resort Hotel"}),
		dataset.CategoricalSeries("deposit_type", []string{"Refundable", "No Deposit", "Non Refund"}),
	)
	require.NoError(t, err)

	enc := NewOneHotEncoder(nil, []string{"hotel", "deposit_type"})
	out, err := enc.FitTransform(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"hotel_Resort Hotel", "deposit_type_Non Refund", "deposit_type_Refundable"}, out.Names())

	names, err := enc.GetFeatureNamesOut()
	require.NoError(t, err)
	assert.Equal(t, out.Names(), names)
	assert.Equal(t, "OneHotEncoder(numeric=[], categorical=[hotel, deposit_type], n_features_out=3)", enc.String())
}

func TestFittedEncodingValidate(t *testing.T) {
	tests := []struct {
		name string
		enc  FittedEncoding
	}{
		{
			name: "indicator collides with numeric column",
			enc: FittedEncoding{
				Numeric:     []string{"hotel_City"},
				Categorical: []CategoryVocabulary{{Column: "hotel", Reference: "Resort", Categories: []string{"City"}}},
			},
		},
		{
			name: "reference has indicator",
			enc: FittedEncoding{
				Categorical: []CategoryVocabulary{{Column: "hotel", Reference: "City", Categories: []string{"City"}}},
			},
		},
		{
			name: "duplicate source column",
			enc: FittedEncoding{
				Numeric: []string{"adr", "adr"},
			},
		},
		{
			name: "no output columns",
			enc: FittedEncoding{
				Categorical: []CategoryVocabulary{{Column: "hotel", Reference: "City"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stateErr *errors.EncodingStateError
			assert.True(t, errors.As(tt.enc.Validate(), &stateErr))
		})
	}
}

func TestFittedEncodingPersistence(t *testing.T) {
	train := neighborhoods(t, []float64{8450, 9600, 11250}, "A", "C", "B")
	test := neighborhoods(t, []float64{1, 2}, "B", "D")

	enc := NewOneHotEncoder([]string{"LotArea"}, []string{"Neighborhood"})
	require.NoError(t, enc.Fit(train))
	fitted, err := enc.Encoding()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, model.SaveJSON(fitted, &buf))
	assert.Contains(t, buf.String(), `"reference": "A"`)

	var loaded FittedEncoding
	require.NoError(t, model.LoadJSON(&loaded, &buf))
	assert.Equal(t, fitted, &loaded)

	restored := NewOneHotEncoder(nil, nil)
	require.NoError(t, restored.SetEncoding(&loaded))
	assert.Equal(t, []string{"Neighborhood"}, restored.CategoricalColumns)

	want, err := enc.Transform(test)
	require.NoError(t, err)
	got, err := restored.Transform(test)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	assert.Error(t, restored.SetEncoding(nil))
}

func TestFittedEncodingIsImmutable(t *testing.T) {
	enc := NewOneHotEncoder(nil, []string{"Neighborhood"})
	require.NoError(t, enc.Fit(neighborhoods(t, []float64{1, 2, 3}, "A", "B", "C")))

	first, err := enc.Encoding()
	require.NoError(t, err)
	first.Categorical[0].Categories[0] = "Z"

	second, err := enc.Encoding()
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, second.Categorical[0].Categories)
}
