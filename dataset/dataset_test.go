package dataset

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hotels(t *testing.T) *Dataset {
	t.Helper()
	ds, err := New(
		NumericSeries("lead_time", []float64{342, 737, 7, 13}),
		CategoricalSeries("hotel", []string{"Resort Hotel", "Resort Hotel", "City Hotel", "City Hotel"}),
		NumericSeries("is_canceled", []float64{0, 0, 1, 0}),
	)
	require.NoError(t, err)
	return ds
}

func TestNew(t *testing.T) {
	ds := hotels(t)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"lead_time", "hotel", "is_canceled"}, ds.Names())
	assert.Equal(t, "[lead_time:numeric, hotel:categorical, is_canceled:numeric]", ds.Schema().String())
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		series []Series
		check  func(t *testing.T, err error)
	}{
		{
			name: "length mismatch",
			series: []Series{
				NumericSeries("a", []float64{1, 2}),
				NumericSeries("b", []float64{1}),
			},
			check: func(t *testing.T, err error) {
				var dimErr *errors.DimensionError
				assert.True(t, errors.As(err, &dimErr))
			},
		},
		{
			name: "duplicate name",
			series: []Series{
				NumericSeries("a", []float64{1}),
				CategoricalSeries("a", []string{"x"}),
			},
			check: func(t *testing.T, err error) {
				var valErr *errors.ValidationError
				assert.True(t, errors.As(err, &valErr))
			},
		},
		{
			name:   "empty name",
			series: []Series{NumericSeries("", []float64{1})},
			check: func(t *testing.T, err error) {
				var valErr *errors.ValidationError
				assert.True(t, errors.As(err, &valErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.series...)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	values := []float64{1, 2, 3}
	ds, err := New(NumericSeries("x", values))
	require.NoError(t, err)

	values[0] = 99
	got, err := ds.Floats("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got)

	got[1] = 42
	again, _ := ds.Floats("x")
	assert.Equal(t, 2.0, again[1], "Floats must return a copy")
}

func TestColumnAccess(t *testing.T) {
	ds := hotels(t)

	_, err := ds.Floats("adr")
	var missing *errors.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "adr", missing.Column)

	_, err = ds.Floats("hotel")
	var stateErr *errors.EncodingStateError
	assert.True(t, errors.As(err, &stateErr))

	_, err = ds.Strings("lead_time")
	assert.True(t, errors.As(err, &stateErr))

	hotelsCol, err := ds.Strings("hotel")
	require.NoError(t, err)
	assert.Equal(t, "City Hotel", hotelsCol[2])
}

func TestRow(t *testing.T) {
	ds := hotels(t)

	row, err := ds.Row(2)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"lead_time":   7.0,
		"hotel":       "City Hotel",
		"is_canceled": 1.0,
	}, row)

	_, err = ds.Row(4)
	assert.Error(t, err)
}

func TestTake(t *testing.T) {
	ds := hotels(t)

	taken, err := ds.Take([]int{3, 0})
	require.NoError(t, err)
	lead, _ := taken.Floats("lead_time")
	hotel, _ := taken.Strings("hotel")
	assert.Equal(t, []float64{13, 342}, lead)
	assert.Equal(t, []string{"City Hotel", "Resort Hotel"}, hotel)
	assert.Equal(t, 4, ds.Len(), "input must be unchanged")

	_, err = ds.Take([]int{0, 4})
	assert.Error(t, err)

	empty, err := ds.Take(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.True(t, empty.Schema().Equal(ds.Schema()))
}

func TestSelectAndDrop(t *testing.T) {
	ds := hotels(t)

	sel, err := ds.Select("is_canceled", "lead_time")
	require.NoError(t, err)
	assert.Equal(t, []string{"is_canceled", "lead_time"}, sel.Names())
	assert.Equal(t, ds.Len(), sel.Len())

	_, err = ds.Select("lead_time", "Neighborhood")
	var missing *errors.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Neighborhood", missing.Column)

	dropped, err := ds.Drop("is_canceled")
	require.NoError(t, err)
	assert.Equal(t, []string{"lead_time", "hotel"}, dropped.Names())

	_, err = ds.Drop("nope")
	assert.True(t, errors.As(err, &missing))
}

func TestConcat(t *testing.T) {
	ds := hotels(t)
	head, _ := ds.Take([]int{0, 1})
	tail, _ := ds.Take([]int{2, 3})

	joined, err := head.Concat(tail)
	require.NoError(t, err)
	assert.True(t, joined.Equal(ds))

	other, _ := ds.Select("hotel")
	_, err = head.Concat(other)
	var stateErr *errors.EncodingStateError
	assert.True(t, errors.As(err, &stateErr))
}

func TestEqualTreatsNaNAsEqual(t *testing.T) {
	a, _ := New(NumericSeries("children", []float64{1, math.NaN()}))
	b, _ := New(NumericSeries("children", []float64{1, math.NaN()}))
	c, _ := New(NumericSeries("children", []float64{1, 2}))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestMatrix(t *testing.T) {
	ds := hotels(t)

	_, err := ds.Matrix()
	var stateErr *errors.EncodingStateError
	require.True(t, errors.As(err, &stateErr))

	numeric, _ := ds.Select("lead_time", "is_canceled")
	m, err := numeric.Matrix()
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 737.0, m.At(1, 0))
	assert.Equal(t, 1.0, m.At(2, 1))

	empty, _ := numeric.Take(nil)
	_, err = empty.Matrix()
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestSchemaRequire(t *testing.T) {
	s := hotels(t).Schema()

	assert.NoError(t, s.Require("op", Numeric, "lead_time", "is_canceled"))

	err := s.Require("op", Categorical, "lead_time")
	var stateErr *errors.EncodingStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, "lead_time", stateErr.Column)

	err = s.Require("op", Numeric, "adr")
	var missing *errors.MissingColumnError
	assert.True(t, errors.As(err, &missing))
}

func TestSeries(t *testing.T) {
	ds := hotels(t)

	s, err := ds.Series("hotel")
	require.NoError(t, err)
	assert.Equal(t, "hotel", s.Name())
	assert.Equal(t, Categorical, s.Kind())
	assert.Equal(t, 4, s.Len())

	rebuilt, err := New(s)
	require.NoError(t, err)
	want, _ := ds.Select("hotel")
	assert.True(t, rebuilt.Equal(want))

	_, err = ds.Series("adr")
	var missing *errors.MissingColumnError
	assert.True(t, errors.As(err, &missing))
}
