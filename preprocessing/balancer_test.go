package preprocessing

import (
	"fmt"
	"testing"

	"github.com/YuminosukeSato/cancelprep/dataset"
	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/YuminosukeSato/cancelprep/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bookings builds a dataset with nZero non-canceled rows followed by nOne
// canceled rows. booking_id is unique per row.
func bookings(t *testing.T, nZero, nOne int) *dataset.Dataset {
	t.Helper()
	n := nZero + nOne
	ids := make([]string, n)
	lead := make([]float64, n)
	label := make([]float64, n)
	for i := 0; i < n; i++ {
		ids[i] = fmt.Sprintf("b%03d", i)
		lead[i] = float64(i * 3)
		if i >= nZero {
			label[i] = 1
		}
	}
	ds, err := dataset.New(
		dataset.CategoricalSeries("booking_id", ids),
		dataset.NumericSeries("lead_time", lead),
		dataset.NumericSeries("is_canceled", label),
	)
	require.NoError(t, err)
	return ds
}

func countLabels(t *testing.T, ds *dataset.Dataset) (zeros, ones int) {
	t.Helper()
	labels, err := ds.Floats("is_canceled")
	require.NoError(t, err)
	for _, v := range labels {
		if v == 0 {
			zeros++
		} else {
			ones++
		}
	}
	return zeros, ones
}

func TestBalancerBalancesClasses(t *testing.T) {
	tests := []struct {
		name       string
		nZero      int
		nOne       int
		wantPerCls int
	}{
		{"majority zero", 30, 7, 7},
		{"majority one", 4, 11, 4},
		{"single minority row", 9, 1, 1},
		{"already balanced", 5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := bookings(t, tt.nZero, tt.nOne)
			out, err := NewBalancer("is_canceled", 42).Resample(ds)
			require.NoError(t, err)

			zeros, ones := countLabels(t, out)
			assert.Equal(t, tt.wantPerCls, zeros)
			assert.Equal(t, tt.wantPerCls, ones)
			assert.Equal(t, 2*tt.wantPerCls, out.Len())
			assert.Equal(t, tt.nZero+tt.nOne, ds.Len(), "input must be unchanged")
		})
	}
}

func TestBalancerReproducible(t *testing.T) {
	ds := bookings(t, 50, 12)

	a, err := Downsample(ds, "is_canceled", 7)
	require.NoError(t, err)
	b, err := Downsample(ds, "is_canceled", 7)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := Downsample(ds, "is_canceled", 8)
	require.NoError(t, err)
	assert.False(t, a.Equal(c), "a different seed should pick different rows")
}

func TestBalancerPreservesMinority(t *testing.T) {
	ds := bookings(t, 20, 6)
	out, err := Downsample(ds, "is_canceled", 42)
	require.NoError(t, err)

	// Minority rows follow the sampled majority rows, in input order.
	tail, err := out.Take([]int{6, 7, 8, 9, 10, 11})
	require.NoError(t, err)
	want, err := ds.Take([]int{20, 21, 22, 23, 24, 25})
	require.NoError(t, err)
	assert.True(t, tail.Equal(want))

	// Sampled majority rows are distinct input rows.
	ids, err := out.Strings("booking_id")
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, id := range ids[:6] {
		assert.False(t, seen[id], "row %s sampled twice", id)
		seen[id] = true
	}
}

func TestBalancerTieKeepsInputOrder(t *testing.T) {
	ds := bookings(t, 3, 3)
	out, err := Downsample(ds, "is_canceled", 99)
	require.NoError(t, err)
	assert.True(t, out.Equal(ds))
}

func TestBalancerErrors(t *testing.T) {
	allZero := bookings(t, 5, 0)
	allOne := bookings(t, 0, 5)
	empty := bookings(t, 0, 0)
	threeClasses, err := dataset.New(dataset.NumericSeries("is_canceled", []float64{0, 1, 2}))
	require.NoError(t, err)
	categorical, err := dataset.New(dataset.CategoricalSeries("is_canceled", []string{"0", "1"}))
	require.NoError(t, err)

	t.Run("always zero", func(t *testing.T) {
		_, err := Downsample(allZero, "is_canceled", 42)
		var emptyErr *errors.EmptyClassError
		require.True(t, errors.As(err, &emptyErr))
		assert.Equal(t, 1.0, emptyErr.Label)
		assert.Equal(t, "is_canceled", emptyErr.Column)
	})

	t.Run("always one", func(t *testing.T) {
		_, err := Downsample(allOne, "is_canceled", 42)
		var emptyErr *errors.EmptyClassError
		require.True(t, errors.As(err, &emptyErr))
		assert.Equal(t, 0.0, emptyErr.Label)
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, err := Downsample(empty, "is_canceled", 42)
		var emptyErr *errors.EmptyClassError
		assert.True(t, errors.As(err, &emptyErr))
	})

	t.Run("missing label", func(t *testing.T) {
		_, err := Downsample(allZero, "canceled", 42)
		var missing *errors.MissingColumnError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "canceled", missing.Column)
	})

	t.Run("third class", func(t *testing.T) {
		_, err := Downsample(threeClasses, "is_canceled", 42)
		var stateErr *errors.EncodingStateError
		assert.True(t, errors.As(err, &stateErr))
	})

	t.Run("categorical label", func(t *testing.T) {
		_, err := Downsample(categorical, "is_canceled", 42)
		var stateErr *errors.EncodingStateError
		assert.True(t, errors.As(err, &stateErr))
	})
}

func TestBalancerLogs(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	b := NewBalancer("is_canceled", 3, WithLogger(logger))

	_, err := b.Resample(bookings(t, 8, 2))
	require.NoError(t, err)

	assert.True(t, logger.ContainsMessage("Downsampled majority class"))
	assert.True(t, logger.ContainsField(log.MinorityKey, 2.0))
	assert.True(t, logger.ContainsField(log.MajorityKey, 8.0))
	assert.True(t, logger.ContainsField(log.RandomSeedKey, 3.0))
}

func TestBalancerParams(t *testing.T) {
	b := NewBalancer("is_canceled", 42)
	assert.Equal(t, map[string]interface{}{"label_column": "is_canceled", "seed": int64(42)}, b.GetParams())
	assert.Equal(t, `Balancer(label_column="is_canceled", seed=42)`, b.String())
}
