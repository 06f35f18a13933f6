package dataset

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Series is a named, typed column used to construct a Dataset.
type Series struct {
	name string
	kind Kind
	nums []float64
	strs []string
}

// NumericSeries returns a numeric Series holding a copy of values.
func NumericSeries(name string, values []float64) Series {
	nums := make([]float64, len(values))
	copy(nums, values)
	return Series{name: name, kind: Numeric, nums: nums}
}

// CategoricalSeries returns a categorical Series holding a copy of values.
func CategoricalSeries(name string, values []string) Series {
	strs := make([]string, len(values))
	copy(strs, values)
	return Series{name: name, kind: Categorical, strs: strs}
}

// Name returns the column name.
func (s Series) Name() string { return s.name }

// Kind returns the column kind.
func (s Series) Kind() Kind { return s.kind }

// Len returns the number of values.
func (s Series) Len() int {
	if s.kind == Numeric {
		return len(s.nums)
	}
	return len(s.strs)
}

// Dataset is an immutable column-major table.
type Dataset struct {
	schema Schema
	nums   [][]float64 // indexed by column position; nil for categorical columns
	strs   [][]string  // indexed by column position; nil for numeric columns
	rows   int
}

// New builds a Dataset from series. All series must have the same length and
// distinct names.
func New(series ...Series) (*Dataset, error) {
	columns := make([]Column, len(series))
	for i, s := range series {
		columns[i] = Column{Name: s.name, Kind: s.kind}
	}
	schema, err := NewSchema(columns...)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		schema: schema,
		nums:   make([][]float64, len(series)),
		strs:   make([][]string, len(series)),
	}
	for i, s := range series {
		if i == 0 {
			ds.rows = s.Len()
		} else if s.Len() != ds.rows {
			return nil, errors.NewDimensionError(fmt.Sprintf("dataset.New(%s)", s.name), ds.rows, s.Len(), 0)
		}
		// Series constructors already copied; copy again so a Series value can
		// be reused for several datasets without aliasing.
		if s.kind == Numeric {
			ds.nums[i] = append([]float64(nil), s.nums...)
		} else {
			ds.strs[i] = append([]string(nil), s.strs...)
		}
	}
	return ds, nil
}

// Schema returns the dataset schema.
func (d *Dataset) Schema() Schema { return d.schema }

// Len returns the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Names returns the column names in order.
func (d *Dataset) Names() []string { return d.schema.Names() }

// Floats returns a copy of a numeric column.
func (d *Dataset) Floats(name string) ([]float64, error) {
	c, i, err := d.schema.Lookup("Dataset.Floats", name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Numeric {
		return nil, errors.NewEncodingStateError("Dataset.Floats", name, "column is categorical")
	}
	return append([]float64(nil), d.nums[i]...), nil
}

// Strings returns a copy of a categorical column.
func (d *Dataset) Strings(name string) ([]string, error) {
	c, i, err := d.schema.Lookup("Dataset.Strings", name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Categorical {
		return nil, errors.NewEncodingStateError("Dataset.Strings", name, "column is numeric")
	}
	return append([]string(nil), d.strs[i]...), nil
}

// Series returns a copy of a column as a Series.
func (d *Dataset) Series(name string) (Series, error) {
	c, i, err := d.schema.Lookup("Dataset.Series", name)
	if err != nil {
		return Series{}, err
	}
	return d.seriesAt(i, c), nil
}

func (d *Dataset) seriesAt(i int, c Column) Series {
	if c.Kind == Numeric {
		return NumericSeries(c.Name, d.nums[i])
	}
	return CategoricalSeries(c.Name, d.strs[i])
}

// Row returns row i as a map from column name to value (float64 or string).
func (d *Dataset) Row(i int) (map[string]interface{}, error) {
	if i < 0 || i >= d.rows {
		return nil, errors.NewValidationError("row", "index out of range", i)
	}
	row := make(map[string]interface{}, d.schema.Len())
	for j, c := range d.schema.columns {
		if c.Kind == Numeric {
			row[c.Name] = d.nums[j][i]
		} else {
			row[c.Name] = d.strs[j][i]
		}
	}
	return row, nil
}

// Take returns the rows at the given positions, in that order. Positions may
// repeat.
func (d *Dataset) Take(indices []int) (*Dataset, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= d.rows {
			return nil, errors.NewValidationError("indices", "row index out of range", idx)
		}
	}
	out := &Dataset{
		schema: d.schema,
		nums:   make([][]float64, d.schema.Len()),
		strs:   make([][]string, d.schema.Len()),
		rows:   len(indices),
	}
	for j, c := range d.schema.columns {
		if c.Kind == Numeric {
			col := make([]float64, len(indices))
			for k, idx := range indices {
				col[k] = d.nums[j][idx]
			}
			out.nums[j] = col
			continue
		}
		col := make([]string, len(indices))
		for k, idx := range indices {
			col[k] = d.strs[j][idx]
		}
		out.strs[j] = col
	}
	return out, nil
}

// Select projects the dataset onto names, in the given order.
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	series := make([]Series, len(names))
	for k, name := range names {
		c, i, err := d.schema.Lookup("Dataset.Select", name)
		if err != nil {
			return nil, err
		}
		series[k] = d.seriesAt(i, c)
	}
	if len(series) == 0 {
		return &Dataset{schema: Schema{index: map[string]int{}}, rows: d.rows}, nil
	}
	return New(series...)
}

// Drop returns the dataset without the named columns.
func (d *Dataset) Drop(names ...string) (*Dataset, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if !d.schema.Has(name) {
			return nil, errors.NewMissingColumnError("Dataset.Drop", name)
		}
		drop[name] = true
	}
	keep := make([]string, 0, d.schema.Len())
	for _, name := range d.schema.Names() {
		if !drop[name] {
			keep = append(keep, name)
		}
	}
	return d.Select(keep...)
}

// Concat appends the rows of other below the rows of d. Both must share the
// same schema.
func (d *Dataset) Concat(other *Dataset) (*Dataset, error) {
	if !d.schema.Equal(other.schema) {
		return nil, errors.NewEncodingStateError("Dataset.Concat", "",
			fmt.Sprintf("schema mismatch: %s vs %s", d.schema, other.schema))
	}
	out := &Dataset{
		schema: d.schema,
		nums:   make([][]float64, d.schema.Len()),
		strs:   make([][]string, d.schema.Len()),
		rows:   d.rows + other.rows,
	}
	for j, c := range d.schema.columns {
		if c.Kind == Numeric {
			col := make([]float64, 0, out.rows)
			out.nums[j] = append(append(col, d.nums[j]...), other.nums[j]...)
			continue
		}
		col := make([]string, 0, out.rows)
		out.strs[j] = append(append(col, d.strs[j]...), other.strs[j]...)
	}
	return out, nil
}

// Equal reports whether both datasets have the same schema and values. NaN
// values compare equal to each other.
func (d *Dataset) Equal(other *Dataset) bool {
	if other == nil || d.rows != other.rows || !d.schema.Equal(other.schema) {
		return false
	}
	for j, c := range d.schema.columns {
		if c.Kind == Numeric {
			for i, v := range d.nums[j] {
				w := other.nums[j][i]
				if v != w && !(math.IsNaN(v) && math.IsNaN(w)) {
					return false
				}
			}
			continue
		}
		for i, v := range d.strs[j] {
			if v != other.strs[j][i] {
				return false
			}
		}
	}
	return true
}

// Matrix converts an all-numeric dataset into a rows × columns gonum matrix.
func (d *Dataset) Matrix() (*mat.Dense, error) {
	if d.rows == 0 || d.schema.Len() == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "Dataset.Matrix: %d rows × %d columns", d.rows, d.schema.Len())
	}
	m := mat.NewDense(d.rows, d.schema.Len(), nil)
	for j, c := range d.schema.columns {
		if c.Kind != Numeric {
			return nil, errors.NewEncodingStateError("Dataset.Matrix", c.Name, "column is categorical")
		}
		m.SetCol(j, d.nums[j])
	}
	return m, nil
}
