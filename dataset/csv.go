package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/YuminosukeSato/cancelprep/pkg/log"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ReadOptions declares column kinds for CSV loading. Columns not listed are
// typed by detection: columns whose values all parse as numbers become
// Numeric, everything else Categorical.
type ReadOptions struct {
	Numeric     []string
	Categorical []string
	Delimiter   rune
}

// missingMarkers load as NaN in numeric columns. Categorical columns keep
// them verbatim, so a category literally named "NA" survives.
var missingMarkers = map[string]bool{
	"":      true,
	"NA":    true,
	"NaN":   true,
	"<nil>": true,
}

// ReadCSV loads a headed CSV stream into a Dataset. A value in a declared
// numeric column that is neither a number nor a missing marker is an
// EncodingStateError.
func ReadCSV(r io.Reader, opts ReadOptions) (*Dataset, error) {
	declared := make(map[string]Kind, len(opts.Numeric)+len(opts.Categorical))
	for _, name := range opts.Numeric {
		declared[name] = Numeric
	}
	for _, name := range opts.Categorical {
		declared[name] = Categorical
	}

	// Every column is read as raw strings; typing happens below so that
	// missing markers only apply to numeric columns.
	loadOpts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	}
	if opts.Delimiter != 0 {
		loadOpts = append(loadOpts, dataframe.WithDelimiter(opts.Delimiter))
	}

	df := dataframe.ReadCSV(bufio.NewReader(r), loadOpts...)
	if df.Err != nil {
		return nil, errors.NewModelError("dataset.ReadCSV", "parse failed", df.Err)
	}

	names := df.Names()
	cols := make([]Series, len(names))
	for i, name := range names {
		records := df.Col(name).Records()
		kind, isDeclared := declared[name]
		switch {
		case isDeclared && kind == Numeric:
			values, err := parseNumeric(name, records)
			if err != nil {
				return nil, err
			}
			cols[i] = NumericSeries(name, values)
		case isDeclared:
			if looksNumeric(records) {
				errors.Warn(errors.NewDataConversionWarning(name, "numeric", "categorical", "declared categorical"))
			}
			cols[i] = CategoricalSeries(name, records)
		case looksNumeric(records):
			values, err := parseNumeric(name, records)
			if err != nil {
				return nil, err
			}
			cols[i] = NumericSeries(name, values)
		default:
			cols[i] = CategoricalSeries(name, records)
		}
	}

	ds, err := New(cols...)
	if err != nil {
		return nil, err
	}
	log.GetLoggerWithName("dataset.csv").Debug("Loaded CSV",
		log.OperationKey, log.OperationLoad,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, ds.Schema().Len(),
	)
	return ds, nil
}

// ReadCSVFile opens path and calls ReadCSV.
func ReadCSVFile(path string, opts ReadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewModelError("dataset.ReadCSVFile", "open failed", err)
	}
	defer f.Close()
	return ReadCSV(f, opts)
}

// WriteCSV writes the dataset with a header row. Numeric values are written
// in the shortest form that parses back to the same float64.
func WriteCSV(w io.Writer, ds *Dataset) error {
	if ds.Schema().Len() == 0 {
		return errors.NewValidationError("dataset", "cannot write a dataset without columns", ds.Len())
	}
	cols := make([]series.Series, 0, ds.Schema().Len())
	for j, c := range ds.schema.columns {
		var records []string
		if c.Kind == Numeric {
			records = make([]string, len(ds.nums[j]))
			for i, v := range ds.nums[j] {
				records[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		} else {
			records = ds.strs[j]
		}
		cols = append(cols, series.New(records, series.String, c.Name))
	}

	df := dataframe.New(cols...)
	if df.Err != nil {
		return errors.NewModelError("dataset.WriteCSV", "build frame failed", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return errors.NewModelError("dataset.WriteCSV", "write failed", err)
	}
	return nil
}

// WriteCSVFile creates path and calls WriteCSV.
func WriteCSVFile(path string, ds *Dataset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewModelError("dataset.WriteCSVFile", "create failed", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.NewModelError("dataset.WriteCSVFile", "close failed", cerr)
		}
	}()
	return WriteCSV(f, ds)
}

// parseNumeric converts records to floats, mapping missing markers to NaN.
func parseNumeric(column string, records []string) ([]float64, error) {
	values := make([]float64, len(records))
	for i, r := range records {
		if missingMarkers[r] {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, errors.NewEncodingStateError("dataset.ReadCSV", column,
				fmt.Sprintf("declared numeric but row %d holds %q", i, r))
		}
		values[i] = v
	}
	return values, nil
}

// looksNumeric reports whether every record is a number or a missing marker
// and at least one is a number.
func looksNumeric(records []string) bool {
	numbers := 0
	for _, r := range records {
		if missingMarkers[r] {
			continue
		}
		if _, err := strconv.ParseFloat(r, 64); err != nil {
			return false
		}
		numbers++
	}
	return numbers > 0
}
