// Package dataset provides an immutable, typed, in-memory table.
//
// A Dataset is an ordered set of equally long columns, each described by a
// Column (name and Kind) in its Schema. Every operation returns a new Dataset
// and never shares backing slices with its input or with the caller.
package dataset

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/cancelprep/pkg/errors"
)

// Kind is the value type of a column.
type Kind int

const (
	// Numeric columns hold float64 values.
	Numeric Kind = iota
	// Categorical columns hold string values.
	Categorical
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column describes one column of a Schema.
type Column struct {
	Name string
	Kind Kind
}

// Schema is an ordered list of uniquely named columns.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a Schema. Duplicate or empty names are rejected.
func NewSchema(columns ...Column) (Schema, error) {
	s := Schema{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if c.Name == "" {
			return Schema{}, errors.NewValidationError("column.name", "must not be empty", i)
		}
		if _, dup := s.index[c.Name]; dup {
			return Schema{}, errors.NewValidationError("column.name", "duplicate column name", c.Name)
		}
		s.columns[i] = c
		s.index[c.Name] = i
	}
	return s, nil
}

// Len returns the number of columns.
func (s Schema) Len() int {
	return len(s.columns)
}

// Columns returns a copy of the column descriptors in order.
func (s Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column with the given name exists.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Lookup returns the descriptor and position of a column, or a
// MissingColumnError tagged with op.
func (s Schema) Lookup(op, name string) (Column, int, error) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, -1, errors.NewMissingColumnError(op, name)
	}
	return s.columns[i], i, nil
}

// Require checks that every name exists and has the wanted kind. A missing
// name yields MissingColumnError; a kind mismatch yields EncodingStateError.
func (s Schema) Require(op string, kind Kind, names ...string) error {
	for _, name := range names {
		c, _, err := s.Lookup(op, name)
		if err != nil {
			return err
		}
		if c.Kind != kind {
			return errors.NewEncodingStateError(op, name,
				fmt.Sprintf("declared %s but stored as %s", kind, c.Kind))
		}
	}
	return nil
}

// Equal reports whether two schemas list the same columns in the same order.
func (s Schema) Equal(other Schema) bool {
	if len(s.columns) != len(other.columns) {
		return false
	}
	for i := range s.columns {
		if s.columns[i] != other.columns[i] {
			return false
		}
	}
	return true
}

// String renders the schema as "name:kind, ...".
func (s Schema) String() string {
	parts := make([]string, len(s.columns))
	for i, c := range s.columns {
		parts[i] = c.Name + ":" + c.Kind.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
