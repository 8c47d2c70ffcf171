package io

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Kind is the storage type of a column.
type Kind uint8

const (
	// String columns hold raw categorical text.
	String Kind = iota
	// Float columns hold continuous values; missing cells are NaN.
	Float
	// Int columns hold nullable integers, typically 0/1 encodings.
	Int
	// Bool columns hold indicator values produced by categorical expansion.
	Bool
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Float:
		return "float"
	case Int:
		return "int"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Column is one named, typed column with an explicit null mask. Exactly one
// of the value slices is populated, selected by Kind; Null always has one
// entry per row.
type Column struct {
	Name   string
	Kind   Kind
	Text   []string
	Floats []float64
	Ints   []int64
	Bools  []bool
	Null   []bool
}

// NewStringColumn builds a text column. Values that are empty after trimming
// are recorded as missing.
func NewStringColumn(name string, values []string) *Column {
	null := make([]bool, len(values))
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			null[i] = true
		}
	}
	return &Column{Name: name, Kind: String, Text: values, Null: null}
}

// NewFloatColumn builds a continuous column. NaN values are recorded as
// missing.
func NewFloatColumn(name string, values []float64) *Column {
	null := make([]bool, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			null[i] = true
		}
	}
	return &Column{Name: name, Kind: Float, Floats: values, Null: null}
}

// NewIntColumn builds an integer column with no missing values.
func NewIntColumn(name string, values []int64) *Column {
	return &Column{Name: name, Kind: Int, Ints: values, Null: make([]bool, len(values))}
}

// NewBoolColumn builds an indicator column with no missing values.
func NewBoolColumn(name string, values []bool) *Column {
	return &Column{Name: name, Kind: Bool, Bools: values, Null: make([]bool, len(values))}
}

func (c *Column) Len() int {
	return len(c.Null)
}

// IsNumeric reports whether the column already holds numeric values.
func (c *Column) IsNumeric() bool {
	return c.Kind != String
}

// Distinct returns the sorted set of distinct trimmed non-missing values of a
// String column. Sorting makes every consumer of the set independent of row
// order.
func (c *Column) Distinct() []string {
	seen := map[string]struct{}{}
	for i, v := range c.Text {
		if c.Null[i] {
			continue
		}
		seen[strings.TrimSpace(v)] = struct{}{}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Float64s converts the column to a float64 slice, one entry per row, with
// missing cells as NaN.
func (c *Column) Float64s() ([]float64, error) {
	out := make([]float64, c.Len())
	switch c.Kind {
	case Float:
		copy(out, c.Floats)
		for i := range out {
			if c.Null[i] {
				out[i] = math.NaN()
			}
		}
	case Int:
		for i, v := range c.Ints {
			if c.Null[i] {
				out[i] = math.NaN()
			} else {
				out[i] = float64(v)
			}
		}
	case Bool:
		for i, v := range c.Bools {
			switch {
			case c.Null[i]:
				out[i] = math.NaN()
			case v:
				out[i] = 1
			}
		}
	default:
		return nil, fmt.Errorf("column %s holds %s values, not numeric", c.Name, c.Kind)
	}
	return out, nil
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	dup := &Column{Name: c.Name, Kind: c.Kind}
	dup.Text = append([]string(nil), c.Text...)
	dup.Floats = append([]float64(nil), c.Floats...)
	dup.Ints = append([]int64(nil), c.Ints...)
	dup.Bools = append([]bool(nil), c.Bools...)
	dup.Null = append([]bool(nil), c.Null...)
	return dup
}

// Dataset is an ordered collection of equal-length columns with unique names.
// Column order is load order and is the deterministic basis for every
// downstream ordering, including the persisted feature contract.
type Dataset struct {
	columns []*Column
	index   map[string]int
}

// NewDataset assembles a dataset from columns, rejecting duplicate names and
// mismatched lengths.
func NewDataset(columns ...*Column) (*Dataset, error) {
	d := &Dataset{index: map[string]int{}}
	for _, c := range columns {
		if err := d.Append(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dataset) NumRows() int {
	if len(d.columns) == 0 {
		return 0
	}
	return d.columns[0].Len()
}

func (d *Dataset) NumColumns() int {
	return len(d.columns)
}

// Names returns the column names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Append adds a column at the end of the dataset.
func (d *Dataset) Append(c *Column) error {
	if _, ok := d.index[c.Name]; ok {
		return fmt.Errorf("duplicate column %s", c.Name)
	}
	if len(d.columns) > 0 && c.Len() != d.NumRows() {
		return fmt.Errorf("column %s has %d rows, dataset has %d", c.Name, c.Len(), d.NumRows())
	}
	d.index[c.Name] = len(d.columns)
	d.columns = append(d.columns, c)
	return nil
}

// Drop removes a column if present.
func (d *Dataset) Drop(name string) {
	i, ok := d.index[name]
	if !ok {
		return
	}
	d.columns = append(d.columns[:i], d.columns[i+1:]...)
	delete(d.index, name)
	for j := i; j < len(d.columns); j++ {
		d.index[d.columns[j].Name] = j
	}
}

// Rename changes a column's name, keeping its position.
func (d *Dataset) Rename(from, to string) error {
	i, ok := d.index[from]
	if !ok {
		return fmt.Errorf("no column %s", from)
	}
	if from == to {
		return nil
	}
	if _, exists := d.index[to]; exists {
		return fmt.Errorf("duplicate column %s", to)
	}
	d.columns[i].Name = to
	delete(d.index, from)
	d.index[to] = i
	return nil
}

// Clone returns a deep copy sharing nothing with the receiver.
func (d *Dataset) Clone() *Dataset {
	dup := &Dataset{index: make(map[string]int, len(d.index))}
	for _, c := range d.columns {
		dup.index[c.Name] = len(dup.columns)
		dup.columns = append(dup.columns, c.Clone())
	}
	return dup
}

// Matrix is the numeric hand-off to a classifier: rows of float64 values
// aligned to an ordered column list. Missing cells surface as NaN.
type Matrix struct {
	Columns []string
	Rows    [][]float64
}

// Matrix exports every column as float64 rows. Columns that still hold raw
// text or boolean indicators are refused; encode them first.
func (d *Dataset) Matrix() (*Matrix, error) {
	columns := make([][]float64, len(d.columns))
	for i, c := range d.columns {
		if c.Kind == String || c.Kind == Bool {
			return nil, fmt.Errorf("column %s is still %s typed; encode it before building a matrix", c.Name, c.Kind)
		}
		values, err := c.Float64s()
		if err != nil {
			return nil, err
		}
		columns[i] = values
	}
	m := &Matrix{Columns: d.Names(), Rows: make([][]float64, d.NumRows())}
	for r := range m.Rows {
		row := make([]float64, len(columns))
		for i := range columns {
			row[i] = columns[i][r]
		}
		m.Rows[r] = row
	}
	return m, nil
}
