package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrNotFound reports an input path that does not resolve to a file.
var ErrNotFound = errors.New("input file not found")

// DataError describes a single unusable row. Rows with errors are skipped so
// one malformed line does not abort a whole load.
type DataError struct {
	Line    int
	Message string
}

// LoadCSV reads a header-labeled CSV file into a Dataset. Column types are
// inferred per column: all-integer values load as Int, all-numeric as Float,
// anything else as String. Cells that are empty after trimming are missing,
// which is how a blank TotalCharges becomes a missing numeric value instead
// of a parse failure.
func LoadCSV(path string) (*Dataset, []DataError, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("error opening file %s: %w", path, err)
	}
	defer inputFile.Close()

	reader := csv.NewReader(inputFile)
	reader.Comma = ','
	reader.FieldsPerRecord = -1

	// First line is expected to be a header
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading data header from %s: %w", path, err)
	}

	var dataErrors []DataError
	cells := make([][]string, len(header))
	currentLine := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		currentLine++
		if err != nil {
			dataErrors = append(dataErrors, DataError{Line: currentLine, Message: err.Error()})
			continue
		}
		if len(record) != len(header) {
			dataErrors = append(dataErrors, DataError{
				Line:    currentLine,
				Message: fmt.Sprintf("row has %d fields, header has %d", len(record), len(header)),
			})
			continue
		}
		for i, v := range record {
			cells[i] = append(cells[i], v)
		}
	}

	ds := &Dataset{index: map[string]int{}}
	for i, name := range header {
		if err := ds.Append(inferColumn(name, cells[i])); err != nil {
			return nil, dataErrors, fmt.Errorf("error loading %s: %w", path, err)
		}
	}
	return ds, dataErrors, nil
}

// inferColumn picks the narrowest kind that fits every non-missing value.
func inferColumn(name string, raw []string) *Column {
	allInt := true
	allFloat := true
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			allFloat = false
			break
		}
	}

	switch {
	case allInt:
		col := NewIntColumn(name, make([]int64, len(raw)))
		for i, v := range raw {
			v = strings.TrimSpace(v)
			if v == "" {
				col.Null[i] = true
				continue
			}
			n, _ := strconv.ParseInt(v, 10, 64)
			col.Ints[i] = n
		}
		return col
	case allFloat:
		values := make([]float64, len(raw))
		for i, v := range raw {
			v = strings.TrimSpace(v)
			if v == "" {
				values[i] = math.NaN()
				continue
			}
			f, _ := strconv.ParseFloat(v, 64)
			values[i] = f
		}
		return NewFloatColumn(name, values)
	default:
		return NewStringColumn(name, raw)
	}
}
