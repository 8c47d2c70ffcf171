package io

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// identifier columns never enter the feature set.
var identifierColumns = []string{"customerID", "CustomerID", "customer_id"}

// Clean applies the deterministic tidy-up both training and serving run
// before feature building: header whitespace is trimmed, identifier columns
// are dropped, the target is mapped to {1, 0}, and numeric gaps are closed.
// The input dataset is modified in place.
func Clean(ds *Dataset, target string) {
	trimNames(ds)
	for _, id := range identifierColumns {
		if ds.Has(id) {
			ds.Drop(id)
		}
	}
	mapTarget(ds, target)
	if col, ok := ds.Column("TotalCharges"); ok && !col.IsNumeric() {
		CoerceNumeric(col)
	}
	for _, name := range ds.Names() {
		if name == target {
			continue
		}
		col, _ := ds.Column(name)
		if col.IsNumeric() {
			fillNull(col, 0)
		}
	}
}

func trimNames(ds *Dataset) {
	for _, name := range ds.Names() {
		trimmed := strings.TrimSpace(name)
		if trimmed != name {
			ds.Rename(name, trimmed)
		}
	}
}

// mapTarget turns a Yes/No label column into Int{1, 0}. Values outside the
// pair become missing; the caller decides whether missing labels are fatal.
func mapTarget(ds *Dataset, target string) {
	col, ok := ds.Column(target)
	if !ok || col.Kind != String {
		return
	}
	n := col.Len()
	ints := make([]int64, n)
	null := make([]bool, n)
	for i := 0; i < n; i++ {
		if col.Null[i] {
			null[i] = true
			continue
		}
		switch strings.TrimSpace(col.Text[i]) {
		case "Yes":
			ints[i] = 1
		case "No":
			ints[i] = 0
		default:
			null[i] = true
			log.Warn().Str("column", target).Str("value", col.Text[i]).Msg("unmapped target label")
		}
	}
	col.Kind = Int
	col.Ints = ints
	col.Null = null
	col.Text = nil
}

// CoerceNumeric converts a String column to Float, turning values that do
// not parse into missing entries. This is the treatment TotalCharges needs
// when blank cells made the loader classify it as text.
func CoerceNumeric(col *Column) {
	if col.Kind != String {
		return
	}
	n := col.Len()
	floats := make([]float64, n)
	null := make([]bool, n)
	parsed := 0
	for i := 0; i < n; i++ {
		if col.Null[i] {
			null[i] = true
			continue
		}
		f, err := parseFloat(col.Text[i])
		if err != nil {
			null[i] = true
			continue
		}
		floats[i] = f
		parsed++
	}
	log.Debug().Str("column", col.Name).Int("parsed", parsed).Int("rows", n).Msg("coerced column to numeric")
	col.Kind = Float
	col.Floats = floats
	col.Null = null
	col.Text = nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// fillNull replaces missing entries of a numeric column with v.
func fillNull(col *Column, v float64) {
	for i := range col.Null {
		if !col.Null[i] {
			continue
		}
		col.Null[i] = false
		switch col.Kind {
		case Float:
			col.Floats[i] = v
		case Int:
			col.Ints[i] = int64(v)
		case Bool:
			col.Bools[i] = v != 0
		}
	}
}
