package validate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

// ErrDataQuality reports input data that failed its expectation suite.
// Training never proceeds past a failed suite.
var ErrDataQuality = errors.New("data quality check failed")

// Violation is one failed expectation with enough detail to find the
// offending data.
type Violation struct {
	Expectation string `json:"expectation"`
	Column      string `json:"column,omitempty"`
	Detail      string `json:"detail"`
}

// Report is the outcome of running a suite.
type Report struct {
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations,omitempty"`
}

// Err converts a failed report into an error the pipeline can return.
func (r Report) Err() error {
	if r.Passed {
		return nil
	}
	return fmt.Errorf("%w: %d expectation(s) failed", ErrDataQuality, len(r.Violations))
}

// Rule is a single expectation over a dataset.
type Rule interface {
	Check(ds *io.Dataset) []Violation
}

// Run evaluates every rule and collects the violations.
func Run(ds *io.Dataset, rules []Rule) Report {
	var violations []Violation
	for _, rule := range rules {
		violations = append(violations, rule.Check(ds)...)
	}
	for _, v := range violations {
		log.Warn().Str("expectation", v.Expectation).Str("column", v.Column).
			Str("detail", v.Detail).Msg("expectation failed")
	}
	return Report{Passed: len(violations) == 0, Violations: violations}
}

// DefaultSuite is the expectation suite for raw churn data, evaluated
// before any cleaning or encoding touches it.
func DefaultSuite(target string) []Rule {
	return []Rule{
		RowCountAtLeast{Min: 1},
		ColumnExists{Column: target},
		ValuesNotNull{Column: target},
		ValuesInSet{Column: target, Allowed: []string{"Yes", "No"}},
		ValuesAtLeast{Column: "tenure", Min: 0},
		ValuesAtLeast{Column: "MonthlyCharges", Min: 0},
	}
}

// RowCountAtLeast fails when the dataset has fewer than Min rows.
type RowCountAtLeast struct {
	Min int
}

func (r RowCountAtLeast) Check(ds *io.Dataset) []Violation {
	if n := ds.NumRows(); n < r.Min {
		return []Violation{{
			Expectation: "expect_table_row_count_to_be_between",
			Detail:      fmt.Sprintf("table has %d rows, expected at least %d", n, r.Min),
		}}
	}
	return nil
}

// ColumnExists fails when the named column is absent.
type ColumnExists struct {
	Column string
}

func (r ColumnExists) Check(ds *io.Dataset) []Violation {
	if !ds.Has(r.Column) {
		return []Violation{{
			Expectation: "expect_column_to_exist",
			Column:      r.Column,
			Detail:      "column not found",
		}}
	}
	return nil
}

// ValuesNotNull fails when the named column has missing entries.
type ValuesNotNull struct {
	Column string
}

func (r ValuesNotNull) Check(ds *io.Dataset) []Violation {
	col, ok := ds.Column(r.Column)
	if !ok {
		return nil
	}
	missing := 0
	for _, isNull := range col.Null {
		if isNull {
			missing++
		}
	}
	if missing > 0 {
		return []Violation{{
			Expectation: "expect_column_values_to_not_be_null",
			Column:      r.Column,
			Detail:      fmt.Sprintf("%d of %d values missing", missing, col.Len()),
		}}
	}
	return nil
}

// ValuesInSet fails when the named column holds values outside the allowed
// set. Missing entries are ignored, that is ValuesNotNull's job.
type ValuesInSet struct {
	Column  string
	Allowed []string
}

func (r ValuesInSet) Check(ds *io.Dataset) []Violation {
	col, ok := ds.Column(r.Column)
	if !ok {
		return nil
	}
	allowed := make(map[string]bool, len(r.Allowed))
	for _, v := range r.Allowed {
		allowed[v] = true
	}
	unexpected := map[string]bool{}
	for i := 0; i < col.Len(); i++ {
		if col.Null[i] {
			continue
		}
		if v := cellString(col, i); !allowed[v] {
			unexpected[v] = true
		}
	}
	if len(unexpected) == 0 {
		return nil
	}
	return []Violation{{
		Expectation: "expect_column_values_to_be_in_set",
		Column:      r.Column,
		Detail:      fmt.Sprintf("unexpected values: %s", sampleValues(unexpected)),
	}}
}

// ValuesAtLeast fails when a numeric column holds values below Min.
// Non-numeric and absent columns are skipped.
type ValuesAtLeast struct {
	Column string
	Min    float64
}

func (r ValuesAtLeast) Check(ds *io.Dataset) []Violation {
	col, ok := ds.Column(r.Column)
	if !ok || !col.IsNumeric() {
		return nil
	}
	values, err := col.Float64s()
	if err != nil {
		return nil
	}
	below := 0
	for i, v := range values {
		if col.Null[i] {
			continue
		}
		if v < r.Min {
			below++
		}
	}
	if below > 0 {
		return []Violation{{
			Expectation: "expect_column_values_to_be_between",
			Column:      r.Column,
			Detail:      fmt.Sprintf("%d values below %g", below, r.Min),
		}}
	}
	return nil
}

func cellString(col *io.Column, i int) string {
	switch col.Kind {
	case io.String:
		return strings.TrimSpace(col.Text[i])
	case io.Float:
		return strconv.FormatFloat(col.Floats[i], 'g', -1, 64)
	case io.Int:
		return strconv.FormatInt(col.Ints[i], 10)
	case io.Bool:
		return strconv.FormatBool(col.Bools[i])
	}
	return ""
}

func sampleValues(set map[string]bool) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	if len(values) > 5 {
		values = values[:5]
	}
	return strings.Join(values, ", ")
}
