package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

func telcoDataset(t *testing.T, churn []string) *io.Dataset {
	t.Helper()
	n := len(churn)
	tenure := make([]int64, n)
	monthly := make([]float64, n)
	for i := range tenure {
		tenure[i] = int64(i)
		monthly[i] = 20.0 + float64(i)
	}
	ds, err := io.NewDataset(
		io.NewIntColumn("tenure", tenure),
		io.NewFloatColumn("MonthlyCharges", monthly),
		io.NewStringColumn("Churn", churn),
	)
	require.NoError(t, err)
	return ds
}

func TestDefaultSuitePasses(t *testing.T) {
	ds := telcoDataset(t, []string{"Yes", "No", "No"})
	report := Run(ds, DefaultSuite("Churn"))
	require.True(t, report.Passed)
	require.Empty(t, report.Violations)
	require.NoError(t, report.Err())
}

func TestMissingTargetColumnFails(t *testing.T) {
	ds, err := io.NewDataset(io.NewIntColumn("tenure", []int64{1}))
	require.NoError(t, err)

	report := Run(ds, DefaultSuite("Churn"))
	require.False(t, report.Passed)
	require.Len(t, report.Violations, 1)
	require.Equal(t, "expect_column_to_exist", report.Violations[0].Expectation)
	require.Equal(t, "Churn", report.Violations[0].Column)
	require.ErrorIs(t, report.Err(), ErrDataQuality)
}

func TestTargetOutsideAllowedSetFails(t *testing.T) {
	ds := telcoDataset(t, []string{"Yes", "Maybe", "No"})
	report := Run(ds, DefaultSuite("Churn"))
	require.False(t, report.Passed)

	var found *Violation
	for i := range report.Violations {
		if report.Violations[i].Expectation == "expect_column_values_to_be_in_set" {
			found = &report.Violations[i]
		}
	}
	require.NotNil(t, found)
	require.Equal(t, "Churn", found.Column)
	require.Contains(t, found.Detail, "Maybe")
}

func TestMissingTargetValuesFail(t *testing.T) {
	ds := telcoDataset(t, []string{"Yes", "", "No"})
	report := Run(ds, DefaultSuite("Churn"))
	require.False(t, report.Passed)
	require.Equal(t, "expect_column_values_to_not_be_null", report.Violations[0].Expectation)
}

func TestNegativeChargesFail(t *testing.T) {
	ds, err := io.NewDataset(
		io.NewIntColumn("tenure", []int64{1, 2}),
		io.NewFloatColumn("MonthlyCharges", []float64{20.5, -3.0}),
		io.NewStringColumn("Churn", []string{"Yes", "No"}),
	)
	require.NoError(t, err)

	report := Run(ds, DefaultSuite("Churn"))
	require.False(t, report.Passed)
	require.Len(t, report.Violations, 1)
	require.Equal(t, "expect_column_values_to_be_between", report.Violations[0].Expectation)
	require.Equal(t, "MonthlyCharges", report.Violations[0].Column)
}

func TestValuesAtLeastIgnoresMissing(t *testing.T) {
	ds, err := io.NewDataset(
		io.NewFloatColumn("MonthlyCharges", []float64{20.5, math.NaN()}),
	)
	require.NoError(t, err)

	report := Run(ds, []Rule{ValuesAtLeast{Column: "MonthlyCharges", Min: 0}})
	require.True(t, report.Passed)
}

func TestEmptyTableFails(t *testing.T) {
	ds, err := io.NewDataset(
		io.NewIntColumn("tenure", nil),
		io.NewStringColumn("Churn", nil),
	)
	require.NoError(t, err)

	report := Run(ds, DefaultSuite("Churn"))
	require.False(t, report.Passed)
	require.Equal(t, "expect_table_row_count_to_be_between", report.Violations[0].Expectation)
}
