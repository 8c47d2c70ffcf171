package features

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

func TestNormalizeDtypesConvertsIndicators(t *testing.T) {
	ds, err := io.NewDataset(
		io.NewBoolColumn("Contract_One year", []bool{true, false, true}),
		io.NewIntColumn("tenure", []int64{1, 2, 3}),
		io.NewFloatColumn("MonthlyCharges", []float64{29.85, 56.95, 53.85}),
	)
	require.NoError(t, err)

	NormalizeDtypes(ds)

	indicator, _ := ds.Column("Contract_One year")
	require.Equal(t, io.Int, indicator.Kind)
	require.Equal(t, []int64{1, 0, 1}, indicator.Ints)

	tenure, _ := ds.Column("tenure")
	require.Equal(t, io.Int, tenure.Kind)
	monthly, _ := ds.Column("MonthlyCharges")
	require.Equal(t, io.Float, monthly.Kind)
}

func TestNormalizeDtypesIsIdempotent(t *testing.T) {
	ds, err := io.NewDataset(io.NewBoolColumn("flag", []bool{true, false}))
	require.NoError(t, err)

	NormalizeDtypes(ds)
	NormalizeDtypes(ds)

	col, _ := ds.Column("flag")
	require.Equal(t, io.Int, col.Kind)
	require.Equal(t, []int64{1, 0}, col.Ints)
}
