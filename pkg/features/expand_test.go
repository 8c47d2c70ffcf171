package features

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

func TestExpandMultiDropsReferenceCategory(t *testing.T) {
	ds, err := io.NewDataset(
		io.NewIntColumn("tenure", []int64{1, 2, 3, 4}),
		io.NewStringColumn("Contract", []string{"Month-to-month", "One year", "Two year", "One year"}),
	)
	require.NoError(t, err)

	expansions, err := ExpandMulti(ds, []string{"Contract"})
	require.NoError(t, err)
	require.Len(t, expansions, 1)
	require.Equal(t, "Month-to-month", expansions[0].Reference)
	require.Equal(t, []string{"One year", "Two year"}, expansions[0].Categories)

	// Three categories become two indicators, appended after surviving columns.
	require.Equal(t, []string{"tenure", "Contract_One year", "Contract_Two year"}, ds.Names())

	oneYear, _ := ds.Column("Contract_One year")
	require.Equal(t, []bool{false, true, false, true}, oneYear.Bools)
	twoYear, _ := ds.Column("Contract_Two year")
	require.Equal(t, []bool{false, false, true, false}, twoYear.Bools)
}

func TestExpandMultiMissingValueGetsAllZeros(t *testing.T) {
	ds, err := io.NewDataset(
		io.NewStringColumn("InternetService", []string{"DSL", "", "Fiber optic", "No"}),
	)
	require.NoError(t, err)

	_, err = ExpandMulti(ds, []string{"InternetService"})
	require.NoError(t, err)

	fiber, _ := ds.Column("InternetService_Fiber optic")
	require.Equal(t, []bool{false, false, true, false}, fiber.Bools)
	no, _ := ds.Column("InternetService_No")
	require.Equal(t, []bool{false, false, false, true}, no.Bools)
}

func TestExpandMultiKeepsSourceColumnOrder(t *testing.T) {
	ds, err := io.NewDataset(
		io.NewStringColumn("InternetService", []string{"DSL", "Fiber optic", "No"}),
		io.NewIntColumn("tenure", []int64{1, 2, 3}),
		io.NewStringColumn("PaymentMethod", []string{"Electronic check", "Mailed check", "Bank transfer (automatic)"}),
	)
	require.NoError(t, err)

	_, err = ExpandMulti(ds, []string{"InternetService", "PaymentMethod"})
	require.NoError(t, err)
	require.Equal(t, []string{
		"tenure",
		"InternetService_Fiber optic",
		"InternetService_No",
		"PaymentMethod_Electronic check",
		"PaymentMethod_Mailed check",
	}, ds.Names())
}

func TestExpandMultiPermutationYieldsSameColumns(t *testing.T) {
	build := func(values []string) []string {
		ds, err := io.NewDataset(io.NewStringColumn("Contract", values))
		require.NoError(t, err)
		_, err = ExpandMulti(ds, []string{"Contract"})
		require.NoError(t, err)
		return ds.Names()
	}

	forward := build([]string{"Month-to-month", "One year", "Two year"})
	permuted := build([]string{"Two year", "Month-to-month", "One year"})
	require.Equal(t, forward, permuted)
}
