package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	ds, dataErrors, err := LoadCSV("../../datasets/telco/telco.train")
	require.NoError(t, err)
	require.Equal(t, 0, len(dataErrors))
	require.Equal(t, 30, ds.NumRows())
	require.Equal(t, 14, ds.NumColumns())

	gender, _ := ds.Column("gender")
	require.Equal(t, String, gender.Kind)
	senior, _ := ds.Column("SeniorCitizen")
	require.Equal(t, Int, senior.Kind)
	tenure, _ := ds.Column("tenure")
	require.Equal(t, Int, tenure.Kind)
	monthly, _ := ds.Column("MonthlyCharges")
	require.Equal(t, Float, monthly.Kind)

	// A blank cell keeps TotalCharges numeric, the row is just missing.
	total, _ := ds.Column("TotalCharges")
	require.Equal(t, Float, total.Kind)
	missing := 0
	for _, isNull := range total.Null {
		if isNull {
			missing++
		}
	}
	require.Equal(t, 1, missing)
}

func TestLoadCSVNotFound(t *testing.T) {
	_, _, err := LoadCSV("../../datasets/telco/no-such-file.csv")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCSVSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "a,b,c\n1,2,3\n4,5\n6,7,8\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, dataErrors, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 1, len(dataErrors))
	require.Equal(t, 3, dataErrors[0].Line)
	require.Equal(t, 2, ds.NumRows())
}

func TestLoadCSVTextColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.csv")
	content := "id,amount\nA1,12\nB2,x\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, dataErrors, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 0, len(dataErrors))
	amount, _ := ds.Column("amount")
	require.Equal(t, String, amount.Kind)
}
