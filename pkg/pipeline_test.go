package pkg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

func TestLabelVector(t *testing.T) {
	labels, err := labelVector(io.NewIntColumn("Churn", []int64{1, 0, 1, 0}))
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 1, 0}, labels)
}

func TestLabelVectorRejectsUnencodedColumn(t *testing.T) {
	_, err := labelVector(io.NewFloatColumn("Churn", []float64{1, 0}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not label encoded")
}

func TestLabelVectorRejectsUnlabeledRows(t *testing.T) {
	col := io.NewIntColumn("Churn", []int64{1, 0, 0})
	col.Null[1] = true

	_, err := labelVector(col)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unlabeled rows")
}

func TestLabelVectorRejectsOutOfRangeLabels(t *testing.T) {
	_, err := labelVector(io.NewIntColumn("Churn", []int64{0, 2}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "outside {0, 1}")
}

func TestSplitStratifiedKeepsClassBalance(t *testing.T) {
	labels := make([]int, 30)
	for i := 20; i < 30; i++ {
		labels[i] = 1
	}

	trainRows, testRows := splitStratified(labels, 0.2, 42)
	require.Len(t, testRows, 6)
	require.Len(t, trainRows, 24)

	seen := map[int]bool{}
	testOnes := 0
	for _, row := range testRows {
		require.False(t, seen[row])
		seen[row] = true
		testOnes += labels[row]
	}
	for _, row := range trainRows {
		require.False(t, seen[row])
		seen[row] = true
	}
	require.Len(t, seen, len(labels))
	require.Equal(t, 2, testOnes)
}

func TestSplitStratifiedIsDeterministic(t *testing.T) {
	labels := make([]int, 30)
	for i := 20; i < 30; i++ {
		labels[i] = 1
	}

	firstTrain, firstTest := splitStratified(labels, 0.2, 42)
	secondTrain, secondTest := splitStratified(labels, 0.2, 42)
	require.Equal(t, firstTrain, secondTrain)
	require.Equal(t, firstTest, secondTest)

	otherTrain, _ := splitStratified(labels, 0.2, 7)
	require.NotEqual(t, firstTrain, otherTrain)
}

func TestSplitStratifiedNeverEmptiesAClass(t *testing.T) {
	labels := []int{0, 0, 0, 0, 1}

	trainRows, testRows := splitStratified(labels, 0.5, 42)
	require.Len(t, testRows, 2)
	require.Len(t, trainRows, 3)
	require.Contains(t, trainRows, 4)
	require.NotContains(t, testRows, 4)
}

func TestSplitStratifiedZeroFraction(t *testing.T) {
	labels := []int{0, 1, 0, 1}

	trainRows, testRows := splitStratified(labels, 0, 42)
	require.Empty(t, testRows)
	require.Len(t, trainRows, 4)
}
