package pkg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluatorCountsAndMetrics(t *testing.T) {
	var output bytes.Buffer
	evaluator := newClassificationEvaluator(0.5, []string{"No", "Yes"}, &output)

	evaluator.EvaluatePrediction(0.9, 1)
	evaluator.EvaluatePrediction(0.2, 0)
	evaluator.EvaluatePrediction(0.7, 0)
	evaluator.EvaluatePrediction(0.3, 1)
	evaluator.EvaluatePrediction(0.5, 1)

	require.Equal(t, 2, evaluator.metrics["Yes"].TruePos)
	require.Equal(t, 1, evaluator.metrics["Yes"].FalsePos)
	require.Equal(t, 1, evaluator.metrics["Yes"].FalseNeg)
	require.Equal(t, 1, evaluator.metrics["No"].TruePos)
	require.InDelta(t, 0.6, evaluator.Accuracy(), 1e-9)

	values := evaluator.MetricValues()
	require.InDelta(t, 2.0/3.0, values["precision"], 1e-9)
	require.InDelta(t, 2.0/3.0, values["recall"], 1e-9)
	require.InDelta(t, 2.0/3.0, values["f1"], 1e-9)
	require.Contains(t, values, "roc_auc")
}

func TestEvaluatorThresholdIsInclusive(t *testing.T) {
	var output bytes.Buffer
	evaluator := newClassificationEvaluator(0.35, []string{"No", "Yes"}, &output)

	evaluator.EvaluatePrediction(0.35, 1)
	require.Equal(t, 1, evaluator.metrics["Yes"].TruePos)
}

func TestEvaluatorWritesPredictionLines(t *testing.T) {
	var output bytes.Buffer
	evaluator := newClassificationEvaluator(0.5, []string{"No", "Yes"}, &output)

	evaluator.EvaluatePrediction(0.9, 1)
	evaluator.EvaluatePrediction(0.2, 0)
	evaluator.EvaluatePrediction(0.7, 0)

	lines := strings.Split(strings.TrimRight(output.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Yes,Yes,0.90000", lines[0])
	require.Equal(t, "No,No,0.20000", lines[1])
	require.Equal(t, "No,Yes,0.70000", lines[2])
}

func TestROCAUCPerfectSeparation(t *testing.T) {
	auc, ok := rocAUC([]float64{0.1, 0.2, 0.8, 0.9}, []bool{false, false, true, true})
	require.True(t, ok)
	require.InDelta(t, 1.0, auc, 1e-9)
}

func TestROCAUCReversedRanking(t *testing.T) {
	auc, ok := rocAUC([]float64{0.9, 0.8, 0.2, 0.1}, []bool{false, false, true, true})
	require.True(t, ok)
	require.InDelta(t, 0.0, auc, 1e-9)
}

func TestROCAUCUndefinedForSingleClass(t *testing.T) {
	_, ok := rocAUC([]float64{0.1, 0.9}, []bool{true, true})
	require.False(t, ok)

	_, ok = rocAUC([]float64{0.1, 0.9}, []bool{false, false})
	require.False(t, ok)

	_, ok = rocAUC(nil, nil)
	require.False(t, ok)
}
