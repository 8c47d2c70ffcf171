package pkg

import (
	"fmt"
	gio "io"
	"math"
	"sort"

	"github.com/nlpodyssey/spago/pkg/mat/rand"
	"github.com/nlpodyssey/spago/pkg/ml/ag"
	"github.com/nlpodyssey/spago/pkg/ml/nn"
	"github.com/nlpodyssey/spago/pkg/ml/stats"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/model"
)

const evalBatchSize = 64

// predictProbs runs the classifier over the given rows and returns the
// positive-class probability for each, in row order.
func predictProbs(classifier *model.Classifier, data *io.Matrix, rows []int) []float64 {
	probs := make([]float64, 0, len(rows))
	g := ag.NewGraph(ag.Rand(rand.NewLockedRand(42)))
	for start := 0; start < len(rows); start += evalBatchSize {
		end := start + evalBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		proc := classifier.NewProc(nn.Context{Graph: g, Mode: nn.Inference})
		input := make([]ag.Node, 0, end-start)
		for _, row := range rows[start:end] {
			input = append(input, inputNode(g, data.Rows[row]))
		}
		for _, logits := range proc.Forward(input...) {
			probs = append(probs, g.Softmax(logits).Value().Data()[1])
		}
		g.Clear()
	}
	return probs
}

func allRows(data *io.Matrix) []int {
	rows := make([]int, len(data.Rows))
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// classificationEvaluator accumulates thresholded predictions against known
// labels, writing one "label,predicted,probability" line per example to the
// output writer as it goes.
type classificationEvaluator struct {
	threshold    float64
	classes      []string
	metrics      map[string]*stats.ClassMetrics
	scores       []float64
	positives    []bool
	correct      int
	total        int
	outputWriter gio.Writer
}

func newClassificationEvaluator(threshold float64, classes []string, outputWriter gio.Writer) *classificationEvaluator {
	return &classificationEvaluator{
		threshold:    threshold,
		classes:      classes,
		metrics:      map[string]*stats.ClassMetrics{},
		outputWriter: outputWriter,
	}
}

func (c *classificationEvaluator) EvaluatePrediction(prob float64, label int) {
	predicted := 0
	if prob >= c.threshold {
		predicted = 1
	}
	labelName := c.classes[label]
	predictedName := c.classes[predicted]

	fmt.Fprintf(c.outputWriter, "%s,%s,%.5f\n", labelName, predictedName, prob)

	labelClassMetrics, ok := c.metrics[labelName]
	if !ok {
		labelClassMetrics = stats.NewMetricCounter()
		c.metrics[labelName] = labelClassMetrics
	}
	predictedClassMetrics, ok := c.metrics[predictedName]
	if !ok {
		predictedClassMetrics = stats.NewMetricCounter()
		c.metrics[predictedName] = predictedClassMetrics
	}

	if labelName == predictedName {
		labelClassMetrics.IncTruePos()
		c.correct++
	} else {
		labelClassMetrics.IncFalseNeg()
		predictedClassMetrics.IncFalsePos()
	}

	c.scores = append(c.scores, prob)
	c.positives = append(c.positives, label == 1)
	c.total++
}

func (c *classificationEvaluator) LogMetrics() {
	// Sort class names for deterministic output
	sortedClasses := sortClasses(c.metrics)
	for _, class := range sortedClasses {
		result := c.metrics[class]
		log.Info().Str("Class", class).
			Int("TP", result.TruePos).
			Int("FP", result.FalsePos).
			Int("TN", result.TrueNeg).
			Int("FN", result.FalseNeg).
			Float64("Precision", nanToZero(result.Precision())).
			Float64("Recall", nanToZero(result.Recall())).
			Float64("F1", nanToZero(result.F1Score())).
			Msg("")
	}

	microF1, macroF1 := computeOverallF1(c.metrics)
	event := log.Info().
		Float64("Accuracy", c.Accuracy()).
		Float64("MacroF1", macroF1).
		Float64("MicroF1", microF1)
	if auc, ok := rocAUC(c.scores, c.positives); ok {
		event = event.Float64("ROC-AUC", auc)
	}
	event.Msg("")
}

func (c *classificationEvaluator) Accuracy() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.correct) / float64(c.total)
}

// MetricValues flattens the evaluation into named metrics for run tracking.
// Precision, recall and F1 are reported for the positive class.
func (c *classificationEvaluator) MetricValues() map[string]float64 {
	values := map[string]float64{"accuracy": c.Accuracy()}
	if m, ok := c.metrics[c.classes[1]]; ok {
		values["precision"] = nanToZero(m.Precision())
		values["recall"] = nanToZero(m.Recall())
		values["f1"] = nanToZero(m.F1Score())
	}
	if auc, ok := rocAUC(c.scores, c.positives); ok {
		values["roc_auc"] = auc
	}
	return values
}

// rocAUC computes the area under the ROC curve. It reports false when the
// labels contain only one class, where the curve is undefined.
func rocAUC(scores []float64, positives []bool) (float64, bool) {
	pos := 0
	for _, p := range positives {
		if p {
			pos++
		}
	}
	if pos == 0 || pos == len(positives) {
		return 0, false
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] < scores[order[j]]
	})
	y := make([]float64, len(order))
	classes := make([]bool, len(order))
	for i, idx := range order {
		y[i] = scores[idx]
		classes[i] = positives[idx]
	}
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), true
}

func computeOverallF1(metrics map[string]*stats.ClassMetrics) (float64, float64) {
	macroF1 := 0.0
	for _, metric := range metrics {
		macroF1 += nanToZero(metric.F1Score())
	}
	macroF1 /= float64(len(metrics))

	micro := stats.NewMetricCounter()
	for _, result := range metrics {
		micro.TruePos += result.TruePos
		micro.FalsePos += result.FalsePos
		micro.FalseNeg += result.FalseNeg
		micro.TrueNeg += result.TrueNeg
	}
	return micro.F1Score(), macroF1
}

func sortClasses(metrics map[string]*stats.ClassMetrics) []string {
	result := make([]string, 0, len(metrics))
	for class := range metrics {
		result = append(result, class)
	}
	sort.Strings(result)
	return result
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
