package pkg

import (
	"fmt"
	"math"
	"os"

	"github.com/nlpodyssey/spago/pkg/mat"
	"github.com/nlpodyssey/spago/pkg/mat/rand"
	"github.com/nlpodyssey/spago/pkg/ml/ag"
	"github.com/nlpodyssey/spago/pkg/ml/losses"
	"github.com/nlpodyssey/spago/pkg/ml/nn"
	"github.com/nlpodyssey/spago/pkg/ml/optimizers/gd"
	"github.com/nlpodyssey/spago/pkg/ml/optimizers/gd/adam"
	"github.com/rs/zerolog/log"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/artifacts"
	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/features"
	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/model"
	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/validate"
)

type TrainingParameters struct {
	BatchSize      int
	NumEpochs      int
	LearningRate   float64
	ReportInterval int
	RndSeed        uint64
}

// TrainConfig collects everything a training run needs. Threshold is the
// decision cutoff stored into the model bundle for scoring to reuse.
type TrainConfig struct {
	InputFile    string
	TargetColumn string
	ArtifactsDir string
	ModelFile    string
	ContractName string
	TestFraction float64
	Threshold    float64
	HiddenSize   int
	Training     TrainingParameters
}

type Trainer struct {
	params         TrainingParameters
	optimizer      *gd.GradientDescent
	model          *model.Classifier
	positiveWeight float64
}

// classNames maps label values to names: index 0 is the negative class.
var classNames = []string{"No", "Yes"}

// Train runs the full training pipeline: load, validate, clean, encode,
// record the feature contract, fit the classifier on a stratified split and
// persist the model bundle. A failed step aborts the whole run; there are no
// retries.
func Train(cfg TrainConfig) error {
	store := artifacts.NewStore(cfg.ArtifactsDir)
	run, err := store.NewRun("train")
	if err != nil {
		return err
	}
	defer func() {
		if err := run.Close(); err != nil {
			log.Error().Err(err).Msg("error closing run")
		}
	}()
	run.LogParam("model", "feedforward")
	run.LogParam("input", cfg.InputFile)
	run.LogParam("target", cfg.TargetColumn)
	run.LogParam("threshold", cfg.Threshold)
	run.LogParam("test_fraction", cfg.TestFraction)
	run.LogParam("hidden_size", cfg.HiddenSize)
	run.LogParam("batch_size", cfg.Training.BatchSize)
	run.LogParam("num_epochs", cfg.Training.NumEpochs)
	run.LogParam("learning_rate", cfg.Training.LearningRate)
	run.LogParam("random_seed", cfg.Training.RndSeed)

	ds, dataErrors, err := io.LoadCSV(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("error reading training data: %w", err)
	}
	logDataErrors(dataErrors)

	report := validate.Run(ds, validate.DefaultSuite(cfg.TargetColumn))
	if report.Passed {
		run.LogMetric("data_quality_pass", 1)
	} else {
		run.LogMetric("data_quality_pass", 0)
		if err := run.SaveJSON("failed_expectations.json", report.Violations); err != nil {
			log.Error().Err(err).Msg("error saving failed expectations")
		}
		return report.Err()
	}

	io.Clean(ds, cfg.TargetColumn)
	targetCol, ok := ds.Column(cfg.TargetColumn)
	if !ok {
		return fmt.Errorf("%w: %s", features.ErrTargetMissing, cfg.TargetColumn)
	}

	result, err := features.Build(ds, cfg.TargetColumn)
	if err != nil {
		return err
	}
	labels, err := labelVector(targetCol)
	if err != nil {
		return err
	}

	contract := features.DeriveContract(ds, cfg.TargetColumn)
	contractStore := features.NewStore(cfg.ArtifactsDir)
	if err := contractStore.Record(cfg.ContractName, contract); err != nil {
		return err
	}
	if err := saveEncodingArtifacts(run, contract, result); err != nil {
		return err
	}

	ds.Drop(cfg.TargetColumn)
	matrix, err := ds.Matrix()
	if err != nil {
		return err
	}

	trainRows, testRows := splitStratified(labels, cfg.TestFraction, cfg.Training.RndSeed)
	log.Info().Int("train_rows", len(trainRows)).Int("test_rows", len(testRows)).
		Int("features", len(matrix.Columns)).Msg("prepared training data")

	rndGen := rand.NewLockedRand(cfg.Training.RndSeed)
	classifier := model.NewClassifier(model.ClassifierConfig{
		NumFeatures: len(matrix.Columns),
		HiddenSize:  cfg.HiddenSize,
		NumClasses:  len(classNames),
	})
	classifier.Init(rndGen)

	t := &Trainer{
		params:         cfg.Training,
		model:          classifier,
		positiveWeight: positiveClassWeight(labels, trainRows),
	}
	updaterConfig := adam.NewDefaultConfig()
	updaterConfig.StepSize = cfg.Training.LearningRate
	updater := adam.New(updaterConfig)
	const gradientClipThreshold = 2000.0
	t.optimizer = gd.NewOptimizer(updater, nn.NewDefaultParamsIterator(t.model),
		gd.ClipGradByValue(gradientClipThreshold))
	t.fit(matrix, labels, trainRows)

	if len(testRows) > 0 {
		probs := predictProbs(classifier, matrix, testRows)
		evaluator := newClassificationEvaluator(cfg.Threshold, classNames, NoopWriter{})
		for i, row := range testRows {
			evaluator.EvaluatePrediction(probs[i], labels[row])
		}
		evaluator.LogMetrics()
		for name, value := range evaluator.MetricValues() {
			run.LogMetric(name, value)
		}
	} else {
		log.Warn().Msg("no held-out rows, skipping evaluation")
	}

	bundle := &model.Bundle{
		Contract:   contract,
		Classifier: classifier,
		Classes:    classNames,
		Threshold:  cfg.Threshold,
	}
	outputFile, err := os.Create(cfg.ModelFile)
	if err != nil {
		return fmt.Errorf("error creating output file %s: %w", cfg.ModelFile, err)
	}
	defer outputFile.Close()
	if err := model.SaveBundle(bundle, outputFile); err != nil {
		return fmt.Errorf("error saving model to %s: %w", cfg.ModelFile, err)
	}
	log.Info().Str("model", cfg.ModelFile).Msg("saved model bundle")
	return nil
}

func saveEncodingArtifacts(run *artifacts.Run, contract features.Contract, result *features.Result) error {
	if err := run.SaveJSON("feature_columns.json", contract.Features); err != nil {
		return err
	}
	listing := ""
	for _, name := range contract.Features {
		listing += name + "\n"
	}
	if err := run.SaveText("feature_columns.txt", listing); err != nil {
		return err
	}
	if err := run.SaveJSON("binary_mappings.json", result.Binary); err != nil {
		return err
	}
	return run.SaveJSON("category_expansions.json", result.Expansions)
}

// positiveClassWeight rebalances the loss the way scale_pos_weight does for
// gradient boosting: negatives over positives on the training split.
func positiveClassWeight(labels []int, rows []int) float64 {
	pos, neg := 0, 0
	for _, row := range rows {
		if labels[row] == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 1
	}
	return float64(neg) / float64(pos)
}

func (t *Trainer) fit(data *io.Matrix, labels []int, rows []int) {
	for epoch := 0; epoch < t.params.NumEpochs; epoch++ {
		t.optimizer.IncEpoch()
		for i, batch := range chunkRows(rows, t.params.BatchSize) {
			loss := t.trainBatch(data, labels, batch)
			t.optimizer.Optimize()
			if t.params.ReportInterval > 0 && i%t.params.ReportInterval == 0 {
				log.Info().Int("epoch", epoch).Int("batch", i).Float64("loss", loss).Msg("training")
			}
		}
	}
}

func (t *Trainer) trainBatch(data *io.Matrix, labels []int, batch []int) float64 {
	t.optimizer.IncBatch()

	g := ag.NewGraph(ag.Rand(rand.NewLockedRand(t.params.RndSeed)))
	defer g.Clear()
	input := make([]ag.Node, len(batch))
	for i, row := range batch {
		input[i] = inputNode(g, data.Rows[row])
	}
	proc := t.model.NewProc(nn.Context{Graph: g, Mode: nn.Training})
	logits := proc.Forward(input...)

	var loss ag.Node
	for i, row := range batch {
		exampleLoss := losses.CrossEntropy(g, logits[i], labels[row])
		if labels[row] == 1 && t.positiveWeight != 1 {
			exampleLoss = g.Mul(exampleLoss, g.Constant(t.positiveWeight))
		}
		loss = g.Add(loss, exampleLoss)
	}
	loss = g.Div(loss, g.NewScalar(float64(len(batch))))
	g.Backward(loss)
	return loss.ScalarValue()
}

// inputNode builds a feature vector node, imputing missing values to zero.
func inputNode(g *ag.Graph, row []float64) ag.Node {
	values := make([]float64, len(row))
	for i, v := range row {
		if !math.IsNaN(v) {
			values[i] = v
		}
	}
	return g.NewVariable(mat.NewVecDense(values), false)
}

func chunkRows(rows []int, size int) [][]int {
	if size <= 0 {
		return [][]int{rows}
	}
	var chunks [][]int
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}
