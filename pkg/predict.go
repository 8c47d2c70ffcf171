package pkg

import (
	"fmt"
	gio "io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/features"
	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/model"
)

type NoopWriter struct{}

func (x NoopWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// PredictConfig drives a scoring run. Threshold overrides the bundle's
// stored cutoff when positive, otherwise the trained threshold applies.
type PredictConfig struct {
	InputFile    string
	ModelFile    string
	OutputFile   string
	ArtifactsDir string
	ContractName string
	Threshold    float64
}

// Predict scores a data file with a trained model bundle. The input goes
// through the exact cleaning and encoding used at training time and is then
// aligned to the recorded feature contract, so the model always sees the
// column layout it was fitted on. When the input carries the target column,
// classification metrics are computed against it.
func Predict(cfg PredictConfig) error {
	contractStore := features.NewStore(cfg.ArtifactsDir)
	contract, err := contractStore.Load(cfg.ContractName)
	if err != nil {
		return err
	}

	modelFile, err := os.Open(cfg.ModelFile)
	if err != nil {
		return fmt.Errorf("error opening model file %s: %w", cfg.ModelFile, err)
	}
	defer modelFile.Close()
	bundle, err := model.LoadBundle(modelFile)
	if err != nil {
		return fmt.Errorf("error loading model from file %s: %w", cfg.ModelFile, err)
	}
	if !bundle.Contract.Equal(contract) {
		return fmt.Errorf("%w: model %s was trained for a different contract than %s",
			features.ErrContractMismatch, cfg.ModelFile, cfg.ContractName)
	}

	ds, dataErrors, err := io.LoadCSV(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("error loading data from %s: %w", cfg.InputFile, err)
	}
	logDataErrors(dataErrors)
	if ds.NumRows() == 0 {
		return fmt.Errorf("no rows to score in %s", cfg.InputFile)
	}

	target := contract.Target
	io.Clean(ds, target)

	var labels []int
	if col, ok := ds.Column(target); ok {
		labels, err = labelVector(col)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring target column for evaluation")
			labels = nil
		}
		ds.Drop(target)
	}

	if _, err := features.Build(ds, target); err != nil {
		return err
	}
	aligned, err := features.Align(ds, contract)
	if err != nil {
		return err
	}
	matrix, err := aligned.Matrix()
	if err != nil {
		return err
	}

	threshold := bundle.Threshold
	if cfg.Threshold > 0 {
		threshold = cfg.Threshold
	}
	probs := predictProbs(bundle.Classifier, matrix, allRows(matrix))

	var outputWriter gio.Writer
	if cfg.OutputFile != "" {
		outputFile, err := os.Create(cfg.OutputFile)
		if err != nil {
			return fmt.Errorf("error opening output file %s: %w", cfg.OutputFile, err)
		}
		defer outputFile.Close()
		outputWriter = outputFile
	} else {
		outputWriter = NoopWriter{}
	}

	if labels != nil {
		evaluator := newClassificationEvaluator(threshold, bundle.Classes, outputWriter)
		for i, prob := range probs {
			evaluator.EvaluatePrediction(prob, labels[i])
		}
		evaluator.LogMetrics()
	} else {
		for _, prob := range probs {
			predicted := 0
			if prob >= threshold {
				predicted = 1
			}
			fmt.Fprintf(outputWriter, "%s,%.5f\n", bundle.Classes[predicted], prob)
		}
	}
	log.Info().Int("rows", len(probs)).Float64("threshold", threshold).Msg("scored input")
	return nil
}
