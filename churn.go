package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg"
)

func TrainCommand() *cobra.Command {

	var cfg pkg.TrainConfig

	var cmd = &cobra.Command{
		Use:   "train -i trainFile [-o modelFile]",
		Short: "Trains a churn model on the provided data and records its feature contract",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ModelFile == "" {
				cfg.ModelFile = filepath.Join(cfg.ArtifactsDir, "churn.model")
			}
			return pkg.Train(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.InputFile, "input", "i", "", "name of training data file")
	cmd.Flags().StringVarP(&cfg.ModelFile, "output-file", "o", "", "name of the file to save the model to, defaults to <artifacts>/churn.model")
	cmd.Flags().StringVarP(&cfg.TargetColumn, "target-column", "t", "Churn", "target column")
	cmd.Flags().StringVarP(&cfg.ArtifactsDir, "artifacts", "a", "artifacts", "directory for run artifacts and the feature contract")
	cmd.Flags().StringVarP(&cfg.ContractName, "contract-name", "", "churn", "name under which the feature contract is recorded")
	cmd.Flags().Float64VarP(&cfg.Threshold, "threshold", "", 0.35, "decision threshold for the positive class")
	cmd.Flags().Float64VarP(&cfg.TestFraction, "test-fraction", "", 0.2, "fraction of rows held out for evaluation")
	cmd.Flags().IntVarP(&cfg.HiddenSize, "hidden-size", "", 32, "classifier hidden layer size")
	cmd.Flags().IntVarP(&cfg.Training.BatchSize, "batch-size", "b", 16, "batch size")
	cmd.Flags().Float64VarP(&cfg.Training.LearningRate, "learning-rate", "l", 0.01, "learning rate")
	cmd.Flags().IntVarP(&cfg.Training.ReportInterval, "report-interval", "r", 10, "loss report interval")
	cmd.Flags().IntVarP(&cfg.Training.NumEpochs, "num-epochs", "n", 10, "number of epochs to train")
	cmd.Flags().Uint64VarP(&cfg.Training.RndSeed, "random-seed", "x", 42, "random seed")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func PredictCommand() *cobra.Command {
	var cfg pkg.PredictConfig

	var cmd = &cobra.Command{
		Use:   "predict -m modelFile -i inputFile [-o outputFile]",
		Short: "Scores the provided data with a trained model after aligning it to the recorded feature contract",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkg.Predict(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.ModelFile, "model", "m", "", "name of model file")
	cmd.Flags().StringVarP(&cfg.InputFile, "input", "i", "", "name of data input file")
	cmd.Flags().StringVarP(&cfg.OutputFile, "output", "o", "", "name of output file (optional)")
	cmd.Flags().StringVarP(&cfg.ArtifactsDir, "artifacts", "a", "artifacts", "directory holding the feature contract")
	cmd.Flags().StringVarP(&cfg.ContractName, "contract-name", "", "churn", "name of the feature contract to load")
	cmd.Flags().Float64VarP(&cfg.Threshold, "threshold", "", 0, "decision threshold override, uses the trained threshold when unset")

	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("input")

	return cmd

}

var logLevel string
var logFormat string

func main() {

	Main := &cobra.Command{Use: "churn", PersistentPreRun: setupLogging}

	Main.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Logging level: info error or debug")
	Main.PersistentFlags().StringVarP(&logFormat, "log-format", "", "pretty", "Logging format: pretty or json")

	Main.AddCommand(TrainCommand())
	Main.AddCommand(PredictCommand())

	if err := Main.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func setupLogging(cmd *cobra.Command, args []string) {

	switch logLevel {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		panic("Invalid logging level specified")
	}

	switch logFormat {
	case "pretty":
		setupPrettyLogging()
	case "json":
	default:
		panic("Invalid log format specified")

	}

}

func setupPrettyLogging() {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	writer.FormatFieldValue = func(i interface{}) string {
		switch v := i.(type) {
		case json.Number:
			val, _ := v.Float64()
			return fmt.Sprintf("%.3f", val)
		default:
			return fmt.Sprintf("%s", i)
		}

	}
	log.Logger = log.Output(writer)

}
