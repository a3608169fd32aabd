package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billforge/billforge/internal/cli"
	"github.com/billforge/billforge/internal/common"
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/dataset"
	"github.com/billforge/billforge/internal/mlmodel"
)

func trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the suggestion models",
		Long: `Train the discount, tax-rate, and documentation estimators from the
invoice dataset and persist them as a single model artifact.

Retraining always replaces the artifact wholesale; there is no incremental
update path.

Examples:
  billforge train                                  # default dataset and artifact paths
  billforge train --dataset ./dataset.csv --output ./models.gob`,
		RunE: runTrain,
	}

	cmd.Flags().StringP("dataset", "d", "", "Dataset CSV path (default: configured dataset path)")
	cmd.Flags().StringP("output", "o", "", "Artifact output path (default: configured model path)")

	_ = viper.BindPFlag("train.dataset", cmd.Flags().Lookup("dataset"))
	_ = viper.BindPFlag("train.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runTrain(cmd *cobra.Command, _ []string) error {
	datasetFile := viper.GetString("train.dataset")
	if datasetFile == "" {
		datasetFile = datasetPath()
	} else {
		datasetFile = config.ExpandPath(datasetFile)
	}

	output := viper.GetString("train.output")
	if output == "" {
		output = artifactPath()
	} else {
		output = config.ExpandPath(output)
	}

	slog.Info("Loading dataset", "path", datasetFile)
	records, err := dataset.ReadFile(datasetFile)
	if err != nil {
		return common.NewUserError(
			fmt.Sprintf("cannot load dataset %s (run 'billforge dataset generate' first)", datasetFile), err)
	}

	artifact, err := mlmodel.Train(records)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	if err := mlmodel.SaveArtifact(output, artifact); err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"Trained on %d invoices, artifact saved to %s", artifact.Rows, output)))
	return nil
}
