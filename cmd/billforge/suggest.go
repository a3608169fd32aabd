package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billforge/billforge/internal/cli"
	"github.com/billforge/billforge/internal/predict"
)

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest invoice terms for a draft project",
		Long: `Suggest discount, tax rate, documentation level, and payment terms for a
draft invoice. Uses the trained models when available and rule-based
defaults otherwise; this command always produces a suggestion.

Example:
  billforge suggest --category "Cloud Services" --industry Finance \
    --country US --project-type "Fixed Price" --amount 25000 --hours 150 --services 3`,
		RunE: runSuggest,
	}

	cmd.Flags().String("category", "IT Consulting", "Service category")
	cmd.Flags().String("industry", "Technology", "Client industry")
	cmd.Flags().String("country", "US", "Billing country")
	cmd.Flags().String("project-type", "Time & Materials", "Project type")
	cmd.Flags().Float64("amount", 0, "Total project amount")
	cmd.Flags().Int("hours", 0, "Total project hours")
	cmd.Flags().Int("services", 1, "Number of service line items")

	_ = viper.BindPFlag("suggest.category", cmd.Flags().Lookup("category"))
	_ = viper.BindPFlag("suggest.industry", cmd.Flags().Lookup("industry"))
	_ = viper.BindPFlag("suggest.country", cmd.Flags().Lookup("country"))
	_ = viper.BindPFlag("suggest.project_type", cmd.Flags().Lookup("project-type"))
	_ = viper.BindPFlag("suggest.amount", cmd.Flags().Lookup("amount"))
	_ = viper.BindPFlag("suggest.hours", cmd.Flags().Lookup("hours"))
	_ = viper.BindPFlag("suggest.services", cmd.Flags().Lookup("services"))

	return cmd
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	service := predict.NewService(artifactPath(), datasetPath())

	bundle := service.Predict(predict.Input{
		ServiceCategory: viper.GetString("suggest.category"),
		ClientIndustry:  viper.GetString("suggest.industry"),
		Country:         viper.GetString("suggest.country"),
		ProjectType:     viper.GetString("suggest.project_type"),
		TotalAmount:     viper.GetFloat64("suggest.amount"),
		TotalHours:      viper.GetInt("suggest.hours"),
		NumServices:     viper.GetInt("suggest.services"),
	})

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSuggestion(bundle))
	return nil
}
