package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/promokit/internal/observability"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a kit and derive a weight distribution from it",
	Long: `Asks the model to score a kit against the five categories, then normalizes
the raw scores into a distribution that sums to 100. The distribution shows
where the kit's strengths lie and can steer a follow-up refinement.`,
	RunE: runEvaluate,
}

var (
	evalKitPath string
	evalAPIKey  string
	evalOut     string
	evalVerbose bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalKitPath, "kit", "k", "", "Path to a kit JSON file (required)")
	evaluateCmd.Flags().StringVar(&evalAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	evaluateCmd.Flags().StringVarP(&evalOut, "out", "o", "", "Write the result JSON to a file instead of stdout")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print detailed debug information")
	_ = evaluateCmd.MarkFlagRequired("kit")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	kit, err := loadKitFile(evalKitPath)
	if err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(evalAPIKey)
	if err != nil {
		return err
	}

	svc, closeClient, err := buildService(ctx, apiKey, false)
	if err != nil {
		return err
	}
	defer closeClient()

	dist, report, err := svc.Evaluate(ctx, kit)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if evalVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintScoreReport(report)
		printer.PrintDistribution(dist)
	}

	return writeJSON(evalOut, map[string]any{
		"weights": dist,
		"report":  report,
	})
}
