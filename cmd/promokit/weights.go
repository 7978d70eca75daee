package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/promokit/internal/observability"
	"github.com/jonathan/promokit/internal/weights"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Inspect and rebalance weight distributions locally",
	Long: `Works with weight distributions without calling the model. With no flags it
prints the default even split. --set pins one category to a new value and
rebalances the others proportionally; --normalize converts raw scores into a
distribution summing to 100.`,
	RunE: runWeights,
}

var (
	weightsFrom      string
	weightsSet       string
	weightsNormalize string
	weightsVerbose   bool
)

func init() {
	weightsCmd.Flags().StringVar(&weightsFrom, "from", "", `Starting distribution, e.g. "Curiosity Gap=40,..." (default: even split)`)
	weightsCmd.Flags().StringVar(&weightsSet, "set", "", `Pin one category, e.g. "Curiosity Gap=40"`)
	weightsCmd.Flags().StringVar(&weightsNormalize, "normalize", "", `Raw scores to normalize, e.g. "Clarity & Relevance=80,Curiosity Gap=40"`)
	weightsCmd.Flags().BoolVarP(&weightsVerbose, "verbose", "v", false, "Print the distribution as a bar chart")

	rootCmd.AddCommand(weightsCmd)
}

func runWeights(_ *cobra.Command, _ []string) error {
	if weightsSet != "" && weightsNormalize != "" {
		return fmt.Errorf("--set and --normalize are mutually exclusive")
	}

	var dist weights.Distribution
	switch {
	case weightsNormalize != "":
		scores, err := parseScores(weightsNormalize)
		if err != nil {
			return err
		}
		dist = weights.Normalize(scores)

	case weightsSet != "":
		current := weights.Default()
		if weightsFrom != "" {
			var err error
			current, err = parseDistribution(weightsFrom)
			if err != nil {
				return err
			}
		}

		changes, err := parseScores(weightsSet)
		if err != nil {
			return err
		}
		if len(changes) != 1 {
			return fmt.Errorf("--set takes exactly one Category=Value pair")
		}
		for category, value := range changes {
			dist, err = weights.Redistribute(current, category, int(value))
			if err != nil {
				return err
			}
		}

	default:
		dist = weights.Default()
		if weightsFrom != "" {
			var err error
			dist, err = parseDistribution(weightsFrom)
			if err != nil {
				return err
			}
		}
	}

	if weightsVerbose {
		observability.NewPrinter(os.Stdout).PrintDistribution(dist)
	}

	return writeJSON("", map[string]any{"weights": dist})
}
