package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/promokit/internal/observability"
	"github.com/jonathan/promokit/internal/types"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask the model for a weight distribution suited to a brief",
	Long: `Asks the model how to weigh the five scoring categories for a given brief,
before any kit is generated. Useful as a starting point instead of the even
default split.`,
	RunE: runSuggest,
}

var (
	suggestTopic    string
	suggestAudience string
	suggestTone     string
	suggestPlatform string
	suggestNotes    string
	suggestAPIKey   string
	suggestVerbose  bool
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestTopic, "topic", "t", "", "Topic of the content (required)")
	suggestCmd.Flags().StringVarP(&suggestAudience, "audience", "a", "", "Target audience")
	suggestCmd.Flags().StringVar(&suggestTone, "tone", "", "Desired tone")
	suggestCmd.Flags().StringVarP(&suggestPlatform, "platform", "p", "", "Publishing platform")
	suggestCmd.Flags().StringVar(&suggestNotes, "notes", "", "Free-form notes for the model")
	suggestCmd.Flags().StringVar(&suggestAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	suggestCmd.Flags().BoolVarP(&suggestVerbose, "verbose", "v", false, "Print detailed debug information")
	_ = suggestCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	brief := types.Brief{
		Topic:    suggestTopic,
		Audience: suggestAudience,
		Tone:     suggestTone,
		Platform: suggestPlatform,
		Notes:    suggestNotes,
	}

	apiKey, err := resolveAPIKey(suggestAPIKey)
	if err != nil {
		return err
	}

	svc, closeClient, err := buildService(ctx, apiKey, false)
	if err != nil {
		return err
	}
	defer closeClient()

	dist, err := svc.SuggestWeights(ctx, brief)
	if err != nil {
		return fmt.Errorf("weight suggestion failed: %w", err)
	}

	if suggestVerbose {
		observability.NewPrinter(os.Stdout).PrintDistribution(dist)
	}

	return writeJSON("", map[string]any{"weights": dist})
}
