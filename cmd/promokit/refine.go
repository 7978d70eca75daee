package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/promokit/internal/observability"
	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Regenerate a kit around selected elements",
	Long: `Regenerates a kit while keeping the elements you select: a chosen title, a
chosen thumbnail concept, tags to keep, plus free-form guidance. The refined
kit keeps the original ID, version, and brief.`,
	RunE: runRefine,
}

var (
	refineKitPath        string
	refineTitleIndex     int
	refineThumbnailIndex int
	refineKeepTags       []string
	refineGuidance       string
	refineWeights        string
	refineAPIKey         string
	refineOut            string
	refineVerbose        bool
)

func init() {
	refineCmd.Flags().StringVarP(&refineKitPath, "kit", "k", "", "Path to a kit JSON file (required)")
	refineCmd.Flags().IntVar(&refineTitleIndex, "title-index", -1, "Index of the title to keep")
	refineCmd.Flags().IntVar(&refineThumbnailIndex, "thumbnail-index", -1, "Index of the thumbnail concept to keep")
	refineCmd.Flags().StringSliceVar(&refineKeepTags, "keep-tags", nil, "Tags to carry over unchanged")
	refineCmd.Flags().StringVarP(&refineGuidance, "guidance", "g", "", "Free-form guidance for the refinement")
	refineCmd.Flags().StringVarP(&refineWeights, "weights", "w", "", `Weight distribution, e.g. "Curiosity Gap=40,..." (default: even split)`)
	refineCmd.Flags().StringVar(&refineAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	refineCmd.Flags().StringVarP(&refineOut, "out", "o", "", "Write the refined kit JSON to a file instead of stdout")
	refineCmd.Flags().BoolVarP(&refineVerbose, "verbose", "v", false, "Print detailed debug information")
	_ = refineCmd.MarkFlagRequired("kit")

	rootCmd.AddCommand(refineCmd)
}

func runRefine(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	kit, err := loadKitFile(refineKitPath)
	if err != nil {
		return err
	}

	dist := weights.Default()
	if refineWeights != "" {
		dist, err = parseDistribution(refineWeights)
		if err != nil {
			return err
		}
	}

	selections := types.RefineSelections{
		KeepTags: refineKeepTags,
		Guidance: refineGuidance,
	}
	if cmd.Flags().Changed("title-index") {
		if refineTitleIndex < 0 || refineTitleIndex >= len(kit.Titles) {
			return fmt.Errorf("title index %d out of range (kit has %d titles)", refineTitleIndex, len(kit.Titles))
		}
		selections.TitleIndex = &refineTitleIndex
	}
	if cmd.Flags().Changed("thumbnail-index") {
		if refineThumbnailIndex < 0 || refineThumbnailIndex >= len(kit.Thumbnails) {
			return fmt.Errorf("thumbnail index %d out of range (kit has %d concepts)", refineThumbnailIndex, len(kit.Thumbnails))
		}
		selections.ThumbnailIndex = &refineThumbnailIndex
	}

	apiKey, err := resolveAPIKey(refineAPIKey)
	if err != nil {
		return err
	}

	svc, closeClient, err := buildService(ctx, apiKey, false)
	if err != nil {
		return err
	}
	defer closeClient()

	refined, err := svc.Refine(ctx, kit, selections, dist)
	if err != nil {
		return fmt.Errorf("refinement failed: %w", err)
	}

	if refineVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintKit(refined)
	}

	return writeJSON(refineOut, refined)
}
