package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail",
	Short: "Render thumbnail concept images for a kit",
	Long: `Renders the image prompts of a kit's thumbnail concepts through the image
model and writes the results as image files. By default all concepts are
rendered; use --index to render a single one.`,
	RunE: runThumbnail,
}

var (
	thumbKitPath string
	thumbIndex   int
	thumbOutDir  string
	thumbAPIKey  string
)

func init() {
	thumbnailCmd.Flags().StringVarP(&thumbKitPath, "kit", "k", "", "Path to a kit JSON file (required)")
	thumbnailCmd.Flags().IntVar(&thumbIndex, "index", -1, "Render only the concept at this index")
	thumbnailCmd.Flags().StringVarP(&thumbOutDir, "out-dir", "o", ".", "Directory to write images into")
	thumbnailCmd.Flags().StringVar(&thumbAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	_ = thumbnailCmd.MarkFlagRequired("kit")

	rootCmd.AddCommand(thumbnailCmd)
}

func runThumbnail(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	kit, err := loadKitFile(thumbKitPath)
	if err != nil {
		return err
	}
	if len(kit.Thumbnails) == 0 {
		return fmt.Errorf("kit has no thumbnail concepts")
	}

	apiKey, err := resolveAPIKey(thumbAPIKey)
	if err != nil {
		return err
	}

	svc, closeClient, err := buildService(ctx, apiKey, false)
	if err != nil {
		return err
	}
	defer closeClient()

	if err := os.MkdirAll(thumbOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if cmd.Flags().Changed("index") {
		if thumbIndex < 0 || thumbIndex >= len(kit.Thumbnails) {
			return fmt.Errorf("index %d out of range (kit has %d concepts)", thumbIndex, len(kit.Thumbnails))
		}
		image, err := svc.Thumbnail(ctx, kit.Thumbnails[thumbIndex])
		if err != nil {
			return err
		}
		return saveThumbnail(kit.ID.String(), thumbIndex, image.Data, image.MIMEType)
	}

	images, err := svc.Thumbnails(ctx, kit)
	if err != nil {
		return err
	}
	for _, image := range images {
		if err := saveThumbnail(kit.ID.String(), image.ConceptIndex, image.Data, image.MIMEType); err != nil {
			return err
		}
	}
	return nil
}

func saveThumbnail(kitID string, index int, data []byte, mimeType string) error {
	ext := ".png"
	switch mimeType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	}

	path := filepath.Join(thumbOutDir, fmt.Sprintf("%s-thumb-%d%s", kitID, index, ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
