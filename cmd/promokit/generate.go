package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/promokit/internal/config"
	"github.com/jonathan/promokit/internal/db"
	"github.com/jonathan/promokit/internal/observability"
	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a promo kit from a creative brief",
	Long: `Generates a full promotional asset kit (titles, description, tags, thumbnail
concepts, script scenes) for a topic, steered by a weight distribution over the
five scoring categories.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runGenerate,
}

var (
	genConfigPath   string
	genTopic        string
	genAudience     string
	genTone         string
	genPlatform     string
	genNotes        string
	genReferenceURL string
	genKitVersion   string
	genWeights      string
	genPreset       string
	genAPIKey       string
	genUseBrowser   bool
	genVerbose      bool
	genDatabaseURL  string
	genOut          string
	genSave         bool
)

func init() {
	// Config file flag (processed first)
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCmd.Flags().StringVarP(&genTopic, "topic", "t", "", "Topic of the content (required)")
	generateCmd.Flags().StringVarP(&genAudience, "audience", "a", "", "Target audience")
	generateCmd.Flags().StringVar(&genTone, "tone", "", "Desired tone")
	generateCmd.Flags().StringVarP(&genPlatform, "platform", "p", "", "Publishing platform")
	generateCmd.Flags().StringVar(&genNotes, "notes", "", "Free-form notes for the model")
	generateCmd.Flags().StringVar(&genReferenceURL, "reference-url", "", "Competitor or reference page URL (v2 kits only)")
	generateCmd.Flags().StringVar(&genKitVersion, "kit-version", "", "Kit contract version: v1 or v2 (default v1)")
	generateCmd.Flags().StringVarP(&genWeights, "weights", "w", "", `Weight distribution, e.g. "Curiosity Gap=40,Clarity & Relevance=30,..." (must sum to 100)`)
	generateCmd.Flags().StringVar(&genPreset, "preset", "", "Named weight preset to load from the database")
	generateCmd.Flags().BoolVar(&genUseBrowser, "use-browser", false, "Use headless browser for reference pages (requires Chrome)")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Write the kit JSON to a file instead of stdout")
	generateCmd.Flags().BoolVar(&genSave, "save", false, "Persist the kit to the database")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for kit persistence and presets
	generateCmd.Flags().StringVar(&genDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if genConfigPath != "" {
		loadedCfg, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if genVerbose {
			fmt.Printf("Loaded config from: %s\n", genConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("audience") {
		cfg.Audience = genAudience
	}
	if cmd.Flags().Changed("tone") {
		cfg.Tone = genTone
	}
	if cmd.Flags().Changed("platform") {
		cfg.Platform = genPlatform
	}
	if cmd.Flags().Changed("kit-version") {
		cfg.KitVersion = genKitVersion
	}
	if cmd.Flags().Changed("preset") {
		cfg.Preset = genPreset
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = genAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = genUseBrowser
	}
	if genWeights != "" {
		parsed, err := parseDistribution(genWeights)
		if err != nil {
			return err
		}
		cfg.Weights = parsed
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if genTopic == "" {
		return fmt.Errorf("--topic is required")
	}
	if cfg.KitVersion == "" {
		cfg.KitVersion = "v1"
	}

	brief := types.Brief{
		Topic:        genTopic,
		Audience:     cfg.Audience,
		Tone:         cfg.Tone,
		Platform:     cfg.Platform,
		Notes:        genNotes,
		ReferenceURL: genReferenceURL,
	}

	// Step 3: Connect to the database if persistence or a preset needs it
	var database *db.DB
	if genSave || cfg.Preset != "" {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("database URL is required for --save or --preset (use --db-url or set DATABASE_URL)")
		}
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	// Step 4: Resolve the weight distribution
	dist := cfg.Weights
	if cfg.Preset != "" {
		preset, err := database.GetWeightPreset(ctx, cfg.Preset)
		if err != nil {
			return err
		}
		if preset == nil {
			return fmt.Errorf("weight preset not found: %s", cfg.Preset)
		}
		dist = preset.Weights
	}
	if dist == nil {
		dist = weights.Default()
	}

	apiKey, err := resolveAPIKey(cfg.APIKey)
	if err != nil {
		return err
	}

	svc, closeClient, err := buildService(ctx, apiKey, cfg.UseBrowser)
	if err != nil {
		return err
	}
	defer closeClient()

	printer := observability.NewPrinter(os.Stdout)
	if genVerbose {
		printer.PrintBrief(&brief)
		printer.PrintDistribution(dist)
	}

	kit, err := svc.Generate(ctx, brief, types.KitVersion(cfg.KitVersion), dist)
	if err != nil {
		return fmt.Errorf("kit generation failed: %w", err)
	}

	if genVerbose {
		printer.PrintKit(kit)
		printer.PrintScenes(kit.Scenes)
	}

	if genSave {
		if err := database.SaveKit(ctx, kit, dist); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved kit %s\n", kit.ID)
	}

	return writeJSON(genOut, kit)
}
