package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/promokit/internal/kitgen"
	"github.com/jonathan/promokit/internal/llm"
	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

// parseDistribution parses a "Category=Value,Category=Value" flag into a
// distribution. Category names match the canonical names case-insensitively.
func parseDistribution(raw string) (weights.Distribution, error) {
	dist := weights.Distribution{}
	for _, category := range weights.Categories {
		dist[category] = 0
	}

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, valueStr, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid weight %q, expected Category=Value", pair)
		}
		name = strings.TrimSpace(name)
		value, err := strconv.Atoi(strings.TrimSpace(valueStr))
		if err != nil {
			return nil, fmt.Errorf("invalid weight value in %q: %w", pair, err)
		}

		category, err := matchCategory(name)
		if err != nil {
			return nil, err
		}
		dist[category] = value
	}

	if err := weights.Validate(dist); err != nil {
		return nil, err
	}
	return dist, nil
}

// parseScores parses a "Category=Score,..." flag into raw float scores.
func parseScores(raw string) (map[string]float64, error) {
	scores := make(map[string]float64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, valueStr, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid score %q, expected Category=Value", pair)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid score value in %q: %w", pair, err)
		}

		category, err := matchCategory(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		scores[category] = value
	}
	return scores, nil
}

// matchCategory resolves a case-insensitive name to a canonical category.
func matchCategory(name string) (string, error) {
	for _, category := range weights.Categories {
		if strings.EqualFold(category, name) {
			return category, nil
		}
	}
	return "", fmt.Errorf("%w: %s", weights.ErrUnknownCategory, name)
}

// loadKitFile reads and validates a kit JSON file.
func loadKitFile(path string) (*types.Kit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read kit file %s: %w", path, err)
	}

	var kit types.Kit
	if err := json.Unmarshal(data, &kit); err != nil {
		return nil, fmt.Errorf("failed to parse kit JSON: %w", err)
	}
	if err := kit.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kit file %s: %w", path, err)
	}
	return &kit, nil
}

// writeJSON writes data as indented JSON to a file, or stdout if path is empty.
func writeJSON(path string, data any) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if path == "" {
		fmt.Println(string(encoded))
		return nil
	}
	if err := os.WriteFile(path, append(encoded, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// resolveAPIKey returns the flag value or falls back to GEMINI_API_KEY.
func resolveAPIKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("API key is required (use --api-key or set GEMINI_API_KEY)")
}

// buildService wires an LLM client and reference fetcher into a kit service.
// The caller must call close when done.
func buildService(ctx context.Context, apiKey string, useBrowser bool) (*kitgen.Service, func(), error) {
	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	svc := kitgen.NewService(client, kitgen.NewPageFetcher(useBrowser))
	return svc, func() { _ = client.Close() }, nil
}
