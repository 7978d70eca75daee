package kitgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/promokit/internal/llm"
	"github.com/jonathan/promokit/internal/prompts"
	"github.com/jonathan/promokit/internal/schemas"
	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

// Evaluate scores a kit on the five quality categories and normalizes the
// raw scores into a valid distribution. A malformed model response surfaces
// as an error; callers that need a distribution anyway should fall back to
// weights.Default.
func (s *Service) Evaluate(ctx context.Context, kit *types.Kit) (weights.Distribution, *types.ScoreReport, error) {
	kitJSON, err := json.MarshalIndent(kit, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal kit: %w", err)
	}

	report, err := s.requestScores(ctx, "evaluate_kit", map[string]string{
		"Kit": string(kitJSON),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("kit evaluation failed: %w", err)
	}

	return weights.Normalize(report.Scores), report, nil
}

// SuggestWeights asks the model how much each quality category should matter
// for a brief, normalized into a valid distribution.
func (s *Service) SuggestWeights(ctx context.Context, brief types.Brief) (weights.Distribution, error) {
	if err := brief.Validate(); err != nil {
		return nil, fmt.Errorf("invalid brief: %w", err)
	}

	report, err := s.requestScores(ctx, "suggest_weights", briefPromptData(brief))
	if err != nil {
		return nil, fmt.Errorf("weight suggestion failed: %w", err)
	}

	return weights.Normalize(report.Scores), nil
}

// requestScores runs a scoring prompt and decodes the schema-validated
// score report.
func (s *Service) requestScores(ctx context.Context, promptKey string, data map[string]string) (*types.ScoreReport, error) {
	template, err := prompts.Get("scoring.json", promptKey)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateJSON(ctx, prompts.Format(template, data), llm.TierStandard)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateScoresJSON(raw); err != nil {
		return nil, fmt.Errorf("model returned malformed scores: %w", err)
	}

	var report types.ScoreReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("failed to decode score report: %w", err)
	}

	return &report, nil
}
