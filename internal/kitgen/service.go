// Package kitgen orchestrates asset-kit generation, evaluation, and
// refinement against an LLM provider. The Service is handed its LLM client
// and reference fetcher explicitly; nothing here is ambient state.
package kitgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/promokit/internal/llm"
	"github.com/jonathan/promokit/internal/prompts"
	"github.com/jonathan/promokit/internal/schemas"
	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

// ReferenceFetcher retrieves the main text of a reference page named in a
// brief. Implementations live outside this package so tests can stub it.
type ReferenceFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Service generates, evaluates, and refines asset kits.
type Service struct {
	client llm.Client
	pages  ReferenceFetcher
}

// NewService creates a Service around an LLM client. The fetcher may be nil
// if extended kits with reference URLs are never requested.
func NewService(client llm.Client, pages ReferenceFetcher) *Service {
	return &Service{
		client: client,
		pages:  pages,
	}
}

// Generate produces a kit of the requested version from a brief, steered by
// the given weight distribution. For v2 kits with a reference URL, the
// reference page is fetched and analyzed first and the analysis feeds the
// generation prompt.
func (s *Service) Generate(ctx context.Context, brief types.Brief, version types.KitVersion, dist weights.Distribution) (*types.Kit, error) {
	if err := brief.Validate(); err != nil {
		return nil, fmt.Errorf("invalid brief: %w", err)
	}
	if err := weights.Validate(dist); err != nil {
		return nil, fmt.Errorf("invalid weight distribution: %w", err)
	}

	var competitor *types.CompetitorAnalysis
	if version == types.KitV2 && brief.ReferenceURL != "" {
		analysis, err := s.analyzeReference(ctx, brief)
		if err != nil {
			return nil, fmt.Errorf("competitor analysis failed: %w", err)
		}
		competitor = analysis
	}

	promptKey := "generate_kit_v1"
	if version == types.KitV2 {
		promptKey = "generate_kit_v2"
	}
	template, err := prompts.Get("kit.json", promptKey)
	if err != nil {
		return nil, err
	}

	data := briefPromptData(brief)
	data["Weights"] = FormatWeights(dist)
	if version == types.KitV2 {
		data["Competitor"] = competitorPromptData(competitor)
	}

	raw, err := s.client.GenerateJSON(ctx, prompts.Format(template, data), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("kit generation failed: %w", err)
	}

	if err := schemas.ValidateKitJSON(version, raw); err != nil {
		return nil, fmt.Errorf("model returned malformed kit: %w", err)
	}

	var kit types.Kit
	if err := json.Unmarshal([]byte(raw), &kit); err != nil {
		return nil, fmt.Errorf("failed to decode kit JSON: %w", err)
	}

	kit.ID = uuid.New()
	kit.Version = version
	kit.Brief = brief
	kit.Competitor = competitor

	if err := kit.Validate(); err != nil {
		return nil, fmt.Errorf("generated kit is inconsistent: %w", err)
	}

	return &kit, nil
}

// Refine regenerates a kit with the user's locked selections preserved and
// the weight distribution applied as emphasis. The refined kit keeps the
// original's identity, version, and brief.
func (s *Service) Refine(ctx context.Context, kit *types.Kit, selections types.RefineSelections, dist weights.Distribution) (*types.Kit, error) {
	if err := kit.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kit: %w", err)
	}
	if err := weights.Validate(dist); err != nil {
		return nil, fmt.Errorf("invalid weight distribution: %w", err)
	}

	template, err := prompts.Get("kit.json", "refine_kit")
	if err != nil {
		return nil, err
	}

	kitJSON, err := json.MarshalIndent(kit, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal kit: %w", err)
	}
	selectionsJSON, err := json.Marshal(selections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selections: %w", err)
	}

	prompt := prompts.Format(template, map[string]string{
		"Kit":        string(kitJSON),
		"Selections": string(selectionsJSON),
		"Weights":    FormatWeights(dist),
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("kit refinement failed: %w", err)
	}

	if err := schemas.ValidateKitJSON(kit.Version, raw); err != nil {
		return nil, fmt.Errorf("model returned malformed kit: %w", err)
	}

	var refined types.Kit
	if err := json.Unmarshal([]byte(raw), &refined); err != nil {
		return nil, fmt.Errorf("failed to decode refined kit JSON: %w", err)
	}

	refined.ID = kit.ID
	refined.Version = kit.Version
	refined.Brief = kit.Brief
	if refined.Competitor == nil {
		refined.Competitor = kit.Competitor
	}

	if err := refined.Validate(); err != nil {
		return nil, fmt.Errorf("refined kit is inconsistent: %w", err)
	}

	return &refined, nil
}

// maxReferenceChars bounds how much fetched page text goes into the
// analysis prompt; longer pages are condensed first.
const maxReferenceChars = 8000

// analyzeReference fetches the brief's reference page and summarizes it into
// a competitor analysis.
func (s *Service) analyzeReference(ctx context.Context, brief types.Brief) (*types.CompetitorAnalysis, error) {
	if s.pages == nil {
		return nil, fmt.Errorf("no reference fetcher configured")
	}

	text, err := s.pages.FetchText(ctx, brief.ReferenceURL)
	if err != nil {
		return nil, err
	}

	if len(text) > maxReferenceChars {
		text, err = s.condenseReference(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to condense reference text: %w", err)
		}
	}

	template, err := prompts.Get("kit.json", "competitor_analysis")
	if err != nil {
		return nil, err
	}

	prompt := prompts.Format(template, map[string]string{
		"Topic":         brief.Topic,
		"ReferenceText": text,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	var analysis types.CompetitorAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode competitor analysis: %w", err)
	}
	if analysis.Summary == "" {
		return nil, fmt.Errorf("competitor analysis has no summary")
	}

	return &analysis, nil
}

// condenseReference boils long fetched page text down to a plain-prose
// summary on the lite tier, keeping the analysis prompt within bounds.
func (s *Service) condenseReference(ctx context.Context, text string) (string, error) {
	template, err := prompts.Get("kit.json", "condense_reference")
	if err != nil {
		return "", err
	}

	condensed, err := s.client.GenerateContent(ctx,
		prompts.Format(template, map[string]string{"ReferenceText": text}), llm.TierLite)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(condensed) == "" {
		return "", fmt.Errorf("model returned empty condensation")
	}
	return condensed, nil
}

// ThumbnailImage is a rendered thumbnail concept.
type ThumbnailImage struct {
	ConceptIndex int
	Data         []byte
	MIMEType     string
}

// Thumbnail renders a single thumbnail concept as an image.
func (s *Service) Thumbnail(ctx context.Context, concept types.ThumbnailConcept) (*ThumbnailImage, error) {
	if concept.ImagePrompt == "" {
		return nil, fmt.Errorf("thumbnail concept has no image prompt")
	}

	data, mimeType, err := s.client.GenerateImage(ctx, concept.ImagePrompt)
	if err != nil {
		return nil, fmt.Errorf("thumbnail generation failed: %w", err)
	}

	return &ThumbnailImage{Data: data, MIMEType: mimeType}, nil
}

// Thumbnails renders every thumbnail concept in the kit concurrently.
// Results are ordered by concept index. The first failure cancels the rest.
func (s *Service) Thumbnails(ctx context.Context, kit *types.Kit) ([]ThumbnailImage, error) {
	images := make([]ThumbnailImage, len(kit.Thumbnails))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for i, concept := range kit.Thumbnails {
		g.Go(func() error {
			img, err := s.Thumbnail(gCtx, concept)
			if err != nil {
				return fmt.Errorf("concept %d: %w", i, err)
			}
			img.ConceptIndex = i
			images[i] = *img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// FormatWeights renders a distribution as prompt-ready lines in canonical
// category order.
func FormatWeights(dist weights.Distribution) string {
	var sb strings.Builder
	for _, c := range weights.Categories {
		sb.WriteString(fmt.Sprintf("- %s: %d%%\n", c, dist[c]))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// briefPromptData maps brief fields to prompt placeholders, substituting
// sensible defaults for empty optional fields.
func briefPromptData(brief types.Brief) map[string]string {
	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return map[string]string{
		"Topic":    brief.Topic,
		"Audience": orDefault(brief.Audience, "general audience"),
		"Tone":     orDefault(brief.Tone, "engaging"),
		"Platform": orDefault(brief.Platform, "YouTube"),
		"Notes":    orDefault(brief.Notes, "none"),
	}
}

// competitorPromptData renders a competitor analysis for prompt embedding.
func competitorPromptData(analysis *types.CompetitorAnalysis) string {
	if analysis == nil {
		return "none available"
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "none available"
	}
	return string(data)
}
