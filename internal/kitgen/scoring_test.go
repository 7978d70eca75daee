package kitgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

const modelScoresJSON = `{
	"scores": {
		"Clarity & Relevance": 80,
		"Emotional Impact": 40,
		"Curiosity Gap": 40,
		"Visual Appeal": 20,
		"SEO Strength": 20
	},
	"rationales": {
		"Clarity & Relevance": "the titles state the topic plainly"
	}
}`

func evaluableKit(t *testing.T) *types.Kit {
	t.Helper()
	client := &fakeClient{jsonResponses: []string{modelKitV1JSON}}
	kit, err := NewService(client, nil).Generate(context.Background(), testBrief(), types.KitV1, weights.Default())
	require.NoError(t, err)
	return kit
}

func TestEvaluate_NormalizesScores(t *testing.T) {
	kit := evaluableKit(t)

	client := &fakeClient{jsonResponses: []string{modelScoresJSON}}
	svc := NewService(client, nil)

	dist, report, err := svc.Evaluate(context.Background(), kit)
	require.NoError(t, err)

	// Raw scores total 200, so each normalizes to half its raw value
	assert.Equal(t, 40, dist["Clarity & Relevance"])
	assert.Equal(t, 20, dist["Emotional Impact"])
	assert.Equal(t, 20, dist["Curiosity Gap"])
	assert.Equal(t, 10, dist["Visual Appeal"])
	assert.Equal(t, 10, dist["SEO Strength"])
	assert.Equal(t, 100, weights.Sum(dist))
	assert.NoError(t, weights.Validate(dist))

	require.NotNil(t, report)
	assert.Equal(t, 80.0, report.Scores["Clarity & Relevance"])
	assert.Contains(t, report.Rationales["Clarity & Relevance"], "plainly")

	// The evaluation prompt carries the kit being judged
	require.Len(t, client.jsonPrompts, 1)
	assert.Contains(t, client.jsonPrompts[0], "Sourdough")
}

func TestEvaluate_MalformedScores(t *testing.T) {
	kit := evaluableKit(t)

	client := &fakeClient{jsonResponses: []string{`{"scores": {"Clarity & Relevance": 80}}`}}
	svc := NewService(client, nil)

	_, _, err := svc.Evaluate(context.Background(), kit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed scores")
}

func TestEvaluate_AllZeroScoresYieldEvenSplit(t *testing.T) {
	kit := evaluableKit(t)

	zeros := `{"scores": {"Clarity & Relevance": 0, "Emotional Impact": 0, "Curiosity Gap": 0, "Visual Appeal": 0, "SEO Strength": 0}}`
	client := &fakeClient{jsonResponses: []string{zeros}}
	svc := NewService(client, nil)

	dist, _, err := svc.Evaluate(context.Background(), kit)
	require.NoError(t, err)
	assert.Equal(t, weights.Default(), dist)
}

func TestSuggestWeights(t *testing.T) {
	client := &fakeClient{jsonResponses: []string{modelScoresJSON}}
	svc := NewService(client, nil)

	dist, err := svc.SuggestWeights(context.Background(), testBrief())
	require.NoError(t, err)

	assert.Equal(t, 100, weights.Sum(dist))
	assert.Equal(t, 40, dist["Clarity & Relevance"])

	// The suggestion prompt carries the brief, not a kit
	require.Len(t, client.jsonPrompts, 1)
	assert.Contains(t, client.jsonPrompts[0], "Sourdough starters for beginners")
}

func TestSuggestWeights_InvalidBrief(t *testing.T) {
	client := &fakeClient{jsonResponses: []string{modelScoresJSON}}
	svc := NewService(client, nil)

	_, err := svc.SuggestWeights(context.Background(), types.Brief{})
	require.Error(t, err)
	assert.Empty(t, client.jsonPrompts)
}
