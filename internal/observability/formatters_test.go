package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

func TestPrintBrief(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	brief := &types.Brief{
		Topic:    "Sourdough starters for beginners",
		Audience: "home bakers",
		Platform: "YouTube",
	}

	p.PrintBrief(brief)
	output := buf.String()

	assert.Contains(t, output, "CREATIVE BRIEF")
	assert.Contains(t, output, "Sourdough starters for beginners")
	assert.Contains(t, output, "home bakers")
	assert.Contains(t, output, "YouTube")
}

func TestPrintBrief_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBrief(nil)

	assert.Empty(t, buf.String())
}

func TestPrintDistribution(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDistribution(weights.Default())
	output := buf.String()

	assert.Contains(t, output, "WEIGHT DISTRIBUTION")
	for _, category := range weights.Categories {
		assert.Contains(t, output, category)
	}
	assert.Contains(t, output, "20%")
}

func TestPrintDistribution_BarLinesStayIntact(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDistribution(weights.Default())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.True(t, utf8.ValidString(line), "line contains a split rune: %q", line)
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "misaligned line: %q", line)
	}
}

func TestPadLine_TruncatesByRunes(t *testing.T) {
	long := strings.Repeat("█", boxWidth)
	padded := padLine(long)

	assert.True(t, utf8.ValidString(padded))
	assert.Equal(t, boxWidth-4, utf8.RuneCountInString(padded))
	assert.True(t, strings.HasSuffix(padded, "..."))
}

func TestPrintDistribution_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDistribution(nil)

	assert.Empty(t, buf.String())
}

func TestPrintKit(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	kit := &types.Kit{
		ID:      uuid.New(),
		Version: types.KitV2,
		Titles:  []string{"How Sourdough Actually Works", "Your Starter Is Alive"},
		Tags:    []string{"sourdough", "baking"},
		Thumbnails: []types.ThumbnailConcept{
			{Headline: "ALIVE"},
		},
		Scenes: []types.ScriptScene{
			{Number: 1, Title: "Hook"},
		},
		Hooks: []string{"Your starter is a zoo."},
	}

	p.PrintKit(kit)
	output := buf.String()

	assert.Contains(t, output, "GENERATED KIT")
	assert.Contains(t, output, "How Sourdough Actually Works")
	assert.Contains(t, output, "sourdough, baking")
	assert.Contains(t, output, "Thumbnail concepts: 1")
	assert.Contains(t, output, "Hooks")
}

func TestPrintScoreReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &types.ScoreReport{
		Scores: map[string]float64{
			"Clarity & Relevance": 80,
			"Curiosity Gap":       45.5,
		},
		Rationales: map[string]string{
			"Clarity & Relevance": "titles state the topic plainly",
		},
	}

	p.PrintScoreReport(report)
	output := buf.String()

	assert.Contains(t, output, "EVALUATION SCORES")
	assert.Contains(t, output, "80.0")
	assert.Contains(t, output, "45.5")
	assert.Contains(t, output, "plainly")
}

func TestPrintScoreReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreReport(&types.ScoreReport{})

	assert.Empty(t, buf.String())
}

func TestPrintScenes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	scenes := []types.ScriptScene{
		{Number: 1, Title: "Hook", DurationSec: 15},
		{Number: 2, Title: "Setup", DurationSec: 30},
	}

	p.PrintScenes(scenes)
	output := buf.String()

	assert.Contains(t, output, "SCRIPT PLAN")
	assert.Contains(t, output, "2 scenes, ~45s total")
	assert.Contains(t, output, "Hook")
	assert.Contains(t, output, "(30s)")
}
