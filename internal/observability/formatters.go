// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of distribution bars in characters
	barWidth = 25
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", padLine(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %s │\n", padLine(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// padLine truncates and pads a line to the box's inner width. Lengths are
// measured in runes, not bytes, so bar characters and other multi-byte
// runes never get split and the border stays aligned.
func padLine(line string) string {
	runes := []rune(line)
	if len(runes) > boxWidth-4 {
		return string(runes[:boxWidth-7]) + "..."
	}
	return string(runes) + strings.Repeat(" ", boxWidth-4-len(runes))
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintBrief outputs a human-readable summary of the creative brief.
func (p *Printer) PrintBrief(brief *types.Brief) {
	if brief == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Topic:    %s\n", brief.Topic))
	if brief.Audience != "" {
		sb.WriteString(fmt.Sprintf("Audience: %s\n", brief.Audience))
	}
	if brief.Tone != "" {
		sb.WriteString(fmt.Sprintf("Tone:     %s\n", brief.Tone))
	}
	if brief.Platform != "" {
		sb.WriteString(fmt.Sprintf("Platform: %s\n", brief.Platform))
	}
	if brief.ReferenceURL != "" {
		sb.WriteString(fmt.Sprintf("Ref URL:  %s\n", brief.ReferenceURL))
	}

	p.printBox("CREATIVE BRIEF", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDistribution outputs a bar chart of the weight distribution in
// canonical category order.
func (p *Printer) PrintDistribution(dist weights.Distribution) {
	if dist == nil {
		return
	}

	var sb strings.Builder
	for i, category := range weights.Categories {
		value := dist[category]
		filled := value * barWidth / 100
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		sb.WriteString(fmt.Sprintf("%-20s %s %3d%%", category, bar, value))
		if i < len(weights.Categories)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("WEIGHT DISTRIBUTION", sb.String())
}

// PrintKit outputs a human-readable summary of a generated kit.
func (p *Printer) PrintKit(kit *types.Kit) {
	if kit == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Kit %s (%s)\n\n", kit.ID, kit.Version))

	if len(kit.Titles) > 0 {
		sb.WriteString("Titles:\n")
		count := min(len(kit.Titles), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", kit.Titles[i]))
		}
		if len(kit.Titles) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(kit.Titles)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(kit.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("Tags: %s\n\n", truncate(strings.Join(kit.Tags, ", "), 50)))
	}

	sb.WriteString(fmt.Sprintf("Thumbnail concepts: %d\n", len(kit.Thumbnails)))
	sb.WriteString(fmt.Sprintf("Script scenes:      %d", len(kit.Scenes)))

	if len(kit.Hooks) > 0 {
		sb.WriteString(fmt.Sprintf("\nHooks:              %d", len(kit.Hooks)))
	}

	p.printBox("GENERATED KIT", sb.String())
}

// PrintScoreReport outputs raw evaluation scores with their rationales.
func (p *Printer) PrintScoreReport(report *types.ScoreReport) {
	if report == nil || len(report.Scores) == 0 {
		return
	}

	var sb strings.Builder
	for i, category := range weights.Categories {
		score, ok := report.Scores[category]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-20s %6.1f\n", category, score))
		if rationale := report.Rationales[category]; rationale != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", truncate(rationale, 50)))
		}
		if i < len(weights.Categories)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EVALUATION SCORES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScenes outputs the script scene plan.
func (p *Printer) PrintScenes(scenes []types.ScriptScene) {
	if len(scenes) == 0 {
		return
	}

	var sb strings.Builder
	totalSec := 0
	for _, scene := range scenes {
		totalSec += scene.DurationSec
	}
	sb.WriteString(fmt.Sprintf("%d scenes, ~%ds total\n\n", len(scenes), totalSec))

	count := min(len(scenes), maxItemsToShow)
	for i := 0; i < count; i++ {
		scene := scenes[i]
		sb.WriteString(fmt.Sprintf("#%d  %s", scene.Number, scene.Title))
		if scene.DurationSec > 0 {
			sb.WriteString(fmt.Sprintf(" (%ds)", scene.DurationSec))
		}
		sb.WriteString("\n")
	}
	if len(scenes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more scenes\n", len(scenes)-maxItemsToShow))
	}

	p.printBox("SCRIPT PLAN", strings.TrimSuffix(sb.String(), "\n"))
}
