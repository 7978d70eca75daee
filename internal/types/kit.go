package types

import (
	"fmt"

	"github.com/google/uuid"
)

// KitVersion identifies the asset-kit contract revision. The version is an
// explicit capability flag: consumers branch on it rather than inferring the
// shape from which optional fields happen to be present.
type KitVersion string

const (
	// KitV1 is the basic kit: titles, description, tags, thumbnail
	// concepts, and script scenes.
	KitV1 KitVersion = "v1"
	// KitV2 extends v1 with hooks, a presenter persona, competitor
	// analysis, and hashtags.
	KitV2 KitVersion = "v2"
)

// Kit is a full set of promotional assets generated from a brief.
type Kit struct {
	ID      uuid.UUID  `json:"id"`
	Version KitVersion `json:"version"`
	Brief   Brief      `json:"brief"`

	Titles      []string           `json:"titles"`
	Description string             `json:"description"`
	Tags        []string           `json:"tags"`
	Thumbnails  []ThumbnailConcept `json:"thumbnail_concepts"`
	Scenes      []ScriptScene      `json:"script_scenes"`

	// Extended fields, present only when Version is KitV2.
	Hooks      []string            `json:"hooks,omitempty"`
	Persona    *Persona            `json:"persona,omitempty"`
	Competitor *CompetitorAnalysis `json:"competitor_analysis,omitempty"`
	Hashtags   []string            `json:"hashtags,omitempty"`
}

// ThumbnailConcept describes one thumbnail idea plus the prompt used to
// synthesize it as an image.
type ThumbnailConcept struct {
	Headline    string `json:"headline"`
	Visual      string `json:"visual"`
	Palette     string `json:"palette,omitempty"`
	ImagePrompt string `json:"image_prompt"`
}

// ScriptScene is one beat of the video script.
type ScriptScene struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Narration   string `json:"narration"`
	Visual      string `json:"visual,omitempty"`
	DurationSec int    `json:"duration_sec,omitempty"`
}

// Persona describes the presenter voice the extended kit is written for.
type Persona struct {
	Name   string   `json:"name"`
	Voice  string   `json:"voice"`
	Traits []string `json:"traits,omitempty"`
}

// CompetitorAnalysis summarizes reference material pulled from the brief's
// reference URL and the angles it suggests.
type CompetitorAnalysis struct {
	Summary string   `json:"summary"`
	Angles  []string `json:"angles,omitempty"`
	Gaps    []string `json:"gaps,omitempty"`
}

// HasExtendedFields reports whether any v2-only field is populated.
func (k *Kit) HasExtendedFields() bool {
	return len(k.Hooks) > 0 || k.Persona != nil || k.Competitor != nil || len(k.Hashtags) > 0
}

// Validate checks structural consistency: a known version, required asset
// groups present, and no extended fields on a v1 kit.
func (k *Kit) Validate() error {
	switch k.Version {
	case KitV1, KitV2:
	default:
		return fmt.Errorf("unknown kit version %q", k.Version)
	}

	if len(k.Titles) == 0 {
		return fmt.Errorf("kit has no titles")
	}
	if k.Description == "" {
		return fmt.Errorf("kit has no description")
	}
	if len(k.Thumbnails) == 0 {
		return fmt.Errorf("kit has no thumbnail concepts")
	}
	if len(k.Scenes) == 0 {
		return fmt.Errorf("kit has no script scenes")
	}

	if k.Version == KitV1 && k.HasExtendedFields() {
		return fmt.Errorf("v1 kit carries extended fields")
	}

	return nil
}
