package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validV1Kit() *Kit {
	return &Kit{
		ID:      uuid.New(),
		Version: KitV1,
		Brief:   Brief{Topic: "Sourdough starters for beginners"},
		Titles:  []string{"I Kept a Sourdough Starter Alive for 30 Days"},
		Description: "What actually happens when you feed a starter every " +
			"day for a month.",
		Tags: []string{"sourdough", "baking"},
		Thumbnails: []ThumbnailConcept{
			{Headline: "DAY 30", Visual: "bubbling jar close-up", ImagePrompt: "macro shot of an active sourdough starter"},
		},
		Scenes: []ScriptScene{
			{Number: 1, Title: "Hook", Narration: "This jar almost died twice."},
		},
	}
}

func TestKitValidate_V1(t *testing.T) {
	kit := validV1Kit()
	assert.NoError(t, kit.Validate())
}

func TestKitValidate_UnknownVersion(t *testing.T) {
	kit := validV1Kit()
	kit.Version = "v9"
	assert.Error(t, kit.Validate())
}

func TestKitValidate_MissingAssets(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Kit)
	}{
		{"no titles", func(k *Kit) { k.Titles = nil }},
		{"no description", func(k *Kit) { k.Description = "" }},
		{"no thumbnails", func(k *Kit) { k.Thumbnails = nil }},
		{"no scenes", func(k *Kit) { k.Scenes = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kit := validV1Kit()
			tc.mutate(kit)
			assert.Error(t, kit.Validate())
		})
	}
}

func TestKitValidate_V1RejectsExtendedFields(t *testing.T) {
	kit := validV1Kit()
	kit.Hashtags = []string{"#sourdough"}

	err := kit.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extended fields")
}

func TestKitValidate_V2AllowsExtendedFields(t *testing.T) {
	kit := validV1Kit()
	kit.Version = KitV2
	kit.Hooks = []string{"Everyone kills their first starter. Here's why I didn't."}
	kit.Persona = &Persona{Name: "The Patient Baker", Voice: "calm, methodical"}
	kit.Hashtags = []string{"#sourdough", "#baking"}

	assert.NoError(t, kit.Validate())
	assert.True(t, kit.HasExtendedFields())
}

func TestKit_ExtendedFieldsOmittedFromV1JSON(t *testing.T) {
	kit := validV1Kit()

	data, err := json.Marshal(kit)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, field := range []string{"hooks", "persona", "competitor_analysis", "hashtags"} {
		_, present := raw[field]
		assert.False(t, present, "v1 kit JSON should not carry %q", field)
	}
}

func TestBriefValidate(t *testing.T) {
	brief := Brief{Topic: "Budget travel in Portugal"}
	assert.NoError(t, brief.Validate())

	empty := Brief{Audience: "students"}
	assert.Error(t, empty.Validate())
}
