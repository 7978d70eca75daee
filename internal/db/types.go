package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

// KitRecord is a stored kit plus the weight distribution it was last
// generated or refined under.
type KitRecord struct {
	Kit       types.Kit            `json:"kit"`
	Weights   weights.Distribution `json:"weights"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// KitSummary is a lightweight view of a stored kit for listing.
type KitSummary struct {
	ID        uuid.UUID        `json:"id"`
	Version   types.KitVersion `json:"version"`
	Topic     string           `json:"topic"`
	CreatedAt time.Time        `json:"created_at"`
}

// WeightPreset is a named, reusable weight distribution.
type WeightPreset struct {
	Name      string               `json:"name"`
	Weights   weights.Distribution `json:"weights"`
	CreatedAt time.Time            `json:"created_at"`
}
