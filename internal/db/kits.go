package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

// SaveKit stores a kit with the distribution it was generated under,
// replacing any previous record with the same ID.
func (db *DB) SaveKit(ctx context.Context, kit *types.Kit, dist weights.Distribution) error {
	briefJSON, err := json.Marshal(kit.Brief)
	if err != nil {
		return fmt.Errorf("failed to marshal brief: %w", err)
	}
	kitJSON, err := json.Marshal(kit)
	if err != nil {
		return fmt.Errorf("failed to marshal kit: %w", err)
	}
	weightsJSON, err := json.Marshal(dist)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO kits (id, version, brief, kit, weights)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET kit = $4, weights = $5, updated_at = NOW()`,
		kit.ID, string(kit.Version), briefJSON, kitJSON, weightsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save kit: %w", err)
	}
	return nil
}

// GetKit retrieves a stored kit by ID. Returns nil if not found.
func (db *DB) GetKit(ctx context.Context, id uuid.UUID) (*KitRecord, error) {
	var record KitRecord
	var kitJSON, weightsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT kit, weights, created_at, updated_at FROM kits WHERE id = $1`,
		id,
	).Scan(&kitJSON, &weightsJSON, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get kit: %w", err)
	}

	if err := json.Unmarshal(kitJSON, &record.Kit); err != nil {
		return nil, fmt.Errorf("failed to decode stored kit: %w", err)
	}
	if err := json.Unmarshal(weightsJSON, &record.Weights); err != nil {
		return nil, fmt.Errorf("failed to decode stored weights: %w", err)
	}

	return &record, nil
}

// ListKits retrieves recent kit summaries, newest first.
func (db *DB) ListKits(ctx context.Context, limit int) ([]KitSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, version, brief->>'topic', created_at
		 FROM kits ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list kits: %w", err)
	}
	defer rows.Close()

	var summaries []KitSummary
	for rows.Next() {
		var s KitSummary
		var version string
		if err := rows.Scan(&s.ID, &version, &s.Topic, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kit summary: %w", err)
		}
		s.Version = types.KitVersion(version)
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// UpdateKitWeights replaces the stored distribution for a kit.
func (db *DB) UpdateKitWeights(ctx context.Context, id uuid.UUID, dist weights.Distribution) error {
	weightsJSON, err := json.Marshal(dist)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE kits SET weights = $1, updated_at = NOW() WHERE id = $2`,
		weightsJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update kit weights: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("kit not found: %s", id)
	}
	return nil
}

// DeleteKit deletes a stored kit.
func (db *DB) DeleteKit(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM kits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete kit: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("kit not found: %s", id)
	}
	return nil
}

// SaveWeightPreset stores a named distribution, replacing any preset with
// the same name.
func (db *DB) SaveWeightPreset(ctx context.Context, name string, dist weights.Distribution) error {
	if name == "" {
		return fmt.Errorf("preset name is required")
	}
	weightsJSON, err := json.Marshal(dist)
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO weight_presets (name, weights)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET weights = $2`,
		name, weightsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save weight preset: %w", err)
	}
	return nil
}

// GetWeightPreset retrieves a preset by name. Returns nil if not found.
func (db *DB) GetWeightPreset(ctx context.Context, name string) (*WeightPreset, error) {
	var preset WeightPreset
	var weightsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT name, weights, created_at FROM weight_presets WHERE name = $1`,
		name,
	).Scan(&preset.Name, &weightsJSON, &preset.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get weight preset: %w", err)
	}

	if err := json.Unmarshal(weightsJSON, &preset.Weights); err != nil {
		return nil, fmt.Errorf("failed to decode stored weights: %w", err)
	}

	return &preset, nil
}

// ListWeightPresets retrieves all presets ordered by name.
func (db *DB) ListWeightPresets(ctx context.Context) ([]WeightPreset, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, weights, created_at FROM weight_presets ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight presets: %w", err)
	}
	defer rows.Close()

	var presets []WeightPreset
	for rows.Next() {
		var preset WeightPreset
		var weightsJSON []byte
		if err := rows.Scan(&preset.Name, &weightsJSON, &preset.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weight preset: %w", err)
		}
		if err := json.Unmarshal(weightsJSON, &preset.Weights); err != nil {
			return nil, fmt.Errorf("failed to decode stored weights: %w", err)
		}
		presets = append(presets, preset)
	}
	return presets, nil
}
