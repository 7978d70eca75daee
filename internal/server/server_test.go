package server

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/promokit/internal/db"
	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

// fakeKits implements KitService with canned results
type fakeKits struct {
	kit       *types.Kit
	refined   *types.Kit
	evalDist  weights.Distribution
	report    *types.ScoreReport
	suggested weights.Distribution
	err       error

	generateDist weights.Distribution
	refineDist   weights.Distribution
}

func (f *fakeKits) Generate(_ context.Context, brief types.Brief, version types.KitVersion, dist weights.Distribution) (*types.Kit, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.generateDist = dist
	kit := *f.kit
	kit.Brief = brief
	kit.Version = version
	return &kit, nil
}

func (f *fakeKits) Refine(_ context.Context, kit *types.Kit, _ types.RefineSelections, dist weights.Distribution) (*types.Kit, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.refineDist = dist
	refined := *f.refined
	refined.ID = kit.ID
	return &refined, nil
}

func (f *fakeKits) Evaluate(_ context.Context, _ *types.Kit) (weights.Distribution, *types.ScoreReport, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.evalDist, f.report, nil
}

func (f *fakeKits) SuggestWeights(_ context.Context, _ types.Brief) (weights.Distribution, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.suggested, nil
}

// fakeStore implements KitStore in memory
type fakeStore struct {
	kits    map[uuid.UUID]*db.KitRecord
	presets map[string]*db.WeightPreset
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		kits:    make(map[uuid.UUID]*db.KitRecord),
		presets: make(map[string]*db.WeightPreset),
	}
}

func (f *fakeStore) SaveKit(_ context.Context, kit *types.Kit, dist weights.Distribution) error {
	if f.err != nil {
		return f.err
	}
	f.kits[kit.ID] = &db.KitRecord{Kit: *kit, Weights: dist}
	return nil
}

func (f *fakeStore) GetKit(_ context.Context, id uuid.UUID) (*db.KitRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.kits[id], nil
}

func (f *fakeStore) ListKits(_ context.Context, _ int) ([]db.KitSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	var summaries []db.KitSummary
	for id, record := range f.kits {
		summaries = append(summaries, db.KitSummary{
			ID:      id,
			Version: record.Kit.Version,
			Topic:   record.Kit.Brief.Topic,
		})
	}
	return summaries, nil
}

func (f *fakeStore) UpdateKitWeights(_ context.Context, id uuid.UUID, dist weights.Distribution) error {
	record, ok := f.kits[id]
	if !ok {
		return fmt.Errorf("kit not found: %s", id)
	}
	record.Weights = dist
	return nil
}

func (f *fakeStore) DeleteKit(_ context.Context, id uuid.UUID) error {
	delete(f.kits, id)
	return nil
}

func (f *fakeStore) SaveWeightPreset(_ context.Context, name string, dist weights.Distribution) error {
	if f.err != nil {
		return f.err
	}
	f.presets[name] = &db.WeightPreset{Name: name, Weights: dist}
	return nil
}

func (f *fakeStore) GetWeightPreset(_ context.Context, name string) (*db.WeightPreset, error) {
	return f.presets[name], nil
}

func (f *fakeStore) ListWeightPresets(_ context.Context) ([]db.WeightPreset, error) {
	var presets []db.WeightPreset
	for _, preset := range f.presets {
		presets = append(presets, *preset)
	}
	return presets, nil
}

func (f *fakeStore) Close() {}

func generatedKit() *types.Kit {
	return &types.Kit{
		ID:          uuid.New(),
		Version:     types.KitV1,
		Titles:      []string{"How Sourdough Actually Works"},
		Description: "The microbiology behind a healthy starter.",
		Tags:        []string{"sourdough"},
		Thumbnails: []types.ThumbnailConcept{
			{Headline: "ALIVE", Visual: "bubbling starter jar", ImagePrompt: "macro shot of sourdough starter"},
		},
		Scenes: []types.ScriptScene{
			{Number: 1, Title: "Hook", Narration: "Your starter is a zoo."},
		},
	}
}

// testServer builds a server around fakes without starting it
func testServer(kits *fakeKits, store *fakeStore) *Server {
	return New(Config{Port: 0}, kits, store)
}

func TestHandleHealth(t *testing.T) {
	s := testServer(&fakeKits{}, newFakeStore())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, req)

	require.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 404, HTTPStatus(&ErrKitNotFound{ID: uuid.New()}))
	assert.Equal(t, 404, HTTPStatus(&ErrPresetNotFound{Name: "x"}))
	assert.Equal(t, 400, HTTPStatus(&ErrValidation{Field: "topic", Message: "required"}))
	assert.Equal(t, 500, HTTPStatus(fmt.Errorf("boom")))
}
