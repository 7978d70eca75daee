package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/promokit/internal/db"
	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleCreateKit(t *testing.T) {
	kits := &fakeKits{kit: generatedKit()}
	store := newFakeStore()
	s := testServer(kits, store)

	w := postJSON(t, s.handleCreateKit, "/kits", CreateKitRequest{
		Topic:    "Sourdough starters for beginners",
		Audience: "home bakers",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp KitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.KitV1, resp.Kit.Version)
	assert.Equal(t, "Sourdough starters for beginners", resp.Kit.Brief.Topic)
	assert.Equal(t, weights.Default(), resp.Weights)

	// The generated kit was persisted
	record, ok := store.kits[resp.Kit.ID]
	require.True(t, ok)
	assert.Equal(t, weights.Default(), record.Weights)
}

func TestHandleCreateKit_ExplicitWeightsAndVersion(t *testing.T) {
	kits := &fakeKits{kit: generatedKit()}
	s := testServer(kits, newFakeStore())

	dist, err := weights.Redistribute(weights.Default(), "Curiosity Gap", 40)
	require.NoError(t, err)

	w := postJSON(t, s.handleCreateKit, "/kits", CreateKitRequest{
		Topic:   "Sourdough starters for beginners",
		Version: "v2",
		Weights: dist,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, dist, kits.generateDist)

	var resp KitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.KitV2, resp.Kit.Version)
}

func TestHandleCreateKit_MissingTopic(t *testing.T) {
	s := testServer(&fakeKits{kit: generatedKit()}, newFakeStore())

	w := postJSON(t, s.handleCreateKit, "/kits", CreateKitRequest{Audience: "home bakers"})

	require.Equal(t, HTTPStatus(&ErrValidation{}), w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
	assert.Contains(t, w.Body.String(), "Topic")
}

func TestHandleCreateKit_BadVersionFlag(t *testing.T) {
	s := testServer(&fakeKits{kit: generatedKit()}, newFakeStore())

	w := postJSON(t, s.handleCreateKit, "/kits", CreateKitRequest{
		Topic:   "Sourdough starters for beginners",
		Version: "v3",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
	assert.Contains(t, w.Body.String(), "Version")
}

func TestHandleCreateKit_InvalidWeights(t *testing.T) {
	s := testServer(&fakeKits{kit: generatedKit()}, newFakeStore())

	w := postJSON(t, s.handleCreateKit, "/kits", CreateKitRequest{
		Topic:   "Sourdough starters for beginners",
		Weights: weights.Distribution{"Clarity & Relevance": 100},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid weights")
}

func TestHandleCreateKit_InvalidBody(t *testing.T) {
	s := testServer(&fakeKits{kit: generatedKit()}, newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/kits", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	s.handleCreateKit(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetKit(t *testing.T) {
	store := newFakeStore()
	kit := generatedKit()
	store.kits[kit.ID] = &db.KitRecord{Kit: *kit, Weights: weights.Default()}
	s := testServer(&fakeKits{}, store)

	req := httptest.NewRequest(http.MethodGet, "/kits/"+kit.ID.String(), nil)
	req.SetPathValue("id", kit.ID.String())
	w := httptest.NewRecorder()
	s.handleGetKit(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var record db.KitRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, kit.ID, record.Kit.ID)
}

func TestHandleGetKit_NotFound(t *testing.T) {
	s := testServer(&fakeKits{}, newFakeStore())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/kits/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()
	s.handleGetKit(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "kit not found")
}

func TestHandleGetKit_InvalidID(t *testing.T) {
	s := testServer(&fakeKits{}, newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/kits/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()
	s.handleGetKit(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDeleteKit(t *testing.T) {
	store := newFakeStore()
	kit := generatedKit()
	store.kits[kit.ID] = &db.KitRecord{Kit: *kit, Weights: weights.Default()}
	s := testServer(&fakeKits{}, store)

	req := httptest.NewRequest(http.MethodDelete, "/kits/"+kit.ID.String(), nil)
	req.SetPathValue("id", kit.ID.String())
	w := httptest.NewRecorder()
	s.handleDeleteKit(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.kits)
}

func TestHandleListKits(t *testing.T) {
	store := newFakeStore()
	kit := generatedKit()
	kit.Brief.Topic = "Sourdough starters for beginners"
	store.kits[kit.ID] = &db.KitRecord{Kit: *kit, Weights: weights.Default()}
	s := testServer(&fakeKits{}, store)

	req := httptest.NewRequest(http.MethodGet, "/kits?limit=10", nil)
	w := httptest.NewRecorder()
	s.handleListKits(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Kits []db.KitSummary `json:"kits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Kits, 1)
	assert.Equal(t, "Sourdough starters for beginners", resp.Kits[0].Topic)
}

func TestHandleListKits_InvalidLimit(t *testing.T) {
	s := testServer(&fakeKits{}, newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/kits?limit=banana", nil)
	w := httptest.NewRecorder()
	s.handleListKits(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleEvaluateKit(t *testing.T) {
	store := newFakeStore()
	kit := generatedKit()
	store.kits[kit.ID] = &db.KitRecord{Kit: *kit, Weights: weights.Default()}

	evalDist, err := weights.Redistribute(weights.Default(), "Emotional Impact", 40)
	require.NoError(t, err)
	kits := &fakeKits{
		evalDist: evalDist,
		report:   &types.ScoreReport{Scores: map[string]float64{"Emotional Impact": 80}},
	}
	s := testServer(kits, store)

	req := httptest.NewRequest(http.MethodPost, "/kits/"+kit.ID.String()+"/evaluate", nil)
	req.SetPathValue("id", kit.ID.String())
	w := httptest.NewRecorder()
	s.handleEvaluateKit(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp EvaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, evalDist, resp.Weights)
	assert.Equal(t, 80.0, resp.Report.Scores["Emotional Impact"])

	// The stored distribution follows the evaluation
	assert.Equal(t, evalDist, store.kits[kit.ID].Weights)
}

func TestHandleRefineKit_UsesStoredWeights(t *testing.T) {
	store := newFakeStore()
	kit := generatedKit()
	stored, err := weights.Redistribute(weights.Default(), "SEO Strength", 50)
	require.NoError(t, err)
	store.kits[kit.ID] = &db.KitRecord{Kit: *kit, Weights: stored}

	refined := generatedKit()
	refined.Titles = []string{"Refined Title"}
	kits := &fakeKits{refined: refined}
	s := testServer(kits, store)

	titleIndex := 0
	payload, err := json.Marshal(RefineKitRequest{TitleIndex: &titleIndex, Guidance: "shorter titles"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/kits/"+kit.ID.String()+"/refine", bytes.NewReader(payload))
	req.SetPathValue("id", kit.ID.String())
	w := httptest.NewRecorder()
	s.handleRefineKit(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, stored, kits.refineDist)

	var resp KitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, kit.ID, resp.Kit.ID)
	assert.Equal(t, []string{"Refined Title"}, resp.Kit.Titles)
}

func TestHandleRefineKit_NotFound(t *testing.T) {
	s := testServer(&fakeKits{refined: generatedKit()}, newFakeStore())

	id := uuid.New()
	payload, err := json.Marshal(RefineKitRequest{Guidance: "punchier"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/kits/"+id.String()+"/refine", bytes.NewReader(payload))
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()
	s.handleRefineKit(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
