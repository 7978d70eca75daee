package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

// CreateKitRequest represents the request body for POST /kits
type CreateKitRequest struct {
	Topic        string               `json:"topic" validate:"required,min=1"`
	Audience     string               `json:"audience,omitempty"`
	Tone         string               `json:"tone,omitempty"`
	Platform     string               `json:"platform,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	ReferenceURL string               `json:"reference_url,omitempty" validate:"omitempty,url"`
	Version      string               `json:"version,omitempty" validate:"omitempty,oneof=v1 v2"`
	Weights      weights.Distribution `json:"weights,omitempty"`
}

// RefineKitRequest represents the request body for POST /kits/{id}/refine
type RefineKitRequest struct {
	TitleIndex     *int                 `json:"title_index,omitempty" validate:"omitempty,min=0"`
	ThumbnailIndex *int                 `json:"thumbnail_index,omitempty" validate:"omitempty,min=0"`
	KeepTags       []string             `json:"keep_tags,omitempty"`
	Guidance       string               `json:"guidance,omitempty"`
	Weights        weights.Distribution `json:"weights,omitempty"`
}

// KitResponse pairs a kit with the distribution it was generated under
type KitResponse struct {
	Kit     *types.Kit           `json:"kit"`
	Weights weights.Distribution `json:"weights"`
}

// EvaluateResponse represents the response for POST /kits/{id}/evaluate
type EvaluateResponse struct {
	Weights weights.Distribution `json:"weights"`
	Report  *types.ScoreReport   `json:"report"`
}

// handleCreateKit generates a new kit from a brief and stores it
func (s *Server) handleCreateKit(w http.ResponseWriter, r *http.Request) {
	var req CreateKitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.validationError(w, err)
		return
	}

	dist := req.Weights
	if dist == nil {
		dist = weights.Default()
	} else if err := weights.Validate(dist); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid weights: "+err.Error())
		return
	}

	version := types.KitVersion(req.Version)
	if version == "" {
		version = types.KitV1
	}

	brief := types.Brief{
		Topic:        req.Topic,
		Audience:     req.Audience,
		Tone:         req.Tone,
		Platform:     req.Platform,
		Notes:        req.Notes,
		ReferenceURL: req.ReferenceURL,
	}

	kit, err := s.kits.Generate(r.Context(), brief, version, dist)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Kit generation failed: "+err.Error())
		return
	}

	if err := s.store.SaveKit(r.Context(), kit, dist); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save kit: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, KitResponse{Kit: kit, Weights: dist})
}

// handleListKits returns recent kit summaries
func (s *Server) handleListKits(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	summaries, err := s.store.ListKits(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list kits: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"kits": summaries})
}

// handleGetKit returns a stored kit by ID
func (s *Server) handleGetKit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.kitID(w, r)
	if !ok {
		return
	}

	record, err := s.store.GetKit(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get kit: "+err.Error())
		return
	}
	if record == nil {
		notFound := &ErrKitNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// handleDeleteKit deletes a stored kit
func (s *Server) handleDeleteKit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.kitID(w, r)
	if !ok {
		return
	}

	record, err := s.store.GetKit(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get kit: "+err.Error())
		return
	}
	if record == nil {
		notFound := &ErrKitNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	if err := s.store.DeleteKit(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete kit: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleEvaluateKit scores a stored kit and updates its distribution
func (s *Server) handleEvaluateKit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.kitID(w, r)
	if !ok {
		return
	}

	record, err := s.store.GetKit(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get kit: "+err.Error())
		return
	}
	if record == nil {
		notFound := &ErrKitNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	dist, report, err := s.kits.Evaluate(r.Context(), &record.Kit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Evaluation failed: "+err.Error())
		return
	}

	if err := s.store.UpdateKitWeights(r.Context(), id, dist); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update weights: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, EvaluateResponse{Weights: dist, Report: report})
}

// handleRefineKit regenerates a stored kit around the caller's selections
func (s *Server) handleRefineKit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.kitID(w, r)
	if !ok {
		return
	}

	var req RefineKitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.validationError(w, err)
		return
	}

	record, err := s.store.GetKit(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get kit: "+err.Error())
		return
	}
	if record == nil {
		notFound := &ErrKitNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	// Refine under the supplied distribution, falling back to the stored one
	dist := req.Weights
	if dist == nil {
		dist = record.Weights
	} else if err := weights.Validate(dist); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid weights: "+err.Error())
		return
	}

	selections := types.RefineSelections{
		TitleIndex:     req.TitleIndex,
		ThumbnailIndex: req.ThumbnailIndex,
		KeepTags:       req.KeepTags,
		Guidance:       req.Guidance,
	}

	refined, err := s.kits.Refine(r.Context(), &record.Kit, selections, dist)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Refinement failed: "+err.Error())
		return
	}

	if err := s.store.SaveKit(r.Context(), refined, dist); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save kit: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, KitResponse{Kit: refined, Weights: dist})
}

// kitID parses the {id} path value, writing an error response on failure.
func (s *Server) kitID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid kit ID: "+idStr)
		return uuid.Nil, false
	}
	return id, true
}
