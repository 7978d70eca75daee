package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

// RedistributeRequest represents the request body for POST /weights/redistribute
type RedistributeRequest struct {
	Weights  weights.Distribution `json:"weights" validate:"required"`
	Category string               `json:"category" validate:"required"`
	Value    int                  `json:"value"`
}

// NormalizeRequest represents the request body for POST /weights/normalize
type NormalizeRequest struct {
	Scores map[string]float64 `json:"scores" validate:"required"`
}

// SuggestWeightsRequest represents the request body for POST /weights/suggest
type SuggestWeightsRequest struct {
	Topic    string `json:"topic" validate:"required,min=1"`
	Audience string `json:"audience,omitempty"`
	Tone     string `json:"tone,omitempty"`
	Platform string `json:"platform,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// SavePresetRequest represents the request body for POST /weight-presets
type SavePresetRequest struct {
	Name    string               `json:"name" validate:"required,min=1"`
	Weights weights.Distribution `json:"weights" validate:"required"`
}

// WeightsResponse wraps a distribution
type WeightsResponse struct {
	Weights weights.Distribution `json:"weights"`
}

// handleDefaultWeights returns the even-split starting distribution
func (s *Server) handleDefaultWeights(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, WeightsResponse{Weights: weights.Default()})
}

// handleRedistribute pins one category and rebalances the rest
func (s *Server) handleRedistribute(w http.ResponseWriter, r *http.Request) {
	var req RedistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.validationError(w, err)
		return
	}
	if err := weights.Validate(req.Weights); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid weights: "+err.Error())
		return
	}

	dist, err := weights.Redistribute(req.Weights, req.Category, req.Value)
	if err != nil {
		if errors.Is(err, weights.ErrUnknownCategory) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Redistribution failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, WeightsResponse{Weights: dist})
}

// handleNormalize converts raw scores into a valid distribution
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.validationError(w, err)
		return
	}

	for category := range req.Scores {
		if !weights.IsCategory(category) {
			s.errorResponse(w, http.StatusBadRequest, "Unknown category: "+category)
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, WeightsResponse{Weights: weights.Normalize(req.Scores)})
}

// handleSuggestWeights asks the model for a distribution suited to a brief
func (s *Server) handleSuggestWeights(w http.ResponseWriter, r *http.Request) {
	var req SuggestWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.validationError(w, err)
		return
	}

	brief := types.Brief{
		Topic:    req.Topic,
		Audience: req.Audience,
		Tone:     req.Tone,
		Platform: req.Platform,
		Notes:    req.Notes,
	}

	dist, err := s.kits.SuggestWeights(r.Context(), brief)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Weight suggestion failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, WeightsResponse{Weights: dist})
}

// handleListPresets returns all stored weight presets
func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.store.ListWeightPresets(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list presets: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"presets": presets})
}

// handleSavePreset stores a named distribution
func (s *Server) handleSavePreset(w http.ResponseWriter, r *http.Request) {
	var req SavePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.validationError(w, err)
		return
	}
	if err := weights.Validate(req.Weights); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid weights: "+err.Error())
		return
	}

	if err := s.store.SaveWeightPreset(r.Context(), req.Name, req.Weights); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save preset: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"status": "saved", "name": req.Name})
}

// handleGetPreset returns a stored preset by name
func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	preset, err := s.store.GetWeightPreset(r.Context(), name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get preset: "+err.Error())
		return
	}
	if preset == nil {
		notFound := &ErrPresetNotFound{Name: name}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, preset)
}
