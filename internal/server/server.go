// Package server provides the HTTP REST API for the promo kit generator.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/promokit/internal/db"
	"github.com/jonathan/promokit/internal/types"
	"github.com/jonathan/promokit/internal/weights"
)

// KitService is the generation surface the server depends on.
type KitService interface {
	Generate(ctx context.Context, brief types.Brief, version types.KitVersion, dist weights.Distribution) (*types.Kit, error)
	Refine(ctx context.Context, kit *types.Kit, selections types.RefineSelections, dist weights.Distribution) (*types.Kit, error)
	Evaluate(ctx context.Context, kit *types.Kit) (weights.Distribution, *types.ScoreReport, error)
	SuggestWeights(ctx context.Context, brief types.Brief) (weights.Distribution, error)
}

// KitStore is the persistence surface the server depends on.
type KitStore interface {
	SaveKit(ctx context.Context, kit *types.Kit, dist weights.Distribution) error
	GetKit(ctx context.Context, id uuid.UUID) (*db.KitRecord, error)
	ListKits(ctx context.Context, limit int) ([]db.KitSummary, error)
	UpdateKitWeights(ctx context.Context, id uuid.UUID, dist weights.Distribution) error
	DeleteKit(ctx context.Context, id uuid.UUID) error
	SaveWeightPreset(ctx context.Context, name string, dist weights.Distribution) error
	GetWeightPreset(ctx context.Context, name string) (*db.WeightPreset, error)
	ListWeightPresets(ctx context.Context) ([]db.WeightPreset, error)
	Close()
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	kits       KitService
	store      KitStore
	validator  *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port int
}

// New creates a new server instance
func New(cfg Config, kits KitService, store KitStore) *Server {
	s := &Server{
		kits:      kits,
		store:     store,
		validator: validator.New(),
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Kit endpoints
	mux.HandleFunc("POST /kits", s.handleCreateKit)
	mux.HandleFunc("GET /kits", s.handleListKits)
	mux.HandleFunc("GET /kits/{id}", s.handleGetKit)
	mux.HandleFunc("DELETE /kits/{id}", s.handleDeleteKit)
	mux.HandleFunc("POST /kits/{id}/evaluate", s.handleEvaluateKit)
	mux.HandleFunc("POST /kits/{id}/refine", s.handleRefineKit)

	// Weight endpoints
	mux.HandleFunc("GET /weights/default", s.handleDefaultWeights)
	mux.HandleFunc("POST /weights/redistribute", s.handleRedistribute)
	mux.HandleFunc("POST /weights/normalize", s.handleNormalize)
	mux.HandleFunc("POST /weights/suggest", s.handleSuggestWeights)

	// Preset endpoints
	mux.HandleFunc("GET /weight-presets", s.handleListPresets)
	mux.HandleFunc("POST /weight-presets", s.handleSavePreset)
	mux.HandleFunc("GET /weight-presets/{name}", s.handleGetPreset)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for generation requests
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.store != nil {
		s.store.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// validationError converts a validator failure into an ErrValidation and
// writes it with the status HTTPStatus assigns to it.
func (s *Server) validationError(w http.ResponseWriter, err error) {
	verr := &ErrValidation{Field: "request", Message: err.Error()}
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		fe := validationErrors[0]
		verr.Field = fe.Field()
		verr.Message = fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
	s.errorResponse(w, HTTPStatus(verr), verr.Error())
}
