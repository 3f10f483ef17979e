// Package http exposes the triage service over a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courierflow/courier"
	"github.com/courierflow/courier/pkg/mail"
	"github.com/courierflow/courier/pkg/ports"
)

// Server wires the service and the outcome archive into HTTP handlers.
type Server struct {
	service *courier.Service
	store   ports.ResultStore
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler for the service. store may be nil
// when no archive is configured; gatherer may be nil to omit /metrics.
func NewHandler(svc *courier.Service, store ports.ResultStore, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	server := &Server{
		service: svc,
		store:   store,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Post("/runs", server.handleProcess)
	r.Get("/runs/{id}", server.handleGetRun)
	r.Get("/healthz", server.handleHealth)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// handleProcess runs the workflow for the posted record. A failed run
// answers 422 with the tagged outcome so callers can distinguish it from a
// transport error.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var email mail.Email
	if err := json.NewDecoder(r.Body).Decode(&email); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := s.service.Process(r.Context(), email)
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, outcome)
		return
	}
	s.writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "no outcome archive configured")
		return
	}

	runID := chi.URLParam(r, "id")
	outcome, err := s.store.Load(r.Context(), runID)
	if err != nil {
		if errors.Is(err, ports.ErrRunNotFound) {
			s.writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.logger.Error("failed to load outcome", "run_id", runID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load outcome")
		return
	}
	s.writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": courier.Version,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
