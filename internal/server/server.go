// Package server exposes the search pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eneda8/nearby/internal/search"
	"github.com/eneda8/nearby/pkg/routes"
)

// Server holds the handlers' dependencies.
type Server struct {
	search *search.Service
	routes routes.Client
}

// New creates a server over the given search service and route-matrix client.
// routesClient may be nil; the route-matrix endpoint then reports 503.
func New(s *search.Service, routesClient routes.Client) *Server {
	return &Server{search: s, routes: routesClient}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/api/places", s.handlePlaces)
	r.Post("/api/route-matrix", s.handleRouteMatrix)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), req)
	if err != nil {
		var verr *search.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error(), "")
			return
		}
		zap.L().Error("search failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "upstream search failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type routeMatrixRequest struct {
	Origin       *routes.LatLng    `json:"origin"`
	Destinations []routes.LatLng   `json:"destinations"`
	TravelMode   routes.TravelMode `json:"travelMode"`
}

func (s *Server) handleRouteMatrix(w http.ResponseWriter, r *http.Request) {
	if s.routes == nil {
		writeError(w, http.StatusServiceUnavailable, "route matrix not configured", "")
		return
	}

	var req routeMatrixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Origin == nil || len(req.Destinations) == 0 {
		writeError(w, http.StatusBadRequest, "origin and destinations required", "")
		return
	}

	elements, err := s.routes.ComputeRouteMatrix(r.Context(), routes.MatrixRequest{
		Origin:       *req.Origin,
		Destinations: req.Destinations,
		TravelMode:   req.TravelMode,
	})
	if err != nil {
		zap.L().Error("route matrix failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "route matrix error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"elements": elements})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

// requestID tags every request with a fresh ID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests logs method, path, status and latency for each request.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestId", w.Header().Get("X-Request-Id")),
		)
	})
}
