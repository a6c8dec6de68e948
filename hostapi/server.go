// Package hostapi serves the host's tool boundary over HTTP so the
// external reasoning component can drive scheduling from outside the
// process.
package hostapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	openapi "courtside/api/openapi"
	"courtside/registry"
	"courtside/toolset"
)

type Server struct {
	log      *slog.Logger
	tools    *toolset.Toolset
	registry *registry.Registry
}

func New(log *slog.Logger, tools *toolset.Toolset, reg *registry.Registry) *Server {
	return &Server{log: log, tools: tools, registry: reg}
}

// Router mounts the versioned API together with its docs.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "not_found",
			"message": "Use a versioned path like /api/v1/...",
		})
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/docs/*", httpSwagger.Handler(
			httpSwagger.URL("/api/v1/openapi.yaml"),
		))
		api.Get("/openapi.yaml", s.serveOpenAPI)

		api.Get("/agents", s.listAgents)
		api.Get("/tools", s.listTools)
		api.Post("/tools/{toolName}", s.invokeTool)
	})
	return r
}

func (s *Server) serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	data, err := openapi.FS.ReadFile("v1/courtside.yaml")
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read spec: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) listAgents(w http.ResponseWriter, _ *http.Request) {
	items := make([]map[string]any, 0)
	for _, conn := range s.registry.Connections() {
		items = append(items, map[string]any{
			"name":              conn.Card.Name,
			"description":       conn.Card.Description,
			"url":               conn.Endpoint,
			"version":           conn.Card.Version,
			"defaultInputModes": conn.Card.DefaultInputModes,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) listTools(w http.ResponseWriter, _ *http.Request) {
	items := make([]map[string]any, 0)
	for _, tool := range s.tools.Tools() {
		items = append(items, map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) invokeTool(w http.ResponseWriter, r *http.Request) {
	toolName := chi.URLParam(r, "toolName")

	args := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "bad_request",
			"message": "request body must be a JSON object of tool arguments",
		})
		return
	}

	result, err := s.tools.Invoke(r.Context(), toolName, args)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "unknown_tool",
			"message": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
