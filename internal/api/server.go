package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"invdash/adapters/sheets"
	"invdash/app"
	"invdash/domain/table"
)

// Server is the JSON-only API app, served as its own binary for programmatic
// consumers of the inventory tables.
type Server struct {
	router  *chi.Mux
	service *app.InventoryService
}

// NewServer creates the API server over an inventory service.
func NewServer(service *app.InventoryService) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.Get("/tables/{name}", s.handleTable)
	s.router.Get("/categories", s.handleCategories)
	s.router.Post("/refresh", s.handleRefresh)
	s.router.Get("/healthz", s.handleHealth)
}

// Start begins serving on the given address
func (s *Server) Start(addr string) error {
	log.Printf("[api.Server.Start] Inventory API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[api.writeJSON] encode failed: %v", err)
	}
}

// handleTable serves a projected table view.
// Query params: category, q, reveal.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	id := sheets.TableID(chi.URLParam(r, "name"))
	if !id.Valid() {
		s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "unknown table: " + string(id),
		})
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = table.AllCategories
	}
	query := r.URL.Query().Get("q")
	reveal := r.URL.Query().Get("reveal") == "true"

	t, err := s.service.Load(r.Context(), id)
	resp := map[string]interface{}{
		"table_id":     string(id),
		"display_name": id.DisplayName(),
		"snapshot_id":  t.SnapshotID.String(),
		"loaded_at":    t.LoadedAt,
	}
	if err != nil {
		resp["warning"] = err.Error()
	}

	view := table.ProjectForDisplay(s.service.FilterAndSearch(t, category, query), reveal)
	resp["columns"] = view.Columns
	resp["rows"] = view.Rows
	resp["row_count"] = len(view.Rows)
	resp["unavailable"] = t.IsUnavailable()

	s.writeJSON(w, http.StatusOK, resp)
}

// handleCategories serves the category index.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, warnings := s.service.Categories(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"warnings":   warnings,
	})
}

// handleRefresh drops the load cache and reloads both tables.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	errs := s.service.Refresh(r.Context())
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "refresh completed",
		"warnings": messages,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}
