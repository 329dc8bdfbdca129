package handler

import (
	"net/http"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/repository"
)

// HealthHandler reports liveness and catalog readability.
type HealthHandler struct {
	catalog repository.CatalogRepository
}

func NewHealthHandler(catalog repository.CatalogRepository) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

// RegisterRoutes mounts the health route.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.getHealth)
}

// getHealth godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) getHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	courses, err := h.catalog.GetAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "courses": len(courses)})
}
