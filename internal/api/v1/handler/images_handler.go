package handler

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/service"
)

// ImagesHandler proxies stock-photo search for the admin content tooling.
type ImagesHandler struct {
	images service.ImageService
	logger zerolog.Logger
}

func NewImagesHandler(images service.ImageService, logger zerolog.Logger) *ImagesHandler {
	return &ImagesHandler{images: images, logger: logger}
}

// RegisterRoutes mounts the image search route.
func (h *ImagesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/images/search", h.searchImages)
}

// searchImages godoc
// @Summary Search stock photos
// @Tags images
// @Produce json
// @Param query query string true "Search text"
// @Param provider query string false "unsplash, pexels, pixabay or all"
// @Param page query int false "Page number"
// @Param perPage query int false "Results per page"
// @Success 200 {array} service.Image
// @Failure 400 {object} dto.ErrorDTO
// @Failure 500 {object} dto.ErrorDTO
// @Router /images/search [get]
func (h *ImagesHandler) searchImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	query := r.URL.Query().Get("query")
	if query == "" {
		writeValidationError(w, "Query parameter 'query' is required")
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))

	results, err := h.images.Search(r.Context(), query, r.URL.Query().Get("provider"), page, perPage)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("Image search failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
