package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/api/v1/dto"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/repository"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/service"
)

// TrainingHandler serves the catalog listing, course detail and the filter
// endpoint.
type TrainingHandler struct {
	catalog  repository.CatalogRepository
	pricing  service.PricingService
	filter   service.FilterService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewTrainingHandler(catalog repository.CatalogRepository, pricing service.PricingService, filter service.FilterService, validate *validator.Validate, logger zerolog.Logger) *TrainingHandler {
	return &TrainingHandler{catalog: catalog, pricing: pricing, filter: filter, validate: validate, logger: logger}
}

// RegisterRoutes mounts training routes.
func (h *TrainingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/training/filter", h.filterTrainings)
	mux.HandleFunc("/trainings", h.listTrainings)
	mux.HandleFunc("/trainings/", h.getTraining)
}

// filterTrainings godoc
// @Summary Filter training courses
// @Description Returns the courses matching every supplied predicate, in the requested order.
// @Tags trainings
// @Accept json
// @Produce json
// @Param filter body dto.TrainingFilterDTO true "Filter query"
// @Success 200 {array} model.Course
// @Failure 400 {object} dto.ErrorDTO
// @Failure 500 {object} dto.ErrorDTO
// @Router /training/filter [post]
func (h *TrainingHandler) filterTrainings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dto.TrainingFilterDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, "Validation failed: "+err.Error())
		return
	}
	courses, err := h.filter.Filter(r.Context(), req.Query())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to filter trainings")
		writeError(w, err)
		return
	}
	// The filter endpoint returns a bare array, no envelope.
	writeJSON(w, http.StatusOK, courses)
}

// listTrainings godoc
// @Summary List all training courses
// @Tags trainings
// @Produce json
// @Success 200 {array} model.Course
// @Failure 500 {object} dto.ErrorDTO
// @Router /trainings [get]
func (h *TrainingHandler) listTrainings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || r.URL.Path != "/trainings" {
		http.NotFound(w, r)
		return
	}
	courses, err := h.catalog.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// getTraining godoc
// @Summary Get one training course with its effective price
// @Tags trainings
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} dto.CoursePricingDTO
// @Failure 404 {object} dto.ErrorDTO
// @Failure 500 {object} dto.ErrorDTO
// @Router /trainings/{slug} [get]
func (h *TrainingHandler) getTraining(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/trainings/")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}
	course, quote, err := h.pricing.QuoteBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"course": course,
		"quote":  quote,
	})
}
