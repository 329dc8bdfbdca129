package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/api/v1/dto"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/service"
)

// AdminHandler exposes the key-protected pricing management routes. The API
// key check lives in middleware; by the time a request lands here it is
// already authenticated.
type AdminHandler struct {
	pricing  service.PricingService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewAdminHandler(pricing service.PricingService, validate *validator.Validate, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{pricing: pricing, validate: validate, logger: logger}
}

// RegisterRoutes mounts admin routes on mux. The caller wraps mux with the
// API key middleware.
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/admin/prices/", h.updatePrice)
	mux.HandleFunc("/admin/promotion", h.updatePromotion)
	mux.HandleFunc("/admin/stats", h.getStats)
	mux.HandleFunc("/admin/history", h.getHistory)
	mux.HandleFunc("/admin/cache/invalidate", h.invalidateCache)
}

// updatePrice godoc
// @Summary Override the base price of a course
// @Tags admin
// @Accept json
// @Produce json
// @Param slug path string true "Course slug"
// @Param update body dto.PriceUpdateDTO true "New price"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorDTO
// @Failure 404 {object} dto.ErrorDTO
// @Security ApiKeyAuth
// @Router /admin/prices/{slug} [put]
func (h *AdminHandler) updatePrice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/admin/prices/")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}
	var req dto.PriceUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, "Amount must be zero or greater")
		return
	}
	if err := h.pricing.UpdatePrice(r.Context(), slug, req.Amount, req.Reason); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info().Str("slug", slug).Float64("amount", req.Amount).Msg("Price updated")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "slug": slug, "amount": req.Amount})
}

// updatePromotion godoc
// @Summary Create or replace a promotion
// @Tags admin
// @Accept json
// @Produce json
// @Param promotion body dto.PromotionUpdateDTO true "Promotion"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorDTO
// @Security ApiKeyAuth
// @Router /admin/promotion [put]
func (h *AdminHandler) updatePromotion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req dto.PromotionUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, "Promotion requires an id, a percentage between 0 and 100, and a validity window")
		return
	}
	promo := model.Promotion{
		ID:         req.ID,
		Percentage: req.Percentage,
		Active:     req.Active,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
		Scope:      req.Courses,
		Reason:     req.Reason,
	}
	if err := h.pricing.UpdatePromotion(r.Context(), promo); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info().Str("promotion_id", promo.ID).Float64("percentage", promo.Percentage).Msg("Promotion updated")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "promotion": promo})
}

// getStats godoc
// @Summary Pricing statistics
// @Tags admin
// @Produce json
// @Success 200 {object} service.PricingStats
// @Security ApiKeyAuth
// @Router /admin/stats [get]
func (h *AdminHandler) getStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats, err := h.pricing.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// getHistory godoc
// @Summary Price change history
// @Tags admin
// @Produce json
// @Success 200 {array} model.PriceChange
// @Security ApiKeyAuth
// @Router /admin/history [get]
func (h *AdminHandler) getHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	history, err := h.pricing.History(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if history == nil {
		history = []model.PriceChange{}
	}
	writeJSON(w, http.StatusOK, history)
}

// invalidateCache godoc
// @Summary Drop the catalog and pricing caches
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]any
// @Security ApiKeyAuth
// @Router /admin/cache/invalidate [post]
func (h *AdminHandler) invalidateCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.pricing.Invalidate()
	h.logger.Info().Msg("Caches invalidated")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
