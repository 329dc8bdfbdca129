package handler

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/api/v1/dto"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/config"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/repository"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/service"
)

// PricingHandler exposes the read-only pricing endpoint.
type PricingHandler struct {
	catalog repository.CatalogRepository
	pricing service.PricingService
	cfg     *config.Config
	logger  zerolog.Logger
}

func NewPricingHandler(catalog repository.CatalogRepository, pricing service.PricingService, cfg *config.Config, logger zerolog.Logger) *PricingHandler {
	return &PricingHandler{catalog: catalog, pricing: pricing, cfg: cfg, logger: logger}
}

// RegisterRoutes mounts the pricing route.
func (h *PricingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/pricing", h.getPricing)
}

// getPricing godoc
// @Summary Get pricing information
// @Description Returns pricing for a course, a service, a category, or the full catalog.
// @Tags pricing
// @Produce json
// @Param course query string false "Course slug (case-insensitive)"
// @Param service query string false "Service package ID"
// @Param category query string false "training or services"
// @Param auth query string false "Set to 'required' to enforce the API key"
// @Success 200 {object} dto.PricingEnvelopeDTO
// @Failure 401 {object} dto.ErrorDTO
// @Failure 404 {object} dto.ErrorDTO
// @Failure 500 {object} dto.ErrorDTO
// @Router /pricing [get]
func (h *PricingHandler) getPricing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Pricing is public by default; the auth flag opts a caller into key
	// enforcement.
	if r.URL.Query().Get("auth") == "required" {
		if key := r.Header.Get("x-api-key"); key == "" || key != h.cfg.APIKey {
			writeJSON(w, http.StatusUnauthorized, dto.ErrorDTO{Error: "Unauthorized", Details: "Invalid API key"})
			return
		}
	}

	courseSlug := r.URL.Query().Get("course")
	serviceID := r.URL.Query().Get("service")
	category := r.URL.Query().Get("category")

	switch {
	case courseSlug != "":
		course, quote, err := h.pricing.QuoteBySlug(r.Context(), courseSlug)
		if err != nil {
			h.writeCourseError(w, err, courseSlug)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"course": dto.NewCoursePricingDTO(course, quote)})

	case serviceID != "":
		svc, err := h.catalog.GetServiceByID(r.Context(), serviceID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"service": svc})

	case category == "training":
		training, err := h.trainingMap(r)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"training": training})

	case category == "services":
		services, err := h.servicesMap(r)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"services": services})

	default:
		training, err := h.trainingMap(r)
		if err != nil {
			writeError(w, err)
			return
		}
		services, err := h.servicesMap(r)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dto.PricingEnvelopeDTO{
			Training:    training,
			Services:    services,
			Currency:    "EUR",
			VATNote:     "All prices exclude 21% VAT",
			LastUpdated: h.cfg.PricingLastUpdated,
			Contact: dto.PricingContactDTO{
				Email: h.cfg.PricingContactEmail,
				Phone: h.cfg.PricingContactPhone,
				Note:  "Contact us for custom packages and volume discounts",
			},
		})
	}
}

// writeCourseError formats the not-found detail with the upper-cased code the
// caller supplied, matching the public API contract.
func (h *PricingHandler) writeCourseError(w http.ResponseWriter, err error, courseSlug string) {
	if kindIsNotFound(err) {
		writeJSON(w, http.StatusNotFound, dto.ErrorDTO{
			Error:   "Not Found",
			Details: "Course " + strings.ToUpper(courseSlug) + " not found",
		})
		return
	}
	writeError(w, err)
}

func (h *PricingHandler) trainingMap(r *http.Request) (map[string]dto.CoursePricingDTO, error) {
	courses, err := h.catalog.GetAll(r.Context())
	if err != nil {
		return nil, err
	}
	promo, err := h.pricing.ActivePromotion(r.Context())
	if err != nil {
		return nil, err
	}
	out := make(map[string]dto.CoursePricingDTO, len(courses))
	for i := range courses {
		quote, err := h.pricing.Quote(r.Context(), &courses[i], promo)
		if err != nil {
			return nil, err
		}
		out[courses[i].Slug] = dto.NewCoursePricingDTO(&courses[i], quote)
	}
	return out, nil
}

func (h *PricingHandler) servicesMap(r *http.Request) (map[string]model.ServicePackage, error) {
	services, err := h.catalog.GetServices(r.Context())
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.ServicePackage, len(services))
	for _, s := range services {
		out[s.ID] = s
	}
	return out, nil
}
