package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/api/v1/dto"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/service"
)

// ContactHandler accepts consultation submissions and dispatches the
// transactional emails.
type ContactHandler struct {
	notifications service.NotificationService
	validate      *validator.Validate
	logger        zerolog.Logger
}

func NewContactHandler(notifications service.NotificationService, validate *validator.Validate, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{notifications: notifications, validate: validate, logger: logger}
}

// RegisterRoutes mounts the contact route.
func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/contact", h.submitConsultation)
}

// submitConsultation godoc
// @Summary Submit a consultation request
// @Description Sends one internal notification and one confirmation email.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ConsultationRequestDTO true "Consultation request"
// @Success 200 {object} dto.ConsultationResponseDTO
// @Failure 400 {object} dto.ErrorDTO
// @Failure 500 {object} dto.ErrorDTO
// @Router /contact [post]
func (h *ContactHandler) submitConsultation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dto.ConsultationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid JSON payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, "Name and email are required and email must be valid")
		return
	}

	ref, err := h.notifications.DispatchConsultation(r.Context(), service.ConsultationRequest{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Training:       req.Training,
		PreferredDates: req.PreferredDates,
		Message:        req.Message,
		Language:       req.Language,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("training", req.Training).Msg("Failed to dispatch consultation request")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsultationResponseDTO{
		Success:   true,
		Message:   "Your consultation request has been sent. We will contact you shortly.",
		Reference: ref,
	})
}
