package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/apperr"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/api/v1/dto"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError converts any service error into the JSON error envelope. This
// is the only place the error taxonomy meets HTTP; nothing escapes it.
func writeError(w http.ResponseWriter, err error) {
	envelope := dto.ErrorDTO{Details: apperr.DetailsOf(err)}
	var status int
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
		envelope.Error = "Bad Request"
	case apperr.KindNotFound:
		status = http.StatusNotFound
		envelope.Error = "Not Found"
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
		envelope.Error = "Unauthorized"
	case apperr.KindUpstreamAuth:
		status = http.StatusInternalServerError
		envelope.Error = "Authentication Error"
		envelope.Debug = apperr.DebugOf(err)
	default:
		status = http.StatusInternalServerError
		envelope.Error = "Internal Server Error"
	}
	writeJSON(w, status, envelope)
}

func kindIsNotFound(err error) bool {
	return apperr.KindOf(err) == apperr.KindNotFound
}

func writeValidationError(w http.ResponseWriter, details string) {
	writeJSON(w, http.StatusBadRequest, dto.ErrorDTO{Error: "Bad Request", Details: details})
}
