package dto

// ConsultationRequestDTO is an incoming contact/consultation submission.
type ConsultationRequestDTO struct {
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone,omitempty"`
	Training       string   `json:"training" validate:"required"`
	PreferredDates []string `json:"preferredDates,omitempty"`
	Message        string   `json:"message,omitempty"`
	Language       string   `json:"language,omitempty" validate:"omitempty,oneof=en nl"`
}

// ConsultationResponseDTO acknowledges a dispatched submission.
type ConsultationResponseDTO struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
}
