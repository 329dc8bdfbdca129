package dto

import "github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"

// ErrorDTO is the JSON error envelope every endpoint returns on failure.
type ErrorDTO struct {
	Error   string            `json:"error"`
	Details string            `json:"details"`
	Debug   map[string]string `json:"debug,omitempty"`
}

// CoursePricingDTO is one course entry in pricing responses, combining the
// catalog record with its effective price quote.
type CoursePricingDTO struct {
	Slug               string         `json:"slug"`
	Code               string         `json:"code,omitempty"`
	Title              string         `json:"title"`
	Category           string         `json:"category"`
	Level              string         `json:"level"`
	Duration           model.Duration `json:"duration"`
	OriginalPrice      float64        `json:"originalPrice"`
	FinalPrice         float64        `json:"finalPrice"`
	DiscountPercentage float64        `json:"discountPercentage"`
	DiscountAmount     float64        `json:"discountAmount"`
	HasDiscount        bool           `json:"hasDiscount"`
	Currency           string         `json:"currency"`
}

// PricingContactDTO is the contact block of the full pricing envelope.
type PricingContactDTO struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Note  string `json:"note"`
}

// PricingEnvelopeDTO is the full-catalog pricing response.
type PricingEnvelopeDTO struct {
	Training    map[string]CoursePricingDTO     `json:"training"`
	Services    map[string]model.ServicePackage `json:"services"`
	Currency    string                          `json:"currency"`
	VATNote     string                          `json:"vatNote"`
	LastUpdated string                          `json:"lastUpdated"`
	Contact     PricingContactDTO               `json:"contact"`
}

// NewCoursePricingDTO merges a course with its quote.
func NewCoursePricingDTO(course *model.Course, quote *model.PriceQuote) CoursePricingDTO {
	return CoursePricingDTO{
		Slug:               course.Slug,
		Code:               course.Code,
		Title:              course.Title,
		Category:           course.Category,
		Level:              course.Level,
		Duration:           course.Duration,
		OriginalPrice:      quote.OriginalPrice,
		FinalPrice:         quote.FinalPrice,
		DiscountPercentage: quote.DiscountPercentage,
		DiscountAmount:     quote.DiscountAmount,
		HasDiscount:        quote.HasDiscount,
		Currency:           quote.Currency,
	}
}
