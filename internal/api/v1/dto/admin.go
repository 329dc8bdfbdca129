package dto

import "time"

// PriceUpdateDTO sets a new base price for one course slug.
type PriceUpdateDTO struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	Reason string  `json:"reason,omitempty"`
}

// PromotionUpdateDTO inserts or replaces a promotion.
type PromotionUpdateDTO struct {
	ID         string    `json:"id" validate:"required"`
	Percentage float64   `json:"percentage" validate:"gte=0,lte=100"`
	Active     bool      `json:"active"`
	ValidFrom  time.Time `json:"validFrom" validate:"required"`
	ValidUntil time.Time `json:"validUntil" validate:"required"`
	Courses    []string  `json:"courses,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}
