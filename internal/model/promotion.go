package model

import "time"

// Promotion is a percentage discount with a validity window. An empty Scope
// applies the promotion to every course; otherwise only the listed slugs.
type Promotion struct {
	ID         string    `json:"id"`
	Percentage float64   `json:"percentage"`
	Active     bool      `json:"active"`
	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"`
	Scope      []string  `json:"courses,omitempty"`
	Reason     string    `json:"reason"`
}

// InEffect reports whether the promotion applies at the given instant.
// The window is inclusive on both ends.
func (p Promotion) InEffect(now time.Time) bool {
	return p.Active && !now.Before(p.ValidFrom) && !now.After(p.ValidUntil)
}

// AppliesTo reports whether the promotion covers the given course slug.
func (p Promotion) AppliesTo(slug string) bool {
	if len(p.Scope) == 0 {
		return true
	}
	for _, s := range p.Scope {
		if s == slug {
			return true
		}
	}
	return false
}

// PriceQuote is the effective price for one course under the promotion that
// was in effect at evaluation time. Derived, never stored.
type PriceQuote struct {
	OriginalPrice      float64 `json:"originalPrice"`
	FinalPrice         float64 `json:"finalPrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountAmount     float64 `json:"discountAmount"`
	HasDiscount        bool    `json:"hasDiscount"`
	Currency           string  `json:"currency"`
}

// PriceChange is one entry in the price history log.
type PriceChange struct {
	CourseSlug string    `json:"courseSlug"`
	Price      float64   `json:"price"`
	Timestamp  time.Time `json:"timestamp"`
	Reason     string    `json:"reason,omitempty"`
}
