package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/cache"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/repository"
)

// PricingStats summarizes the catalog pricing state for the admin dashboard.
type PricingStats struct {
	TotalCourses       int     `json:"totalCourses"`
	AveragePrice       float64 `json:"averagePrice"`
	HasActivePromotion bool    `json:"hasActivePromotion"`
	PriceChanges       int     `json:"priceChanges"`
}

// PricingService resolves effective prices: base price (with admin override),
// the currently-effective promotion, and the resulting quote.
type PricingService interface {
	// ActivePromotion returns the promotion in effect right now, or nil.
	ActivePromotion(ctx context.Context) (*model.Promotion, error)
	// QuoteBySlug resolves the course and computes its quote in one call.
	QuoteBySlug(ctx context.Context, slug string) (*model.Course, *model.PriceQuote, error)
	// Quote computes the effective price for one course under promo.
	Quote(ctx context.Context, course *model.Course, promo *model.Promotion) (*model.PriceQuote, error)
	Stats(ctx context.Context) (*PricingStats, error)
	UpdatePrice(ctx context.Context, slug string, amount float64, reason string) error
	UpdatePromotion(ctx context.Context, promo model.Promotion) error
	History(ctx context.Context) ([]model.PriceChange, error)
	// Invalidate drops every pricing-related cache.
	Invalidate()
}

type pricingService struct {
	catalog repository.CatalogRepository
	pricing repository.PricingRepository
	clock   cache.Clock
	logger  zerolog.Logger
}

// NewPricingService creates a PricingService with an injected clock so tests
// can pin the promotion window evaluation.
func NewPricingService(catalog repository.CatalogRepository, pricing repository.PricingRepository, clock cache.Clock, logger zerolog.Logger) PricingService {
	return &pricingService{
		catalog: catalog,
		pricing: pricing,
		clock:   clock,
		logger:  logger.With().Str("service", "pricing").Logger(),
	}
}

// ActivePromotion scans the stored promotions and returns the one in effect
// at the current instant. Expiry is evaluated lazily on each call; there is
// no background timer. When several promotions are simultaneously active the
// latest validFrom wins, with the greatest ID breaking exact ties.
func (s *pricingService) ActivePromotion(ctx context.Context) (*model.Promotion, error) {
	promos, err := s.pricing.GetPromotions(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	var winner *model.Promotion
	for i := range promos {
		p := promos[i]
		if !p.InEffect(now) {
			continue
		}
		if winner == nil ||
			p.ValidFrom.After(winner.ValidFrom) ||
			(p.ValidFrom.Equal(winner.ValidFrom) && p.ID > winner.ID) {
			winner = &p
		}
	}
	return winner, nil
}

func (s *pricingService) QuoteBySlug(ctx context.Context, slug string) (*model.Course, *model.PriceQuote, error) {
	course, err := s.catalog.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	promo, err := s.ActivePromotion(ctx)
	if err != nil {
		return nil, nil, err
	}
	quote, err := s.Quote(ctx, course, promo)
	if err != nil {
		return nil, nil, err
	}
	return course, quote, nil
}

// Quote applies the promotion to the course's base price. The final price is
// rounded half-up to a whole currency unit and never goes below zero; a
// percentage at or above 100 is clamped and logged as a configuration error
// rather than rejected, since validation happens at promotion-creation time.
func (s *pricingService) Quote(ctx context.Context, course *model.Course, promo *model.Promotion) (*model.PriceQuote, error) {
	original, err := s.basePrice(ctx, course)
	if err != nil {
		return nil, err
	}

	quote := &model.PriceQuote{
		OriginalPrice: original,
		FinalPrice:    original,
		Currency:      course.BasePrice.Currency,
	}
	if promo == nil || !promo.InEffect(s.clock()) || !promo.AppliesTo(course.Slug) {
		return quote, nil
	}

	pct := promo.Percentage
	if pct < 0 {
		pct = 0
	}
	if pct >= 100 {
		s.logger.Error().
			Str("promotion_id", promo.ID).
			Float64("percentage", promo.Percentage).
			Msg("Promotion percentage at or above 100, clamping final price to zero")
		pct = 100
	}
	if pct == 0 {
		return quote, nil
	}

	final := math.Round(original * (100 - pct) / 100)
	if final < 0 {
		final = 0
	}
	quote.FinalPrice = final
	quote.DiscountAmount = original - final
	quote.DiscountPercentage = pct
	quote.HasDiscount = final < original
	return quote, nil
}

func (s *pricingService) Stats(ctx context.Context) (*PricingStats, error) {
	courses, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.pricing.GetHistory(ctx)
	if err != nil {
		return nil, err
	}
	promo, err := s.ActivePromotion(ctx)
	if err != nil {
		return nil, err
	}

	stats := &PricingStats{
		TotalCourses:       len(courses),
		HasActivePromotion: promo != nil,
		PriceChanges:       len(history),
	}
	if len(courses) > 0 {
		var sum float64
		for i := range courses {
			p, err := s.basePrice(ctx, &courses[i])
			if err != nil {
				return nil, err
			}
			sum += p
		}
		stats.AveragePrice = math.Round(sum / float64(len(courses)))
	}
	return stats, nil
}

func (s *pricingService) UpdatePrice(ctx context.Context, slug string, amount float64, reason string) error {
	if _, err := s.catalog.GetBySlug(ctx, slug); err != nil {
		return err
	}
	return s.pricing.SetPrice(ctx, slug, amount, reason)
}

func (s *pricingService) UpdatePromotion(ctx context.Context, promo model.Promotion) error {
	return s.pricing.SetPromotion(ctx, promo)
}

func (s *pricingService) History(ctx context.Context) ([]model.PriceChange, error) {
	return s.pricing.GetHistory(ctx)
}

func (s *pricingService) Invalidate() {
	s.catalog.Invalidate()
	s.pricing.Invalidate()
}

// basePrice is the admin override when present, else the catalog price.
func (s *pricingService) basePrice(ctx context.Context, course *model.Course) (float64, error) {
	overrides, err := s.pricing.GetOverrides(ctx)
	if err != nil {
		return 0, err
	}
	if p, ok := overrides[course.Slug]; ok {
		return p, nil
	}
	return course.BasePrice.Amount, nil
}
