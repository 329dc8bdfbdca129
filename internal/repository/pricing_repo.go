package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/apperr"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/cache"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"
)

// PricingRepository persists per-slug price overrides, the promotion set and
// the price history as flat JSON files. Writes are validated here so quote
// computation can assume pre-validated input.
type PricingRepository interface {
	// GetOverrides returns the admin price overrides keyed by course slug.
	GetOverrides(ctx context.Context) (map[string]float64, error)
	// SetPrice records a new price for a slug and appends to the history log.
	SetPrice(ctx context.Context, slug string, amount float64, reason string) error
	GetPromotions(ctx context.Context) ([]model.Promotion, error)
	// SetPromotion inserts or replaces a promotion by ID.
	SetPromotion(ctx context.Context, promo model.Promotion) error
	GetHistory(ctx context.Context) ([]model.PriceChange, error)
	Invalidate()
}

type pricesFile struct {
	Prices  map[string]float64  `json:"prices"`
	History []model.PriceChange `json:"history,omitempty"`
}

type promotionsFile struct {
	Promotions []model.Promotion `json:"promotions"`
}

type pricingRepo struct {
	pricesPath     string
	promotionsPath string
	clock          cache.Clock
	logger         zerolog.Logger

	mu         sync.Mutex
	prices     *cache.TTL[pricesFile]
	promotions *cache.TTL[promotionsFile]
}

// NewPricingRepo creates a JSON-file-backed PricingRepository. Missing files
// are treated as empty, so a fresh deployment needs no seed data.
func NewPricingRepo(pricesPath, promotionsPath string, ttl time.Duration, clock cache.Clock, logger zerolog.Logger) PricingRepository {
	return &pricingRepo{
		pricesPath:     pricesPath,
		promotionsPath: promotionsPath,
		clock:          clock,
		logger:         logger.With().Str("repo", "pricing").Logger(),
		prices:         cache.NewTTL[pricesFile](ttl, clock),
		promotions:     cache.NewTTL[promotionsFile](ttl, clock),
	}
}

func (r *pricingRepo) GetOverrides(ctx context.Context) (map[string]float64, error) {
	pf, err := r.prices.Get(r.loadPrices)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(pf.Prices))
	for k, v := range pf.Prices {
		out[k] = v
	}
	return out, nil
}

func (r *pricingRepo) SetPrice(ctx context.Context, slug string, amount float64, reason string) error {
	if slug == "" {
		return apperr.New(apperr.KindValidation, "Course slug is required")
	}
	if amount < 0 {
		return apperr.New(apperr.KindValidation, "Price must not be negative")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pf, err := r.loadPrices()
	if err != nil {
		return err
	}
	if pf.Prices == nil {
		pf.Prices = make(map[string]float64)
	}
	old, had := pf.Prices[slug]
	pf.Prices[slug] = amount
	if reason == "" {
		if had {
			reason = fmt.Sprintf("Price updated from %v to %v", old, amount)
		} else {
			reason = fmt.Sprintf("Price set to %v", amount)
		}
	}
	pf.History = append(pf.History, model.PriceChange{
		CourseSlug: slug,
		Price:      amount,
		Timestamp:  r.clock(),
		Reason:     reason,
	})

	if err := writeJSON(r.pricesPath, pf); err != nil {
		return fmt.Errorf("write prices file: %w", err)
	}
	r.prices.Invalidate()
	r.logger.Info().Str("slug", slug).Float64("amount", amount).Msg("Course price updated")
	return nil
}

func (r *pricingRepo) GetPromotions(ctx context.Context) ([]model.Promotion, error) {
	pf, err := r.promotions.Get(r.loadPromotions)
	if err != nil {
		return nil, err
	}
	out := make([]model.Promotion, len(pf.Promotions))
	copy(out, pf.Promotions)
	return out, nil
}

func (r *pricingRepo) SetPromotion(ctx context.Context, promo model.Promotion) error {
	if promo.ID == "" {
		return apperr.New(apperr.KindValidation, "Promotion ID is required")
	}
	if promo.Percentage < 0 || promo.Percentage > 100 {
		return apperr.New(apperr.KindValidation, "Promotion percentage must be between 0 and 100")
	}
	if promo.ValidUntil.Before(promo.ValidFrom) {
		return apperr.New(apperr.KindValidation, "Promotion validUntil must not precede validFrom")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pf, err := r.loadPromotions()
	if err != nil {
		return err
	}
	replaced := false
	for i := range pf.Promotions {
		if pf.Promotions[i].ID == promo.ID {
			pf.Promotions[i] = promo
			replaced = true
			break
		}
	}
	if !replaced {
		pf.Promotions = append(pf.Promotions, promo)
	}

	if err := writeJSON(r.promotionsPath, pf); err != nil {
		return fmt.Errorf("write promotions file: %w", err)
	}
	r.promotions.Invalidate()
	r.logger.Info().Str("promotion_id", promo.ID).Float64("percentage", promo.Percentage).Msg("Promotion updated")
	return nil
}

func (r *pricingRepo) GetHistory(ctx context.Context) ([]model.PriceChange, error) {
	pf, err := r.prices.Get(r.loadPrices)
	if err != nil {
		return nil, err
	}
	out := make([]model.PriceChange, len(pf.History))
	copy(out, pf.History)
	return out, nil
}

func (r *pricingRepo) Invalidate() {
	r.prices.Invalidate()
	r.promotions.Invalidate()
}

func (r *pricingRepo) loadPrices() (pricesFile, error) {
	var pf pricesFile
	if err := readJSON(r.pricesPath, &pf); err != nil {
		return pricesFile{}, err
	}
	return pf, nil
}

func (r *pricingRepo) loadPromotions() (promotionsFile, error) {
	var pf promotionsFile
	if err := readJSON(r.promotionsPath, &pf); err != nil {
		return promotionsFile{}, err
	}
	for _, p := range pf.Promotions {
		if p.Percentage < 0 || p.Percentage > 100 {
			return promotionsFile{}, fmt.Errorf("promotion %s has invalid percentage %v", p.ID, p.Percentage)
		}
	}
	return pf, nil
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(raw, v)
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
