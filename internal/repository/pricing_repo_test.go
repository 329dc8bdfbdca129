package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/apperr"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"
)

func newTestPricing(t *testing.T) PricingRepository {
	t.Helper()
	dir := t.TempDir()
	clock := func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return NewPricingRepo(
		filepath.Join(dir, "prices.json"),
		filepath.Join(dir, "promotions.json"),
		0, clock, zerolog.Nop(),
	)
}

func TestMissingFilesAreEmpty(t *testing.T) {
	repo := newTestPricing(t)
	ctx := context.Background()

	overrides, err := repo.GetOverrides(ctx)
	if err != nil {
		t.Fatalf("GetOverrides returned error: %v", err)
	}
	if len(overrides) != 0 {
		t.Fatalf("expected no overrides, got %v", overrides)
	}
	promos, err := repo.GetPromotions(ctx)
	if err != nil {
		t.Fatalf("GetPromotions returned error: %v", err)
	}
	if len(promos) != 0 {
		t.Fatalf("expected no promotions, got %v", promos)
	}
}

func TestSetPriceRoundtrip(t *testing.T) {
	repo := newTestPricing(t)
	ctx := context.Background()

	if err := repo.SetPrice(ctx, "azure-fundamentals", 450, "winter price"); err != nil {
		t.Fatalf("SetPrice returned error: %v", err)
	}
	overrides, err := repo.GetOverrides(ctx)
	if err != nil {
		t.Fatalf("GetOverrides returned error: %v", err)
	}
	if overrides["azure-fundamentals"] != 450 {
		t.Fatalf("expected override 450, got %v", overrides["azure-fundamentals"])
	}

	history, err := repo.GetHistory(ctx)
	if err != nil {
		t.Fatalf("GetHistory returned error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].CourseSlug != "azure-fundamentals" || history[0].Reason != "winter price" {
		t.Fatalf("unexpected history entry %+v", history[0])
	}
	if history[0].Timestamp.IsZero() {
		t.Fatal("expected history timestamp to be set")
	}
}

func TestSetPriceValidation(t *testing.T) {
	repo := newTestPricing(t)
	ctx := context.Background()

	if err := repo.SetPrice(ctx, "", 100, ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected Validation for empty slug, got %v", err)
	}
	if err := repo.SetPrice(ctx, "azure-fundamentals", -1, ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected Validation for negative price, got %v", err)
	}
}

func TestSetPromotionUpsert(t *testing.T) {
	repo := newTestPricing(t)
	ctx := context.Background()

	promo := model.Promotion{
		ID:         "spring-sale",
		Percentage: 20,
		Active:     true,
		ValidFrom:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC),
	}
	if err := repo.SetPromotion(ctx, promo); err != nil {
		t.Fatalf("SetPromotion returned error: %v", err)
	}

	promo.Percentage = 25
	if err := repo.SetPromotion(ctx, promo); err != nil {
		t.Fatalf("SetPromotion update returned error: %v", err)
	}

	promos, err := repo.GetPromotions(ctx)
	if err != nil {
		t.Fatalf("GetPromotions returned error: %v", err)
	}
	if len(promos) != 1 {
		t.Fatalf("expected upsert to keep 1 promotion, got %d", len(promos))
	}
	if promos[0].Percentage != 25 {
		t.Fatalf("expected updated percentage 25, got %v", promos[0].Percentage)
	}
}

func TestSetPromotionValidation(t *testing.T) {
	repo := newTestPricing(t)
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []model.Promotion{
		{ID: "", Percentage: 10, ValidFrom: from, ValidUntil: from.Add(time.Hour)},
		{ID: "p", Percentage: -5, ValidFrom: from, ValidUntil: from.Add(time.Hour)},
		{ID: "p", Percentage: 110, ValidFrom: from, ValidUntil: from.Add(time.Hour)},
		{ID: "p", Percentage: 10, ValidFrom: from, ValidUntil: from.Add(-time.Hour)},
	}
	for i, promo := range cases {
		if err := repo.SetPromotion(ctx, promo); apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("case %d: expected Validation error, got %v", i, err)
		}
	}
}
