package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

func newAdminMux(pricing *fakePricingService) *http.ServeMux {
	validate := validator.New(validator.WithRequiredStructEnabled())
	h := NewAdminHandler(pricing, validate, zerolog.Nop())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func TestAdminUpdatePrice(t *testing.T) {
	pricing := &fakePricingService{catalog: &fakeCatalog{courses: testCourses()}}
	mux := newAdminMux(pricing)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/prices/azure-fundamentals", strings.NewReader(`{"amount":450,"reason":"winter"}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(pricing.history) != 1 || pricing.history[0].Price != 450 {
		t.Fatalf("unexpected recorded change %+v", pricing.history)
	}
}

func TestAdminUpdatePriceUnknownCourse(t *testing.T) {
	pricing := &fakePricingService{catalog: &fakeCatalog{}}
	mux := newAdminMux(pricing)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/prices/zz-999", strings.NewReader(`{"amount":450}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminUpdatePriceNegativeAmount(t *testing.T) {
	pricing := &fakePricingService{catalog: &fakeCatalog{courses: testCourses()}}
	mux := newAdminMux(pricing)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/prices/azure-fundamentals", strings.NewReader(`{"amount":-1}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminUpdatePromotion(t *testing.T) {
	pricing := &fakePricingService{catalog: &fakeCatalog{}}
	mux := newAdminMux(pricing)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/promotion", strings.NewReader(`{
		"id": "spring-sale",
		"percentage": 20,
		"active": true,
		"validFrom": "2025-03-01T00:00:00Z",
		"validUntil": "2025-03-31T23:59:59Z",
		"courses": ["azure-fundamentals"]
	}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if pricing.promo == nil || pricing.promo.ID != "spring-sale" {
		t.Fatalf("promotion not stored: %+v", pricing.promo)
	}
	if len(pricing.promo.Scope) != 1 || pricing.promo.Scope[0] != "azure-fundamentals" {
		t.Fatalf("unexpected scope %v", pricing.promo.Scope)
	}
}

func TestAdminUpdatePromotionMissingID(t *testing.T) {
	mux := newAdminMux(&fakePricingService{catalog: &fakeCatalog{}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/promotion", strings.NewReader(`{
		"percentage": 20,
		"validFrom": "2025-03-01T00:00:00Z",
		"validUntil": "2025-03-31T23:59:59Z"
	}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminStatsAndHistory(t *testing.T) {
	pricing := &fakePricingService{catalog: &fakeCatalog{courses: testCourses()}}
	mux := newAdminMux(pricing)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for stats, got %d", rec.Code)
	}
	var stats struct {
		TotalCourses int `json:"totalCourses"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalCourses != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for history, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array for no history, got %s", rec.Body.String())
	}
}

func TestAdminCacheInvalidate(t *testing.T) {
	pricing := &fakePricingService{catalog: &fakeCatalog{}}
	mux := newAdminMux(pricing)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/cache/invalidate", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !pricing.invalidated {
		t.Fatal("expected caches to be invalidated")
	}
}
