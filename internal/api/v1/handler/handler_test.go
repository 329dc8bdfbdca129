package handler

import (
	"context"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/apperr"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/service"
)

// In-memory fakes shared by the handler tests.

type fakeCatalog struct {
	courses  []model.Course
	services []model.ServicePackage
}

func (f *fakeCatalog) GetAll(ctx context.Context) ([]model.Course, error) {
	return f.courses, nil
}

func (f *fakeCatalog) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	for i := range f.courses {
		if f.courses[i].Slug == slug {
			c := f.courses[i]
			return &c, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "Course %s not found", slug)
}

func (f *fakeCatalog) GetServices(ctx context.Context) ([]model.ServicePackage, error) {
	return f.services, nil
}

func (f *fakeCatalog) GetServiceByID(ctx context.Context, id string) (*model.ServicePackage, error) {
	for i := range f.services {
		if f.services[i].ID == id {
			s := f.services[i]
			return &s, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "Service %s not found", id)
}

func (f *fakeCatalog) CategoryCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, c := range f.courses {
		counts[c.Category]++
	}
	return counts, nil
}

func (f *fakeCatalog) Invalidate() {}

type fakePricingService struct {
	catalog     *fakeCatalog
	promo       *model.Promotion
	invalidated bool
	history     []model.PriceChange
}

func (f *fakePricingService) ActivePromotion(ctx context.Context) (*model.Promotion, error) {
	return f.promo, nil
}

func (f *fakePricingService) QuoteBySlug(ctx context.Context, slug string) (*model.Course, *model.PriceQuote, error) {
	course, err := f.catalog.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	quote, err := f.Quote(ctx, course, f.promo)
	if err != nil {
		return nil, nil, err
	}
	return course, quote, nil
}

func (f *fakePricingService) Quote(ctx context.Context, course *model.Course, promo *model.Promotion) (*model.PriceQuote, error) {
	quote := &model.PriceQuote{
		OriginalPrice: course.BasePrice.Amount,
		FinalPrice:    course.BasePrice.Amount,
		Currency:      course.BasePrice.Currency,
	}
	return quote, nil
}

func (f *fakePricingService) Stats(ctx context.Context) (*service.PricingStats, error) {
	return &service.PricingStats{TotalCourses: len(f.catalog.courses)}, nil
}

func (f *fakePricingService) UpdatePrice(ctx context.Context, slug string, amount float64, reason string) error {
	if _, err := f.catalog.GetBySlug(ctx, slug); err != nil {
		return err
	}
	f.history = append(f.history, model.PriceChange{CourseSlug: slug, Price: amount, Reason: reason})
	return nil
}

func (f *fakePricingService) UpdatePromotion(ctx context.Context, promo model.Promotion) error {
	f.promo = &promo
	return nil
}

func (f *fakePricingService) History(ctx context.Context) ([]model.PriceChange, error) {
	return f.history, nil
}

func (f *fakePricingService) Invalidate() { f.invalidated = true }

type fakeNotifications struct {
	ref  string
	err  error
	last service.ConsultationRequest
}

func (f *fakeNotifications) DispatchConsultation(ctx context.Context, req service.ConsultationRequest) (string, error) {
	f.last = req
	if f.err != nil {
		return "", f.err
	}
	return f.ref, nil
}

func testCourses() []model.Course {
	return []model.Course{
		{
			Slug:      "azure-fundamentals",
			Code:      "AZ-900",
			Title:     "Azure Fundamentals",
			Category:  "Azure",
			Level:     model.LevelBeginner,
			Duration:  model.Duration{Days: 1, Hours: 8},
			BasePrice: model.Money{Amount: 495, Currency: "EUR"},
		},
		{
			Slug:      "azure-administrator",
			Code:      "AZ-104",
			Title:     "Azure Administrator",
			Category:  "Azure",
			Level:     model.LevelIntermediate,
			Duration:  model.Duration{Days: 4, Hours: 32},
			BasePrice: model.Money{Amount: 1995, Currency: "EUR"},
		},
	}
}

func testServices() []model.ServicePackage {
	return []model.ServicePackage{
		{ID: "consulting-day", Name: "Consulting Day", Price: model.Money{Amount: 1295, Currency: "EUR"}, Unit: "day"},
	}
}
