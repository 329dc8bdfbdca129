package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/logger"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/repository"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/service"
)

// pricingctl prints the effective price list from the local catalog and
// pricing files. Meant for operators checking what a promotion does before
// publishing it.
func main() {
	dir := flag.String("dir", "data/trainings", "catalog directory")
	pricesFile := flag.String("prices", "data/pricing/prices.json", "price overrides file")
	promotionsFile := flag.String("promotions", "data/pricing/promotions.json", "promotions file")
	category := flag.String("category", "", "filter by category alias (e.g. azure-security)")
	level := flag.String("level", "", "filter by difficulty level")
	defaultPrice := flag.Float64("default-price", 690, "fallback price for courses without one")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.New()

	clock := time.Now
	catalog := repository.NewCatalogRepo(*dir, *defaultPrice, 0, clock, log)
	pricing := repository.NewPricingRepo(*pricesFile, *promotionsFile, 0, clock, log)
	pricingSvc := service.NewPricingService(catalog, pricing, clock, log)
	filterSvc := service.NewFilterService(catalog)

	ctx := context.Background()
	courses, err := filterSvc.Filter(ctx, service.CourseQuery{
		Category: *category,
		Level:    *level,
	})
	if err != nil {
		color.Red("Failed to load catalog: %v", err)
		os.Exit(1)
	}
	promo, err := pricingSvc.ActivePromotion(ctx)
	if err != nil {
		color.Red("Failed to load promotions: %v", err)
		os.Exit(1)
	}

	if promo != nil {
		color.Yellow("Active promotion: %s (%.0f%% off, until %s)",
			promo.ID, promo.Percentage, promo.ValidUntil.Format("2006-01-02"))
	} else {
		color.Cyan("No active promotion")
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Code", "Title", "Level", "Duration", "Price", "Final Price"})

	for i := range courses {
		c := &courses[i]
		quote, err := pricingSvc.Quote(ctx, c, promo)
		if err != nil {
			color.Red("Failed to price %s: %v", c.Slug, err)
			os.Exit(1)
		}
		table.Append([]string{
			c.Code,
			c.Title,
			c.Level,
			formatDuration(c.Duration),
			fmt.Sprintf("%.0f %s", quote.OriginalPrice, quote.Currency),
			fmt.Sprintf("%.0f %s", quote.FinalPrice, quote.Currency),
		})
	}
	table.Render()

	color.Green("%d courses listed", len(courses))
}

func formatDuration(d model.Duration) string {
	if d.Days > 0 {
		return fmt.Sprintf("%d days", d.Days)
	}
	return fmt.Sprintf("%d hours", d.Hours)
}
