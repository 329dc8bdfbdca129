package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is loaded once at startup. Credentials are required so a missing
// key fails fast instead of silently disabling a provider.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// Shared API key for the pricing auth flag and the admin endpoints
	APIKey string `envconfig:"API_KEY" required:"true"`

	// Catalog content settings
	CatalogDir          string `envconfig:"CATALOG_DIR" default:"data/trainings"`
	PricesFile          string `envconfig:"PRICES_FILE" default:"data/pricing/prices.json"`
	PromotionsFile      string `envconfig:"PROMOTIONS_FILE" default:"data/pricing/promotions.json"`
	CatalogCacheTTLSec  int    `envconfig:"CATALOG_CACHE_TTL_SEC" default:"300"`
	PricingCacheTTLSec  int    `envconfig:"PRICING_CACHE_TTL_SEC" default:"60"`
	DefaultCoursePrice  int    `envconfig:"DEFAULT_COURSE_PRICE" default:"690"`
	PricingLastUpdated  string `envconfig:"PRICING_LAST_UPDATED" default:"2024-01-01"`
	PricingContactEmail string `envconfig:"PRICING_CONTACT_EMAIL" default:"training@cloudevolvers.com"`
	PricingContactPhone string `envconfig:"PRICING_CONTACT_PHONE" default:"+31 6-34272027"`

	// Microsoft Graph mail settings
	GraphTenantID     string `envconfig:"AZURE_AD_TENANT_ID" required:"true"`
	GraphClientID     string `envconfig:"EMAIL_AZURE_CLIENT_ID" required:"true"`
	GraphClientSecret string `envconfig:"EMAIL_AZURE_CLIENT_SECRET" required:"true"`
	EmailSender       string `envconfig:"EMAIL_SENDER" default:"training@cloudevolvers.com"`
	NotifyRecipients  string `envconfig:"NOTIFY_RECIPIENTS" default:"training@cloudevolvers.com"`

	// Stock photo provider settings
	UnsplashAccessKey string `envconfig:"UNSPLASH_API_KEY" required:"true"`
	PexelsAPIKey      string `envconfig:"PEXELS_API_KEY" required:"true"`
	PixabayAPIKey     string `envconfig:"PIXABAY_API_KEY" required:"true"`

	// Outbound HTTP settings
	HTTPTimeoutSec int `envconfig:"HTTP_TIMEOUT_SEC" default:"30"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
