package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/api/v1/handler"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/config"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/middleware"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/repository"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/service"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, error) {
	logger.Info().Msg("Router initialized")
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// One clock for the whole app so caches, promotion windows and history
	// timestamps agree.
	clock := time.Now
	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second}

	// 1. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 2. Initialize repositories & services & handlers
	catalogRepo := repository.NewCatalogRepo(
		cfg.CatalogDir,
		float64(cfg.DefaultCoursePrice),
		time.Duration(cfg.CatalogCacheTTLSec)*time.Second,
		clock,
		logger,
	)
	pricingRepo := repository.NewPricingRepo(
		cfg.PricesFile,
		cfg.PromotionsFile,
		time.Duration(cfg.PricingCacheTTLSec)*time.Second,
		clock,
		logger,
	)

	pricingSvc := service.NewPricingService(catalogRepo, pricingRepo, clock, logger)
	filterSvc := service.NewFilterService(catalogRepo)
	tokenSource := service.NewGraphTokenSource(cfg, httpClient, clock, logger)
	mailTransport := service.NewGraphTransport(tokenSource, cfg.EmailSender, httpClient, logger)
	notificationSvc := service.NewNotificationService(mailTransport, cfg, logger)
	imageSvc := service.NewImageService(cfg, httpClient, logger)

	pricingHandler := handler.NewPricingHandler(catalogRepo, pricingSvc, cfg, logger)
	trainingHandler := handler.NewTrainingHandler(catalogRepo, pricingSvc, filterSvc, validate, logger)
	contactHandler := handler.NewContactHandler(notificationSvc, validate, logger)
	imagesHandler := handler.NewImagesHandler(imageSvc, logger)
	adminHandler := handler.NewAdminHandler(pricingSvc, validate, logger)
	healthHandler := handler.NewHealthHandler(catalogRepo)

	// 3. Initialize middleware
	apiKeyMiddleware := middleware.APIKeyMiddleware(cfg.APIKey, logger)

	// 4. Create ServeMux router with a /v1 subrouter
	apiV1Mux := http.NewServeMux()
	pricingHandler.RegisterRoutes(apiV1Mux)
	trainingHandler.RegisterRoutes(apiV1Mux)
	contactHandler.RegisterRoutes(apiV1Mux)
	imagesHandler.RegisterRoutes(apiV1Mux)
	healthHandler.RegisterRoutes(apiV1Mux)

	// Admin routes get their own mux so the API key check wraps all of them.
	adminMux := http.NewServeMux()
	adminHandler.RegisterRoutes(adminMux)
	apiV1Mux.Handle("/admin/", apiKeyMiddleware(adminMux))

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// Redirect /api/* to /v1/* for backward compatibility
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/")
		http.Redirect(w, r, "/v1/"+rest, http.StatusMovedPermanently)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1/") || strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/v1"+r.URL.Path, http.StatusMovedPermanently)
	})

	// 5. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), nil
}
