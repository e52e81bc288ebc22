package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/api/handlers"
	custommiddleware "github.com/rmehta/Equity-Returns-Engine-Backend/internal/api/middleware"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/config"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/repository"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	returnService *service.ReturnService,
	importService *service.ImportService,
	actionRepo *repository.ActionRepository,
	priceRepo *repository.PriceRepository,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		returnsHandler := handlers.NewReturnsHandler(returnService)
		r.Get("/returns", returnsHandler.Returns)

		actionsHandler := handlers.NewActionsHandler(actionRepo)
		r.Get("/actions", actionsHandler.Actions)

		pricesHandler := handlers.NewPricesHandler(priceRepo)
		r.Get("/prices", pricesHandler.Prices)

		// Administrative namespace, API-key protected
		r.Route("/admin", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware(cfg.Admin.APIKey))

			importHandler := handlers.NewImportHandler(importService)
			r.Post("/import/actions", importHandler.ImportActions)
			r.Post("/import/prices", importHandler.ImportPrices)
			r.Post("/refresh-prices", importHandler.RefreshPrices)
			r.Post("/backfill", importHandler.Backfill)
		})
	})

	return r
}
