package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/api"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/config"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/database"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/nse"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/pricing"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/repository"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/service"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	actionRepo := repository.NewActionRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	// Create upstream clients
	nseClient := nse.NewArchiveClient(cfg.NSE.BaseURL, cfg.NSE.Timeout)
	yahooClient := yahoo.NewFinanceClient(cfg.Yahoo.BaseURL, cfg.Yahoo.Timeout)

	// Provider chain: local store first, official bhavcopy second, Yahoo last
	resolver := pricing.NewResolver(
		pricing.NewStoreProvider(priceRepo),
		pricing.NewNSEProvider(nseClient, cfg.NSE.LookbackDays),
		pricing.NewYahooProvider(yahooClient, cfg.Yahoo.WindowDays),
	)

	// Create services
	systemService := service.NewSystemService(db)
	returnService := service.NewReturnService(actionRepo, resolver)
	importService := service.NewImportService(actionRepo, priceRepo, nseClient, yahooClient)

	// Create router
	router := api.NewRouter(systemService, returnService, importService, actionRepo, priceRepo, cfg)

	// Daily price refresh keeps the store provider current
	scheduler := cron.New()
	if cfg.Scheduler.Enabled {
		_, err := scheduler.AddFunc(cfg.Scheduler.Spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if _, err := importService.RefreshDailyPrices(ctx, time.Now().UTC()); err != nil {
				log.Printf("Scheduled price refresh failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("Invalid price refresh schedule %q: %v", cfg.Scheduler.Spec, err)
		}
		scheduler.Start()
		log.Printf("Price refresh scheduled: %s", cfg.Scheduler.Spec)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
