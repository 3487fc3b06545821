package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"rent-agent/config"
	httpLayer "rent-agent/http"
	"rent-agent/provider"
	"rent-agent/repository"
	"rent-agent/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	tables, err := config.LoadTables(os.Getenv("TABLES_PATH"))
	if err != nil {
		logger.Fatal("failed to load tables", zap.Error(err))
	}

	var cache repository.CacheRepository
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = repository.NewRedisCache(addr)
		logger.Info("using redis market cache", zap.String("addr", addr))
	} else {
		cache = repository.NewMockCache()
		logger.Info("no REDIS_ADDR set, using in-process market cache")
	}

	providers := []provider.MarketDataProvider{
		provider.NewGovIndexProvider(os.Getenv("GOV_RENT_INDEX_URL"), logger),
		provider.NewCommercialIndexProvider(
			os.Getenv("COMMERCIAL_RENT_INDEX_URL"),
			os.Getenv("COMMERCIAL_RENT_INDEX_API_KEY"),
			logger),
		provider.NewListingsProvider(os.Getenv("LISTINGS_FEED_URL"), logger),
	}

	extractor := service.NewExtractorService(tables)
	trigger := service.NewTriggerService(tables, extractor)
	market := service.NewMarketService(providers, tables, cache, logger)
	leverage := service.NewLeverageService(tables)
	roadmap := service.NewRoadmapService()
	ai := service.NewAIService(logger)
	planRepo := repository.NewPlanRepositoryMemory()
	negotiation := service.NewNegotiationService(market, leverage, roadmap, ai, planRepo, logger)

	analyzeHandler := httpLayer.NewAnalyzeHandler(trigger)
	negotiationHandler := httpLayer.NewNegotiationHandler(negotiation, logger)
	marketHandler := httpLayer.NewMarketHandler(market)

	rateLimiter := httpLayer.NewRateLimiter(5, time.Minute)
	defer rateLimiter.Stop()

	r := chi.NewRouter()
	r.Use(rateLimiter.Middleware)
	r.Post("/negotiation/analyze", analyzeHandler.Analyze)
	r.Post("/negotiation/plan", negotiationHandler.BuildPlan)
	r.Post("/market/estimate", marketHandler.Estimate)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("negotiation engine listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return
	case <-quit:
		logger.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
