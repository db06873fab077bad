package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"price-tracker/internal/core/cache"
	"price-tracker/internal/core/config"
	"price-tracker/internal/core/logger"
	"price-tracker/internal/core/proxy"
	"price-tracker/internal/core/scheduler"
	"price-tracker/internal/core/server"
	runsadapters "price-tracker/internal/features/runs/adapters"
	runsdomain "price-tracker/internal/features/runs/domain"
	runshandler "price-tracker/internal/features/runs/handler"
	runsports "price-tracker/internal/features/runs/ports"
	runsservice "price-tracker/internal/features/runs/service"
	trackingadapter "price-tracker/internal/features/tracking/adapters"
	trackinghandler "price-tracker/internal/features/tracking/handler"
	"price-tracker/internal/features/tracking/ports"
	trackingservice "price-tracker/internal/features/tracking/service"

	"go.uber.org/zap"
)

// @title Price Tracker API
// @version 1.0
// @description Tracks product and commodity prices from external sources, records their history and sends alerts on significant changes.
// @contact.name API Support
// @contact.email support@pricetracker.io
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("store_backend", cfg.Store.Backend),
	)

	// Initialize Price Store and run Health Check
	store, err := newStore(cfg)
	if err != nil {
		l.Fatal("Failed to initialize price store", zap.Error(err))
	}
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = store.Ping(pingCtx)
	cancel()
	if err != nil {
		l.Fatal("Price store health check failed", zap.Error(err))
	}
	l.Info("Price store connection verified", zap.String("backend", cfg.Store.Backend))

	// Initialize Price Fetchers
	fetchers := []ports.PriceFetcher{
		trackingadapter.NewShopeeFetcher(cfg.Sources.ShopeeBaseURL),
		trackingadapter.NewGoldFetcher(cfg.Sources.GoldURL),
		trackingadapter.NewAmazonFetcher(proxy.Settings{
			Enabled:  cfg.Proxy.Enabled,
			Hostname: cfg.Proxy.Hostname,
			Port:     cfg.Proxy.Port,
			Username: cfg.Proxy.Username,
			Password: cfg.Proxy.Password,
		}),
	}

	// Initialize Notifier
	notifier := trackingadapter.NewNtfyNotifier(cfg.Ntfy)

	// Initialize Services
	trackerService := trackingservice.NewTrackerService(fetchers, store, notifier, trackingservice.Options{
		FetchTimeout:     time.Duration(cfg.Tracking.FetchTimeout) * time.Second,
		StoreTimeout:     time.Duration(cfg.Tracking.StoreTimeout) * time.Second,
		NotifyTimeout:    time.Duration(cfg.Tracking.NotifyTimeout) * time.Second,
		Concurrency:      cfg.Tracking.Concurrency,
		DefaultThreshold: cfg.Tracking.DefaultThreshold,
	})
	catalogService := trackingservice.NewCatalogService(store)

	runRepo, err := newRunRepository(cfg)
	if err != nil {
		l.Fatal("Failed to initialize run repository", zap.Error(err))
	}
	runService := runsservice.NewRunService(runRepo)

	// Initialize Handlers
	trackingHdl := trackinghandler.NewTrackingHandler(trackerService, catalogService, runService)
	itemHdl := trackinghandler.NewItemHandler(catalogService)
	runHdl := runshandler.NewRunHandler(runService)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/items", itemHdl.RegisterItem)
	srv.App.Get("/items", itemHdl.ListItems)
	srv.App.Get("/items/:id", itemHdl.GetItem)
	srv.App.Patch("/items/:id/status", itemHdl.SetItemStatus)
	srv.App.Get("/items/:id/history", itemHdl.GetItemHistory)
	srv.App.Post("/tracking/run", trackingHdl.RunTracking)
	srv.App.Post("/tracking/items/:id/run", trackingHdl.RunTrackingItem)
	srv.App.Get("/runs/latest", runHdl.GetLatestRun)
	srv.App.Delete("/runs/latest", runHdl.ClearLatestRun)

	// Start periodic tracking runs
	if cfg.Tracking.SchedulerEnabled && cfg.Tracking.Interval > 0 {
		sched := scheduler.New(time.Duration(cfg.Tracking.Interval)*time.Second, func(ctx context.Context) {
			startedAt := time.Now()
			outcomes := trackerService.TrackActive(ctx, "")
			if _, err := runService.Record(ctx, runsdomain.TriggerScheduler, startedAt, time.Now(), outcomes); err != nil {
				l.Error("Failed to record scheduled run", zap.Error(err))
			}
		})
		go sched.Start(context.Background())
		defer sched.Stop()
	}

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
	l.Info("Application stopped")
}

// newStore builds the configured price store backend.
func newStore(cfg *config.AppConfig) (ports.PriceStore, error) {
	switch cfg.Store.Backend {
	case "redis":
		return trackingadapter.NewRedisStore(cfg.Store.RedisURL)
	case "sqlite":
		return trackingadapter.NewSqliteStore(cfg.Store.SqlitePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newRunRepository keeps run reports next to the price data: in Redis when
// the redis backend is selected, in memory otherwise.
func newRunRepository(cfg *config.AppConfig) (runsports.RunRepository, error) {
	if cfg.Store.Backend == "sqlite" {
		return runsadapters.NewMemoryRunRepository(), nil
	}

	redisCache, err := cache.NewRedisAdapter(cfg.Store.RedisURL)
	if err != nil {
		return nil, err
	}
	return runsadapters.NewRedisRunRepository(redisCache), nil
}
