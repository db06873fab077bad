package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"price-tracker/internal/core/cache"
	"price-tracker/internal/core/config"
	"price-tracker/internal/core/logger"
	"price-tracker/internal/core/proxy"
	runsadapters "price-tracker/internal/features/runs/adapters"
	runsdomain "price-tracker/internal/features/runs/domain"
	runsservice "price-tracker/internal/features/runs/service"
	trackingadapter "price-tracker/internal/features/tracking/adapters"
	"price-tracker/internal/features/tracking/domain"
	"price-tracker/internal/features/tracking/ports"
	trackingservice "price-tracker/internal/features/tracking/service"

	"go.uber.org/zap"
)

// The runner executes one tracking batch and exits. It prints the outcomes
// as JSON to stdout and exits non-zero when any item failed, so it can run
// under cron or a CI job.
func main() {
	os.Exit(run())
}

func run() int {
	source := flag.String("source", "", "Restrict the run to one source (shopee, gold, amazon)")
	itemID := flag.String("item", "", "Track a single item by id instead of all active items")
	timeout := flag.Duration("timeout", 10*time.Minute, "Overall run deadline")
	flag.Parse()

	if *source != "" && !validSource(*source) {
		log.Fatalf("Unknown source %q, expected shopee, gold or amazon", *source)
	}

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := newStore(cfg)
	if err != nil {
		l.Error("Failed to initialize price store", zap.Error(err))
		return 1
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		l.Error("Price store health check failed", zap.Error(err))
		return 1
	}

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

	notifier := trackingadapter.NewNtfyNotifier(cfg.Ntfy)

	trackerService := trackingservice.NewTrackerService(fetchers, store, notifier, trackingservice.Options{
		FetchTimeout:     time.Duration(cfg.Tracking.FetchTimeout) * time.Second,
		StoreTimeout:     time.Duration(cfg.Tracking.StoreTimeout) * time.Second,
		NotifyTimeout:    time.Duration(cfg.Tracking.NotifyTimeout) * time.Second,
		Concurrency:      cfg.Tracking.Concurrency,
		DefaultThreshold: cfg.Tracking.DefaultThreshold,
	})

	startedAt := time.Now()

	var outcomes []domain.TrackingOutcome
	if *itemID != "" {
		item, err := store.GetItem(ctx, *itemID)
		if err != nil {
			l.Error("Failed to load item", zap.String("item_id", *itemID), zap.Error(err))
			return 1
		}
		outcomes = []domain.TrackingOutcome{trackerService.Track(ctx, *item)}
	} else {
		outcomes = trackerService.TrackActive(ctx, domain.SourceType(*source))
	}

	// Run reports are shared through Redis. With the sqlite backend the
	// report would only live inside this process, so recording is skipped.
	// Failing to record only loses the /runs/latest view, not the run.
	if cfg.Store.Backend == "redis" {
		if redisCache, err := cache.NewRedisAdapter(cfg.Store.RedisURL); err != nil {
			l.Error("Failed to initialize run repository", zap.Error(err))
		} else {
			runService := runsservice.NewRunService(runsadapters.NewRedisRunRepository(redisCache))
			if _, err := runService.Record(ctx, runsdomain.TriggerCLI, startedAt, time.Now(), outcomes); err != nil {
				l.Error("Failed to record run report", zap.Error(err))
			}
			redisCache.Close()
		}
	}

	out, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		l.Error("Failed to marshal outcomes", zap.Error(err))
		return 1
	}
	fmt.Println(string(out))

	return exitCode(outcomes)
}

// exitCode maps a batch result onto the process exit code. Any failed
// outcome makes the whole run fail; an empty batch counts as success.
func exitCode(outcomes []domain.TrackingOutcome) int {
	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			return 1
		}
	}
	return 0
}

func validSource(source string) bool {
	switch domain.SourceType(source) {
	case domain.SourceTypeShopee, domain.SourceTypeGold, domain.SourceTypeAmazon:
		return true
	}
	return false
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
