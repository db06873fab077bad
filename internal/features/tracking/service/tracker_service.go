package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"price-tracker/internal/core/logger"
	"price-tracker/internal/features/tracking/domain"
	"price-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

var (
	// ErrSourceNotSupported is returned when no fetcher supports the item's source.
	ErrSourceNotSupported = errors.New("source not supported")
)

const (
	defaultFetchTimeout  = 10 * time.Second
	defaultStoreTimeout  = 5 * time.Second
	defaultNotifyTimeout = 5 * time.Second
	defaultConcurrency   = 4
	defaultThreshold     = 0.01
)

// Options tunes the tracking engine. Zero values fall back to defaults.
type Options struct {
	// FetchTimeout bounds a single price fetch.
	FetchTimeout time.Duration
	// StoreTimeout bounds a single store read or write.
	StoreTimeout time.Duration
	// NotifyTimeout bounds a single alert delivery.
	NotifyTimeout time.Duration
	// Concurrency is the number of items tracked in parallel during batch runs.
	Concurrency int
	// DefaultThreshold applies when an item has no threshold of its own.
	DefaultThreshold float64
}

func (o Options) withDefaults() Options {
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = defaultFetchTimeout
	}
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = defaultStoreTimeout
	}
	if o.NotifyTimeout <= 0 {
		o.NotifyTimeout = defaultNotifyTimeout
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	if o.DefaultThreshold <= 0 {
		o.DefaultThreshold = defaultThreshold
	}
	return o
}

// TrackerService runs the tracking cycle for items: fetch the current price,
// compare against the last stored one, persist the observation and send an
// alert when the change crosses the item's threshold.
type TrackerService struct {
	fetchers []ports.PriceFetcher
	store    ports.PriceStore
	notifier ports.Notifier
	opts     Options
	logger   *zap.Logger
}

// NewTrackerService creates a new TrackerService with the given collaborators.
func NewTrackerService(fetchers []ports.PriceFetcher, store ports.PriceStore, notifier ports.Notifier, opts Options) *TrackerService {
	return &TrackerService{
		fetchers: fetchers,
		store:    store,
		notifier: notifier,
		opts:     opts.withDefaults(),
		logger:   logger.Get(),
	}
}

// Track runs one full tracking cycle for a single item.
// At most one fetch, one history read, one write and one notification happen
// per call, in that order, with no retries. A failed step stops the cycle.
func (s *TrackerService) Track(ctx context.Context, item domain.TrackedItem) domain.TrackingOutcome {
	if err := item.Validate(); err != nil {
		return domain.NewErrorOutcome(item.ID, domain.StageValidate, err)
	}

	fetcher := s.fetcherFor(item.Source)
	if fetcher == nil {
		return domain.NewErrorOutcome(item.ID, domain.StageValidate,
			fmt.Errorf("%w: %s", ErrSourceNotSupported, item.Source))
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	current, err := fetcher.FetchCurrentPrice(fetchCtx, item)
	cancel()
	if err != nil {
		s.logger.Warn("Price fetch failed",
			zap.String("item_id", item.ID),
			zap.String("source", string(item.Source)),
			zap.Error(err),
		)
		return domain.NewErrorOutcome(item.ID, domain.StageFetch, err)
	}
	if math.IsNaN(current) || math.IsInf(current, 0) || current < 0 {
		return domain.NewErrorOutcome(item.ID, domain.StageFetch,
			fmt.Errorf("fetcher returned invalid price %v", current))
	}

	readCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	latest, err := s.store.GetLatest(readCtx, item.ID)
	cancel()

	var previous *float64
	if err != nil {
		// Only a missing history counts as a first observation. A failed read
		// must surface as an error, not masquerade as a baseline.
		if !errors.Is(err, ports.ErrNoObservations) {
			s.logger.Error("Reading latest price failed",
				zap.String("item_id", item.ID),
				zap.Error(err),
			)
			return domain.NewErrorOutcome(item.ID, domain.StageStoreRead, err)
		}
	} else {
		previous = &latest.Price
	}

	obs := domain.PriceObservation{
		ItemID:    item.ID,
		Timestamp: time.Now(),
		Price:     current,
		Metadata:  observationMetadata(item),
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	err = s.store.Append(writeCtx, obs)
	cancel()
	if err != nil {
		s.logger.Error("Storing observation failed",
			zap.String("item_id", item.ID),
			zap.Error(err),
		)
		return domain.NewErrorOutcome(item.ID, domain.StageStoreWrite, err)
	}

	outcome := domain.TrackingOutcome{
		ItemID:        item.ID,
		StatusCode:    domain.StatusCodeOK,
		CurrentPrice:  current,
		PreviousPrice: previous,
		Timestamp:     obs.Timestamp,
	}

	if previous != nil && s.shouldNotify(item, *previous, current) {
		outcome.PriceChanged = true

		name := item.DisplayName
		if name == "" {
			name = fetcher.DisplayName(item)
		}

		notifyCtx, cancel := context.WithTimeout(ctx, s.opts.NotifyTimeout)
		err := s.notifier.Send(notifyCtx, domain.AlertMessage(name, *previous, current), item.ID)
		cancel()
		if err != nil {
			// Alerts are best-effort: the observation is already stored.
			s.logger.Error("Price alert delivery failed",
				zap.String("item_id", item.ID),
				zap.Error(err),
			)
			outcome.NotifyError = err.Error()
		} else {
			s.logger.Info("Price alert sent",
				zap.String("item_id", item.ID),
				zap.Float64("previous", *previous),
				zap.Float64("current", current),
			)
		}
	}

	return outcome
}

// TrackAll tracks every given item and returns one outcome per item, with
// outcome i corresponding to items[i]. Items run on a bounded worker pool;
// one item's failure or panic never affects the others.
func (s *TrackerService) TrackAll(ctx context.Context, items []domain.TrackedItem) []domain.TrackingOutcome {
	outcomes := make([]domain.TrackingOutcome, len(items))
	if len(items) == 0 {
		return outcomes
	}

	workers := s.opts.Concurrency
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = s.trackRecovering(ctx, items[i])
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// TrackActive loads the active items, optionally filtered to one source, and
// tracks them all. A listing failure yields a single systemic error outcome
// instead of per-item results, since no items could be determined.
func (s *TrackerService) TrackActive(ctx context.Context, source domain.SourceType) []domain.TrackingOutcome {
	listCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	items, err := s.store.ListActive(listCtx, source)
	cancel()
	if err != nil {
		s.logger.Error("Listing active items failed", zap.Error(err))
		return []domain.TrackingOutcome{
			domain.NewErrorOutcome("", domain.StageStoreRead,
				fmt.Errorf("failed to list active items: %w", err)),
		}
	}

	s.logger.Info("Starting tracking run",
		zap.Int("items", len(items)),
		zap.String("source", string(source)),
	)

	return s.TrackAll(ctx, items)
}

// trackRecovering isolates panics from a single item's tracking cycle.
func (s *TrackerService) trackRecovering(ctx context.Context, item domain.TrackedItem) (outcome domain.TrackingOutcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Tracking panicked",
				zap.String("item_id", item.ID),
				zap.Any("panic", r),
			)
			outcome = domain.NewErrorOutcome(item.ID, domain.StageInternal,
				fmt.Errorf("panic while tracking: %v", r))
		}
	}()
	return s.Track(ctx, item)
}

// shouldNotify applies the change rule. With a zero previous price any nonzero
// current price alerts, since no percentage change exists. Otherwise the
// absolute relative change must reach the threshold; equality fires.
func (s *TrackerService) shouldNotify(item domain.TrackedItem, previous, current float64) bool {
	if previous == 0 {
		return current != 0
	}

	threshold := item.NotificationThreshold
	if threshold <= 0 {
		threshold = s.opts.DefaultThreshold
	}

	return math.Abs((current-previous)/previous) >= threshold
}

func (s *TrackerService) fetcherFor(source domain.SourceType) ports.PriceFetcher {
	for _, f := range s.fetchers {
		if f.SupportsSource(source) {
			return f
		}
	}
	return nil
}

// observationMetadata snapshots the item's source and config for storage.
func observationMetadata(item domain.TrackedItem) map[string]string {
	meta := make(map[string]string, len(item.Config)+1)
	meta["source"] = string(item.Source)
	for k, v := range item.Config {
		meta[k] = v
	}
	return meta
}
