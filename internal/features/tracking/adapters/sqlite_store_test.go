package adapter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"price-tracker/internal/features/tracking/domain"
	"price-tracker/internal/features/tracking/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSqliteStore(t *testing.T) *SqliteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tracker.db")
	store, err := NewSqliteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSqliteStore_AppendGetLatest(t *testing.T) {
	store := newSqliteStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	prices := []float64{100, 105, 103}
	for i, price := range prices {
		err := store.Append(ctx, domain.PriceObservation{
			ItemID:    "shopee_5873954476",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Price:     price,
			Metadata:  map[string]string{"source": "shopee"},
		})
		require.NoError(t, err)
	}

	latest, err := store.GetLatest(ctx, "shopee_5873954476")
	require.NoError(t, err)
	assert.Equal(t, 103.0, latest.Price)
	assert.Equal(t, "shopee_5873954476", latest.ItemID)
	assert.Equal(t, "shopee", latest.Metadata["source"])
	assert.WithinDuration(t, base.Add(2*time.Minute), latest.Timestamp, time.Second)
}

func TestSqliteStore_GetLatestEmpty(t *testing.T) {
	store := newSqliteStore(t)

	_, err := store.GetLatest(context.Background(), "shopee_5873954476")
	assert.ErrorIs(t, err, ports.ErrNoObservations)
}

func TestSqliteStore_History(t *testing.T) {
	store := newSqliteStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		err := store.Append(ctx, domain.PriceObservation{
			ItemID:    "gold_doji",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Price:     11637 + float64(i),
		})
		require.NoError(t, err)
	}

	history, err := store.History(ctx, "gold_doji", 3)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Newest first
	assert.Equal(t, 11641.0, history[0].Price)
	assert.Equal(t, 11640.0, history[1].Price)
	assert.Equal(t, 11639.0, history[2].Price)
}

func TestSqliteStore_SaveGetItem(t *testing.T) {
	store := newSqliteStore(t)
	ctx := context.Background()

	item := sampleItem("shopee_5873954476")
	require.NoError(t, store.SaveItem(ctx, item))

	got, err := store.GetItem(ctx, "shopee_5873954476")
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, item.Source, got.Source)
	assert.Equal(t, item.Config, got.Config)
	assert.Equal(t, item.DisplayName, got.DisplayName)
	assert.Equal(t, item.NotificationThreshold, got.NotificationThreshold)
	assert.Equal(t, item.Status, got.Status)
	assert.WithinDuration(t, item.CreatedAt, got.CreatedAt, time.Second)

	// SaveItem replaces an existing definition
	item.DisplayName = "MacBook Air M1 256GB"
	require.NoError(t, store.SaveItem(ctx, item))

	got, err = store.GetItem(ctx, "shopee_5873954476")
	require.NoError(t, err)
	assert.Equal(t, "MacBook Air M1 256GB", got.DisplayName)
}

func TestSqliteStore_GetItemNotFound(t *testing.T) {
	store := newSqliteStore(t)

	_, err := store.GetItem(context.Background(), "shopee_404")
	assert.ErrorIs(t, err, ports.ErrItemNotFound)
}

func TestSqliteStore_ListItems(t *testing.T) {
	store := newSqliteStore(t)
	ctx := context.Background()

	first := sampleItem("shopee_1")
	second := sampleItem("shopee_2")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	second.Status = domain.ItemStatusInactive
	gold := sampleItem("gold_doji")
	gold.Source = domain.SourceTypeGold
	gold.Config = map[string]string{}
	gold.CreatedAt = first.CreatedAt.Add(2 * time.Minute)

	for _, item := range []*domain.TrackedItem{first, second, gold} {
		require.NoError(t, store.SaveItem(ctx, item))
	}

	all, err := store.ListItems(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "shopee_1", all[0].ID)
	assert.Equal(t, "shopee_2", all[1].ID)
	assert.Equal(t, "gold_doji", all[2].ID)

	shopeeOnly, err := store.ListItems(ctx, domain.SourceTypeShopee, "")
	require.NoError(t, err)
	assert.Len(t, shopeeOnly, 2)

	active, err := store.ListActive(ctx, "")
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "shopee_1", active[0].ID)
	assert.Equal(t, "gold_doji", active[1].ID)
}

func TestSqliteStore_SetItemStatus(t *testing.T) {
	store := newSqliteStore(t)
	ctx := context.Background()

	item := sampleItem("shopee_5873954476")
	require.NoError(t, store.SaveItem(ctx, item))

	err := store.SetItemStatus(ctx, "shopee_5873954476", domain.ItemStatusInactive)
	require.NoError(t, err)

	got, err := store.GetItem(ctx, "shopee_5873954476")
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusInactive, got.Status)
}

func TestSqliteStore_SetItemStatusNotFound(t *testing.T) {
	store := newSqliteStore(t)

	err := store.SetItemStatus(context.Background(), "shopee_404", domain.ItemStatusInactive)
	assert.ErrorIs(t, err, ports.ErrItemNotFound)
}

func TestSqliteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	ctx := context.Background()

	store, err := NewSqliteStore(path)
	require.NoError(t, err)

	item := sampleItem("gold_doji")
	item.Source = domain.SourceTypeGold
	require.NoError(t, store.SaveItem(ctx, item))
	require.NoError(t, store.Append(ctx, domain.PriceObservation{
		ItemID:    "gold_doji",
		Timestamp: time.Now().UTC(),
		Price:     11637,
	}))
	require.NoError(t, store.Close())

	reopened, err := NewSqliteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetItem(ctx, "gold_doji")
	require.NoError(t, err)
	assert.Equal(t, "gold_doji", got.ID)

	latest, err := reopened.GetLatest(ctx, "gold_doji")
	require.NoError(t, err)
	assert.Equal(t, 11637.0, latest.Price)
}

func TestSqliteStore_Ping(t *testing.T) {
	store := newSqliteStore(t)

	assert.NoError(t, store.Ping(context.Background()))
}
