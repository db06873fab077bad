package service

import (
	"context"
	"testing"

	"price-tracker/internal/features/tracking/domain"
	"price-tracker/internal/features/tracking/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const macbookURL = "https://shopee.vn/Apple-MacBook-Air-(2020)-M1-Chip-13.3-inch-8GB-256GB-SSD-i.88201679.5873954476"

// TestCatalogService_Register_Shopee verifies registration with explicit ids.
func TestCatalogService_Register_Shopee(t *testing.T) {
	store := newMockStore()
	svc := NewCatalogService(store)

	item, err := svc.Register(context.Background(), RegisterItemInput{
		Source: domain.SourceTypeShopee,
		Config: map[string]string{
			"shop_id":      "88201679",
			"item_id":      "5873954476",
			"product_name": "MacBook Air M1",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "shopee_5873954476", item.ID)
	assert.Equal(t, domain.ItemStatusActive, item.Status)
	assert.Equal(t, "MacBook Air M1", item.DisplayName)
	assert.Equal(t, 0.05, item.NotificationThreshold)
	assert.False(t, item.CreatedAt.IsZero())

	saved, err := store.GetItem(context.Background(), "shopee_5873954476")
	require.NoError(t, err)
	assert.Equal(t, item.ID, saved.ID)
}

// TestCatalogService_Register_ShopeeFromURL verifies that shop and item ids
// are derived from a product URL.
func TestCatalogService_Register_ShopeeFromURL(t *testing.T) {
	store := newMockStore()
	svc := NewCatalogService(store)

	item, err := svc.Register(context.Background(), RegisterItemInput{
		Source: domain.SourceTypeShopee,
		Config: map[string]string{
			"product_url": macbookURL,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "shopee_5873954476", item.ID)
	assert.Equal(t, "88201679", item.Config["shop_id"])
	assert.Equal(t, "5873954476", item.Config["item_id"])
}

// TestCatalogService_Register_InvalidShopeeURL verifies URL validation.
func TestCatalogService_Register_InvalidShopeeURL(t *testing.T) {
	svc := NewCatalogService(newMockStore())

	_, err := svc.Register(context.Background(), RegisterItemInput{
		Source: domain.SourceTypeShopee,
		Config: map[string]string{
			"product_url": "https://shopee.vn/some-product-without-ids",
		},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidItem)
}

// TestCatalogService_Register_Gold verifies gold item registration and id derivation.
func TestCatalogService_Register_Gold(t *testing.T) {
	t.Run("DefaultSource", func(t *testing.T) {
		svc := NewCatalogService(newMockStore())

		item, err := svc.Register(context.Background(), RegisterItemInput{
			Source: domain.SourceTypeGold,
		})

		require.NoError(t, err)
		assert.Equal(t, "gold_doji", item.ID)
	})

	t.Run("CustomURL", func(t *testing.T) {
		svc := NewCatalogService(newMockStore())

		item, err := svc.Register(context.Background(), RegisterItemInput{
			Source: domain.SourceTypeGold,
			Config: map[string]string{"url": "https://www.pnj.com.vn"},
		})

		require.NoError(t, err)
		assert.Equal(t, "gold_pnj", item.ID)
	})
}

// TestCatalogService_Register_Amazon verifies ASIN derivation from product URLs.
func TestCatalogService_Register_Amazon(t *testing.T) {
	t.Run("DpURL", func(t *testing.T) {
		svc := NewCatalogService(newMockStore())

		item, err := svc.Register(context.Background(), RegisterItemInput{
			Source: domain.SourceTypeAmazon,
			Config: map[string]string{"product_url": "https://www.amazon.com/dp/B0BSHF7WHW?th=1"},
		})

		require.NoError(t, err)
		assert.Equal(t, "amazon_B0BSHF7WHW", item.ID)
	})

	t.Run("GpProductURL", func(t *testing.T) {
		svc := NewCatalogService(newMockStore())

		item, err := svc.Register(context.Background(), RegisterItemInput{
			Source: domain.SourceTypeAmazon,
			Config: map[string]string{"product_url": "https://www.amazon.com/gp/product/B0BSHF7WHW"},
		})

		require.NoError(t, err)
		assert.Equal(t, "amazon_B0BSHF7WHW", item.ID)
	})

	t.Run("NoASIN", func(t *testing.T) {
		svc := NewCatalogService(newMockStore())

		_, err := svc.Register(context.Background(), RegisterItemInput{
			Source: domain.SourceTypeAmazon,
			Config: map[string]string{"product_url": "https://www.amazon.com/s?k=laptop"},
		})

		assert.ErrorIs(t, err, domain.ErrInvalidItem)
	})
}

// TestCatalogService_Register_CustomThreshold verifies the threshold is kept.
func TestCatalogService_Register_CustomThreshold(t *testing.T) {
	svc := NewCatalogService(newMockStore())

	item, err := svc.Register(context.Background(), RegisterItemInput{
		Source:                domain.SourceTypeGold,
		NotificationThreshold: 0.10,
	})

	require.NoError(t, err)
	assert.Equal(t, 0.10, item.NotificationThreshold)
}

// TestCatalogService_SetStatus verifies activation toggling.
func TestCatalogService_SetStatus(t *testing.T) {
	store := newMockStore()
	svc := NewCatalogService(store)

	item, err := svc.Register(context.Background(), RegisterItemInput{Source: domain.SourceTypeGold})
	require.NoError(t, err)

	err = svc.SetStatus(context.Background(), item.ID, domain.ItemStatusInactive)
	require.NoError(t, err)

	saved, err := store.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusInactive, saved.Status)

	t.Run("InvalidStatus", func(t *testing.T) {
		err := svc.SetStatus(context.Background(), item.ID, "paused")
		assert.ErrorIs(t, err, domain.ErrInvalidItem)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		err := svc.SetStatus(context.Background(), "shopee_missing", domain.ItemStatusActive)
		assert.ErrorIs(t, err, ports.ErrItemNotFound)
	})
}

// TestCatalogService_List verifies source and status filtering.
func TestCatalogService_List(t *testing.T) {
	store := newMockStore()
	svc := NewCatalogService(store)

	_, err := svc.Register(context.Background(), RegisterItemInput{Source: domain.SourceTypeGold})
	require.NoError(t, err)
	shopee, err := svc.Register(context.Background(), RegisterItemInput{
		Source: domain.SourceTypeShopee,
		Config: map[string]string{"product_url": macbookURL},
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(context.Background(), shopee.ID, domain.ItemStatusInactive))

	all, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(context.Background(), "", domain.ItemStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "gold_doji", active[0].ID)

	shopeeOnly, err := svc.List(context.Background(), domain.SourceTypeShopee, "")
	require.NoError(t, err)
	require.Len(t, shopeeOnly, 1)
	assert.Equal(t, shopee.ID, shopeeOnly[0].ID)
}

// TestCatalogService_History verifies limit clamping and unknown items.
func TestCatalogService_History(t *testing.T) {
	store := newMockStore()
	svc := NewCatalogService(store)

	item, err := svc.Register(context.Background(), RegisterItemInput{Source: domain.SourceTypeGold})
	require.NoError(t, err)
	store.seed(item.ID, 100.0, 101.0, 102.0)

	obs, err := svc.History(context.Background(), item.ID, 0)
	require.NoError(t, err)
	assert.Len(t, obs, 3)
	assert.Equal(t, historyDefaultLimit, store.historyLimit)
	assert.Equal(t, 102.0, obs[0].Price, "newest first")

	_, err = svc.History(context.Background(), item.ID, 1000)
	require.NoError(t, err)
	assert.Equal(t, historyMaxLimit, store.historyLimit)

	_, err = svc.History(context.Background(), "shopee_missing", 10)
	assert.ErrorIs(t, err, ports.ErrItemNotFound)
}

// TestParseShopeeURL verifies the product URL parsing rule.
func TestParseShopeeURL(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantItemID string
		wantShopID string
		wantErr    bool
	}{
		{
			name:       "MacBook URL",
			url:        macbookURL,
			wantItemID: "5873954476",
			wantShopID: "88201679",
		},
		{
			name:       "Encoded URL",
			url:        "https://shopee.vn/Thi%E1%BA%BFt-b%E1%BB%8B-l%C6%B0u-tr%E1%BB%AF-DAS-TerraMaster-D5-310-i.807476339.40004315413",
			wantItemID: "40004315413",
			wantShopID: "807476339",
		},
		{
			name:    "Missing IDs",
			url:     "https://shopee.vn/some-product",
			wantErr: true,
		},
		{
			name:    "Wrong Host",
			url:     "https://example.com/product-i.1.2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itemID, shopID, err := ParseShopeeURL(tt.url)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantItemID, itemID)
			assert.Equal(t, tt.wantShopID, shopID)
		})
	}
}
