package adapters

import (
	"context"
	"testing"
	"time"

	"price-tracker/internal/core/cache"
	"price-tracker/internal/features/runs/domain"
	"price-tracker/internal/features/runs/ports"
	trackingdomain "price-tracker/internal/features/tracking/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T) *domain.RunReport {
	t.Helper()

	report, err := domain.NewRunReport(domain.TriggerScheduler, time.Now().Add(-time.Minute), time.Now(),
		[]trackingdomain.TrackingOutcome{
			{ItemID: "shopee_1", StatusCode: trackingdomain.StatusCodeOK},
			{ItemID: "gold_doji", StatusCode: trackingdomain.StatusCodeError, Stage: trackingdomain.StageFetch, Error: "timeout"},
		})
	require.NoError(t, err)

	return report
}

func testRepository(t *testing.T, repo ports.RunRepository) {
	t.Helper()
	ctx := context.Background()

	// Empty repository reports no run
	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	report := sampleReport(t)
	require.NoError(t, repo.SaveLatest(ctx, report))

	latest, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, report.ID, latest.ID)
	assert.Equal(t, domain.TriggerScheduler, latest.Trigger)
	assert.Equal(t, 2, latest.Total)
	assert.Equal(t, 1, latest.Succeeded)
	assert.Equal(t, 1, latest.Failed)
	require.Len(t, latest.Outcomes, 2)
	assert.Equal(t, "shopee_1", latest.Outcomes[0].ItemID)

	// A new run replaces the previous report
	replacement := sampleReport(t)
	require.NoError(t, repo.SaveLatest(ctx, replacement))

	latest, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, replacement.ID, latest.ID)

	require.NoError(t, repo.ClearLatest(ctx))

	latest, err = repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestRedisRunRepository(t *testing.T) {
	mr := miniredis.RunT(t)

	redisCache, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	defer redisCache.Close()

	testRepository(t, NewRedisRunRepository(redisCache))
}

func TestMemoryRunRepository(t *testing.T) {
	testRepository(t, NewMemoryRunRepository())
}
