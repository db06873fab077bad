package ports

import (
	"context"
	"time"

	"price-tracker/internal/features/runs/domain"
	trackingdomain "price-tracker/internal/features/tracking/domain"
)

// RunService defines the primary port for run report operations.
type RunService interface {
	Record(ctx context.Context, trigger domain.Trigger, startedAt, finishedAt time.Time, outcomes []trackingdomain.TrackingOutcome) (*domain.RunReport, error)
	Latest(ctx context.Context) (*domain.RunReport, error)
	ClearLatest(ctx context.Context) error
}

// RunRepository defines the secondary port for run report storage.
type RunRepository interface {
	SaveLatest(ctx context.Context, report *domain.RunReport) error
	Latest(ctx context.Context) (*domain.RunReport, error)
	ClearLatest(ctx context.Context) error
}
