package service

import (
	"context"
	"fmt"
	"time"

	"price-tracker/internal/features/runs/domain"
	"price-tracker/internal/features/runs/ports"
	trackingdomain "price-tracker/internal/features/tracking/domain"
)

// RunServiceImpl implements ports.RunService.
type RunServiceImpl struct {
	repo ports.RunRepository
}

// NewRunService creates a new RunServiceImpl.
func NewRunService(repo ports.RunRepository) *RunServiceImpl {
	return &RunServiceImpl{
		repo: repo,
	}
}

// Record builds a report for a finished run and stores it as the latest one.
func (s *RunServiceImpl) Record(ctx context.Context, trigger domain.Trigger, startedAt, finishedAt time.Time, outcomes []trackingdomain.TrackingOutcome) (*domain.RunReport, error) {
	report, err := domain.NewRunReport(trigger, startedAt, finishedAt, outcomes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveLatest(ctx, report); err != nil {
		return nil, fmt.Errorf("service: failed to save run report: %w", err)
	}

	return report, nil
}

// Latest retrieves the most recent run report.
func (s *RunServiceImpl) Latest(ctx context.Context) (*domain.RunReport, error) {
	report, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get run report: %w", err)
	}

	return report, nil
}

// ClearLatest deletes the most recent run report.
func (s *RunServiceImpl) ClearLatest(ctx context.Context) error {
	if err := s.repo.ClearLatest(ctx); err != nil {
		return fmt.Errorf("service: failed to clear run report: %w", err)
	}

	return nil
}
