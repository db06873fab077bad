package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"price-tracker/internal/features/runs/domain"
	trackingdomain "price-tracker/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRunRepository is a mock implementation of ports.RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) SaveLatest(ctx context.Context, report *domain.RunReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockRunRepository) Latest(ctx context.Context) (*domain.RunReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunReport), args.Error(1)
}

func (m *MockRunRepository) ClearLatest(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestRunService_Record(t *testing.T) {
	mockRepo := new(MockRunRepository)
	service := NewRunService(mockRepo)
	ctx := context.Background()

	outcomes := []trackingdomain.TrackingOutcome{
		{ItemID: "shopee_1", StatusCode: trackingdomain.StatusCodeOK},
		{ItemID: "shopee_2", StatusCode: trackingdomain.StatusCodeError, Stage: trackingdomain.StageFetch, Error: "timeout"},
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo.On("SaveLatest", ctx, mock.AnythingOfType("*domain.RunReport")).Return(nil).Once()

		report, err := service.Record(ctx, domain.TriggerAPI, time.Now().Add(-time.Second), time.Now(), outcomes)
		assert.NoError(t, err)
		assert.NotNil(t, report)
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, 1, report.Failed)
		mockRepo.AssertExpectations(t)
	})

	t.Run("InvalidTrigger", func(t *testing.T) {
		report, err := service.Record(ctx, "cron", time.Now(), time.Now(), outcomes)
		assert.ErrorIs(t, err, domain.ErrInvalidTrigger)
		assert.Nil(t, report)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo.On("SaveLatest", ctx, mock.AnythingOfType("*domain.RunReport")).Return(errors.New("redis down")).Once()

		report, err := service.Record(ctx, domain.TriggerAPI, time.Now(), time.Now(), outcomes)
		assert.Error(t, err)
		assert.Nil(t, report)
		mockRepo.AssertExpectations(t)
	})
}

func TestRunService_Latest(t *testing.T) {
	mockRepo := new(MockRunRepository)
	service := NewRunService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		expected := &domain.RunReport{ID: "run-1", Trigger: domain.TriggerScheduler}
		mockRepo.On("Latest", ctx).Return(expected, nil).Once()

		report, err := service.Latest(ctx)
		assert.NoError(t, err)
		assert.Equal(t, expected, report)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NoRunYet", func(t *testing.T) {
		mockRepo.On("Latest", ctx).Return(nil, nil).Once()

		report, err := service.Latest(ctx)
		assert.NoError(t, err)
		assert.Nil(t, report)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo.On("Latest", ctx).Return(nil, errors.New("redis down")).Once()

		report, err := service.Latest(ctx)
		assert.Error(t, err)
		assert.Nil(t, report)
		mockRepo.AssertExpectations(t)
	})
}

func TestRunService_ClearLatest(t *testing.T) {
	mockRepo := new(MockRunRepository)
	service := NewRunService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo.On("ClearLatest", ctx).Return(nil).Once()

		err := service.ClearLatest(ctx)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo.On("ClearLatest", ctx).Return(errors.New("redis down")).Once()

		err := service.ClearLatest(ctx)
		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}
