package adapters

import (
	"context"
	"sync"

	"price-tracker/internal/features/runs/domain"
)

// MemoryRunRepository implements ports.RunRepository in process memory.
// It backs deployments without Redis, where losing the latest report on
// restart is acceptable.
type MemoryRunRepository struct {
	mu     sync.RWMutex
	latest *domain.RunReport
}

// NewMemoryRunRepository creates a new MemoryRunRepository.
func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{}
}

// SaveLatest stores the report, replacing the previous one.
func (r *MemoryRunRepository) SaveLatest(ctx context.Context, report *domain.RunReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest = report
	return nil
}

// Latest retrieves the stored report. Returns nil, nil when no run has
// completed yet.
func (r *MemoryRunRepository) Latest(ctx context.Context) (*domain.RunReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest, nil
}

// ClearLatest removes the stored report.
func (r *MemoryRunRepository) ClearLatest(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest = nil
	return nil
}
