package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-pattern-analyzer/pkg/models"
)

// MemoryAnalysisRepository is the in-process AnalysisRepository used by the
// service. Results are kept newest-last in insertion order.
type MemoryAnalysisRepository struct {
	mu      sync.RWMutex
	results map[string]*models.AnalysisResult
	order   []string
}

// NewMemoryAnalysisRepository creates an empty in-memory repository
func NewMemoryAnalysisRepository() *MemoryAnalysisRepository {
	return &MemoryAnalysisRepository{
		results: make(map[string]*models.AnalysisResult),
	}
}

// Save stores a copy of the result, assigning an ID and timestamp if missing
func (r *MemoryAnalysisRepository) Save(_ context.Context, result *models.AnalysisResult) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now().UTC()
	}

	stored := *result

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.results[stored.ID]; !exists {
		r.order = append(r.order, stored.ID)
	}
	r.results[stored.ID] = &stored
	return nil
}

// Get retrieves a stored analysis result by ID
func (r *MemoryAnalysisRepository) Get(_ context.Context, id string) (*models.AnalysisResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.results[id]
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	copied := *result
	return &copied, nil
}

// History retrieves up to limit analyses, newest first
func (r *MemoryAnalysisRepository) History(_ context.Context, limit int) ([]*models.AnalysisResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.order) {
		limit = len(r.order)
	}
	out := make([]*models.AnalysisResult, 0, limit)
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		copied := *r.results[r.order[i]]
		out = append(out, &copied)
	}
	return out, nil
}
