package repository

import (
	"context"
	"errors"

	"go-pattern-analyzer/pkg/models"
)

var (
	// ErrAnalysisNotFound indicates the analysis result was not found
	ErrAnalysisNotFound = errors.New("analysis result not found")

	// ErrRepositoryUnavailable indicates the repository is unavailable
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)

// AnalysisRepository defines the interface for analysis result persistence.
// Durable backends live behind this boundary; the pipeline itself never
// depends on storage state.
type AnalysisRepository interface {
	// Save stores an analysis result, assigning an ID if it has none
	Save(ctx context.Context, result *models.AnalysisResult) error

	// Get retrieves a stored analysis result by ID
	Get(ctx context.Context, id string) (*models.AnalysisResult, error)

	// History retrieves the most recent analyses, newest first
	History(ctx context.Context, limit int) ([]*models.AnalysisResult, error)
}
