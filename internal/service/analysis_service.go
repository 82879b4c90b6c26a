package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "go-pattern-analyzer/internal/errors"
	"go-pattern-analyzer/internal/logger"
	"go-pattern-analyzer/internal/observer"
	"go-pattern-analyzer/internal/parser"
	"go-pattern-analyzer/internal/repository"
	"go-pattern-analyzer/internal/storage"
	"go-pattern-analyzer/internal/vision"
	"go-pattern-analyzer/pkg/models"
	"go-pattern-analyzer/pkg/validation"
)

// Invoker is the model-invocation boundary the service depends on. The
// production implementation is vision.RetryingInvoker.
type Invoker interface {
	Invoke(ctx context.Context, req vision.Request) (string, error)
	Model() string
}

// PatternAnalysisService is the sole entry point the transport layer
// consumes
type PatternAnalysisService interface {
	// AnalyzeImage runs the full pipeline over one prepared image
	AnalyzeImage(ctx context.Context, img *storage.PreparedImage) (*models.AnalysisResult, error)

	// GetAnalysis retrieves a previously stored result
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisResult, error)

	// History retrieves recent results, newest first
	History(ctx context.Context, limit int) ([]*models.AnalysisResult, error)
}

// patternAnalysisService wires the pipeline stages together. Every stage is
// a pure transformation over its own input; the only blocking operation is
// the model round trip inside the invoker.
type patternAnalysisService struct {
	invoker     Invoker
	repo        repository.AnalysisRepository
	notifier    *observer.Notifier
	contentArea *validation.ContentAreaValidator
	records     *validation.PatternRecordValidator
	gate        *validation.QualityGate
	insights    *validation.InsightsValidator
}

// NewPatternAnalysisService creates the pipeline service
func NewPatternAnalysisService(
	invoker Invoker,
	repo repository.AnalysisRepository,
	notifier *observer.Notifier,
	thresholds validation.Thresholds,
) PatternAnalysisService {
	return &patternAnalysisService{
		invoker:     invoker,
		repo:        repo,
		notifier:    notifier,
		contentArea: validation.NewContentAreaValidator(),
		records:     validation.NewPatternRecordValidatorWithThresholds(thresholds),
		gate:        validation.NewQualityGateWithThresholds(thresholds),
		insights:    validation.NewInsightsValidatorWithThresholds(thresholds),
	}
}

// AnalyzeImage invokes the model and repairs its reply into a guaranteed
// AnalysisResult. Only the unrecoverable conditions (invoker failures, text
// that is not JSON, a top-level shape with no patterns array) propagate as
// errors; every other deviation is repaired by the validators.
func (s *patternAnalysisService) AnalyzeImage(ctx context.Context, img *storage.PreparedImage) (*models.AnalysisResult, error) {
	start := time.Now()
	s.notifier.Notify(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Success:   true,
		Metadata: map[string]interface{}{
			"image_bytes":  len(img.Bytes),
			"image_width":  img.Width,
			"image_height": img.Height,
		},
	})

	raw, err := s.invoker.Invoke(ctx, vision.NewAnalysisRequest(img.Bytes))
	if err != nil {
		return nil, s.fail(ctx, start, err)
	}
	s.notifier.Notify(ctx, observer.AnalysisEvent{
		EventType:      observer.ModelResponded,
		Success:        true,
		ProcessingTime: time.Since(start),
		Metadata:       map[string]interface{}{"response_chars": len(raw)},
	})

	doc, err := parser.Parse(raw)
	if err != nil {
		return nil, s.fail(ctx, start, err)
	}

	rawPatterns, ok := doc["patterns"].([]interface{})
	if !ok {
		return nil, s.fail(ctx, start,
			apperrors.NewInvalidStructureError(`"patterns" is missing or not an array`))
	}

	contentArea := s.contentArea.Validate(doc["contentArea"])

	patterns := make([]models.PatternRecord, 0, len(rawPatterns))
	for _, rawPattern := range rawPatterns {
		patterns = append(patterns, s.records.Validate(rawPattern))
	}

	kept, quality := s.gate.Apply(patterns)
	insights := s.insights.Validate(doc["insights"], kept)

	result := &models.AnalysisResult{
		ContentArea: contentArea,
		Patterns:    kept,
		Insights:    insights,
		Metadata: models.AnalysisMetadata{
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			ModelVersion:     s.invoker.Model(),
			AnalysisQuality:  quality,
		},
	}

	if err := s.repo.Save(ctx, result); err != nil {
		// Persistence is best-effort; the caller still gets the result.
		logger.WithComponent("analysis_pipeline").WithError(err).Warn("Failed to store analysis result")
	}

	s.notifier.Notify(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		AnalysisID:     result.ID,
		Success:        true,
		ProcessingTime: time.Since(start),
		Metadata: map[string]interface{}{
			"patterns": len(result.Patterns),
			"quality":  string(quality),
		},
	})
	logger.WithComponent("analysis_pipeline").WithFields(logrus.Fields{
		"analysis_id":        result.ID,
		"patterns":           len(result.Patterns),
		"quality":            string(quality),
		"processing_time_ms": result.Metadata.ProcessingTimeMs,
	}).Info("Pattern analysis completed")
	return result, nil
}

// GetAnalysis retrieves a stored result by ID
func (s *patternAnalysisService) GetAnalysis(ctx context.Context, id string) (*models.AnalysisResult, error) {
	result, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("analysis not found", err)
	}
	return result, nil
}

// History retrieves recent results
func (s *patternAnalysisService) History(ctx context.Context, limit int) ([]*models.AnalysisResult, error) {
	return s.repo.History(ctx, limit)
}

func (s *patternAnalysisService) fail(ctx context.Context, start time.Time, err error) error {
	s.notifier.Notify(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisFailed,
		Success:        false,
		ProcessingTime: time.Since(start),
		ErrorMessage:   err.Error(),
	})
	return err
}
