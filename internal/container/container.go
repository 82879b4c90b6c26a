package container

import (
	"net/http"

	"go-pattern-analyzer/internal/config"
	"go-pattern-analyzer/internal/observer"
	"go-pattern-analyzer/internal/repository"
	"go-pattern-analyzer/internal/service"
	"go-pattern-analyzer/internal/storage"
	"go-pattern-analyzer/internal/transport"
	"go-pattern-analyzer/internal/vision"
	"go-pattern-analyzer/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config    *config.Config
	imagePrep storage.ImagePrep
	invoker   *vision.RetryingInvoker
	repo      repository.AnalysisRepository
	service   service.PatternAnalysisService
	handler   http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Build dependency graph
	imagePrep := storage.NewHTTPImagePrep(cfg.ImageFetchTimeout, cfg.MaxRequestBodySize)
	client := vision.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model, cfg.ModelTimeout)
	invoker := vision.NewRetryingInvoker(client, cfg.MaxRetries)
	repo := repository.NewMemoryAnalysisRepository()

	notifier := observer.NewNotifier()
	notifier.Subscribe(observer.NewLoggingObserver())

	thresholds := validation.DefaultThresholds()
	thresholds.MinPatternConfidence = cfg.MinPatternConfidence

	analysisService := service.NewPatternAnalysisService(invoker, repo, notifier, thresholds)
	handler := transport.NewHandler(analysisService, imagePrep, cfg)

	return &Container{
		config:    cfg,
		imagePrep: imagePrep,
		invoker:   invoker,
		repo:      repo,
		service:   analysisService,
		handler:   handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
