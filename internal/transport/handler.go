package transport

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-pattern-analyzer/internal/config"
	apperrors "go-pattern-analyzer/internal/errors"
	"go-pattern-analyzer/internal/logger"
	"go-pattern-analyzer/internal/service"
	"go-pattern-analyzer/internal/storage"
	"go-pattern-analyzer/pkg/validation"
)

type AnalysisRequest struct {
	URL         string `json:"url,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

func NewHandler(svc service.PatternAnalysisService, prep storage.ImagePrep, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.POST("/analyze", analyzePattern(svc, prep, cfg))
	r.GET("/analyses", listAnalyses(svc))
	r.GET("/analyses/:id", getAnalysis(svc))

	return r
}

func analyzePattern(svc service.PatternAnalysisService, prep storage.ImagePrep, cfg *config.Config) gin.HandlerFunc {
	sourceValidator := validation.NewSourceValidatorWithOptions(
		[]string{"http", "https"}, cfg.AllowedImageHosts)

	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing pattern analysis request")

		var req AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		img, err := prepareImage(ctx, prep, sourceValidator, req)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to prepare image", err)
			return
		}

		result, err := svc.AnalyzeImage(ctx, img)
		if err != nil {
			respondError(c, determineStatusCode(err), "analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"analysis_id":        result.ID,
			"patterns":           len(result.Patterns),
			"quality":            string(result.Metadata.AnalysisQuality),
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Pattern analysis request completed")

		c.JSON(http.StatusOK, result)
	}
}

// prepareImage resolves the request's image source: an inline base64 payload
// wins over a URL when both are present.
func prepareImage(ctx context.Context, prep storage.ImagePrep, sourceValidator *validation.SourceValidator, req AnalysisRequest) (*storage.PreparedImage, error) {
	if req.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return nil, apperrors.NewValidationError("image_base64 is not valid base64", err)
		}
		return prep.PrepareBytes(data)
	}
	if req.URL != "" {
		if err := sourceValidator.ValidateImageURL(req.URL); err != nil {
			return nil, err
		}
		return prep.Prepare(ctx, req.URL)
	}
	return nil, apperrors.NewValidationError("either url or image_base64 is required", nil)
}

func listAnalyses(svc service.PatternAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 0 {
			respondError(c, http.StatusBadRequest, "invalid limit",
				apperrors.NewValidationError("limit must be a non-negative integer", err))
			return
		}

		results, err := svc.History(c.Request.Context(), limit)
		if err != nil {
			respondError(c, determineStatusCode(err), "failed to list analyses", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"analyses": results, "count": len(results)})
	}
}

func getAnalysis(svc service.PatternAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.GetAnalysis(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "analysis not found", err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	details := ""
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		details = appErr.Details
	}

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
		Details: details,
	})
}
