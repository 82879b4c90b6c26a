package vision

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	apperrors "go-pattern-analyzer/internal/errors"
	"go-pattern-analyzer/internal/logger"
)

// RetryingInvoker wraps a single model call with bounded retry and
// exponential backoff. It keeps no state across attempts, so repeated calls
// are safe from the caller's perspective.
type RetryingInvoker struct {
	client     Client
	maxRetries int
	baseDelay  time.Duration
}

// NewRetryingInvoker creates an invoker with a one-second backoff base
func NewRetryingInvoker(client Client, maxRetries int) *RetryingInvoker {
	return NewRetryingInvokerWithDelay(client, maxRetries, time.Second)
}

// NewRetryingInvokerWithDelay creates an invoker with a custom backoff base
func NewRetryingInvokerWithDelay(client Client, maxRetries int, baseDelay time.Duration) *RetryingInvoker {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryingInvoker{
		client:     client,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// Model returns the underlying client's model name
func (i *RetryingInvoker) Model() string {
	return i.client.Model()
}

// Invoke calls the model, retrying transient failures (network errors,
// timeouts, rate limits, non-auth 5xx) with delay 2^k * base before retry k,
// plus a little jitter. Authentication and configuration failures fail
// immediately. Exhausting the retries surfaces ModelUnavailable wrapping the
// last underlying error.
func (i *RetryingInvoker) Invoke(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= i.maxRetries; attempt++ {
		if attempt > 0 {
			if err := i.wait(ctx, attempt-1); err != nil {
				return "", err
			}
		}

		raw, err := i.client.Invoke(ctx, req)
		if err == nil {
			return raw, nil
		}

		if fatal := classifyFatal(err); fatal != nil {
			return "", fatal
		}
		lastErr = err
		logger.WithComponent("model_invoker").WithError(err).WithFields(logrus.Fields{
			"attempt":     attempt + 1,
			"max_retries": i.maxRetries,
			"model":       i.client.Model(),
		}).Warn("Model invocation failed, will retry")
	}
	return "", apperrors.NewModelUnavailableError(
		fmt.Sprintf("model unavailable after %d attempts", i.maxRetries+1), lastErr)
}

func (i *RetryingInvoker) wait(ctx context.Context, k int) error {
	delay := i.baseDelay << uint(k)
	if delay > 0 {
		delay += time.Duration(rand.Int63n(int64(250 * time.Millisecond)))
	}
	select {
	case <-ctx.Done():
		return apperrors.NewTimeoutError("analysis canceled while waiting to retry", ctx.Err())
	case <-time.After(delay):
		return nil
	}
}

// classifyFatal returns a terminal error for failures that must not be
// retried, or nil when the failure is transient.
func classifyFatal(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeConfiguration {
		return appErr
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.NewTimeoutError("analysis canceled", err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized ||
			apiErr.HTTPStatusCode == http.StatusForbidden:
			return apperrors.NewConfigurationError("model rejected the configured credentials", err)
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return nil // transient
		case apiErr.HTTPStatusCode >= 500:
			return nil // transient
		case apiErr.HTTPStatusCode >= 400:
			// Malformed request, unknown model, etc. Retrying cannot help.
			return apperrors.NewModelUnavailableError("model rejected the request", err)
		}
	}
	// Network errors, timeouts, unexpected transport failures: transient.
	return nil
}
