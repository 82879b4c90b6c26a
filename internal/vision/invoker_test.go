package vision

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	apperrors "go-pattern-analyzer/internal/errors"
)

// scriptedClient returns the queued outcomes in order, then repeats the last
type scriptedClient struct {
	outcomes []scriptedOutcome
	calls    int
}

type scriptedOutcome struct {
	text string
	err  error
}

func (c *scriptedClient) Invoke(_ context.Context, _ Request) (string, error) {
	i := c.calls
	if i >= len(c.outcomes) {
		i = len(c.outcomes) - 1
	}
	c.calls++
	outcome := c.outcomes[i]
	return outcome.text, outcome.err
}

func (c *scriptedClient) Model() string { return "test-model" }

func TestRetryingInvoker_SucceedsAfterTransientFailures(t *testing.T) {
	client := &scriptedClient{outcomes: []scriptedOutcome{
		{err: errors.New("connection reset")},
		{err: &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable}},
		{text: `{"patterns": []}`},
	}}
	invoker := NewRetryingInvokerWithDelay(client, 3, 0)

	raw, err := invoker.Invoke(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Expected success after transient failures, got %v", err)
	}
	if raw != `{"patterns": []}` {
		t.Errorf("Expected scripted response text, got %q", raw)
	}
	if client.calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", client.calls)
	}
}

func TestRetryingInvoker_AuthFailureNotRetried(t *testing.T) {
	client := &scriptedClient{outcomes: []scriptedOutcome{
		{err: &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}},
	}}
	invoker := NewRetryingInvokerWithDelay(client, 3, 0)

	_, err := invoker.Invoke(context.Background(), Request{})
	if !apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
		t.Fatalf("Expected configuration error, got %v", err)
	}
	if client.calls != 1 {
		t.Errorf("Expected exactly 1 attempt for auth failure, got %d", client.calls)
	}
}

func TestRetryingInvoker_MissingCredentialNotRetried(t *testing.T) {
	client := &scriptedClient{outcomes: []scriptedOutcome{
		{err: apperrors.NewConfigurationError("OPENAI_API_KEY is not set", nil)},
	}}
	invoker := NewRetryingInvokerWithDelay(client, 3, 0)

	_, err := invoker.Invoke(context.Background(), Request{})
	if !apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
		t.Fatalf("Expected configuration error, got %v", err)
	}
	if client.calls != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", client.calls)
	}
}

func TestRetryingInvoker_ExhaustionSurfacesModelUnavailable(t *testing.T) {
	underlying := fmt.Errorf("upstream melted")
	client := &scriptedClient{outcomes: []scriptedOutcome{{err: underlying}}}
	invoker := NewRetryingInvokerWithDelay(client, 2, 0)

	_, err := invoker.Invoke(context.Background(), Request{})
	if !apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable) {
		t.Fatalf("Expected model_unavailable error, got %v", err)
	}
	if client.calls != 3 {
		t.Errorf("Expected maxRetries+1 = 3 attempts, got %d", client.calls)
	}
	if !errors.Is(err, underlying) {
		t.Error("Expected the last underlying error to be wrapped")
	}
}

func TestRetryingInvoker_NonAuthClientErrorNotRetried(t *testing.T) {
	client := &scriptedClient{outcomes: []scriptedOutcome{
		{err: &openai.APIError{HTTPStatusCode: http.StatusBadRequest}},
	}}
	invoker := NewRetryingInvokerWithDelay(client, 3, 0)

	_, err := invoker.Invoke(context.Background(), Request{})
	if !apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable) {
		t.Fatalf("Expected model_unavailable for a 400, got %v", err)
	}
	if client.calls != 1 {
		t.Errorf("Expected no retries for a 400, got %d attempts", client.calls)
	}
}

func TestRetryingInvoker_RateLimitIsRetried(t *testing.T) {
	client := &scriptedClient{outcomes: []scriptedOutcome{
		{err: &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}},
		{text: "ok"},
	}}
	invoker := NewRetryingInvokerWithDelay(client, 3, 0)

	raw, err := invoker.Invoke(context.Background(), Request{})
	if err != nil || raw != "ok" {
		t.Fatalf("Expected 429 to be retried to success, got %q, %v", raw, err)
	}
	if client.calls != 2 {
		t.Errorf("Expected 2 attempts, got %d", client.calls)
	}
}

func TestRetryingInvoker_CanceledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &scriptedClient{outcomes: []scriptedOutcome{
		{err: errors.New("transient")},
	}}
	// A non-zero delay makes the backoff wait observe the dead context.
	invoker := NewRetryingInvokerWithDelay(client, 3, 10*time.Millisecond)

	_, err := invoker.Invoke(ctx, Request{})
	if !apperrors.IsType(err, apperrors.ErrorTypeTimeout) {
		t.Fatalf("Expected timeout error for canceled context, got %v", err)
	}
	if client.calls != 1 {
		t.Errorf("Expected retry loop to stop on cancellation, got %d attempts", client.calls)
	}
}
