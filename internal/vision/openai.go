package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	apperrors "go-pattern-analyzer/internal/errors"
)

const maxTokens = 2048

// OpenAIClient invokes an OpenAI vision-capable chat model with the image
// embedded as a base64 data URL and a JSON-object response format.
type OpenAIClient struct {
	api     *openai.Client
	apiKey  string
	model   string
	timeout time.Duration
}

// NewOpenAIClient creates a vision client. An empty API key is tolerated
// here and reported as a configuration error on first use, so the service
// can still boot for health checks.
func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		api:     openai.NewClient(apiKey),
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
	}
}

// Model returns the model name requests are sent to
func (c *OpenAIClient) Model() string {
	return c.model
}

// Invoke performs a single model call. Errors are returned raw; classifying
// them into retryable and fatal is the invoker's job.
func (c *OpenAIClient) Invoke(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", apperrors.NewConfigurationError("OPENAI_API_KEY is not set", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	imageURL := fmt.Sprintf("data:image/jpeg;base64,%s",
		base64.StdEncoding.EncodeToString(req.ImageBytes))

	userPrompt := req.UserPrompt
	if req.SchemaHint != "" {
		userPrompt = userPrompt + "\n\n" + req.SchemaHint
	}

	completion := openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: userPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}
	// Reasoning models (o1/o3/o4/gpt-5*) take MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(c.model, "o1") || strings.HasPrefix(c.model, "o3") ||
		strings.HasPrefix(c.model, "o4") || strings.HasPrefix(c.model, "gpt-5") {
		completion.MaxCompletionTokens = maxTokens
	} else {
		completion.MaxTokens = maxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, completion)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
