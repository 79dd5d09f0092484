package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/utils"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient generates prompts through any OpenAI compatible chat
// completions endpoint.
type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(utils.NewHTTPClient(timeout)),
		// GeneratePrompt owns the retry policy
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (o *OpenAIClient) Generate(ctx context.Context, instruction string) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(instruction),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", classifyStatus(&ProviderError{
				Provider:   "OpenAI",
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Message,
			})
		}
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return FallbackGeneratedPrompt, nil
	}
	return completion.Choices[0].Message.Content, nil
}
