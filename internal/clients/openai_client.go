package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spacesedan/feedbackflow/internal/models"
)

const llmSentimentPrompt = `
You classify the sentiment of customer product feedback.

Respond only with a valid JSON object. Do not include any additional text or commentary.

Fields:

- label: exactly one of POSITIVE, NEGATIVE or NEUTRAL.
- score: your confidence in the label, a number between 0 and 1.
- reasoning: one short sentence.

Expected JSON response format:
{"label": "NEGATIVE", "score": 0.92, "reasoning": "The customer reports a damaged product."}
`

// LLMClient talks to an OpenAI-compatible chat completion API (Groq by
// default).
type LLMClient struct {
	Client *openai.Client
	model  string
	hasKey bool
}

func NewLLMClient(apiKey, baseURL, model string, timeout time.Duration) *LLMClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{
		Timeout: timeout,
	}

	slog.Info("[LLMClient] Chat client initialized",
		slog.String("model", model),
		slog.Duration("timeout", timeout),
		slog.Bool("credential", apiKey != ""))

	return &LLMClient{
		Client: openai.NewClientWithConfig(config),
		model:  model,
		hasKey: apiKey != "",
	}
}

func (l *LLMClient) HasCredential() bool {
	return l != nil && l.hasKey
}

// ClassifySentiment asks the chat model for a label/score pair.
func (l *LLMClient) ClassifySentiment(ctx context.Context, text string) (models.LLMSentimentResponse, error) {
	var result models.LLMSentimentResponse
	if !l.HasCredential() {
		return result, ErrMissingCredential
	}

	start := time.Now()
	resp, err := l.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: l.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llmSentimentPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	})
	if err != nil {
		return result, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return result, ErrEmptyResponse
	}

	slog.Debug("[LLMClient] Chat completion finished",
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)),
		slog.Duration("elapsed", time.Since(start)))

	cleaned := CleanJSONResponse(resp.Choices[0].Message.Content)
	if cleaned == "" {
		return result, fmt.Errorf("%w: no JSON object in completion", ErrEmptyResponse)
	}
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal completion: %w", err)
	}
	return result, nil
}

// CleanJSONResponse strips markdown code fences and surrounding whitespace
// from a model completion. It returns "" when what remains is not a JSON
// object.
func CleanJSONResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	if !(strings.HasPrefix(cleaned, "{") && strings.HasSuffix(cleaned, "}")) {
		snippet := response
		if len(snippet) > 100 {
			snippet = snippet[:100] + "..."
		}
		slog.Error("[LLMClient] Response does not appear to be a JSON object after cleaning",
			slog.String("original_response_snippet", snippet))
		return ""
	}

	return cleaned
}

func (l *LLMClient) Name() string {
	return "llm"
}

// HealthCheck lists the provider's models, which needs a valid key but no
// completion tokens.
func (l *LLMClient) HealthCheck(ctx context.Context) error {
	if !l.HasCredential() {
		return ErrMissingCredential
	}
	if _, err := l.Client.ListModels(ctx); err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	return nil
}
