package sentiment

import (
	"context"
	"log/slog"

	"github.com/spacesedan/feedbackflow/internal/models"
)

type LLMClassifier interface {
	HasCredential() bool
	ClassifySentiment(ctx context.Context, text string) (models.LLMSentimentResponse, error)
}

// LLMAdapter asks a chat model for the sentiment. It only runs when
// requested by name.
type LLMAdapter struct {
	client LLMClassifier
}

func NewLLMAdapter(client LLMClassifier) *LLMAdapter {
	return &LLMAdapter{client: client}
}

func (l *LLMAdapter) Method() models.Method {
	return models.MethodLLM
}

func (l *LLMAdapter) Analyze(ctx context.Context, text string) (models.SingleSentiment, bool) {
	if l.client == nil || !l.client.HasCredential() {
		return models.SingleSentiment{}, false
	}

	resp, err := l.client.ClassifySentiment(ctx, text)
	if err != nil {
		slog.Warn("[LLMAdapter] Sentiment classification failed",
			slog.String("error", err.Error()))
		return models.SingleSentiment{}, false
	}

	label := models.NormalizeLabel(resp.Label)
	switch label {
	case models.LabelPositive, models.LabelNegative, models.LabelNeutral:
	default:
		slog.Warn("[LLMAdapter] Model returned an unknown label",
			slog.String("label", resp.Label))
		return models.SingleSentiment{}, false
	}

	return models.SingleSentiment{
		Method: models.MethodLLM,
		Label:  label,
		Score:  models.Clamp01(resp.Score),
	}, true
}
