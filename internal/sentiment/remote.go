package sentiment

import (
	"context"
	"log/slog"

	"github.com/spacesedan/feedbackflow/internal/models"
)

// SentimentClassifier is the remote inference surface the adapter needs.
type SentimentClassifier interface {
	HasCredential() bool
	ClassifySentiment(ctx context.Context, text string) ([]models.LabelScore, error)
	ClassifyEmotions(ctx context.Context, text string) ([]models.LabelScore, error)
}

// RemoteAdapter wraps the hosted sentiment classifier. The emotion breakdown
// is fetched on the side and never affects the sentiment outcome.
type RemoteAdapter struct {
	client SentimentClassifier
}

func NewRemoteAdapter(client SentimentClassifier) *RemoteAdapter {
	return &RemoteAdapter{client: client}
}

func (r *RemoteAdapter) Method() models.Method {
	return models.MethodRemoteClassifier
}

func (r *RemoteAdapter) Analyze(ctx context.Context, text string) (models.SingleSentiment, bool) {
	if r.client == nil || !r.client.HasCredential() {
		return models.SingleSentiment{}, false
	}

	scores, err := r.client.ClassifySentiment(ctx, text)
	if err != nil {
		slog.Warn("[RemoteAdapter] Sentiment classification failed",
			slog.String("error", err.Error()))
		return models.SingleSentiment{}, false
	}
	if len(scores) == 0 {
		slog.Warn("[RemoteAdapter] Sentiment classification returned no labels")
		return models.SingleSentiment{}, false
	}

	top := scores[0]
	result := models.SingleSentiment{
		Method: models.MethodRemoteClassifier,
		Label:  models.NormalizeLabel(top.Label),
		Score:  models.Clamp01(top.Score),
	}

	emotions, err := r.client.ClassifyEmotions(ctx, text)
	if err != nil {
		slog.Debug("[RemoteAdapter] Emotion breakdown unavailable",
			slog.String("error", err.Error()))
	} else {
		for i := range emotions {
			emotions[i].Score = models.Clamp01(emotions[i].Score)
		}
		result.Emotions = emotions
	}

	return result, true
}
