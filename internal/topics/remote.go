package topics

import (
	"context"
	"log/slog"

	"github.com/spacesedan/feedbackflow/internal/models"
)

const (
	REMOTE_MIN_CONFIDENCE = 0.1
	REMOTE_TOPIC_METHOD   = "huggingface_classification"
)

type ZeroShotClassifier interface {
	HasCredential() bool
	ZeroShotClassify(ctx context.Context, text string, labels []string) (models.ZeroShotResponse, error)
}

// RemoteClassifier scores text against the category vocabulary with a
// zero-shot model.
type RemoteClassifier struct {
	client ZeroShotClassifier
}

func NewRemoteClassifier(client ZeroShotClassifier) *RemoteClassifier {
	return &RemoteClassifier{client: client}
}

// Classify returns false when no credential is configured or the call
// failed.
func (r *RemoteClassifier) Classify(ctx context.Context, text string) ([]models.RemoteTopic, bool) {
	if r == nil || r.client == nil || !r.client.HasCredential() {
		return nil, false
	}

	resp, err := r.client.ZeroShotClassify(ctx, text, models.CategoryLabels())
	if err != nil {
		slog.Warn("[TopicExtractor] Zero-shot classification failed",
			slog.String("error", err.Error()))
		return nil, false
	}

	topics := []models.RemoteTopic{}
	for i, label := range resp.Labels {
		if i >= len(resp.Scores) {
			break
		}
		score := resp.Scores[i]
		if score <= REMOTE_MIN_CONFIDENCE {
			continue
		}
		if !models.IsCategory(label) {
			slog.Warn("[TopicExtractor] Zero-shot returned a label outside the vocabulary",
				slog.String("label", label))
			continue
		}
		topics = append(topics, models.RemoteTopic{
			Topic:      label,
			Confidence: models.Clamp01(score),
			Method:     REMOTE_TOPIC_METHOD,
		})
	}
	return topics, true
}
