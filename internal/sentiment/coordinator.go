package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spacesedan/feedbackflow/internal/models"
)

var ErrAllMethodsFailed = errors.New("all sentiment methods failed")

// Adapter is one sentiment strategy. Analyze returns false when the
// strategy is unavailable or failed.
type Adapter interface {
	Method() models.Method
	Analyze(ctx context.Context, text string) (models.SingleSentiment, bool)
}

// autoOrder is the preference order used for MethodAuto. Every strategy in
// it runs, results are not short-circuited.
var autoOrder = []models.Method{
	models.MethodRemoteClassifier,
	models.MethodLexiconHeuristic,
}

type Coordinator struct {
	adapters map[models.Method]Adapter
}

func NewCoordinator(adapters ...Adapter) *Coordinator {
	c := &Coordinator{adapters: make(map[models.Method]Adapter, len(adapters))}
	for _, a := range adapters {
		if a != nil {
			c.adapters[a.Method()] = a
		}
	}
	return c
}

func (c *Coordinator) plan(preferred models.Method) []models.Method {
	switch preferred {
	case models.MethodAuto, "":
		return autoOrder
	case models.MethodRemoteClassifier, models.MethodLexiconHeuristic, models.MethodLLM:
		return []models.Method{preferred}
	default:
		slog.Warn("[SentimentCoordinator] Unknown method, falling back to auto",
			slog.String("method", string(preferred)))
		return autoOrder
	}
}

// AnalyzeSentiment runs the strategies for preferred in order. One answer is
// returned as is, several are combined with the first as primary, none
// yields a FailedSentiment.
func (c *Coordinator) AnalyzeSentiment(ctx context.Context, text string, preferred models.Method) models.SentimentResult {
	slog.Debug("[SentimentCoordinator] Analyzing sentiment",
		slog.String("preview", preview(text, 50)),
		slog.String("method", string(preferred)))

	var results []models.SingleSentiment
	for _, method := range c.plan(preferred) {
		adapter, ok := c.adapters[method]
		if !ok {
			continue
		}
		if result, ok := runAdapter(ctx, adapter, text); ok {
			results = append(results, result)
		}
	}

	switch len(results) {
	case 0:
		slog.Error("[SentimentCoordinator] No sentiment strategy produced a result")
		return models.FailedSentiment{Error: ErrAllMethodsFailed.Error()}
	case 1:
		return results[0]
	default:
		return models.NewCombinedSentiment(results)
	}
}

// BatchAnalyze analyzes texts one after another with the auto plan.
func (c *Coordinator) BatchAnalyze(ctx context.Context, texts []string) []models.SentimentResult {
	slog.Info("[SentimentCoordinator] Batch analyzing texts", slog.Int("count", len(texts)))

	results := make([]models.SentimentResult, 0, len(texts))
	for i, text := range texts {
		slog.Info("[SentimentCoordinator] Progress", slog.String("progress", fmt.Sprintf("%d/%d", i+1, len(texts))))
		results = append(results, c.AnalyzeSentiment(ctx, text, models.MethodAuto))
	}
	return results
}

func runAdapter(ctx context.Context, adapter Adapter, text string) (result models.SingleSentiment, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[SentimentCoordinator] Strategy panicked and was recovered",
				slog.String("method", string(adapter.Method())),
				slog.Any("panic", r))
			result, ok = models.SingleSentiment{}, false
		}
	}()
	return adapter.Analyze(ctx, text)
}

func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) > n {
		return string(runes[:n]) + "..."
	}
	return text
}
