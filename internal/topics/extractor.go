package topics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/feedbackflow/internal/models"
)

const (
	METHOD_KEYWORD_FREQUENCY = "keyword_frequency"
	METHOD_CATEGORY_MATCHING = "category_matching"
	METHOD_NOUN_PHRASES      = "noun_phrases"
	METHOD_HUGGINGFACE       = "huggingface"
)

type PhraseExtractor interface {
	Extract(text string) ([]string, error)
}

// Extractor runs every topic strategy on a text. A failing strategy only
// loses its own fields.
type Extractor struct {
	phrases PhraseExtractor
	remote  *RemoteClassifier
}

func NewExtractor(phrases PhraseExtractor, remote *RemoteClassifier) *Extractor {
	return &Extractor{phrases: phrases, remote: remote}
}

func (e *Extractor) AnalyzeTopics(ctx context.Context, text string) models.TopicResult {
	slog.Debug("[TopicExtractor] Extracting topics", slog.Int("length", len(text)))

	result := models.TopicResult{
		MethodsUsed: []string{},
		Success:     true,
	}

	if runStrategy(METHOD_KEYWORD_FREQUENCY, func() error {
		result.Keywords = ExtractKeywords(text, TOP_KEYWORDS)
		return nil
	}) {
		result.MethodsUsed = append(result.MethodsUsed, METHOD_KEYWORD_FREQUENCY)
	}

	if runStrategy(METHOD_CATEGORY_MATCHING, func() error {
		result.Categories = MatchCategories(text)
		return nil
	}) {
		result.MethodsUsed = append(result.MethodsUsed, METHOD_CATEGORY_MATCHING)
	}

	if e.phrases != nil && runStrategy(METHOD_NOUN_PHRASES, func() error {
		phrases, err := e.phrases.Extract(text)
		if err != nil {
			return err
		}
		result.NounPhrases = phrases
		return nil
	}) {
		result.MethodsUsed = append(result.MethodsUsed, METHOD_NOUN_PHRASES)
	}

	if topics, ok := e.remote.Classify(ctx, text); ok {
		result.RemoteTopics = topics
		result.MethodsUsed = append(result.MethodsUsed, METHOD_HUGGINGFACE)
	}

	result.Summary = BuildSummary(result.Categories, result.RemoteTopics)
	return result
}

func (e *Extractor) BatchAnalyze(ctx context.Context, texts []string) []models.TopicResult {
	slog.Info("[TopicExtractor] Batch analyzing topics", slog.Int("count", len(texts)))

	results := make([]models.TopicResult, 0, len(texts))
	for i, text := range texts {
		slog.Info("[TopicExtractor] Progress", slog.String("progress", fmt.Sprintf("%d/%d", i+1, len(texts))))
		results = append(results, e.AnalyzeTopics(ctx, text))
	}
	return results
}

// runStrategy reports whether fn completed; errors and panics are logged.
func runStrategy(name string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[TopicExtractor] Strategy panicked and was recovered",
				slog.String("strategy", name),
				slog.Any("panic", r))
			ok = false
		}
	}()

	if err := fn(); err != nil {
		slog.Warn("[TopicExtractor] Strategy failed",
			slog.String("strategy", name),
			slog.String("error", err.Error()))
		return false
	}
	return true
}
