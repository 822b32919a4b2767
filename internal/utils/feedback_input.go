package utils

import (
	"strings"

	"github.com/spacesedan/feedbackflow/internal/models"
)

// TextsToFeedbackItems wraps plain texts as feedback items without metadata,
// skipping blank entries.
func TextsToFeedbackItems(texts []string) []models.FeedbackItem {
	items := make([]models.FeedbackItem, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		items = append(items, models.FeedbackItem{Feedback: text, Metadata: models.Metadata{}})
	}
	return items
}

func FeedbackTexts(items []models.FeedbackItem) []string {
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Feedback
	}
	return texts
}
