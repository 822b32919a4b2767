package topics

import (
	"sort"

	"github.com/spacesedan/feedbackflow/internal/models"
)

const (
	SOURCE_CATEGORY_MATCHING = "category_matching"
	SOURCE_HUGGINGFACE       = "huggingface"

	// category relevance is scaled up so a single hit in a short sentence
	// is comparable to a model confidence
	CATEGORY_CONFIDENCE_SCALE = 10
)

// BuildSummary merges category matches and zero-shot topics into one list
// ranked by confidence. Equal confidences keep category matches first, each
// group in input order.
func BuildSummary(categories models.CategoryScores, remote []models.RemoteTopic) []models.TopicSummaryEntry {
	summary := make([]models.TopicSummaryEntry, 0, len(categories)+len(remote))

	for _, c := range categories {
		summary = append(summary, models.TopicSummaryEntry{
			Topic:      string(c.Category),
			Source:     SOURCE_CATEGORY_MATCHING,
			Confidence: models.Clamp01(c.Relevance * CATEGORY_CONFIDENCE_SCALE),
		})
	}
	for _, r := range remote {
		summary = append(summary, models.TopicSummaryEntry{
			Topic:      r.Topic,
			Source:     SOURCE_HUGGINGFACE,
			Confidence: models.Clamp01(r.Confidence),
		})
	}

	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Confidence > summary[j].Confidence
	})
	return summary
}
