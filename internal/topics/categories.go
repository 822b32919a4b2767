package topics

import (
	"strings"

	"github.com/spacesedan/feedbackflow/internal/models"
)

// CategoryKeywords is the hand-maintained keyword list for every category.
var CategoryKeywords = map[models.Category][]string{
	models.CategoryQuality:         {"quality", "build", "material", "durable", "cheap", "flimsy", "solid", "sturdy"},
	models.CategoryUsability:       {"easy", "difficult", "user-friendly", "confusing", "intuitive", "complicated"},
	models.CategoryPerformance:     {"fast", "slow", "speed", "performance", "lag", "smooth", "responsive"},
	models.CategoryDesign:          {"design", "appearance", "look", "style", "color", "beautiful", "ugly"},
	models.CategoryPrice:           {"price", "cost", "expensive", "cheap", "value", "money", "budget"},
	models.CategoryCustomerService: {"service", "support", "help", "staff", "representative", "response"},
	models.CategoryShipping:        {"shipping", "delivery", "packaging", "arrived", "package", "box"},
	models.CategoryFeatures:        {"feature", "function", "capability", "option", "settings", "customization"},
}

// MatchCategories scores every category by counting substring occurrences
// of its keywords in the lower-cased text. Categories without hits are left
// out.
func MatchCategories(text string) models.CategoryScores {
	lower := strings.ToLower(text)
	wordCount := len(strings.Fields(text))

	scores := models.CategoryScores{}
	for _, category := range models.Categories {
		score := 0
		var matched []string

		for _, keyword := range CategoryKeywords[category] {
			count := strings.Count(lower, keyword)
			score += count
			for i := 0; i < count; i++ {
				matched = append(matched, keyword)
			}
		}

		if score == 0 {
			continue
		}

		scores = append(scores, models.CategoryScore{
			Category:        category,
			Score:           score,
			MatchedKeywords: matched,
			Relevance:       models.Clamp01(float64(score) / float64(wordCount)),
		})
	}
	return scores
}
