package topics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spacesedan/feedbackflow/internal/models"
)

const (
	TOP_KEYWORDS       = 10
	MIN_KEYWORD_LENGTH = 3
)

var nonAlphaPattern = regexp.MustCompile(`[^a-zA-Z\s]`)

// ExtractKeywords ranks the meaningful words of text by frequency. Ties keep
// the order in which the words first appear.
func ExtractKeywords(text string, topN int) []models.Keyword {
	cleaned := nonAlphaPattern.ReplaceAllString(strings.ToLower(text), "")

	var meaningful []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) < MIN_KEYWORD_LENGTH || IsStopWord(word) {
			continue
		}
		meaningful = append(meaningful, word)
	}

	counts := make(map[string]int, len(meaningful))
	var order []string
	for _, word := range meaningful {
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if topN >= 0 && len(order) > topN {
		order = order[:topN]
	}

	keywords := make([]models.Keyword, 0, len(order))
	for _, word := range order {
		keywords = append(keywords, models.Keyword{
			Word:      word,
			Frequency: counts[word],
			Relevance: models.Clamp01(float64(counts[word]) / float64(len(meaningful))),
		})
	}
	return keywords
}
