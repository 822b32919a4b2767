package models

import "sort"

// Category is one of the fixed product-feedback themes.
type Category string

const (
	CategoryQuality         Category = "quality"
	CategoryUsability       Category = "usability"
	CategoryPerformance     Category = "performance"
	CategoryDesign          Category = "design"
	CategoryPrice           Category = "price"
	CategoryCustomerService Category = "customer_service"
	CategoryShipping        Category = "shipping"
	CategoryFeatures        Category = "features"
)

// Categories is the category vocabulary in its canonical order. Category
// matching and zero-shot classification both use it.
var Categories = []Category{
	CategoryQuality,
	CategoryUsability,
	CategoryPerformance,
	CategoryDesign,
	CategoryPrice,
	CategoryCustomerService,
	CategoryShipping,
	CategoryFeatures,
}

// CategoryLabels returns the vocabulary as plain strings.
func CategoryLabels() []string {
	labels := make([]string, len(Categories))
	for i, c := range Categories {
		labels[i] = string(c)
	}
	return labels
}

// IsCategory reports whether s is part of the vocabulary.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

type Keyword struct {
	Word      string  `json:"word"`
	Frequency int     `json:"frequency"`
	Relevance float64 `json:"relevance"`
}

type CategoryScore struct {
	Category        Category `json:"-"`
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
	Relevance       float64  `json:"relevance"`
}

// CategoryScores holds the matched categories only, in vocabulary order.
type CategoryScores []CategoryScore

func (c CategoryScores) MarshalJSON() ([]byte, error) {
	keys := make([]string, len(c))
	values := make([]any, len(c))
	for i, score := range c {
		keys[i] = string(score.Category)
		values[i] = score
	}
	return marshalOrderedObject(keys, values)
}

func (c CategoryScores) Get(category Category) (CategoryScore, bool) {
	for _, score := range c {
		if score.Category == category {
			return score, true
		}
	}
	return CategoryScore{}, false
}

// Top returns up to n categories by descending score; ties keep their
// vocabulary order.
func (c CategoryScores) Top(n int) CategoryScores {
	ranked := make(CategoryScores, len(c))
	copy(ranked, c)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

type RemoteTopic struct {
	Topic      string  `json:"topic"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

type TopicSummaryEntry struct {
	Topic      string  `json:"topic"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
}

type TopicResult struct {
	Keywords     []Keyword           `json:"keywords"`
	Categories   CategoryScores      `json:"categories"`
	NounPhrases  []string            `json:"noun_phrases"`
	RemoteTopics []RemoteTopic       `json:"hf_topics,omitempty"`
	Summary      []TopicSummaryEntry `json:"summary"`
	MethodsUsed  []string            `json:"methods_used"`
	Success      bool                `json:"success"`
}
