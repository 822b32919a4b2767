package models

import "time"

type TopicTally struct {
	Category   Category `json:"-"`
	TotalScore int      `json:"total_score"`
	Mentions   int      `json:"mentions"`
}

// TopicAnalysis keeps categories in the order they first appeared in a batch.
type TopicAnalysis []TopicTally

func (t TopicAnalysis) MarshalJSON() ([]byte, error) {
	keys := make([]string, len(t))
	values := make([]any, len(t))
	for i, tally := range t {
		keys[i] = string(tally.Category)
		values[i] = tally
	}
	return marshalOrderedObject(keys, values)
}

type Statistics struct {
	TotalAnalyzed      int `json:"total_analyzed"`
	SuccessfulAnalysis int `json:"successful_analysis"`
	PositiveFeedback   int `json:"positive_feedback"`
	NegativeFeedback   int `json:"negative_feedback"`
	NeutralFeedback    int `json:"neutral_feedback"`
}

type BatchReport struct {
	SentimentDistribution map[Label]int `json:"sentiment_distribution"`
	TopicAnalysis         TopicAnalysis `json:"topic_analysis"`
	Statistics            Statistics    `json:"statistics"`
	NegativePercentage    float64       `json:"negative_percentage"`
	Recommendations       []string      `json:"recommendations"`
	NoData                bool          `json:"no_data,omitempty"`
}

// BatchResult is the persisted report envelope for one batch run.
type BatchResult struct {
	BatchID           string           `json:"batch_id"`
	TotalFeedback     int              `json:"total_feedback"`
	IndividualResults []AnalysisRecord `json:"individual_results"`
	BatchReport       BatchReport      `json:"batch_report"`
	Timestamp         time.Time        `json:"timestamp"`
}

type DateRange struct {
	FirstAnalysis time.Time `json:"first_analysis"`
	LastAnalysis  time.Time `json:"last_analysis"`
}

// SummaryStats describes every analysis an agent has performed so far.
type SummaryStats struct {
	Message            string           `json:"message,omitempty"`
	TotalAnalyses      int              `json:"total_analyses"`
	DateRange          *DateRange       `json:"date_range,omitempty"`
	SentimentBreakdown map[Label]int    `json:"sentiment_breakdown,omitempty"`
	MostCommonTopics   map[Category]int `json:"most_common_topics,omitempty"`
}
