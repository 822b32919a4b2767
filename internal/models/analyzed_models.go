package models

import "time"

// AnalysisRecord is one feedback item together with everything the pipeline
// derived from it.
type AnalysisRecord struct {
	ID               int       `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	OriginalFeedback string    `json:"original_feedback"`
	Metadata         Metadata  `json:"metadata"`
	Analysis         Analysis  `json:"analysis"`
}

type Analysis struct {
	Sentiment SentimentResult `json:"sentiment,omitempty"`
	Topics    *TopicResult    `json:"topics,omitempty"`
	Insights  *Insight        `json:"insights,omitempty"`
	Error     string          `json:"error,omitempty"`
}
