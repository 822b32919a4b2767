package models

// LLMSentimentResponse is the JSON object the chat model is asked to return.
type LLMSentimentResponse struct {
	Label     string  `json:"label"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning,omitempty"`
}
