package models

// Metadata is caller-supplied context for a feedback item (product id,
// rating, channel, ...). The pipeline never interprets it.
type Metadata map[string]any

// FeedbackItem is one piece of raw customer feedback.
type FeedbackItem struct {
	Feedback string   `json:"feedback"`
	Metadata Metadata `json:"metadata"`
}
