package insights

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/feedbackflow/internal/models"
)

const TOP_CATEGORIES = 3

const (
	ACTION_NEGATIVE         = "Immediate attention required - negative customer feedback"
	ACTION_POSITIVE         = "Maintain current quality - positive feedback"
	ACTION_QUALITY_CONTROL  = "Review product quality control processes"
	ACTION_PRICING          = "Evaluate pricing strategy"
	ACTION_CUSTOMER_SERVICE = "Review customer service procedures"
)

// Generate derives priority, findings and action items for one feedback
// item from its sentiment and topic results.
func Generate(sentiment models.SentimentResult, topics *models.TopicResult, text string) (insight models.Insight) {
	insight = models.Insight{
		ActionItems:   []string{},
		PriorityLevel: models.PriorityMedium,
		KeyFindings:   []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("[InsightGenerator] Recovered while generating insights",
				slog.Any("panic", r),
				slog.Int("text_length", len(text)))
			insight.Error = fmt.Sprintf("Error generating insights: %v", r)
		}
	}()

	label := models.PrimaryLabel(sentiment)
	insight.KeyFindings = append(insight.KeyFindings, fmt.Sprintf("Overall sentiment: %s", label))

	switch label {
	case models.LabelNegative:
		insight.PriorityLevel = models.PriorityHigh
		insight.ActionItems = append(insight.ActionItems, ACTION_NEGATIVE)
	case models.LabelPositive:
		insight.PriorityLevel = models.PriorityLow
		insight.ActionItems = append(insight.ActionItems, ACTION_POSITIVE)
	}

	var topicNames []string
	if topics != nil && topics.Success {
		for _, category := range topics.Categories.Top(TOP_CATEGORIES) {
			insight.KeyFindings = append(insight.KeyFindings,
				fmt.Sprintf("Key topic: %s (mentioned %d times)", category.Category, category.Score))
			topicNames = append(topicNames, string(category.Category))

			if action, ok := categoryAction(category.Category, label); ok {
				insight.ActionItems = append(insight.ActionItems, action)
			}
		}
	}

	insight.Summary = fmt.Sprintf("Feedback shows %s sentiment.", strings.ToLower(string(label)))
	if len(topicNames) > 0 {
		insight.Summary += fmt.Sprintf(" Main topics: %s", strings.Join(topicNames, ", "))
	}

	return insight
}

func categoryAction(category models.Category, label models.Label) (string, bool) {
	switch {
	case category == models.CategoryQuality && label == models.LabelNegative:
		return ACTION_QUALITY_CONTROL, true
	case category == models.CategoryPrice && label == models.LabelNegative:
		return ACTION_PRICING, true
	case category == models.CategoryCustomerService:
		return ACTION_CUSTOMER_SERVICE, true
	}
	return "", false
}
