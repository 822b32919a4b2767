package report

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spacesedan/feedbackflow/internal/models"
)

const (
	HIGH_NEGATIVE_PERCENTAGE   = 30.0
	MEDIUM_NEGATIVE_PERCENTAGE = 15.0
	TOP_TOPICS                 = 3
)

const (
	RECOMMENDATION_HIGH    = "HIGH PRIORITY: Over 30% negative feedback - immediate action required"
	RECOMMENDATION_MEDIUM  = "MEDIUM PRIORITY: Significant negative feedback detected"
	RECOMMENDATION_GOOD    = "GOOD: Mostly positive feedback, maintain current approach"
	RECOMMENDATION_NO_DATA = "NO DATA: no feedback was analyzed"
)

var ErrEmptyBatch = errors.New("batch has no analyzed feedback")

// BuildBatchReport aggregates sentiment and topics across a batch and derives
// recommendations from the share of negative feedback.
func BuildBatchReport(records []models.AnalysisRecord) models.BatchReport {
	report := models.BatchReport{
		SentimentDistribution: map[models.Label]int{},
		TopicAnalysis:         models.TopicAnalysis{},
		Recommendations:       []string{},
	}

	if len(records) == 0 {
		slog.Warn("[BatchAggregator] Empty batch, nothing to aggregate")
		return noDataReport(report)
	}

	successful := 0
	tallyIndex := map[models.Category]int{}

	for _, record := range records {
		if s := record.Analysis.Sentiment; s != nil && s.Succeeded() {
			successful++
			report.SentimentDistribution[models.PrimaryLabel(s)]++
		}

		if record.Analysis.Topics == nil {
			continue
		}
		for _, category := range record.Analysis.Topics.Categories {
			idx, ok := tallyIndex[category.Category]
			if !ok {
				idx = len(report.TopicAnalysis)
				tallyIndex[category.Category] = idx
				report.TopicAnalysis = append(report.TopicAnalysis, models.TopicTally{Category: category.Category})
			}
			report.TopicAnalysis[idx].TotalScore += category.Score
			report.TopicAnalysis[idx].Mentions++
		}
	}

	report.Statistics = models.Statistics{
		TotalAnalyzed:      len(records),
		SuccessfulAnalysis: successful,
		PositiveFeedback:   report.SentimentDistribution[models.LabelPositive],
		NegativeFeedback:   report.SentimentDistribution[models.LabelNegative],
		NeutralFeedback:    report.SentimentDistribution[models.LabelNeutral],
	}

	pct, err := negativePercentage(report.Statistics.NegativeFeedback, report.Statistics.TotalAnalyzed)
	if err != nil {
		return noDataReport(report)
	}
	report.NegativePercentage = pct

	switch {
	case report.NegativePercentage > HIGH_NEGATIVE_PERCENTAGE:
		report.Recommendations = append(report.Recommendations, RECOMMENDATION_HIGH)
	case report.NegativePercentage > MEDIUM_NEGATIVE_PERCENTAGE:
		report.Recommendations = append(report.Recommendations, RECOMMENDATION_MEDIUM)
	default:
		report.Recommendations = append(report.Recommendations, RECOMMENDATION_GOOD)
	}

	for _, tally := range topTopics(report.TopicAnalysis, TOP_TOPICS) {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("Focus on improving: %s (mentioned %d times)", tally.Category, tally.Mentions))
	}

	slog.Info("[BatchAggregator] Batch report built",
		slog.Int("total", len(records)),
		slog.Int("successful", successful),
		slog.Float64("negative_percentage", report.NegativePercentage))

	return report
}

func negativePercentage(negative, total int) (float64, error) {
	if total <= 0 {
		return 0, ErrEmptyBatch
	}
	return float64(negative) / float64(total) * 100, nil
}

func noDataReport(report models.BatchReport) models.BatchReport {
	report.NoData = true
	report.Recommendations = []string{RECOMMENDATION_NO_DATA}
	return report
}

// topTopics ranks tallies by total score; ties keep first-appearance order.
func topTopics(tallies models.TopicAnalysis, n int) models.TopicAnalysis {
	ranked := make(models.TopicAnalysis, len(tallies))
	copy(ranked, tallies)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
