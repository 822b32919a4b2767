package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/feedbackflow/internal/insights"
	"github.com/spacesedan/feedbackflow/internal/models"
	"github.com/spacesedan/feedbackflow/internal/report"
	"github.com/spacesedan/feedbackflow/internal/utils"
)

const (
	PREVIEW_LENGTH      = 100
	NO_ANALYSES_MESSAGE = "No analyses performed yet"
)

type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string, preferred models.Method) models.SentimentResult
}

type TopicAnalyzer interface {
	AnalyzeTopics(ctx context.Context, text string) models.TopicResult
}

// FeedbackAgent runs the full pipeline on feedback items and keeps an
// append-only history of every analysis it performed.
type FeedbackAgent struct {
	sentiment SentimentAnalyzer
	topics    TopicAnalyzer
	method    models.Method
	history   *utils.History[models.AnalysisRecord]
	now       func() time.Time
}

type Option func(*FeedbackAgent)

// WithMethod sets the preferred sentiment method, auto by default.
func WithMethod(method models.Method) Option {
	return func(a *FeedbackAgent) {
		a.method = method
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *FeedbackAgent) {
		a.now = now
	}
}

func New(sentiment SentimentAnalyzer, topics TopicAnalyzer, opts ...Option) *FeedbackAgent {
	a := &FeedbackAgent{
		sentiment: sentiment,
		topics:    topics,
		method:    models.MethodAuto,
		history:   utils.NewHistory[models.AnalysisRecord](),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	slog.Info("[FeedbackAgent] Agent initialized", slog.String("method", string(a.method)))
	return a
}

// AnalyzeSingle analyzes one item and records it in the history. Failures
// end up in the record's Analysis.Error and never abort the caller.
func (a *FeedbackAgent) AnalyzeSingle(ctx context.Context, item models.FeedbackItem) models.AnalysisRecord {
	slog.Info("[FeedbackAgent] Analyzing feedback", slog.String("preview", preview(item.Feedback)))

	started := a.now()
	metadata := item.Metadata
	if metadata == nil {
		metadata = models.Metadata{}
	}

	analysis := a.analyze(ctx, item.Feedback)

	record := a.history.AppendWith(func(seq int) models.AnalysisRecord {
		return models.AnalysisRecord{
			ID:               seq,
			Timestamp:        started,
			OriginalFeedback: item.Feedback,
			Metadata:         metadata,
			Analysis:         analysis,
		}
	})

	if analysis.Error != "" {
		slog.Error("[FeedbackAgent] Analysis failed",
			slog.Int("id", record.ID),
			slog.String("error", analysis.Error))
	} else {
		slog.Info("[FeedbackAgent] Analysis complete",
			slog.Int("id", record.ID),
			slog.Duration("duration", a.now().Sub(started)))
	}
	return record
}

func (a *FeedbackAgent) analyze(ctx context.Context, text string) (analysis models.Analysis) {
	defer func() {
		if r := recover(); r != nil {
			analysis.Error = fmt.Sprintf("%v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		analysis.Error = err.Error()
		return analysis
	}
	slog.Debug("[FeedbackAgent] Running sentiment analysis")
	analysis.Sentiment = a.sentiment.AnalyzeSentiment(ctx, text, a.method)

	if err := ctx.Err(); err != nil {
		analysis.Error = err.Error()
		return analysis
	}
	slog.Debug("[FeedbackAgent] Extracting topics")
	topics := a.topics.AnalyzeTopics(ctx, text)
	analysis.Topics = &topics

	slog.Debug("[FeedbackAgent] Generating insights")
	insight := insights.Generate(analysis.Sentiment, analysis.Topics, text)
	analysis.Insights = &insight

	return analysis
}

// AnalyzeBatch analyzes items in order and aggregates them into a report.
func (a *FeedbackAgent) AnalyzeBatch(ctx context.Context, items []models.FeedbackItem) models.BatchResult {
	slog.Info("[FeedbackAgent] Starting batch analysis", slog.Int("count", len(items)))

	records := make([]models.AnalysisRecord, 0, len(items))
	for i, item := range items {
		slog.Info("[FeedbackAgent] Progress", slog.String("progress", fmt.Sprintf("%d/%d", i+1, len(items))))
		records = append(records, a.AnalyzeSingle(ctx, item))
	}

	slog.Info("[FeedbackAgent] Generating batch report")
	finished := a.now()

	return models.BatchResult{
		BatchID:           report.BatchID(finished),
		TotalFeedback:     len(items),
		IndividualResults: records,
		BatchReport:       report.BuildBatchReport(records),
		Timestamp:         finished,
	}
}

// History returns a copy of every record analyzed so far, oldest first.
func (a *FeedbackAgent) History() []models.AnalysisRecord {
	return a.history.Snapshot()
}

func (a *FeedbackAgent) SummaryStats() models.SummaryStats {
	records := a.history.Snapshot()
	if len(records) == 0 {
		return models.SummaryStats{Message: NO_ANALYSES_MESSAGE}
	}

	stats := models.SummaryStats{
		TotalAnalyses: len(records),
		DateRange: &models.DateRange{
			FirstAnalysis: records[0].Timestamp,
			LastAnalysis:  records[len(records)-1].Timestamp,
		},
		SentimentBreakdown: map[models.Label]int{},
		MostCommonTopics:   map[models.Category]int{},
	}

	for _, record := range records {
		if s := record.Analysis.Sentiment; s != nil && s.Succeeded() {
			stats.SentimentBreakdown[models.PrimaryLabel(s)]++
		}
		if record.Analysis.Topics != nil {
			for _, category := range record.Analysis.Topics.Categories {
				stats.MostCommonTopics[category.Category]++
			}
		}
	}
	return stats
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PREVIEW_LENGTH {
		return text
	}
	return string(runes[:PREVIEW_LENGTH]) + "..."
}
