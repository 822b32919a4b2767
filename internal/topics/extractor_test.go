package topics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/feedbackflow/internal/models"
)

type fakeZeroShot struct {
	hasKey bool
	resp   models.ZeroShotResponse
	err    error
	calls  int
}

func (f *fakeZeroShot) HasCredential() bool { return f.hasKey }

func (f *fakeZeroShot) ZeroShotClassify(ctx context.Context, text string, labels []string) (models.ZeroShotResponse, error) {
	f.calls++
	return f.resp, f.err
}

type fakePhrases struct {
	phrases []string
	err     error
	panics  bool
}

func (f fakePhrases) Extract(text string) ([]string, error) {
	if f.panics {
		panic("tagger exploded")
	}
	return f.phrases, f.err
}

const shippingComplaint = "The delivery was slow and the support team never answered"

func TestRemoteClassifier_FiltersLowConfidenceAndUnknownLabels(t *testing.T) {
	client := &fakeZeroShot{
		hasKey: true,
		resp: models.ZeroShotResponse{
			Labels: []string{"shipping", "weather", "price"},
			Scores: []float64{0.8, 0.5, 0.05},
		},
	}

	topics, ok := NewRemoteClassifier(client).Classify(context.Background(), shippingComplaint)

	require.True(t, ok)
	assert.Equal(t, []models.RemoteTopic{
		{Topic: "shipping", Confidence: 0.8, Method: REMOTE_TOPIC_METHOD},
	}, topics)
}

func TestRemoteClassifier_Unavailable(t *testing.T) {
	noKey := &fakeZeroShot{}
	_, ok := NewRemoteClassifier(noKey).Classify(context.Background(), shippingComplaint)
	assert.False(t, ok)
	assert.Zero(t, noKey.calls)

	failing := &fakeZeroShot{hasKey: true, err: errors.New("boom")}
	_, ok = NewRemoteClassifier(failing).Classify(context.Background(), shippingComplaint)
	assert.False(t, ok)

	var nilClassifier *RemoteClassifier
	_, ok = nilClassifier.Classify(context.Background(), shippingComplaint)
	assert.False(t, ok)
}

func TestBuildSummary_RanksByConfidence(t *testing.T) {
	categories := models.CategoryScores{
		{Category: models.CategoryPrice, Score: 1, Relevance: 0.05},
		{Category: models.CategoryShipping, Score: 2, Relevance: 0.2},
	}
	remote := []models.RemoteTopic{
		{Topic: "shipping", Confidence: 0.7, Method: REMOTE_TOPIC_METHOD},
	}

	summary := BuildSummary(categories, remote)

	assert.Equal(t, []models.TopicSummaryEntry{
		{Topic: "shipping", Source: SOURCE_CATEGORY_MATCHING, Confidence: 1},
		{Topic: "shipping", Source: SOURCE_HUGGINGFACE, Confidence: 0.7},
		{Topic: "price", Source: SOURCE_CATEGORY_MATCHING, Confidence: 0.5},
	}, summary)
}

func TestExtractor_AllStrategies(t *testing.T) {
	client := &fakeZeroShot{
		hasKey: true,
		resp: models.ZeroShotResponse{
			Labels: []string{"shipping", "customer_service"},
			Scores: []float64{0.6, 0.3},
		},
	}
	extractor := NewExtractor(fakePhrases{phrases: []string{"support team"}}, NewRemoteClassifier(client))

	result := extractor.AnalyzeTopics(context.Background(), shippingComplaint)

	assert.True(t, result.Success)
	assert.Equal(t, []string{
		METHOD_KEYWORD_FREQUENCY, METHOD_CATEGORY_MATCHING, METHOD_NOUN_PHRASES, METHOD_HUGGINGFACE,
	}, result.MethodsUsed)
	assert.Equal(t, []string{"support team"}, result.NounPhrases)
	assert.Len(t, result.RemoteTopics, 2)
	assert.Len(t, result.Summary, len(result.Categories)+len(result.RemoteTopics))

	for i := 1; i < len(result.Summary); i++ {
		assert.GreaterOrEqual(t, result.Summary[i-1].Confidence, result.Summary[i].Confidence)
	}
}

func TestExtractor_FailingStrategyIsOmitted(t *testing.T) {
	tests := []struct {
		name    string
		phrases PhraseExtractor
	}{
		{name: "error", phrases: fakePhrases{err: errors.New("tagger unavailable")}},
		{name: "panic", phrases: fakePhrases{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewExtractor(tt.phrases, nil).AnalyzeTopics(context.Background(), shippingComplaint)

			assert.True(t, result.Success)
			assert.Nil(t, result.NounPhrases)
			assert.Equal(t, []string{METHOD_KEYWORD_FREQUENCY, METHOD_CATEGORY_MATCHING}, result.MethodsUsed)
			assert.NotEmpty(t, result.Categories)
			assert.NotEmpty(t, result.Keywords)
		})
	}
}

func TestExtractor_Idempotent(t *testing.T) {
	extractor := NewExtractor(fakePhrases{phrases: []string{"support team"}}, nil)

	first := extractor.AnalyzeTopics(context.Background(), shippingComplaint)
	second := extractor.AnalyzeTopics(context.Background(), shippingComplaint)

	assert.Equal(t, first, second)
}

func TestExtractor_BatchAnalyze(t *testing.T) {
	extractor := NewExtractor(fakePhrases{}, nil)

	results := extractor.BatchAnalyze(context.Background(), []string{shippingComplaint, "Great price"})

	require.Len(t, results, 2)
	_, ok := results[1].Categories.Get(models.CategoryPrice)
	assert.True(t, ok)
}
