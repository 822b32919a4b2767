package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/feedbackflow/internal/models"
)

func TestMatchCategories(t *testing.T) {
	scores := MatchCategories("The delivery was slow and the support team never answered")

	require.Len(t, scores, 3)

	// vocabulary order
	assert.Equal(t, models.CategoryPerformance, scores[0].Category)
	assert.Equal(t, models.CategoryCustomerService, scores[1].Category)
	assert.Equal(t, models.CategoryShipping, scores[2].Category)

	shipping, ok := scores.Get(models.CategoryShipping)
	require.True(t, ok)
	assert.Equal(t, 1, shipping.Score)
	assert.Equal(t, []string{"delivery"}, shipping.MatchedKeywords)
	assert.InDelta(t, 0.1, shipping.Relevance, 1e-9)
}

func TestMatchCategories_SharedKeywordCountsForBoth(t *testing.T) {
	scores := MatchCategories("cheap")

	quality, ok := scores.Get(models.CategoryQuality)
	require.True(t, ok)
	price, ok := scores.Get(models.CategoryPrice)
	require.True(t, ok)

	assert.Equal(t, 1, quality.Score)
	assert.Equal(t, 1, price.Score)
	assert.Equal(t, 1.0, price.Relevance)
}

func TestMatchCategories_SubstringMatches(t *testing.T) {
	scores := MatchCategories("Very helpful staff, they helped twice")

	service, ok := scores.Get(models.CategoryCustomerService)
	require.True(t, ok)
	assert.Equal(t, 3, service.Score)
	assert.Equal(t, []string{"help", "help", "staff"}, service.MatchedKeywords)
}

func TestMatchCategories_NoMatches(t *testing.T) {
	scores := MatchCategories("nothing relevant in here")

	assert.Empty(t, scores)
	_, ok := scores.Get(models.CategoryQuality)
	assert.False(t, ok)
}

func TestCategoryKeywords_CoverVocabulary(t *testing.T) {
	for _, category := range models.Categories {
		assert.NotEmpty(t, CategoryKeywords[category], "category %s has no keywords", category)
	}
	assert.Len(t, CategoryKeywords, len(models.Categories))
}
