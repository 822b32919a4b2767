package sentiment

import (
	"context"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/feedbackflow/internal/models"
)

const (
	POSITIVE_THRESHOLD = 0.1
	NEGATIVE_THRESHOLD = -0.1
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and drops the resulting markup so
// only the prose reaches the lexicon.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	// no smartypants, curly quotes would hide negations like "don't"
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.UseXHTML,
	})
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions(), blackfriday.WithRenderer(renderer))
	plainText := html.UnescapeString(tagPattern.ReplaceAllString(string(output), " "))

	return strings.Join(strings.Fields(plainText), " ")
}

// LabelFromPolarity applies the fixed polarity thresholds and returns the
// label with its confidence.
func LabelFromPolarity(polarity float64) (models.Label, float64) {
	switch {
	case polarity > POSITIVE_THRESHOLD:
		return models.LabelPositive, models.Clamp01(polarity)
	case polarity < NEGATIVE_THRESHOLD:
		return models.LabelNegative, models.Clamp01(-polarity)
	default:
		if polarity < 0 {
			polarity = -polarity
		}
		return models.LabelNeutral, models.Clamp01(1 - polarity)
	}
}

// LexiconAdapter scores text locally with VADER. It needs no credential.
type LexiconAdapter struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewLexiconAdapter() *LexiconAdapter {
	return &LexiconAdapter{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (l *LexiconAdapter) Method() models.Method {
	return models.MethodLexiconHeuristic
}

// Analyze returns false only for input that is not usable text.
func (l *LexiconAdapter) Analyze(_ context.Context, text string) (models.SingleSentiment, bool) {
	if !utf8.ValidString(text) || strings.TrimSpace(text) == "" {
		return models.SingleSentiment{}, false
	}

	plainText := ConvertMarkdownToText(text)
	if plainText == "" {
		plainText = strings.TrimSpace(text)
	}

	scores := l.analyzer.PolarityScores(plainText)
	polarity := clampPolarity(scores.Compound)
	subjectivity := models.Clamp01(scores.Positive + scores.Negative)

	label, confidence := LabelFromPolarity(polarity)
	return models.SingleSentiment{
		Method:       models.MethodLexiconHeuristic,
		Label:        label,
		Score:        confidence,
		Polarity:     &polarity,
		Subjectivity: &subjectivity,
	}, true
}

func clampPolarity(v float64) float64 {
	switch {
	case v != v:
		return 0
	case v < -1:
		return -1
	case v > 1:
		return 1
	default:
		return v
	}
}
