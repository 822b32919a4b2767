package models

import (
	"encoding/json"
	"strings"
)

type Label string

const (
	LabelPositive Label = "POSITIVE"
	LabelNegative Label = "NEGATIVE"
	LabelNeutral  Label = "NEUTRAL"
	LabelUnknown  Label = "UNKNOWN"
)

type Method string

const (
	MethodRemoteClassifier Method = "remote-classifier"
	MethodLexiconHeuristic Method = "lexicon-heuristic"
	MethodLLM              Method = "llm"
	MethodCombined         Method = "combined"
	MethodAuto             Method = "auto"
)

// NormalizeLabel maps the label vocabularies of the supported classifiers
// onto POSITIVE/NEGATIVE/NEUTRAL. Unrecognized labels are upper-cased as is.
func NormalizeLabel(raw string) Label {
	label := strings.ToUpper(strings.TrimSpace(raw))
	switch label {
	case "POSITIVE", "POS", "LABEL_2":
		return LabelPositive
	case "NEGATIVE", "NEG", "LABEL_0":
		return LabelNegative
	case "NEUTRAL", "NEU", "LABEL_1":
		return LabelNeutral
	case "":
		return LabelUnknown
	default:
		return Label(label)
	}
}

type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentResult is one of SingleSentiment, CombinedSentiment or
// FailedSentiment. Consumers switch on the concrete type.
type SentimentResult interface {
	Succeeded() bool
	sentimentResult()
}

// SingleSentiment is the output of exactly one strategy.
type SingleSentiment struct {
	Method Method  `json:"method"`
	Label  Label   `json:"label"`
	Score  float64 `json:"score"`
	// lexicon-heuristic only
	Polarity     *float64 `json:"polarity,omitempty"`
	Subjectivity *float64 `json:"subjectivity,omitempty"`
	// remote-classifier only, present when the emotion endpoint answered
	Emotions []LabelScore `json:"emotions,omitempty"`
}

func (SingleSentiment) Succeeded() bool  { return true }
func (SingleSentiment) sentimentResult() {}

func (s SingleSentiment) MarshalJSON() ([]byte, error) {
	type alias SingleSentiment
	return json.Marshal(struct {
		alias
		Success bool `json:"success"`
	}{alias(s), true})
}

// CombinedSentiment wraps the results of every strategy that answered. The
// first result is the preferred one and provides PrimarySentiment.
type CombinedSentiment struct {
	Results          []SingleSentiment `json:"combined_results"`
	PrimarySentiment Label             `json:"primary_sentiment"`
	MethodsUsed      []Method          `json:"methods_used"`
}

func (CombinedSentiment) Succeeded() bool  { return true }
func (CombinedSentiment) sentimentResult() {}

func (c CombinedSentiment) MarshalJSON() ([]byte, error) {
	type alias CombinedSentiment
	return json.Marshal(struct {
		Method Method `json:"method"`
		alias
		Success bool `json:"success"`
	}{MethodCombined, alias(c), true})
}

// NewCombinedSentiment builds a combined result; results must be non-empty
// and in preference order.
func NewCombinedSentiment(results []SingleSentiment) CombinedSentiment {
	combined := CombinedSentiment{
		Results:          results,
		PrimarySentiment: LabelUnknown,
		MethodsUsed:      make([]Method, 0, len(results)),
	}
	for _, r := range results {
		combined.MethodsUsed = append(combined.MethodsUsed, r.Method)
	}
	if len(results) > 0 && results[0].Label != "" {
		combined.PrimarySentiment = results[0].Label
	}
	return combined
}

type FailedSentiment struct {
	Error string `json:"error"`
}

func (FailedSentiment) Succeeded() bool  { return false }
func (FailedSentiment) sentimentResult() {}

func (f FailedSentiment) MarshalJSON() ([]byte, error) {
	type alias FailedSentiment
	return json.Marshal(struct {
		alias
		Success bool `json:"success"`
	}{alias(f), false})
}

// PrimaryLabel returns the authoritative label of a result, or UNKNOWN for
// failed and missing results.
func PrimaryLabel(r SentimentResult) Label {
	switch v := r.(type) {
	case SingleSentiment:
		if v.Label == "" {
			return LabelUnknown
		}
		return v.Label
	case CombinedSentiment:
		return v.PrimarySentiment
	default:
		return LabelUnknown
	}
}
