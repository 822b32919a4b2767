package topics

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

const (
	MAX_PHRASE_WORDS  = 3
	MIN_PHRASE_LENGTH = 4
)

type taggedToken struct {
	Text string
	Tag  string
}

// NounPhraseExtractor finds short noun phrases with a part-of-speech tagger
// and an adjective*-noun+ chunker.
type NounPhraseExtractor struct{}

func NewNounPhraseExtractor() *NounPhraseExtractor {
	return &NounPhraseExtractor{}
}

func (n *NounPhraseExtractor) Extract(text string) ([]string, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	tokens := make([]taggedToken, 0, len(doc.Tokens()))
	for _, tok := range doc.Tokens() {
		tokens = append(tokens, taggedToken{Text: tok.Text, Tag: tok.Tag})
	}
	return filterPhrases(chunkNounPhrases(tokens)), nil
}

func isAdjective(tag string) bool {
	return tag == "JJ" || tag == "JJR" || tag == "JJS"
}

func isNoun(tag string) bool {
	return tag == "NN" || tag == "NNS" || tag == "NNP" || tag == "NNPS"
}

func isProperNoun(tag string) bool {
	return tag == "NNP" || tag == "NNPS"
}

// chunkNounPhrases groups adjective*-noun+ runs. A lone common noun is not a
// phrase, a lone proper noun is.
func chunkNounPhrases(tokens []taggedToken) []string {
	var phrases []string
	var adjectives, nouns []string
	proper := false

	flush := func() {
		if len(nouns) > 0 {
			words := append(append([]string{}, adjectives...), nouns...)
			if len(words) > 1 || proper {
				phrases = append(phrases, strings.ToLower(strings.Join(words, " ")))
			}
		}
		adjectives, nouns, proper = nil, nil, false
	}

	for _, tok := range tokens {
		switch {
		case isAdjective(tok.Tag):
			if len(nouns) > 0 {
				flush()
			}
			adjectives = append(adjectives, tok.Text)
		case isNoun(tok.Tag):
			nouns = append(nouns, tok.Text)
			if isProperNoun(tok.Tag) {
				proper = true
			}
		default:
			flush()
		}
	}
	flush()

	return phrases
}

// filterPhrases keeps phrases of one to three words longer than three
// characters, without duplicates.
func filterPhrases(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))
	kept := make([]string, 0, len(phrases))

	for _, phrase := range phrases {
		words := len(strings.Fields(phrase))
		if words == 0 || words > MAX_PHRASE_WORDS || len(phrase) < MIN_PHRASE_LENGTH {
			continue
		}
		if _, ok := seen[phrase]; ok {
			continue
		}
		seen[phrase] = struct{}{}
		kept = append(kept, phrase)
	}
	return kept
}
