package normalizer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"survey-insights-go/internal/types"
)

// Delimiter joins the choices of a multi-value answer in storage.
const Delimiter = ", "

// Fold lower-cases s. A Caser keeps state, so each call gets its own.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Normalize splits a raw stored answer into atomic category tokens.
//
// Every piece between delimiters is its own token, so a stored
// "Others, Snake" yields both "Others" and "Snake". otherText is for sources
// that keep the free text apart from the answer; it is appended as one more
// token when the question merges Others and "Others" was chosen. Empty pieces
// left by stray delimiters are dropped, anything else is kept literally.
func Normalize(raw, otherText string, spec types.QuestionSpec) []string {
	if raw == "" {
		return nil
	}
	pieces := strings.Split(raw, Delimiter)
	tokens := make([]string, 0, len(pieces)+1)
	choseOthers := false
	for _, p := range pieces {
		if p == "" {
			continue
		}
		if p == types.OthersSentinel {
			choseOthers = true
		}
		tokens = append(tokens, p)
	}
	if spec.MergeOthers && choseOthers && otherText != "" {
		tokens = append(tokens, otherText)
	}
	if spec.CaseFold {
		for i, t := range tokens {
			tokens[i] = Fold(t)
		}
	}
	return tokens
}
