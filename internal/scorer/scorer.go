// Package scorer defines the relevance scoring contract and the built-in strategies.
//
// A scorer maps (text, query, keywords) to a number. A score above zero means the item
// matches the query; zero or below means it is filtered out.
package scorer

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
)

// Scorer is a relevance strategy
type Scorer interface {
	Score(text, query string, keywords []string) float64
}

// Func adapts a plain function to the Scorer interface
type Func func(text, query string, keywords []string) float64

// Score calls f
func (f Func) Score(text, query string, keywords []string) float64 {
	return f(text, query, keywords)
}

// Strategy names accepted by ByName
const (
	NameFuzzy     = "fuzzy"
	NameSubstring = "substring"
	NameTypo      = "typo"
)

// DefaultTypoThreshold is the largest edit-distance ratio the typo scorer accepts
const DefaultTypoThreshold = 0.4

// Default returns the fuzzy subsequence scorer
func Default() Scorer {
	return Func(Fuzzy)
}

// ByName resolves a strategy name. An empty name selects the default.
func ByName(name string, typoThreshold float64) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameFuzzy:
		return Default(), nil
	case NameSubstring:
		return Func(Substring), nil
	case NameTypo:
		return NewTypo(typoThreshold), nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", name)
	}
}

// Safe invokes s and absorbs every fault as a zero score.
// Empty text scores 0 without calling s. A panic, NaN, infinity or negative
// result also yields 0, with fault describing what went wrong.
func Safe(s Scorer, text, query string, keywords []string) (score float64, fault string) {
	if text == "" {
		return 0, ""
	}
	defer func() {
		if r := recover(); r != nil {
			score = 0
			fault = fmt.Sprintf("panic: %v", r)
		}
	}()
	v := s.Score(text, query, keywords)
	switch {
	case math.IsNaN(v):
		return 0, "NaN score"
	case math.IsInf(v, 0):
		return 0, "infinite score"
	case v < 0:
		return 0, fmt.Sprintf("negative score %g", v)
	}
	return v, ""
}

// fold lowercases s for caseless comparison.
// A Caser holds state, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// corpus joins text and keywords into one searchable string
func corpus(text string, keywords []string) string {
	if len(keywords) == 0 {
		return text
	}
	return text + " " + strings.Join(keywords, " ")
}

func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '-', '_', '.', '/', ':', '\t':
		return true
	}
	return false
}
