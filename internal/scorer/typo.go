package scorer

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Typo tolerates misspellings: every word of the text and keywords is compared with
// the query by edit distance. Substring hits score 1.
type Typo struct {
	threshold float64
}

// NewTypo returns a typo-tolerant scorer. Words whose distance ratio to the query is
// at or above threshold do not match. A threshold outside (0,1] falls back to
// DefaultTypoThreshold.
func NewTypo(threshold float64) *Typo {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultTypoThreshold
	}
	return &Typo{threshold: threshold}
}

// Score implements Scorer
func (t *Typo) Score(text, query string, keywords []string) float64 {
	if text == "" {
		return 0
	}
	if query == "" {
		return 1
	}
	q := fold(strings.TrimSpace(query))
	all := fold(corpus(text, keywords))
	if strings.Contains(all, q) {
		return 1
	}

	best := 0.0
	for _, word := range strings.FieldsFunc(all, isWordBoundary) {
		dist := levenshtein.ComputeDistance(word, q)
		maxLen := len([]rune(word))
		if n := len([]rune(q)); n > maxLen {
			maxLen = n
		}
		ratio := float64(dist) / float64(maxLen)
		if ratio >= t.threshold {
			continue
		}
		if s := 1 - ratio; s > best {
			best = s
		}
	}
	return best
}
