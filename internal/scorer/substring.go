package scorer

import "strings"

// Substring matches when the query occurs verbatim (ignoring case) in the text or a
// keyword. A prefix match scores 1, a match starting a word 0.75 and any other 0.5.
func Substring(text, query string, keywords []string) float64 {
	if text == "" {
		return 0
	}
	if query == "" {
		return 1
	}
	q := fold(query)
	best := 0.0
	for _, candidate := range append([]string{text}, keywords...) {
		if s := substringScore(fold(candidate), q); s > best {
			best = s
		}
	}
	return best
}

func substringScore(haystack, q string) float64 {
	idx := strings.Index(haystack, q)
	switch {
	case idx < 0:
		return 0
	case idx == 0:
		return 1
	}
	for idx >= 0 {
		prev := []rune(haystack[:idx])
		if isWordBoundary(prev[len(prev)-1]) {
			return 0.75
		}
		next := strings.Index(haystack[idx+1:], q)
		if next < 0 {
			break
		}
		idx += next + 1
	}
	return 0.5
}
