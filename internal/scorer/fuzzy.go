package scorer

// Per-character weights for the fuzzy matcher
const (
	scoreContinueMatch = 1.0
	scoreWordJump      = 0.9
	scoreCharacterJump = 0.17
	penaltySkipped     = 0.999
	penaltyNotComplete = 0.99
	densityWeight      = 0.1
)

// Fuzzy is the default scorer. The query matches when all of its characters appear
// in order within text+keywords, ignoring case. Contiguous runs, a match at the start
// and matches at word boundaries score higher; so does a query covering more of the
// text. Results fall in (0,1]; a non-match is 0. An empty query matches everything with 1.
func Fuzzy(text, query string, keywords []string) float64 {
	if text == "" {
		return 0
	}
	if query == "" {
		return 1
	}
	q := []rune(fold(query))
	best := match([]rune(fold(text)), q)
	if len(keywords) > 0 {
		if s := match([]rune(fold(corpus(text, keywords))), q); s > best {
			best = s
		}
	}
	return best
}

func match(t, q []rune) float64 {
	if len(q) > len(t) {
		return 0
	}
	m := &matcher{t: t, q: q, memo: make(map[int]float64)}
	raw := m.score(0, 0)
	if raw <= 0 {
		return 0
	}
	density := float64(len(q)) / float64(len(t))
	return raw * (1 - densityWeight + densityWeight*density)
}

type matcher struct {
	t, q []rune
	memo map[int]float64
}

// score returns the best score for matching q[qi:] within t[ti:]
func (m *matcher) score(ti, qi int) float64 {
	if qi == len(m.q) {
		if ti == len(m.t) {
			return scoreContinueMatch
		}
		return penaltyNotComplete
	}
	key := ti*(len(m.q)+1) + qi
	if v, ok := m.memo[key]; ok {
		return v
	}

	best := 0.0
	want := m.q[qi]
	for idx := ti; idx < len(m.t); idx++ {
		if m.t[idx] != want {
			continue
		}
		rest := m.score(idx+1, qi+1)
		if rest == 0 {
			continue
		}
		var s float64
		switch {
		case idx == ti:
			s = rest * scoreContinueMatch
		case isWordBoundary(m.t[idx-1]):
			s = rest * scoreWordJump * pow(penaltySkipped, idx-ti)
		default:
			s = rest * scoreCharacterJump * pow(penaltySkipped, idx-ti)
		}
		if s > best {
			best = s
		}
	}

	m.memo[key] = best
	return best
}

func pow(base float64, n int) float64 {
	out := 1.0
	for i := 0; i < n; i++ {
		out *= base
	}
	return out
}
