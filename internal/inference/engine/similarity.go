package engine

import "strings"

// conceptSimilarity blends normalized edit distance with token overlap so
// that both near-misspellings ("java_blok") and reordered compounds
// ("block_java") rank above unrelated names. Deterministic; range [0,1].
func conceptSimilarity(a, b string) float64 {
	a = normalizeConceptName(a)
	b = normalizeConceptName(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	edit := 1 - normalizedEditDistance(a, b)
	overlap := tokenOverlap(a, b)
	return 0.6*edit + 0.4*overlap
}

func normalizeConceptName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func normalizedEditDistance(a, b string) float64 {
	la, lb := len(a), len(b)
	if la == 0 && lb == 0 {
		return 0
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	return float64(levenshtein(a, b)) / float64(longest)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func tokenOverlap(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '.' || r == ':' || r == '/'
	}) {
		if tok != "" {
			out[tok] = struct{}{}
		}
	}
	return out
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
