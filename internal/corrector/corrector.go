// Package corrector produces "did you mean" suggestions for a
// mistyped command, bookmark, or variable name: a subsequence fuzzy
// pass narrows the candidate pool, then an edit-distance similarity
// score orders and filters it, so a one-letter typo outranks a
// same-length but unrelated name that happens to share letters in
// order.
package corrector

import (
	"sort"

	"github.com/hbollon/go-edlib"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// minSimilarity discards candidates whose Levenshtein similarity to
// the typo falls below this fraction; a subsequence match alone is too
// permissive for short command names ("s" fuzzy-matches almost anything).
const minSimilarity = 0.3

// Suggest returns up to n candidates most likely to be what the user
// meant to type instead of typo, best first.
func Suggest(typo string, candidates []string, n int) []string {
	if typo == "" || len(candidates) == 0 || n <= 0 {
		return nil
	}

	ranks := fuzzy.RankFind(typo, candidates)
	sort.Sort(ranks)

	type scored struct {
		name  string
		score float32
	}
	var pool []scored
	for _, r := range ranks {
		sim, err := edlib.StringsSimilarity(typo, r.Target, edlib.Levenshtein)
		if err != nil || sim < minSimilarity {
			continue
		}
		pool = append(pool, scored{name: r.Target, score: sim})
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].score > pool[j].score })

	out := make([]string, 0, n)
	for i, s := range pool {
		if i >= n {
			break
		}
		out = append(out, s.name)
	}
	return out
}
