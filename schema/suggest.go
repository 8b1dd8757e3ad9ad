package schema

import (
	"strings"
	"unicode/utf8"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// suggest returns the candidate field name closest to want, or "" when
// nothing is close enough. A case-only mismatch wins outright. Otherwise
// closeness is edit distance capped at a third of want's length, floored
// at two so transposition typos always qualify. Ties go to the
// lexicographically smallest candidate, so the suggestion does not
// depend on data field order.
func suggest(want string, candidates []string) string {
	fold := ""
	for _, c := range candidates {
		if strings.EqualFold(c, want) && (fold == "" || c < fold) {
			fold = c
		}
	}
	if fold != "" {
		return fold
	}
	limit := utf8.RuneCountInString(want) / 3
	if limit < 2 {
		limit = 2
	}
	diffCfg := diffpatch.New()
	best, bestDist := "", limit+1
	for _, c := range candidates {
		diffs := diffCfg.DiffMain(want, c, false)
		d := diffCfg.DiffLevenshtein(diffs)
		if d < bestDist || (d == bestDist && best != "" && c < best) {
			best, bestDist = c, d
		}
	}
	return best
}
