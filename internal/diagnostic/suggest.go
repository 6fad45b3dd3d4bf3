package diagnostic

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns the closest candidate to name by normalized, fold-cased
// fuzzy distance, for enriching "undefined symbol" / "unknown target"
// messages with a "did you mean" hint. It reports ok=false when candidates
// is empty or nothing ranks as a plausible match.
func Suggest(name string, candidates []string) (best string, ok bool) {
	if len(name) == 0 || len(candidates) == 0 {
		return "", false
	}
	ranks := fuzzy.RankFindNormalizedFold(name, candidates)
	if len(ranks) == 0 {
		// name may be a candidate with extra characters typed in, so also
		// match in the other direction.
		for i, c := range candidates {
			if d := fuzzy.RankMatchNormalizedFold(c, name); d >= 0 {
				ranks = append(ranks, fuzzy.Rank{Source: c, Target: c, Distance: d, OriginalIndex: i})
			}
		}
	}
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	return ranks[0].Target, true
}

// WithSuggestion appends a "(did you mean ...?)" hint to msg when one is
// found, otherwise returns msg unchanged.
func WithSuggestion(msg, name string, candidates []string) string {
	if best, ok := Suggest(name, candidates); ok {
		return msg + " (did you mean \"" + best + "\"?)"
	}
	return msg
}
