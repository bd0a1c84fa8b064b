// Package rank scores investor profiles against a free-text query using
// a weighted multi-signal scheme. It is the fallback search path when no
// embedding index is available and a cross-check when one is.
package rank

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/investor-match/internal/profile"
)

// Signal weights. All additive; the exact-phrase signal dominates, field
// boosts break ties between profiles with similar text overlap.
const (
	weightExactPhrase   = 200
	weightAllTokens     = 150
	weightTokenHit      = 15
	weightFirmPhrase    = 50
	weightFirmToken     = 20
	weightFocusToken    = 25
	weightTypeToken     = 20
	weightFundTypeToken = 15

	minTokenLen = 3
)

// fieldBoosts maps metadata fields to their per-token boost.
var fieldBoosts = []struct {
	key    string
	weight int
}{
	{profile.KeyFocusArea, weightFocusToken},
	{profile.KeyInvestorType, weightTypeToken},
	{profile.KeyFundType, weightFundTypeToken},
}

// ByKeyword ranks profiles against the query, most relevant first, and
// returns the top limit entries (all when limit is <= 0 or exceeds the
// profile count). Every profile is scored, zero allowed; ties keep their
// input order. Missing metadata fields simply contribute nothing.
func ByKeyword(profiles []profile.Profile, query string, limit int) []profile.Profile {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	tokens := queryTokens(queryLower)

	scores := make([]int, len(profiles))
	matched := 0
	for i, p := range profiles {
		scores[i] = score(p, queryLower, tokens)
		if scores[i] > 0 {
			matched++
		}
	}

	order := make([]int, len(profiles))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if limit <= 0 || limit > len(profiles) {
		limit = len(profiles)
	}

	ranked := make([]profile.Profile, limit)
	for i := 0; i < limit; i++ {
		ranked[i] = profiles[order[i]]
	}

	zap.L().Debug("rank: keyword search",
		zap.String("query", query),
		zap.Int("searched", len(profiles)),
		zap.Int("matched", matched),
		zap.Int("returned", limit),
	)
	return ranked
}

// KeywordSearcher adapts ByKeyword to the store.Searcher retrieval port
// over an in-memory profile list. Ranking is pure computation, so the
// context is unused and Search never fails.
type KeywordSearcher struct {
	Profiles []profile.Profile
}

// Search implements store.Searcher.
func (s KeywordSearcher) Search(_ context.Context, query string, limit int) ([]profile.Profile, error) {
	return ByKeyword(s.Profiles, query, limit), nil
}

// queryTokens splits a lower-cased query into tokens longer than two
// characters. Short stop-ish tokens add noise and are dropped.
func queryTokens(queryLower string) []string {
	var tokens []string
	for _, w := range strings.Fields(queryLower) {
		if len(w) >= minTokenLen {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func score(p profile.Profile, queryLower string, tokens []string) int {
	text := strings.ToLower(p.Text)
	s := 0

	if queryLower != "" && strings.Contains(text, queryLower) {
		s += weightExactPhrase
	}

	if len(tokens) > 0 {
		all := true
		for _, tok := range tokens {
			if !strings.Contains(text, tok) {
				all = false
				break
			}
		}
		if all {
			s += weightAllTokens
		}
	}

	for _, tok := range tokens {
		s += weightTokenHit * strings.Count(text, tok)
	}

	if firm := strings.ToLower(p.Meta.Text(profile.KeyFirmName)); firm != "" {
		if queryLower != "" && strings.Contains(firm, queryLower) {
			s += weightFirmPhrase
		}
		for _, tok := range tokens {
			if strings.Contains(firm, tok) {
				s += weightFirmToken
			}
		}
	}

	for _, fb := range fieldBoosts {
		field := strings.ToLower(p.Meta.Text(fb.key))
		if field == "" {
			continue
		}
		for _, tok := range tokens {
			if strings.Contains(field, tok) {
				s += fb.weight
			}
		}
	}

	return s
}
