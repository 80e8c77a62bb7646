package catalog

import (
	"slices"

	"github.com/nulzo/autorouter/internal/core/domain"
)

const (
	// minSimilarity is the Levenshtein ratio a fuzzy match must reach.
	minSimilarity = 0.85
	// minFuzzyKeyLen keeps short names like "o1" out of fuzzy matching.
	minFuzzyKeyLen = 4
)

// nameKey is one normalized name plus the version numbers it carries.
type nameKey struct {
	key    string
	digits string
}

type benchKey struct {
	family string
	keys   []nameKey
}

// MatchFlagshipModels pairs marketplace models with benchmark entries.
//
// Both sides are reduced to normalized name keys (see normalizeModelName).
// Matching runs in two passes over the marketplace models, in input order:
//  1. the first benchmark entry of the same provider family sharing a key wins;
//  2. models left unmatched take the entry of the same family with the
//     highest key similarity of at least minSimilarity, ties going to the
//     earlier entry. Both keys must carry the same version numbers, and
//     entries already claimed in pass 1 are skipped.
//
// Unmatched models are absent from the result. The function is pure and
// deterministic for a given pair of inputs.
func MatchFlagshipModels(marketplace []domain.MarketplaceModel, benchmarks []domain.BenchmarkModel) map[string]domain.MatchEntry {
	out := make(map[string]domain.MatchEntry)
	if len(marketplace) == 0 || len(benchmarks) == 0 {
		return out
	}

	bench := make([]benchKey, len(benchmarks))
	for i, b := range benchmarks {
		bench[i] = benchKey{
			family: familyOrEmpty(b.Provider),
			keys:   nameKeys(b.Slug, b.Name),
		}
	}

	claimed := make(map[int]bool)
	var pending []domain.MarketplaceModel
	for _, m := range marketplace {
		if _, done := out[m.ID]; done {
			continue
		}
		keys := nameKeys(m.ID, m.Name)
		if len(keys) == 0 {
			continue
		}
		if idx := exactMatch(familyOrEmpty(m.Provider), keys, bench); idx >= 0 {
			out[m.ID] = entryFor(benchmarks[idx])
			claimed[idx] = true
			continue
		}
		pending = append(pending, m)
	}

	for _, m := range pending {
		if _, done := out[m.ID]; done {
			continue
		}
		if idx := fuzzyMatch(familyOrEmpty(m.Provider), nameKeys(m.ID, m.Name), bench, claimed); idx >= 0 {
			out[m.ID] = entryFor(benchmarks[idx])
		}
	}
	return out
}

func exactMatch(family string, keys []nameKey, bench []benchKey) int {
	for i, b := range bench {
		if family != "" && b.family != "" && family != b.family {
			continue
		}
		for _, k := range keys {
			for _, bk := range b.keys {
				if k.key == bk.key {
					return i
				}
			}
		}
	}
	return -1
}

func fuzzyMatch(family string, keys []nameKey, bench []benchKey, claimed map[int]bool) int {
	if family == "" {
		return -1
	}

	best, bestScore := -1, 0.0
	for i, b := range bench {
		if b.family != family || claimed[i] {
			continue
		}
		for _, k := range keys {
			if len(k.key) < minFuzzyKeyLen {
				continue
			}
			for _, bk := range b.keys {
				// gemini-1.5-pro is not gemini-2.5-pro however close the spelling
				if len(bk.key) < minFuzzyKeyLen || k.digits != bk.digits {
					continue
				}
				if s := similarity(k.key, bk.key); s >= minSimilarity && s > bestScore {
					best, bestScore = i, s
				}
			}
		}
	}
	return best
}

func entryFor(b domain.BenchmarkModel) domain.MatchEntry {
	return domain.MatchEntry{
		Rank:              b.Rank,
		IntelligenceIndex: b.IntelligenceIndex,
		CodingIndex:       b.CodingIndex,
		MathIndex:         b.MathIndex,
		Flagship:          b.Flagship,
	}
}

func familyOrEmpty(provider string) string {
	if provider == "" {
		return ""
	}
	return providerFamily(provider)
}

func nameKeys(values ...string) []nameKey {
	var keys []nameKey
	for _, v := range values {
		k := normalizeModelName(v)
		if k == "" || slices.ContainsFunc(keys, func(e nameKey) bool { return e.key == k }) {
			continue
		}
		keys = append(keys, nameKey{key: k, digits: versionDigits(k)})
	}
	return keys
}
