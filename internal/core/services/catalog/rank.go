package catalog

import (
	"sort"
	"strings"

	"github.com/nulzo/autorouter/internal/core/domain"
)

// RankBenchmarks returns a copy of the feed with ranks and flagship flags
// filled in.
//
// Explicit ranks from the feed win. When the feed carries no rank at all,
// entries are ranked 1..n by descending intelligence index, ties by name;
// entries without an index stay unranked. The best flagshipsPerProvider
// ranked entries of each provider family are flagships.
func RankBenchmarks(entries []domain.BenchmarkModel, flagshipsPerProvider int) []domain.BenchmarkModel {
	out := make([]domain.BenchmarkModel, len(entries))
	copy(out, entries)

	explicit := false
	for _, e := range out {
		if e.Rank != nil {
			explicit = true
			break
		}
	}

	if !explicit {
		var scored []int
		for i, e := range out {
			if e.IntelligenceIndex != nil {
				scored = append(scored, i)
			}
		}
		sort.SliceStable(scored, func(a, b int) bool {
			ea, eb := out[scored[a]], out[scored[b]]
			if *ea.IntelligenceIndex != *eb.IntelligenceIndex {
				return *ea.IntelligenceIndex > *eb.IntelligenceIndex
			}
			return strings.ToLower(ea.Name) < strings.ToLower(eb.Name)
		})
		for pos, idx := range scored {
			r := pos + 1
			out[idx].Rank = &r
		}
	}

	for i := range out {
		out[i].Flagship = false
	}
	if flagshipsPerProvider <= 0 {
		return out
	}

	byFamily := make(map[string][]int)
	var families []string
	for i, e := range out {
		if e.Rank == nil {
			continue
		}
		fam := providerFamily(e.Provider)
		if _, seen := byFamily[fam]; !seen {
			families = append(families, fam)
		}
		byFamily[fam] = append(byFamily[fam], i)
	}

	for _, fam := range families {
		idxs := byFamily[fam]
		sort.SliceStable(idxs, func(a, b int) bool {
			return *out[idxs[a]].Rank < *out[idxs[b]].Rank
		})
		for n, idx := range idxs {
			if n >= flagshipsPerProvider {
				break
			}
			out[idx].Flagship = true
		}
	}
	return out
}
