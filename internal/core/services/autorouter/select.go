package autorouter

import (
	"fmt"
	"math"
	"slices"

	"github.com/nulzo/autorouter/internal/core/domain"
)

// Selection is the outcome of scoring a candidate list for one category.
type Selection struct {
	Model      domain.RankedModel
	Confidence float64
	Reasoning  string
}

// criterion scores a candidate for one category. Candidates without a
// score are skipped.
type criterion struct {
	label  string
	byRank bool
	score  func(domain.RankedModel) (float64, bool)
}

var (
	byCodingIndex = criterion{
		label: "coding index",
		score: func(m domain.RankedModel) (float64, bool) { return deref(m.CodingIndex) },
	}
	byMathIndex = criterion{
		label: "math index",
		score: func(m domain.RankedModel) (float64, bool) { return deref(m.MathIndex) },
	}
	// byRank negates the rank so the lowest rank scores highest.
	byRank = criterion{
		label:  "benchmark rank",
		byRank: true,
		score: func(m domain.RankedModel) (float64, bool) {
			if m.Rank == nil {
				return 0, false
			}
			return -float64(*m.Rank), true
		},
	}
)

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// SelectModel picks the best candidate for category.
//
// Candidates are visited in catalog order (see domain.Ordering) and a later
// candidate only replaces the current best with a strictly greater score, so
// ties go to the model that sorts first. Quick prompts are restricted to fast
// models when there are any. When no candidate has a score for the category
// the rank is used instead, and when nothing is ranked either the first
// candidate in catalog order wins with zero confidence.
func SelectModel(category domain.TaskCategory, candidates []domain.RankedModel) (*Selection, error) {
	if len(candidates) == 0 {
		return nil, domain.NoEligibleModelError("No eligible models in the catalog")
	}

	ordering := domain.NewOrdering()
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b domain.RankedModel) int {
		return ordering.Compare(a.OrderKey(), b.OrderKey())
	})

	pool := sorted
	crit := byRank
	switch category {
	case domain.CategoryCoding:
		crit = byCodingIndex
	case domain.CategoryMathReasoning:
		crit = byMathIndex
	case domain.CategoryQuick:
		if fast := fastOnly(sorted); len(fast) > 0 {
			pool = fast
			crit.label = "benchmark rank among fast models"
		}
	}

	best, ok := pickBest(pool, crit)
	if !ok && category != domain.CategoryGeneral {
		best, ok = pickBest(sorted, byRank)
	}
	if !ok {
		return &Selection{
			Model:      sorted[0],
			Confidence: 0,
			Reasoning: fmt.Sprintf("Classified as %s. No candidate carries benchmark data, so %s was chosen by catalog order.",
				category, sorted[0].ID),
		}, nil
	}

	return &Selection{
		Model:      best.model,
		Confidence: best.confidence(),
		Reasoning:  best.reasoning(category),
	}, nil
}

type scored struct {
	crit     criterion
	model    domain.RankedModel
	score    float64
	runnerUp *domain.RankedModel
	second   float64
}

func pickBest(pool []domain.RankedModel, crit criterion) (scored, bool) {
	best := scored{crit: crit}
	found := false
	for _, m := range pool {
		s, ok := crit.score(m)
		if !ok {
			continue
		}
		switch {
		case !found:
			best.model, best.score = m, s
			found = true
		case s > best.score:
			prev := best.model
			best.runnerUp, best.second = &prev, best.score
			best.model, best.score = m, s
		case best.runnerUp == nil || s > best.second:
			runner := m
			best.runnerUp, best.second = &runner, s
		}
	}
	return best, found
}

func fastOnly(models []domain.RankedModel) []domain.RankedModel {
	var out []domain.RankedModel
	for _, m := range models {
		if m.Fast {
			out = append(out, m)
		}
	}
	return out
}

// confidence maps the margin between the best and second-best score onto
// [0.5, 1). A single scored candidate is certain.
func (s scored) confidence() float64 {
	if s.runnerUp == nil {
		return 1
	}
	gap := s.score - s.second
	scale := math.Max(math.Abs(s.score), math.Abs(s.second))
	if scale == 0 {
		return 0.5
	}
	return 0.5 + 0.5*math.Tanh(3*gap/scale)
}

func (s scored) reasoning(category domain.TaskCategory) string {
	if s.runnerUp == nil {
		return fmt.Sprintf("Classified as %s. %s is the only candidate with a %s (%s).",
			category, s.model.ID, s.crit.label, s.format(s.score))
	}
	return fmt.Sprintf("Classified as %s. %s has the best %s (%s), ahead of %s (%s).",
		category, s.model.ID, s.crit.label, s.format(s.score), s.runnerUp.ID, s.format(s.second))
}

func (s scored) format(v float64) string {
	if s.crit.byRank {
		return fmt.Sprintf("#%d", int(-v))
	}
	return fmt.Sprintf("%.2f", v)
}
