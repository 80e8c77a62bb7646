package catalog

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/nulzo/autorouter/internal/core/domain"
)

// cheapPromptPrice is $0.50 per million prompt tokens.
const cheapPromptPrice = 0.5 / 1_000_000

var fastMarkers = []string{"mini", "flash", "haiku", "nano", "lite", "small", "turbo", "fast", "instant"}

// TransformOpenRouterModel builds a catalog record from a marketplace
// descriptor and its benchmark match, if any. The match values are copied
// through unchanged.
func TransformOpenRouterModel(raw domain.MarketplaceModel, match *domain.MatchEntry) (domain.ModelRecord, error) {
	if raw.ID == "" {
		return domain.ModelRecord{}, fmt.Errorf("marketplace model has no id")
	}
	if raw.Provider == "" {
		return domain.ModelRecord{}, fmt.Errorf("marketplace model %s has no provider", raw.ID)
	}

	record := domain.ModelRecord{
		ID:            raw.ID,
		Name:          displayName(raw.Name, raw.ID),
		Provider:      raw.Provider,
		Description:   raw.Description,
		ContextLength: raw.ContextLength,
		Pricing: domain.Pricing{
			Prompt:     raw.PromptPrice,
			Completion: raw.CompletionPrice,
		},
	}
	record.Fast = isFast(record)

	if match != nil {
		if match.Rank != nil && *match.Rank > 0 {
			r := *match.Rank
			record.Rank = &r
		}
		record.IntelligenceIndex = copyFloat(match.IntelligenceIndex)
		record.CodingIndex = copyFloat(match.CodingIndex)
		record.MathIndex = copyFloat(match.MathIndex)
		record.Flagship = match.Flagship
	}
	return record, nil
}

// displayName drops the "Provider: " prefix marketplaces put on names.
func displayName(name, id string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return id
	}
	if i := strings.Index(name, ": "); i > 0 && i+2 < len(name) {
		return name[i+2:]
	}
	return name
}

// isFast matches markers against whole tokens of the id and name; "gemini"
// does not carry "mini".
func isFast(r domain.ModelRecord) bool {
	tokens := strings.FieldsFunc(strings.ToLower(r.ID+" "+r.Name), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
	for _, tok := range tokens {
		if slices.Contains(fastMarkers, tok) {
			return true
		}
	}
	return r.Pricing.Prompt > 0 && r.Pricing.Prompt <= cheapPromptPrice
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
