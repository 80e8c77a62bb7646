package domain

// Pricing is the per-token price of a model in USD.
type Pricing struct {
	Prompt     float64 `json:"prompt"`
	Completion float64 `json:"completion"`
}

// ModelRecord is a marketplace model enriched with benchmark data.
// Records are built once per catalog refresh and never mutated afterwards.
type ModelRecord struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Provider          string   `json:"provider"`
	Description       string   `json:"description,omitempty"`
	ContextLength     int      `json:"context_length,omitempty"`
	Pricing           Pricing  `json:"pricing"`
	Flagship          bool     `json:"flagship"`
	Fast              bool     `json:"fast"`
	Rank              *int     `json:"rank"`
	IntelligenceIndex *float64 `json:"intelligence_index"`
	CodingIndex       *float64 `json:"coding_index"`
	MathIndex         *float64 `json:"math_index"`
}

// Ranked reports whether the record carries a rank or the flagship flag.
func (m ModelRecord) Ranked() bool {
	return m.Flagship || m.Rank != nil
}

// Eligible reports whether the record can take part in automatic routing:
// it is ranked or has at least one benchmark index.
func (m ModelRecord) Eligible() bool {
	return m.Ranked() || m.IntelligenceIndex != nil || m.CodingIndex != nil || m.MathIndex != nil
}

// RankedModel is the view of a ModelRecord the autorouter scores.
type RankedModel struct {
	ID                string
	Name              string
	Provider          string
	Flagship          bool
	Fast              bool
	Rank              *int
	IntelligenceIndex *float64
	CodingIndex       *float64
	MathIndex         *float64
	PromptPrice       float64
}

// ToRankedModel converts a catalog record into the autorouter view.
func ToRankedModel(m ModelRecord) RankedModel {
	return RankedModel{
		ID:                m.ID,
		Name:              m.Name,
		Provider:          m.Provider,
		Flagship:          m.Flagship,
		Fast:              m.Fast,
		Rank:              m.Rank,
		IntelligenceIndex: m.IntelligenceIndex,
		CodingIndex:       m.CodingIndex,
		MathIndex:         m.MathIndex,
		PromptPrice:       m.Pricing.Prompt,
	}
}

// RankedModels returns the routable subset of a catalog in catalog order.
func RankedModels(records []ModelRecord) []RankedModel {
	out := make([]RankedModel, 0, len(records))
	for _, r := range records {
		if r.Eligible() {
			out = append(out, ToRankedModel(r))
		}
	}
	return out
}

// MatchEntry is the benchmark data attached to one marketplace model.
type MatchEntry struct {
	Rank              *int     `json:"rank"`
	IntelligenceIndex *float64 `json:"intelligence_index"`
	CodingIndex       *float64 `json:"coding_index"`
	MathIndex         *float64 `json:"math_index"`
	Flagship          bool     `json:"flagship"`
}

// MarketplaceModel is a validated model descriptor from the marketplace listing.
type MarketplaceModel struct {
	ID              string
	Name            string
	Provider        string
	Description     string
	ContextLength   int
	PromptPrice     float64
	CompletionPrice float64
}

// BenchmarkModel is a validated entry from the benchmark ranking feed.
type BenchmarkModel struct {
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	Provider          string   `json:"provider"`
	Rank              *int     `json:"rank"`
	Flagship          bool     `json:"flagship"`
	IntelligenceIndex *float64 `json:"intelligence_index"`
	CodingIndex       *float64 `json:"coding_index"`
	MathIndex         *float64 `json:"math_index"`
}
