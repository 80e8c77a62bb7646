package benchmark

// Model accepts both the flat leaderboard shape and the nested
// Artificial Analysis shape.
type Model struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Provider string   `json:"provider,omitempty"`
	Rank     *int     `json:"rank,omitempty"`
	Creator  *Creator `json:"model_creator,omitempty"`

	IntelligenceIndex *float64 `json:"intelligence_index,omitempty"`
	CodingIndex       *float64 `json:"coding_index,omitempty"`
	MathIndex         *float64 `json:"math_index,omitempty"`

	Evaluations *Evaluations `json:"evaluations,omitempty"`
}

type Creator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Evaluations struct {
	IntelligenceIndex *float64 `json:"artificial_analysis_intelligence_index"`
	CodingIndex       *float64 `json:"artificial_analysis_coding_index"`
	MathIndex         *float64 `json:"artificial_analysis_math_index"`
}

type listResponse struct {
	Status int     `json:"status"`
	Data   []Model `json:"data"`
}
