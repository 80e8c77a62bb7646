package api

// ModelPricing is the USD price per token.
type ModelPricing struct {
	Prompt     float64 `json:"prompt"`
	Completion float64 `json:"completion"`
}

// Model is a catalog entry as listed by GET /v1/models.
type Model struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Provider          string       `json:"provider"`
	Description       string       `json:"description,omitempty"`
	ContextLength     int          `json:"context_length,omitempty"`
	Pricing           ModelPricing `json:"pricing"`
	Flagship          bool         `json:"flagship"`
	Fast              bool         `json:"fast"`
	Rank              *int         `json:"rank"`
	IntelligenceIndex *float64     `json:"intelligence_index"`
	CodingIndex       *float64     `json:"coding_index"`
	MathIndex         *float64     `json:"math_index"`
}

type ModelList struct {
	Object string  `json:"object"` // "list"
	Data   []Model `json:"data"`
}
