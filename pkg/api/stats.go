package api

// StatsResponse is the body of GET /v1/stats.
type StatsResponse struct {
	Days       int             `json:"days"`
	Totals     StatsTotals     `json:"totals"`
	Daily      []DailyStats    `json:"daily"`
	Categories []CategoryStats `json:"categories"`
	TopModels  []ModelStats    `json:"top_models"`
}

type StatsTotals struct {
	Requests         int     `json:"requests"`
	Errors           int     `json:"errors"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
}

type DailyStats struct {
	Date             string  `json:"date"`
	Requests         int     `json:"requests"`
	Errors           int     `json:"errors"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
}

type CategoryStats struct {
	Category      string  `json:"category"`
	Requests      int     `json:"requests"`
	AvgConfidence float64 `json:"avg_confidence"`
}

type ModelStats struct {
	ModelID  string `json:"model_id"`
	Requests int    `json:"requests"`
}
