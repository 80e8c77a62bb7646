package api

// AutorouteRequest is the body of POST /v1/autoroute.
type AutorouteRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// AutorouteResponse is the result of a routing decision.
type AutorouteResponse struct {
	SelectedModelID string  `json:"selectedModelId"`
	Category        string  `json:"category"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}
