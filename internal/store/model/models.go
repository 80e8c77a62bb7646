package model

import (
	"database/sql"
	"time"
)

// APIKey is the credential used to access the API.
type APIKey struct {
	ID         string       `db:"id" json:"id"`
	Name       string       `db:"name" json:"name"`
	KeyHash    string       `db:"key_hash" json:"-"`            // Never return hash
	KeyPrefix  string       `db:"key_prefix" json:"key_prefix"` // Display only
	LastUsedAt sql.NullTime `db:"last_used_at" json:"last_used_at,omitempty"`
	IsActive   bool         `db:"is_active" json:"is_active"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// RoutingLog captures one autoroute decision, failed ones included.
type RoutingLog struct {
	ID               string    `db:"id" json:"id"`
	APIKeyID         string    `db:"api_key_id" json:"api_key_id"`
	AppName          string    `db:"app_name" json:"app_name"`
	PromptChars      int       `db:"prompt_chars" json:"prompt_chars"`
	Category         string    `db:"category" json:"category"`
	SelectedModelID  string    `db:"selected_model_id" json:"selected_model_id"`
	Confidence       float64   `db:"confidence" json:"confidence"`
	ClassifierModel  string    `db:"classifier_model" json:"classifier_model"`
	PromptTokens     int       `db:"prompt_tokens" json:"prompt_tokens"`
	CompletionTokens int       `db:"completion_tokens" json:"completion_tokens"`
	LatencyMS        int64     `db:"latency_ms" json:"latency_ms"`
	StatusCode       int       `db:"status_code" json:"status_code"`
	ErrorKind        string    `db:"error_kind" json:"error_kind,omitempty"`
	IPAddress        string    `db:"ip_address" json:"ip_address"`
	UserAgent        string    `db:"user_agent" json:"user_agent"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// DailyStats represents aggregated routing data for a specific day.
type DailyStats struct {
	Date             string  `db:"date" json:"date"`
	TotalRequests    int     `db:"total_requests" json:"total_requests"`
	ErrorRequests    int     `db:"error_requests" json:"error_requests"`
	PromptTokens     int     `db:"prompt_tokens" json:"prompt_tokens"`
	CompletionTokens int     `db:"completion_tokens" json:"completion_tokens"`
	AverageLatency   float64 `db:"avg_latency" json:"avg_latency"`
}

// CategoryStats counts successful decisions per task category.
type CategoryStats struct {
	Category      string  `db:"category" json:"category"`
	TotalRequests int     `db:"total_requests" json:"total_requests"`
	AvgConfidence float64 `db:"avg_confidence" json:"avg_confidence"`
}

// ModelStats counts how often a model was selected.
type ModelStats struct {
	ModelID       string `db:"model_id" json:"model_id"`
	TotalRequests int    `db:"total_requests" json:"total_requests"`
}
