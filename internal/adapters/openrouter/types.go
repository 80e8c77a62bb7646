package openrouter

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Model mirrors one entry of the OpenRouter /models listing.
type Model struct {
	ID            string       `json:"id"`
	CanonicalSlug string       `json:"canonical_slug,omitempty"`
	Name          string       `json:"name"`
	Provider      string       `json:"provider,omitempty"`
	Created       int64        `json:"created"`
	Description   string       `json:"description"`
	ContextLength int          `json:"context_length"`
	Architecture  Architecture `json:"architecture"`
	Pricing       Pricing      `json:"pricing"`
	TopProvider   TopProvider  `json:"top_provider"`
}

type Architecture struct {
	Modality     string `json:"modality"`
	Tokenizer    string `json:"tokenizer"`
	InstructType string `json:"instruct_type,omitempty"`
}

// Pricing values are decimal strings in USD per token.
type Pricing struct {
	Prompt     Price `json:"prompt"`
	Completion Price `json:"completion"`
	Image      Price `json:"image,omitempty"`
	Request    Price `json:"request,omitempty"`
}

type TopProvider struct {
	ContextLength       int  `json:"context_length"`
	MaxCompletionTokens int  `json:"max_completion_tokens,omitempty"`
	IsModerated         bool `json:"is_moderated"`
}

type listResponse struct {
	Data []Model `json:"data"`
}

// Price accepts both quoted and bare JSON numbers. Empty strings decode to 0.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(p), 'f', -1, 64))
}
