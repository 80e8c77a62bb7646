package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeModelName(t *testing.T) {
	cases := map[string]string{
		"openai/gpt-4o":                      "gpt4o",
		"OpenAI: GPT-4o":                     "gpt4o",
		"GPT-4o (Nov '24)":                   "gpt4o",
		"anthropic/claude-3.5-sonnet:beta":   "claude35sonnet",
		"claude-3-5-sonnet-20241022":         "claude35sonnet",
		"gpt-4o-2024-08-06":                  "gpt4o",
		"gpt-4-0613":                         "gpt4",
		"meta-llama/llama-3.1-405b-instruct": "llama31405b",
		"Meta: Llama 3.1 8B Instruct (free)": "llama318b",
		"Mistral Large 2407":                 "mistrallarge",
		"Gemini 2.0 Flash Experimental":      "gemini20flash",
		"   ":                                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeModelName(in), in)
	}
}

func TestProviderFamily(t *testing.T) {
	assert.Equal(t, "meta", providerFamily("meta-llama"))
	assert.Equal(t, "meta", providerFamily("Meta"))
	assert.Equal(t, "xai", providerFamily("x-ai"))
	assert.Equal(t, "qwen", providerFamily("Alibaba"))
	assert.Equal(t, "mistral", providerFamily("mistralai"))
	assert.Equal(t, "unknownco", providerFamily("unknown-co"))
}

func TestVersionDigits(t *testing.T) {
	assert.Equal(t, "35", versionDigits(normalizeModelName("Claude 3.5 Sonnet")))
	assert.Equal(t, "35", versionDigits(normalizeModelName("claude-3-5-sonnet-20241022")))
	assert.Equal(t, "15", versionDigits(normalizeModelName("google/gemini-1.5-pro")))
	assert.Empty(t, versionDigits(normalizeModelName("Mistral Large 2407")))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1-3.0/7.0, similarity("kitten", "sitting"), 1e-9)
	assert.Equal(t, 1.0, similarity("", ""))
	assert.Equal(t, 1.0, similarity("gpt4o", "gpt4o"))
	assert.Less(t, similarity("gpt4o", "gpt4omini"), minSimilarity)
}
