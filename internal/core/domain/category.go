package domain

import (
	"fmt"
	"strings"
)

// TaskCategory is the coarse kind of work a prompt asks for.
type TaskCategory string

const (
	CategoryCoding        TaskCategory = "coding"
	CategoryMathReasoning TaskCategory = "math_reasoning"
	CategoryGeneral       TaskCategory = "general"
	CategoryQuick         TaskCategory = "quick"
)

// Categories lists every category in the order the classifier is told about them.
var Categories = []TaskCategory{CategoryCoding, CategoryMathReasoning, CategoryGeneral, CategoryQuick}

var categoryAliases = map[string]TaskCategory{
	"coding":         CategoryCoding,
	"code":           CategoryCoding,
	"programming":    CategoryCoding,
	"math_reasoning": CategoryMathReasoning,
	"math":           CategoryMathReasoning,
	"reasoning":      CategoryMathReasoning,
	"mathematics":    CategoryMathReasoning,
	"general":        CategoryGeneral,
	"quick":          CategoryQuick,
	"simple":         CategoryQuick,
}

// ParseTaskCategory extracts a category from a classifier reply.
// The reply may carry punctuation, quotes or a short sentence, but it must
// name exactly one category; "not coding, general" is rejected.
func ParseTaskCategory(s string) (TaskCategory, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	if label == "" {
		return "", fmt.Errorf("empty category label")
	}

	label = strings.NewReplacer("-", "_", "/", "_").Replace(label)
	if c, ok := categoryAliases[strings.Trim(label, " .\"'`*")]; ok {
		return c, nil
	}

	words := strings.FieldsFunc(label, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && r != '_'
	})
	var found TaskCategory
	for _, w := range words {
		c, ok := categoryAliases[w]
		if !ok {
			continue
		}
		if found != "" && found != c {
			return "", fmt.Errorf("ambiguous category label %q", s)
		}
		found = c
	}
	if found == "" {
		return "", fmt.Errorf("unrecognised category label %q", s)
	}
	return found, nil
}

// AutorouteResult is the outcome of a single routing request.
type AutorouteResult struct {
	SelectedModelID string
	Category        TaskCategory
	Confidence      float64
	Reasoning       string

	// ClassifierModel and Usage describe the classification call.
	ClassifierModel string
	Usage           TokenUsage
}

// TokenUsage is the token accounting reported by an upstream completion.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
}
