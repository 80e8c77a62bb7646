package catalog

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	variantTag    = regexp.MustCompile(`:[a-z0-9._-]+$`)
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	// 2024-08-06, 20241022, and short stamps like -0613 or _2407
	versionStamp = regexp.MustCompile(`[\s_-]+(\d{4}-\d{2}-\d{2}|\d{8}|\d{4})$`)
	releaseTag   = regexp.MustCompile(`[\s_-]+(instruct|chat|preview|latest|exp|experimental|beta|hf)$`)
)

// providerAliases folds marketplace and benchmark provider slugs into one family.
var providerAliases = map[string]string{
	"metallama":      "meta",
	"meta":           "meta",
	"mistralai":      "mistral",
	"mistral":        "mistral",
	"xai":            "xai",
	"alibaba":        "qwen",
	"qwen":           "qwen",
	"deepseekai":     "deepseek",
	"deepseek":       "deepseek",
	"googledeepmind": "google",
	"google":         "google",
	"amazon":         "amazon",
	"aws":            "amazon",
	"moonshotai":     "moonshot",
	"moonshot":       "moonshot",
	"zai":            "zhipu",
	"zaiorg":         "zhipu",
	"zhipu":          "zhipu",
	"zhipuai":        "zhipu",
	"cohere":         "cohere",
	"openai":         "openai",
	"anthropic":      "anthropic",
	"microsoft":      "microsoft",
	"nvidia":         "nvidia",
}

// providerFamily returns the canonical family of a provider name.
func providerFamily(provider string) string {
	key := alnum(strings.ToLower(provider))
	if fam, ok := providerAliases[key]; ok {
		return fam
	}
	return key
}

// normalizeModelName reduces a model name or slug to a comparable key.
func normalizeModelName(s string) string {
	return alnum(stripModelName(s))
}

// stripModelName lower-cases s and drops provider prefixes, variant tags,
// parentheticals, date stamps and release qualifiers, keeping punctuation.
func stripModelName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	// "openai/gpt-4o" -> "gpt-4o"
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	// "OpenAI: GPT-4o" -> "gpt-4o"
	if i := strings.Index(s, ": "); i >= 0 {
		s = s[i+2:]
	}

	s = variantTag.ReplaceAllString(s, "")
	s = parenthetical.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	for {
		stripped := releaseTag.ReplaceAllString(versionStamp.ReplaceAllString(s, ""), "")
		stripped = strings.TrimSpace(stripped)
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// versionDigits returns the digits of a normalized key in order, so
// "claude35sonnet" yields "35" whichever separators the source name used.
func versionDigits(key string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, key)
}

func alnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// similarity is 1 - levenshtein(a, b) / max(len(a), len(b)).
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
