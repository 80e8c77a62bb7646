package cli

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// jsonToken matches keys (with their colon), strings, literals and numbers.
var jsonToken = regexp.MustCompile(`("(\\u[a-zA-Z0-9]{4}|\\[^u]|[^\\"])*"(\s*:)?|\b(true|false|null)\b|-?\d+(?:\.\d*)?(?:[eE][+\-]?\d+)?)`)

// HighlightJSON colours a JSON document for the terminal.
func HighlightJSON(doc string) string {
	if !Enabled() {
		return doc
	}
	return jsonToken.ReplaceAllStringFunc(doc, func(tok string) string {
		switch {
		case strings.HasSuffix(tok, ":"):
			return Blue + strings.TrimSuffix(tok, ":") + ResetCode + ":"
		case strings.HasPrefix(tok, `"`):
			return Green + tok + ResetCode
		case tok == "true" || tok == "false":
			return Yellow + tok + ResetCode
		case tok == "null":
			return DimCode + tok + ResetCode
		default:
			return Purple + tok + ResetCode
		}
	})
}

// PrettyFormat renders v as indented, highlighted JSON. Strings and byte
// slices are assumed to already hold JSON.
func PrettyFormat(v any) string {
	var doc string
	switch t := v.(type) {
	case []byte:
		doc = string(t)
	case string:
		doc = t
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprintf("%+v", v)
		}
		doc = string(b)
	}
	return HighlightJSON(doc)
}

// PrettyPrint writes PrettyFormat(v) to stdout.
func PrettyPrint(v any) {
	fmt.Println(PrettyFormat(v))
}
