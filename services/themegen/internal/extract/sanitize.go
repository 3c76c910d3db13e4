package extract

import (
	"regexp"
	"strings"
)

var (
	quoteFixer = strings.NewReplacer(
		"\uFEFF", "",
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
	)

	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// Sanitize applies the repairs models most often need before a JSON parse:
// BOM removal, straight quotes for curly ones, no comma before a closing
// brace or bracket, and trimmed whitespace. The output is not guaranteed
// to be valid JSON.
func Sanitize(s string) string {
	s = quoteFixer.Replace(s)
	s = trailingComma.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
