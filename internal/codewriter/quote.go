package codewriter

import "strings"

// Quote renders s as a string literal delimited by delim ("'", "\"" or
// "`"). Backslashes, the delimiter and line breaks are escaped, and so is
// "${" inside template literals. An empty delim returns s unchanged.
func Quote(s, delim string) string {
	if delim == "" {
		return s
	}
	pairs := []string{`\`, `\\`, delim, `\` + delim, "\n", `\n`, "\r", `\r`, "\u2028", `\u2028`, "\u2029", `\u2029`}
	if delim == "`" {
		pairs = append(pairs, "${", `\${`)
	}
	return delim + strings.NewReplacer(pairs...).Replace(s) + delim
}
