package resolver

import "strings"

// hint truncation bounds: values longer than hintMaxLen are cut to
// hintKeepLen characters plus an ellipsis.
const (
	hintMaxLen  = 30
	hintKeepLen = 27
)

// FormatHint prepares a resolved value for inline display: one layer of
// matching outer quotes is stripped, and long values are truncated.
// Returns false for blank input.
func FormatHint(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}

	if len(trimmed) >= 2 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		if first == last && (first == '"' || first == '\'') {
			trimmed = trimmed[1 : len(trimmed)-1]
		}
	}

	if len(trimmed) > hintMaxLen {
		trimmed = trimmed[:hintKeepLen] + "..."
	}
	return trimmed, true
}
