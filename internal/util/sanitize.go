package util

import "strings"

// QuoteLiteral renders a string as a single-quoted T-SQL literal with
// embedded single quotes doubled. Empty input renders as ''.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// NormalizeName uppercases and trims a server name.
func NormalizeName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// CleanLines trims every line and drops blanks, preserving order.
func CleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// IntegerPart strips a trailing decimal fraction from a numeric string,
// so "15.0" becomes "15". Non-numeric input is returned unchanged.
func IntegerPart(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}
