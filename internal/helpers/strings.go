package helpers

import (
	"strings"
	"unicode/utf8"
)

// Truncate shortens s to at most n runes, ending in "..." when anything was cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// LowerKeys returns a copy of m with lower-cased keys. On collision the last key visited wins.
func LowerKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}
