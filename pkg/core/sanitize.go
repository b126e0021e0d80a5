package core

import (
	"strings"
	"unicode/utf8"
)

// sanitizeText trims surrounding whitespace and caps the result at limit runes.
func sanitizeText(t string, limit int) string {
	t = strings.TrimSpace(t)
	if utf8.RuneCountInString(t) <= limit {
		return t
	}
	return string([]rune(t)[:limit])
}
