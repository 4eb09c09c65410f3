package domain

import "strings"

// Excerpt shortens content to at most maxRunes characters, cutting at the
// last word boundary and appending "...". Content that already fits is
// returned unchanged.
func Excerpt(content string, maxRunes int) string {
	runes := []rune(content)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return content
	}

	cut := string(runes[:maxRunes])
	if i := strings.LastIndexAny(cut, " \t\n"); i > 0 {
		cut = cut[:i]
	}

	return strings.TrimRight(cut, " \t\n.,;:") + "..."
}
