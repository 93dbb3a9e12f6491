package utils

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// Initials returns the avatar fallback letter for a display name.
func Initials(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return strings.ToUpper(string(r))
}

// Excerpt shortens markdown-ish content for list cards.
func Excerpt(content string, max int) string {
	cleaned := strings.NewReplacer("#", "", "*", "", "`", "", "\n", " ").Replace(content)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	runes := []rune(cleaned)
	if len(runes) <= max {
		return cleaned
	}
	return string(runes[:max]) + "..."
}
