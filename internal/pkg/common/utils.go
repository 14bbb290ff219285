package common

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateUUID generates a random UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// TitleCase upper-cases the first letter of each whitespace-separated word
// and lower-cases the rest, e.g. "olive oil" -> "Olive Oil".
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
