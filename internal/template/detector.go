package template

import "strings"

// IsTemplate reports whether text carries placeholder markup: both "[" and "]",
// or both "{{" and "}}". Brackets are not checked for pairing.
func IsTemplate(text string) bool {
	return strings.Contains(text, "[") && strings.Contains(text, "]") ||
		strings.Contains(text, "{{") && strings.Contains(text, "}}")
}
