package textutil

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordFormat selects the case transform applied to each word.
type WordFormat string

const (
	FormatNone  WordFormat = "none"
	FormatLower WordFormat = "lower"
	FormatUpper WordFormat = "upper"
	FormatTitle WordFormat = "title"
)

// ParseWordFormat maps a configuration value onto a WordFormat.
func ParseWordFormat(value string) (WordFormat, error) {
	switch WordFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatNone:
		return FormatNone, nil
	case FormatLower:
		return FormatLower, nil
	case FormatUpper:
		return FormatUpper, nil
	case FormatTitle:
		return FormatTitle, nil
	default:
		return FormatNone, fmt.Errorf("unknown word format %q (want none, lower, upper or title)", value)
	}
}

// Apply formats a single word. Unknown formats leave the word untouched.
func (f WordFormat) Apply(word string) string {
	switch f {
	case FormatLower:
		return strings.ToLower(word)
	case FormatUpper:
		return strings.ToUpper(word)
	case FormatTitle:
		// cases.Caser is stateful, so each call gets its own. Unicode word
		// breaking keeps "o'neil" as one word ("O'neil") and title-cases a
		// leading "ß" to "Ss".
		return cases.Title(language.Und).String(word)
	default:
		return word
	}
}

// ApplyAll formats every word into a new slice.
func (f WordFormat) ApplyAll(words []string) []string {
	out := make([]string, len(words))
	for i, word := range words {
		out[i] = f.Apply(word)
	}
	return out
}
