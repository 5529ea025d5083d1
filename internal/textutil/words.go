package textutil

import "strings"

// StrikeFilter removes words that begin with any configured prefix.
// Matching is case-insensitive.
type StrikeFilter struct {
	prefixes []string
}

// NewStrikeFilter lower-cases the prefixes and drops empty entries.
func NewStrikeFilter(prefixes []string) StrikeFilter {
	lowered := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		prefix = strings.ToLower(strings.TrimSpace(prefix))
		if prefix == "" {
			continue
		}
		lowered = append(lowered, prefix)
	}
	return StrikeFilter{prefixes: lowered}
}

// Apply returns the words that do not start with a strike prefix, in order.
func (f StrikeFilter) Apply(words []string) []string {
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if f.Struck(word) {
			continue
		}
		kept = append(kept, word)
	}
	return kept
}

// Struck reports whether word starts with one of the prefixes.
func (f StrikeFilter) Struck(word string) bool {
	lower := strings.ToLower(word)
	for _, prefix := range f.prefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
