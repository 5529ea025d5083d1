package textutil

import "unicode/utf8"

// Truncate returns at most limit runes of s. A negative limit yields "".
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for idx := range s {
		if count == limit {
			return s[:idx]
		}
		count++
	}
	return s
}

// Length reports the length of s in runes.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
