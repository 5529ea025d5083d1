package textutil

import "strings"

// segmentReplacer strips characters that sample players and FAT-formatted
// cards reject in a path segment.
var segmentReplacer = strings.NewReplacer(
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeSegment replaces filesystem-unsafe characters in one path segment.
// Backslashes, colons, and asterisks become dashes; other unsafe characters
// are removed. The result is trimmed of surrounding whitespace.
func SanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return ""
	}
	return strings.TrimSpace(segmentReplacer.Replace(segment))
}
