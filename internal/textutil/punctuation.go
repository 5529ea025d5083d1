package textutil

import "strings"

// Punctuation rewrites punctuation in a path stem. Runes in Split are
// replaced with a single space and runes in Fill are removed.
type Punctuation struct {
	split *strings.Replacer
	fill  *strings.Replacer
}

// NewPunctuation builds a normalizer from the split and fill character sets.
// Each rune of the strings is treated as one member of its set.
func NewPunctuation(split, fill string) Punctuation {
	return Punctuation{
		split: runeReplacer(split, " "),
		fill:  runeReplacer(fill, ""),
	}
}

func runeReplacer(set, with string) *strings.Replacer {
	if set == "" {
		return nil
	}
	pairs := make([]string, 0, len(set)*2)
	seen := make(map[rune]struct{}, len(set))
	for _, r := range set {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		pairs = append(pairs, string(r), with)
	}
	return strings.NewReplacer(pairs...)
}

// Normalize applies the punctuation rules to the stem of path and reattaches
// the extension unchanged. Split replacement runs before fill deletion so
// deleting a character can never merge words that a split character kept
// apart.
func (p Punctuation) Normalize(path string) string {
	stem, ext := SplitExt(path)
	return p.Clean(stem) + ext
}

// Clean applies the split and fill rules to every rune of s.
func (p Punctuation) Clean(s string) string {
	if p.split != nil {
		s = p.split.Replace(s)
	}
	if p.fill != nil {
		s = p.fill.Replace(s)
	}
	return s
}

// SplitExt splits path into stem and extension. The extension starts at the
// last dot of the final path element; leading dots of that element never
// start an extension, so ".hidden" has none.
func SplitExt(path string) (string, string) {
	base := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		base = path[idx+1:]
	}
	offset := len(path) - len(base)

	start := 0
	for start < len(base) && base[start] == '.' {
		start++
	}
	dot := strings.LastIndex(base, ".")
	if dot < 0 || dot <= start {
		return path, ""
	}
	return path[:offset+dot], path[offset+dot:]
}

// Fields splits s into words around runs of whitespace.
func Fields(s string) []string {
	return strings.Fields(s)
}
