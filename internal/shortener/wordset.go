package shortener

import (
	"strings"
	"sync"
)

// WordSet records lower-cased words already used in a run.
type WordSet struct {
	mu    sync.Mutex
	words map[string]struct{}
}

// NewWordSet returns an empty set.
func NewWordSet() *WordSet {
	return &WordSet{words: make(map[string]struct{})}
}

// Reset forgets every reserved word.
func (s *WordSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = make(map[string]struct{})
}

// Dedup drops words whose lower-cased form is already reserved and then
// reserves each survivor together with its plural flip. Membership is checked
// for the whole slice before anything is reserved, so a word repeated inside
// one segment survives every time.
func (s *WordSet) Dedup(words []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]string, 0, len(words))
	for _, word := range words {
		if _, ok := s.words[strings.ToLower(word)]; ok {
			continue
		}
		kept = append(kept, word)
	}
	for _, word := range kept {
		lower := strings.ToLower(word)
		s.words[lower] = struct{}{}
		s.words[PluralFlip(lower)] = struct{}{}
	}
	return kept
}

// Contains reports whether word (any case) is reserved.
func (s *WordSet) Contains(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of reserved entries.
func (s *WordSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.words)
}

// PluralFlip toggles a trailing "s": "drum" becomes "drums" and "drums"
// becomes "drum". It is not real pluralization; "bus" flips to "bu". Dedup
// passes lower-cased words, so "DRUMS" reserves "drum".
func PluralFlip(word string) string {
	if strings.HasSuffix(word, "s") {
		return word[:len(word)-1]
	}
	return word + "s"
}
