package text

import "strings"

// StopwordSet holds lowercase stopwords. The set is supplied by the caller;
// this package never loads a stopword corpus.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a set from words, lowercasing and trimming each one.
// Blank entries are skipped. The result is never nil.
func NewStopwordSet(words ...string) StopwordSet {
	set := make(StopwordSet, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}

		set[w] = struct{}{}
	}

	return set
}

// Contains reports whether word is a stopword.
func (s StopwordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Len returns the number of stopwords.
func (s StopwordSet) Len() int {
	return len(s)
}
