// Package text turns raw document text into lowercase word tokens.
package text

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/example/textcnn-prep/internal/preperr"
)

// ErrNoStopwords is returned when stopword removal is requested without a
// stopword set.
var ErrNoStopwords = fmt.Errorf("text: stopword removal requested but no stopword set supplied: %w", preperr.ErrConfiguration)

// contractions are split off in this order so they become separate tokens.
var contractions = []string{"'s", "'ve", "n't", "'re", "'d", "'ll"}

// Options controls Words and Join.
type Options struct {
	// RemoveStopwords drops tokens found in Stopwords.
	RemoveStopwords bool
	// Stopwords must be non-nil when RemoveStopwords is set.
	Stopwords StopwordSet
	// FoldUnicode maps accented Latin letters to their ASCII base letter
	// instead of discarding them.
	FoldUnicode bool
}

// Words normalizes raw text into a token sequence:
//  1. Optionally fold accents (NFKD, combining marks dropped).
//  2. Replace every rune that is not an ASCII letter or apostrophe with a space.
//  3. Lowercase, then split off the suffixes 's 've n't 're 'd 'll.
//  4. Split on whitespace and drop stopwords if requested.
//
// Uppercase contractions split the same way as lowercase ones ("IT'S" gives
// "it" and "'s"). Empty input yields an empty, non-nil slice.
func Words(raw string, opts Options) ([]string, error) {
	if opts.RemoveStopwords && opts.Stopwords == nil {
		return nil, ErrNoStopwords
	}

	s := raw
	if opts.FoldUnicode {
		s = foldAccents(s)
	}

	s = strings.Map(keepLetter, s)
	s = strings.ToLower(s)

	for _, suffix := range contractions {
		s = strings.ReplaceAll(s, suffix, " "+suffix)
	}

	tokens := strings.Fields(s)
	if !opts.RemoveStopwords {
		if tokens == nil {
			return []string{}, nil
		}

		return tokens, nil
	}

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !opts.Stopwords.Contains(tok) {
			kept = append(kept, tok)
		}
	}

	return kept, nil
}

// Join is Words with the tokens re-joined by single spaces.
func Join(raw string, opts Options) (string, error) {
	tokens, err := Words(raw, opts)
	if err != nil {
		return "", err
	}

	return strings.Join(tokens, " "), nil
}

func keepLetter(r rune) rune {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '\'' {
		return r
	}

	return ' '
}

func foldAccents(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}

		return r
	}, norm.NFKD.String(s))
}
