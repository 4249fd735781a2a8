package token

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxWordLength is the longest word, in code points, the lexicon accepts.
// Words at or above this length are dropped during scanning.
const MaxWordLength = 48

// Characters a word may contain beyond letters. Names like "Jean-Luc" and
// "O'Brien" tokenize as single words.
const (
	codeDash        = '-'
	codeSingleQuote = '\''
)

// codeCommercialAt flags display names shaped like email addresses.
// Records carrying it are rejected whole by ValidName, never tokenized.
const codeCommercialAt = '@'

// Pair is one tokenizer emission: an accepted word plus the accepted word
// immediately before it in the same name. Prev is empty when no accepted
// predecessor exists or when bigram emission is disabled for the locale.
type Pair struct {
	Word string
	Prev string
}

// ValidName reports whether a display name may be ingested at all.
// Names containing '@' are assumed to be email-address-shaped and are
// skipped by callers before tokenizing. This is a heuristic, not an
// email-syntax check.
func ValidName(name string) bool {
	return !strings.ContainsRune(name, codeCommercialAt)
}

// Scanner walks one display name left to right, yielding accepted words
// lazily. A word starts at a letter and extends across letters, dashes and
// apostrophes. Words of code-point length <= 1 or >= MaxWordLength are
// skipped without resetting the predecessor chain.
//
// A Scanner is single-use per pass; call Reset to restart from the
// beginning of the same name. Scanners are not safe for concurrent use.
type Scanner struct {
	runes   []rune
	pos     int
	prev    string
	bigrams bool
}

// NewScanner creates a Scanner over name. The name is NFC-normalized first
// so that composed and decomposed spellings of the same name tokenize
// identically. bigrams controls whether Pair.Prev is populated (locale
// policy, see UseBigrams).
func NewScanner(name string, bigrams bool) *Scanner {
	return &Scanner{
		runes:   []rune(norm.NFC.String(name)),
		bigrams: bigrams,
	}
}

// Next returns the next accepted word and reports whether one was found.
// Malformed input never fails; it simply yields fewer words.
func (s *Scanner) Next() (Pair, bool) {
	for s.pos < len(s.runes) {
		if !unicode.IsLetter(s.runes[s.pos]) {
			s.pos++
			continue
		}
		start := s.pos
		end := start + 1
		for end < len(s.runes) && isWordRune(s.runes[end]) {
			end++
		}
		s.pos = end

		// Single-letter words confuse capitalization of "I" downstream;
		// oversized words cannot be stored. Both are skipped, and skipped
		// words do not interrupt the predecessor chain.
		if n := end - start; n <= 1 || n >= MaxWordLength {
			continue
		}

		word := string(s.runes[start:end])
		p := Pair{Word: word}
		if s.bigrams && s.prev != "" {
			p.Prev = s.prev
		}
		s.prev = word
		return p, true
	}
	return Pair{}, false
}

// Reset rewinds the Scanner to the start of its name.
func (s *Scanner) Reset() {
	s.pos = 0
	s.prev = ""
}

// Pairs is a convenience wrapper that drains a Scanner into a slice.
func Pairs(name string, bigrams bool) []Pair {
	var out []Pair
	sc := NewScanner(name, bigrams)
	for {
		p, ok := sc.Next()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == codeDash || r == codeSingleQuote
}
