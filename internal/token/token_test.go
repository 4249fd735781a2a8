package token

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestScanner_SimpleName(t *testing.T) {
	pairs := Pairs("Jane Doe", true)
	require.Len(t, pairs, 2)
	assert.Equal(t, Pair{Word: "Jane"}, pairs[0])
	assert.Equal(t, Pair{Word: "Doe", Prev: "Jane"}, pairs[1])
}

func TestScanner_DashAndApostrophe(t *testing.T) {
	pairs := Pairs("Jean-Luc O'Brien", true)
	require.Len(t, pairs, 2)
	assert.Equal(t, "Jean-Luc", pairs[0].Word)
	assert.Equal(t, "O'Brien", pairs[1].Word)
	assert.Equal(t, "Jean-Luc", pairs[1].Prev)
}

func TestScanner_EmptyName(t *testing.T) {
	assert.Empty(t, Pairs("", true))
}

func TestScanner_NoLetters(t *testing.T) {
	assert.Empty(t, Pairs("123 456 !!!", true))
}

// Single-letter words are skipped without resetting the predecessor chain:
// the word after the skip pairs with the last accepted word.
func TestScanner_SingleLetterSkippedKeepsChain(t *testing.T) {
	pairs := Pairs("Dr J Watson", true)
	require.Len(t, pairs, 2)
	assert.Equal(t, Pair{Word: "Dr"}, pairs[0])
	assert.Equal(t, Pair{Word: "Watson", Prev: "Dr"}, pairs[1])
}

func TestScanner_OversizedWordSkipped(t *testing.T) {
	long := strings.Repeat("a", MaxWordLength)
	pairs := Pairs("Jo "+long+" Doe", true)
	require.Len(t, pairs, 2)
	assert.Equal(t, "Jo", pairs[0].Word)
	assert.Equal(t, Pair{Word: "Doe", Prev: "Jo"}, pairs[1])
}

// Every emitted word satisfies 1 < len < MaxWordLength in code points,
// for any input.
func TestScanner_LengthBounds(t *testing.T) {
	inputs := []string{
		"a b c",
		strings.Repeat("x", MaxWordLength+5),
		strings.Repeat("y", MaxWordLength-1),
		"normal Name-With-Dashes o'clock " + strings.Repeat("z", 200),
		"é ü ß",
	}
	for _, in := range inputs {
		for _, p := range Pairs(in, true) {
			n := len([]rune(p.Word))
			assert.Greater(t, n, 1, "word %q from %q", p.Word, in)
			assert.Less(t, n, MaxWordLength, "word %q from %q", p.Word, in)
		}
	}
}

func TestScanner_BigramsDisabled(t *testing.T) {
	for _, p := range Pairs("Marie Curie", false) {
		assert.Empty(t, p.Prev)
	}
}

func TestScanner_NFCNormalization(t *testing.T) {
	// Decomposed "André" (combining acute) must match the composed form.
	pairs := Pairs("André", true)
	require.Len(t, pairs, 1)
	assert.Equal(t, "André", pairs[0].Word)
}

func TestScanner_Reset(t *testing.T) {
	sc := NewScanner("Jane Doe", true)
	first, ok := sc.Next()
	require.True(t, ok)

	sc.Reset()
	again, ok := sc.Next()
	require.True(t, ok)
	assert.Equal(t, first, again)

	// The predecessor chain restarts too.
	second, ok := sc.Next()
	require.True(t, ok)
	assert.Equal(t, "Jane", second.Prev)
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Jane Doe"))
	assert.True(t, ValidName(""))
	assert.False(t, ValidName("a@b.com"))
	assert.False(t, ValidName("Jane Doe <jane@example.com>"))
}

func TestUseBigrams(t *testing.T) {
	assert.True(t, UseBigrams(language.English))
	assert.True(t, UseBigrams(language.AmericanEnglish))
	assert.False(t, UseBigrams(language.French))
	assert.False(t, UseBigrams(language.Japanese))
	assert.False(t, UseBigrams(language.Und))
}

// TestScanner_Golden locks the tokenizer's behavior over a small name
// corpus. Regenerate with: go test ./internal/token -update
func TestScanner_Golden(t *testing.T) {
	corpus := []string{
		"Jane Doe",
		"Jean-Luc O'Brien",
		"Dr. J Watson",
		"Marie Curie 123",
		"a@b.com",
		"李 小龙",
	}

	var b bytes.Buffer
	for _, name := range corpus {
		fmt.Fprintf(&b, "=== %s\n", name)
		if !ValidName(name) {
			fmt.Fprintln(&b, "rejected")
			continue
		}
		for _, p := range Pairs(name, true) {
			prev := p.Prev
			if prev == "" {
				prev = "-"
			}
			fmt.Fprintf(&b, "%s %s\n", p.Word, prev)
		}
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "tokenizer_corpus", b.Bytes())
}
