// Package testutil provides in-memory fakes shared by engine and CLI tests.
package testutil

import (
	"context"
	"sync"
)

// FakeLexicon is an in-memory Lexicon port implementation that records
// every call for assertion.
//
// Thread-safety: all methods are safe for concurrent use so tests can run
// the engine worker alongside assertions.
type FakeLexicon struct {
	mu sync.Mutex

	words   map[string]int // word -> frequency
	bigrams map[[2]string]int

	// Call counters for asserting the engine's access patterns.
	WordInserts   int
	BigramInserts int
	Lookups       int
	YieldQueries  int

	// YieldEvery makes ShouldYield report true on every Nth query.
	// Zero disables yielding.
	YieldEvery int
}

// NewFakeLexicon creates an empty FakeLexicon.
func NewFakeLexicon() *FakeLexicon {
	return &FakeLexicon{
		words:   make(map[string]int),
		bigrams: make(map[[2]string]int),
	}
}

// AddWord implements lexicon.Lexicon.
func (f *FakeLexicon) AddWord(ctx context.Context, word string, frequency int, blacklisted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.WordInserts++
	if frequency > f.words[word] {
		f.words[word] = frequency
	}
	return nil
}

// AddBigram implements lexicon.Lexicon.
func (f *FakeLexicon) AddBigram(ctx context.Context, prev, word string, frequency int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BigramInserts++
	key := [2]string{prev, word}
	if frequency > f.bigrams[key] {
		f.bigrams[key] = frequency
	}
	return nil
}

// ContainsWord implements lexicon.Lexicon.
func (f *FakeLexicon) ContainsWord(ctx context.Context, word string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lookups++
	_, ok := f.words[word]
	return ok, nil
}

// ContainsBigram implements lexicon.Lexicon.
func (f *FakeLexicon) ContainsBigram(ctx context.Context, prev, word string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lookups++
	_, ok := f.bigrams[[2]string{prev, word}]
	return ok, nil
}

// ShouldYield implements lexicon.Lexicon.
func (f *FakeLexicon) ShouldYield() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.YieldQueries++
	return f.YieldEvery > 0 && f.YieldQueries%f.YieldEvery == 0
}

// WordFrequency returns the stored frequency for word, or zero.
func (f *FakeLexicon) WordFrequency(word string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.words[word]
}

// BigramFrequency returns the stored frequency for prev -> word, or zero.
func (f *FakeLexicon) BigramFrequency(prev, word string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bigrams[[2]string{prev, word}]
}

// WordCount returns the number of distinct stored words.
func (f *FakeLexicon) WordCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.words)
}

// BigramCount returns the number of distinct stored bigram edges.
func (f *FakeLexicon) BigramCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bigrams)
}

// InsertCalls returns the total number of insertion calls observed.
func (f *FakeLexicon) InsertCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.WordInserts + f.BigramInserts
}

// LookupCalls returns the total number of lookup calls observed.
func (f *FakeLexicon) LookupCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Lookups
}
