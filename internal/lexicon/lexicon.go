package lexicon

import "context"

// Lexicon is the engine's port onto the external word/bigram store.
//
// The store itself (a mutable trie or dictionary) lives outside this
// module; the engine never holds a private copy of its contents and
// mutates it only through the insertion calls below.
//
// Thread-safety model: all insertion calls come from the engine's single
// rebuild worker, so implementations need not support concurrent writers
// from this engine. Lookup calls are pure and may interleave with writes
// from unrelated consumers of the store.
type Lexicon interface {
	// AddWord inserts word with the given frequency, or refreshes the
	// frequency if the word is already present. Repeated calls with the
	// same word must be idempotent apart from the frequency bump.
	// blacklisted marks words that must never surface as suggestions;
	// the engine always passes false.
	AddWord(ctx context.Context, word string, frequency int, blacklisted bool) error

	// AddBigram links prev -> word with the given frequency. Create or
	// refresh is the implementer's choice, but the edge must not be
	// duplicated.
	AddBigram(ctx context.Context, prev, word string, frequency int) error

	// ContainsWord reports whether word is present. Pure lookup, no
	// mutation.
	ContainsWord(ctx context.Context, word string) (bool, error)

	// ContainsBigram reports whether the prev -> word edge is present.
	// Pure lookup, no mutation.
	ContainsBigram(ctx context.Context, prev, word string) (bool, error)

	// ShouldYield reports that the store wants the caller to yield the
	// scheduler before the next insertion (a compaction or collection
	// boundary). It is a scheduling hint, never an error.
	ShouldYield() bool
}
