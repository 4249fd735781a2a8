package engine

import (
	"context"
	"log/slog"

	"github.com/fieldmark/contactlex/internal/lexicon"
	"github.com/fieldmark/contactlex/internal/source"
	"github.com/fieldmark/contactlex/internal/token"
)

// detector decides whether the derived lexicon is stale relative to the
// contact sources, running the cheapest sufficient check first.
type detector struct {
	lex         lexicon.Lexicon
	sources     []source.Source
	state       State
	bigrams     bool
	maxContacts int
}

// IsStale reports whether a full rebuild is needed.
//
// Tier 1, count check: a record count above the contact cap short-circuits
// to "not stale" - with more records than the engine will ever ingest, the
// cost of rebuilding outweighs the freshness it buys. Otherwise a count
// differing from the persisted baseline is stale immediately, with zero
// lexicon lookups: a changed count always implies drift.
//
// Tier 2, content check: an unchanged count does not imply unchanged
// content (a rename preserves the count), and extraneous notifications
// fire even when nothing changed. Every valid record is re-tokenized with
// exactly the policy a rebuild would use; the first word or bigram the
// lexicon is missing proves staleness and stops the scan.
func (d *detector) IsStale(ctx context.Context) (bool, error) {
	count, err := totalCount(ctx, d.sources)
	if err != nil {
		return false, err
	}
	if count > d.maxContacts {
		slog.Debug("record count over cap, reporting not stale",
			"count", count, "cap", d.maxContacts)
		return false, nil
	}

	last, err := d.state.LastRecordCount(ctx)
	if err != nil {
		return false, err
	}
	if count != last {
		slog.Debug("record count changed", "from", last, "to", count)
		return true, nil
	}

	for _, src := range d.sources {
		records, err := src.Enumerate(ctx, d.maxContacts)
		if err != nil {
			return false, err
		}
		for _, r := range records {
			if !token.ValidName(r.DisplayName) {
				continue
			}
			known, err := d.nameInLexicon(ctx, r.DisplayName)
			if err != nil {
				return false, err
			}
			if !known {
				slog.Debug("record name missing from lexicon", "id", r.ID)
				return true, nil
			}
		}
	}
	return false, nil
}

// nameInLexicon checks every word and bigram the tokenizer would produce
// for name against the lexicon. When an accepted predecessor exists and
// bigrams are enabled, the bigram edge is the entry that must be present;
// otherwise the word itself is.
func (d *detector) nameInLexicon(ctx context.Context, name string) (bool, error) {
	sc := token.NewScanner(name, d.bigrams)
	for {
		p, ok := sc.Next()
		if !ok {
			return true, nil
		}
		if p.Prev != "" {
			found, err := d.lex.ContainsBigram(ctx, p.Prev, p.Word)
			if err != nil || !found {
				return false, err
			}
		} else {
			found, err := d.lex.ContainsWord(ctx, p.Word)
			if err != nil || !found {
				return false, err
			}
		}
	}
}

// totalCount sums the lightweight count query across sources.
func totalCount(ctx context.Context, sources []source.Source) (int, error) {
	total := 0
	for _, src := range sources {
		n, err := src.Count(ctx)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
