package engine

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/text/language"

	"github.com/fieldmark/contactlex/internal/lexicon"
	"github.com/fieldmark/contactlex/internal/source"
	"github.com/fieldmark/contactlex/internal/token"
)

// Frequency weights for derived entries. A matched first/last name pair is
// a stronger predictive signal than either name alone, so bigrams carry
// the higher weight.
const (
	WordFrequency   = 40
	BigramFrequency = 90
)

// MaxContacts is the default cap on records ingested per rebuild pass,
// summed across sources. Beyond it the change detector degrades to
// "not stale" so an oversized store never triggers unbounded rebuilds.
const MaxContacts = 10000

// Engine derives a word/bigram lexicon from external contact sources and
// keeps it consistent with them at bounded cost.
//
// Thread-safety model:
//   - NotifyChange(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - Rebuild()/Stale(): same goroutine as Run, or single-shot use
//     without Run (the CLI's rebuild and check commands)
//
// INVARIANTS:
//   - sources slice order NEVER changes after construction; it is the
//     ingestion priority order (profile record first, then the general
//     contact store)
//   - at most one rebuild pass runs at a time
type Engine struct {
	lex         lexicon.Lexicon
	sources     []source.Source
	vocab       source.Vocabulary
	state       State
	det         *detector
	latch       *reloadLatch
	bigrams     bool
	maxContacts int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxContacts overrides the contact cap. Use small values to test the
// capacity-degradation behavior.
func WithMaxContacts(n int) Option {
	return func(e *Engine) {
		e.maxContacts = n
	}
}

// WithVocabulary adds a secondary vocabulary source whose words are
// ingested as standalone unigrams each pass, with no bigram pairing.
func WithVocabulary(v source.Vocabulary) Option {
	return func(e *Engine) {
		e.vocab = v
	}
}

// New creates an Engine over the given lexicon and contact sources.
//
// The sources slice is the ingestion priority order and is copied to
// prevent external mutation. locale controls first/last-name bigram
// emission (computed once here, constant for the engine's lifetime).
// state carries the persisted record-count baseline; pass nil for an
// in-memory baseline that resets with the process.
func New(lex lexicon.Lexicon, sources []source.Source, locale language.Tag, state State, opts ...Option) *Engine {
	srcCopy := make([]source.Source, len(sources))
	copy(srcCopy, sources)

	if state == nil {
		state = &memoryState{}
	}

	e := &Engine{
		lex:         lex,
		sources:     srcCopy,
		state:       state,
		latch:       newReloadLatch(),
		bigrams:     token.UseBigrams(locale),
		maxContacts: MaxContacts,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.det = &detector{
		lex:         e.lex,
		sources:     e.sources,
		state:       e.state,
		bigrams:     e.bigrams,
		maxContacts: e.maxContacts,
	}
	return e
}

// NotifyChange records that the external contact store changed in some
// unspecified way. Fire-and-forget, safe from any goroutine; arbitrarily
// many calls coalesce into a single pending rebuild.
func (e *Engine) NotifyChange() {
	e.latch.Set()
}

// Stale reports whether the lexicon has drifted from the sources.
func (e *Engine) Stale(ctx context.Context) (bool, error) {
	return e.det.IsStale(ctx)
}

// Run is the rebuild worker loop. It performs one unconditional rebuild
// on entry (the on-disk lexicon may predate the current source contents),
// then waits for change notifications, consulting the change detector
// before each further pass. Blocks until ctx is cancelled.
//
// Must be called from exactly ONE goroutine. All lexicon mutations happen
// here.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("engine starting")

	e.latch.Consume() // startup pass covers anything latched before Run
	e.Rebuild(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("engine stopping: context cancelled")
			return ctx.Err()

		case <-e.latch.Wait():
			if !e.latch.Consume() {
				continue
			}
			stale, err := e.Stale(ctx)
			if err != nil {
				slog.Warn("staleness check failed, skipping pass", "error", err)
				continue
			}
			if !stale {
				slog.Debug("sources unchanged, skipping rebuild")
				continue
			}
			e.Rebuild(ctx)
		}
	}
}

// Rebuild performs one full derivation pass: persist the count baseline,
// ingest the secondary vocabulary, then tokenize and insert every valid
// record from each source in priority order, under the contact cap.
//
// Nothing in a pass is fatal. A transient source failure drops only that
// source's contribution; insertions already committed stay committed, and
// the next change notification attempts again.
func (e *Engine) Rebuild(ctx context.Context) {
	slog.Info("rebuild starting")

	count, err := totalCount(ctx, e.sources)
	if err != nil {
		slog.Warn("record count unavailable, keeping previous baseline", "error", err)
	} else if err := e.state.SetLastRecordCount(ctx, count); err != nil {
		slog.Warn("failed to persist record count baseline", "error", err)
	}

	e.ingestVocabulary(ctx)

	remaining := e.maxContacts
	ingested := 0
	for _, src := range e.sources {
		if remaining <= 0 {
			break
		}
		records, err := src.Enumerate(ctx, remaining)
		if err != nil {
			slog.Warn("source unavailable, skipping its contribution", "error", err)
			continue
		}
		for _, r := range records {
			if remaining <= 0 {
				break
			}
			if !token.ValidName(r.DisplayName) {
				continue
			}
			if err := e.addName(ctx, r.DisplayName); err != nil {
				slog.Warn("failed to ingest record", "id", r.ID, "error", err)
				continue
			}
			remaining--
			ingested++
		}
	}

	slog.Info("rebuild complete", "records", ingested, "count", count)
}

// ingestVocabulary inserts the secondary vocabulary words as standalone
// unigrams. Order relative to the name pass is not significant.
func (e *Engine) ingestVocabulary(ctx context.Context) {
	if e.vocab == nil {
		return
	}
	words, err := e.vocab.Words(ctx)
	if err != nil {
		slog.Warn("vocabulary unavailable, skipping its contribution", "error", err)
		return
	}
	for _, w := range words {
		e.yieldIfRequested()
		if err := e.lex.AddWord(ctx, w, WordFrequency, false); err != nil {
			slog.Warn("failed to insert vocabulary word", "error", err)
		}
	}
}

// addName tokenizes one display name and drives the resulting words and
// bigrams through the lexicon port.
func (e *Engine) addName(ctx context.Context, name string) error {
	sc := token.NewScanner(name, e.bigrams)
	for {
		p, ok := sc.Next()
		if !ok {
			return nil
		}
		e.yieldIfRequested()
		if err := e.lex.AddWord(ctx, p.Word, WordFrequency, false); err != nil {
			return err
		}
		if p.Prev != "" {
			e.yieldIfRequested()
			if err := e.lex.AddBigram(ctx, p.Prev, p.Word, BigramFrequency); err != nil {
				return err
			}
		}
	}
}

// yieldIfRequested honors the lexicon's memory-pressure hint before an
// insertion, bounding peak transient memory during an insertion burst.
func (e *Engine) yieldIfRequested() {
	if e.lex.ShouldYield() {
		runtime.Gosched()
	}
}
