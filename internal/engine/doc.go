// Package engine implements the contactlex incremental synchronization engine.
//
// The engine keeps a derived word/bigram lexicon consistent with an
// external, mutable contact store at bounded cost. It never diffs
// notifications: a change event only means "re-query the source of truth".
//
// ARCHITECTURE:
//
// Single-Worker Rebuild Loop:
// All lexicon mutations happen in one goroutine, the Run loop. This
// ensures:
// - At most one rebuild pass at a time
// - The external store never sees concurrent writers from this engine
// - Simple reasoning about the pending-reload latch
//
// Rebuild Flow:
// 1. Change notifications (any goroutine) set the pending-reload latch
// 2. Run() wakes on the latch signal and consumes the flag exactly once
// 3. The change detector decides staleness, cheapest check first
// 4. If stale, a full rebuild tokenizes every valid record and drives
//    insertions through the lexicon port under the contact cap
//
// A notification arriving during an in-progress rebuild re-sets the latch,
// so the follow-up pass is never lost.
//
// The engine is designed for bounded rebuild cost, not instant freshness.
// The two-tier staleness check resolves the common case (additions and
// removals) against a persisted counter in O(1); only count-preserving
// edits fall through to the O(records) content scan.
package engine
