package testutil

import (
	"context"
	"sync"

	"github.com/fieldmark/contactlex/internal/source"
)

// FakeSource is a mutable in-memory record source with failure injection.
//
// Thread-safety: all methods are safe for concurrent use.
type FakeSource struct {
	mu      sync.Mutex
	records []source.Record

	// FailEnumerate and FailCount make the corresponding call return
	// source.ErrUnavailable.
	FailEnumerate bool
	FailCount     bool

	// CountOverride, when non-zero, is returned by Count instead of the
	// record tally. Used to simulate over-cap stores without allocating
	// thousands of records.
	CountOverride int

	// EnumerateCalls counts Enumerate invocations, for asserting that
	// cheap checks never fall through to enumeration.
	EnumerateCalls int
}

// NewFakeSource creates a FakeSource over the given records.
func NewFakeSource(records ...source.Record) *FakeSource {
	return &FakeSource{records: records}
}

// Enumerate implements source.Source.
func (f *FakeSource) Enumerate(ctx context.Context, limit int) ([]source.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EnumerateCalls++
	if f.FailEnumerate {
		return nil, source.ErrUnavailable
	}
	if limit > len(f.records) {
		limit = len(f.records)
	}
	out := make([]source.Record, limit)
	copy(out, f.records[:limit])
	return out, nil
}

// Count implements source.Source.
func (f *FakeSource) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailCount {
		return 0, source.ErrUnavailable
	}
	if f.CountOverride != 0 {
		return f.CountOverride, nil
	}
	return len(f.records), nil
}

// Add appends a record.
func (f *FakeSource) Add(r source.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, r)
}

// Rename changes the display name of the record with the given id,
// preserving the record count.
func (f *FakeSource) Rename(id, displayName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].DisplayName = displayName
			return
		}
	}
}

// Remove deletes the record with the given id.
func (f *FakeSource) Remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return
		}
	}
}
