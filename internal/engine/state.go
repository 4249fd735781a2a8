package engine

import (
	"context"
	"sync"
)

// State is the small persisted blob the engine threads through its cheap
// staleness checks: the record count observed at the last completed
// rebuild. Persistence lives with the lexicon store (lexicon.Store
// implements State); tests and stateless callers get an in-memory default.
type State interface {
	LastRecordCount(ctx context.Context) (int, error)
	SetLastRecordCount(ctx context.Context, n int) error
}

// memoryState is the in-process State used when no persisted handle is
// supplied at construction. The baseline then resets with the process,
// which only costs one extra full pass on startup.
type memoryState struct {
	mu   sync.Mutex
	last int
}

func (m *memoryState) LastRecordCount(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, nil
}

func (m *memoryState) SetLastRecordCount(ctx context.Context, n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = n
	return nil
}
