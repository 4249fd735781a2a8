package source

import "context"

// Static is an in-memory Source with a fixed record set. It backs the
// profile ("self") record slot and keeps engine tests free of SQLite.
type Static struct {
	records []Record
}

// NewStatic creates a Static source over a copy of records.
func NewStatic(records []Record) *Static {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Static{records: cp}
}

// Enumerate implements Source.
func (s *Static) Enumerate(ctx context.Context, limit int) ([]Record, error) {
	if limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]Record, limit)
	copy(out, s.records[:limit])
	return out, nil
}

// Count implements Source.
func (s *Static) Count(ctx context.Context) (int, error) {
	return len(s.records), nil
}

// Accounts is a Vocabulary backed by a fixed word list, typically the
// account identifiers read from configuration.
type Accounts []string

// Words implements Vocabulary.
func (a Accounts) Words(ctx context.Context) ([]string, error) {
	out := make([]string, len(a))
	copy(out, a)
	return out, nil
}
