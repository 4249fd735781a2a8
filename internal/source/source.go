// Package source defines the engine's view of external contact providers.
//
// Providers own their records; the engine borrows them for the duration of
// a single enumeration pass. Records may appear, disappear or mutate
// between passes, and no ordering stability is assumed.
package source

import "context"

// Record is one contact row as borrowed from an external provider.
type Record struct {
	ID          string
	DisplayName string
}

// Source enumerates person records from one external provider.
//
// Both calls may fail with ErrUnavailable when the provider is
// transiently unreachable; the engine skips that provider's contribution
// for the current pass and waits for the next change notification.
type Source interface {
	// Enumerate returns up to limit records. An empty result is zero
	// records, not an error.
	Enumerate(ctx context.Context, limit int) ([]Record, error)

	// Count returns the number of records without fetching name
	// payloads. Used only for the cheap staleness pre-check.
	Count(ctx context.Context) (int, error)
}

// Vocabulary supplies standalone words with no bigram structure, such as
// the account identifiers associated with the device.
type Vocabulary interface {
	Words(ctx context.Context) ([]string, error)
}
