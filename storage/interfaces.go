package storage

import (
	"context"

	"github.com/mataconnect/communitypipe/core"
)

// RecordStore is the durable cache of enrichment results, keyed by the
// verbatim community URL. It enforces at-most-one enrichment per URL per
// store lifetime: callers check Exists before invoking the enrichment
// collaborator.
type RecordStore interface {
	// Exists reports whether a record with exactly this URL key is present.
	Exists(ctx context.Context, url string) (bool, error)

	// Upsert serializes the payload to its canonical JSON text form and
	// inserts a new record, or replaces an existing record's payload.
	// CreatedAt is preserved across replacements; UpdatedAt is refreshed.
	// The write is atomic: no partial record is ever visible.
	Upsert(ctx context.Context, url string, payload *core.Community) (*core.StoredRecord, error)

	// Get retrieves and parses the payload for a URL.
	// Returns ErrNotFound if no record exists, or ErrMalformedPayload
	// (wrapped) if the stored payload cannot be parsed.
	Get(ctx context.Context, url string) (*core.Community, error)

	// ListAll returns every stored record present at call time, in key
	// order. Enumeration never skips or duplicates rows for a given store
	// snapshot. Payloads are returned unparsed; a record whose envelope
	// cannot be decoded is reported via the store's logger and skipped,
	// never failing the whole scan.
	ListAll(ctx context.Context) ([]*core.StoredRecord, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
