package badger

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mataconnect/communitypipe/core"
	"github.com/mataconnect/communitypipe/storage"
)

// RecordRepository implements storage.RecordStore for BadgerDB.
type RecordRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.RecordStore = (*RecordRepository)(nil)

// NewRecordRepository creates a new RecordRepository on an open backend.
func NewRecordRepository(backend *Backend) *RecordRepository {
	return &RecordRepository{
		backend: backend,
		logger:  slog.Default().With("component", "record-store"),
	}
}

// NewRecordStore opens a BadgerDB database at path and returns a record
// store backed by it. Closing the store closes the backend.
//
// Returns storage.RecordStore interface to enforce abstraction.
func NewRecordStore(path string) (storage.RecordStore, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &ownedRepository{RecordRepository: NewRecordRepository(backend)}, nil
}

// ownedRepository closes its backend when the store is closed.
type ownedRepository struct {
	*RecordRepository
}

func (r *ownedRepository) Close() error {
	return r.backend.Close()
}

// Close is a no-op for repositories sharing a caller-owned backend.
func (r *RecordRepository) Close() error {
	return nil
}

// Exists reports whether a record with exactly this URL key is present.
func (r *RecordRepository) Exists(ctx context.Context, url string) (bool, error) {
	if url == "" {
		return false, storage.ErrEmptyURL
	}

	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeRecordKey(url))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		return nil
	}, false)

	return found, err
}

// Upsert inserts a new record for the URL or replaces an existing one's
// payload. CreatedAt survives replacement; UpdatedAt is refreshed. The
// whole write happens in a single committed transaction.
func (r *RecordRepository) Upsert(ctx context.Context, url string, payload *core.Community) (*core.StoredRecord, error) {
	if url == "" {
		return nil, storage.ErrEmptyURL
	}

	data, err := storage.MarshalCommunity(payload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &core.StoredRecord{
		URL:       url,
		Payload:   data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(url)

		old, err := r.readRecord(tx, key)
		if err != nil {
			return err
		}
		if old != nil {
			record.CreatedAt = old.CreatedAt
		}

		value, err := storage.MarshalRecord(record)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Get retrieves and parses the payload for a URL.
func (r *RecordRepository) Get(ctx context.Context, url string) (*core.Community, error) {
	if url == "" {
		return nil, storage.ErrEmptyURL
	}

	var record *core.StoredRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		record, err = r.readRecord(tx, makeRecordKey(url))
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return storage.UnmarshalCommunity(record.Payload)
}

// ListAll returns every stored record in key order. Records whose envelope
// cannot be decoded are logged and skipped; the scan itself never fails on
// a single bad row.
func (r *RecordRepository) ListAll(ctx context.Context) ([]*core.StoredRecord, error) {
	var results []*core.StoredRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(communityRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var record *core.StoredRecord
			err := item.Value(func(val []byte) error {
				var decodeErr error
				record, decodeErr = storage.UnmarshalRecord(val)
				return decodeErr
			})
			if err != nil {
				r.logger.Error("skipping undecodable record",
					"url", recordKeyURL(item.Key()), "err", err)
				continue
			}
			results = append(results, record)
		}
		return nil
	}, false)

	return results, err
}

// readRecord reads a record from the transaction. Returns nil, nil when
// the key is absent.
func (r *RecordRepository) readRecord(tx *badger.Txn, key []byte) (*core.StoredRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.StoredRecord
	err = item.Value(func(val []byte) error {
		var decodeErr error
		record, decodeErr = storage.UnmarshalRecord(val)
		return decodeErr
	})
	return record, err
}
