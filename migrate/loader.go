package migrate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mataconnect/communitypipe/core"
	"github.com/mataconnect/communitypipe/storage"
)

const (
	// DefaultBatchSize is the default number of documents per bulk insert.
	DefaultBatchSize = 100
)

// Collection is the destination document collection. InsertMany attempts a
// bulk insert and returns how many documents were actually accepted.
// Implementations absorb partial rejections into the count (returning a
// nil error) and return a non-nil error only when the whole call failed.
type Collection interface {
	InsertMany(ctx context.Context, docs []*core.Document) (int, error)
}

// Summary reports the outcome of a migration run.
type Summary struct {
	Total     int // stored records considered
	Succeeded int // documents accepted by the destination
	Failed    int // malformed records plus rejected documents
}

// Config holds configuration for the migration loader.
type Config struct {
	// BatchSize is the number of documents per bulk insert
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: DefaultBatchSize,
	}
}

// Loader drains stored records, transforms them, and writes them to the
// destination collection in fixed-size batches. Failures are isolated: a
// malformed record drops only that record, a partially rejected batch
// keeps its accepted documents, and a fully failed batch does not stop
// the batches after it.
type Loader struct {
	dest        Collection
	transformer *Transformer
	config      *Config
	progress    io.Writer
	logger      *slog.Logger
}

// NewLoader creates a new migration loader.
// progress: where to write progress output (typically os.Stderr)
func NewLoader(dest Collection, config *Config, progress io.Writer) *Loader {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.ReportInterval <= 0 {
		config.ReportInterval = config.BatchSize
	}

	return &Loader{
		dest:        dest,
		transformer: NewTransformer(),
		config:      config,
		progress:    progress,
		logger:      slog.Default().With("component", "loader"),
	}
}

// Load migrates the given records. Processing is strictly sequential; the
// summary covers every record, including any short trailing batch.
// Context cancellation is honored between batches.
func (l *Loader) Load(ctx context.Context, records []*core.StoredRecord) (*Summary, error) {
	summary := &Summary{Total: len(records)}

	if len(records) == 0 {
		fmt.Fprintf(l.progress, "No records found in store (0 records)\n")
		return summary, nil
	}

	fmt.Fprintf(l.progress, "Starting migration of %d records (batch size: %d)\n",
		len(records), l.config.BatchSize)

	tracker := NewProgressTracker(l.progress, len(records), l.config.ReportInterval)
	tracker.Start()

	for start := 0; start < len(records); start += l.config.BatchSize {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		end := start + l.config.BatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		l.loadBatch(ctx, batch, summary)
		tracker.Update(summary.Succeeded + summary.Failed)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(l.progress, "Migration complete. %d succeeded, %d failed of %d records in %v\n",
		summary.Succeeded, summary.Failed, summary.Total, elapsed.Round(time.Second))

	return summary, nil
}

// loadBatch transforms one batch and attempts its bulk insert, folding the
// outcome into the summary.
func (l *Loader) loadBatch(ctx context.Context, batch []*core.StoredRecord, summary *Summary) {
	docs := make([]*core.Document, 0, len(batch))
	for _, record := range batch {
		payload, err := storage.UnmarshalCommunity(record.Payload)
		if err != nil {
			// Corrupt cache entry: drop the record, keep the batch
			l.logger.Error("skipping malformed payload", "url", record.URL, "err", err)
			summary.Failed++
			continue
		}
		docs = append(docs, l.transformer.Transform(payload, record.URL))
	}

	if len(docs) == 0 {
		return
	}

	inserted, err := l.dest.InsertMany(ctx, docs)
	if err != nil {
		l.logger.Error("batch insert failed", "size", len(docs), "err", err)
		summary.Failed += len(docs)
		return
	}

	summary.Succeeded += inserted
	if rejected := len(docs) - inserted; rejected > 0 {
		l.logger.Warn("batch partially rejected", "accepted", inserted, "rejected", rejected)
		summary.Failed += rejected
	}
}
